package server

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chartnote/pkg/buildinfo"
	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/httputil"
	cnio "github.com/matzehuels/chartnote/pkg/io"
	"github.com/matzehuels/chartnote/pkg/pipeline"
	"github.com/matzehuels/chartnote/pkg/session"
	"github.com/matzehuels/chartnote/pkg/theme"
)

// sessionView is the JSON form of a session without its document.
type sessionView struct {
	ID        string      `json:"id"`
	Format    cnio.Format `json:"format"`
	Theme     string      `json:"theme,omitempty"`
	Revision  int         `json:"revision"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func viewOf(s *session.Session) sessionView {
	return sessionView{
		ID:        s.ID,
		Format:    s.Format,
		Theme:     s.Theme,
		Revision:  s.Revision,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.String(),
	})
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	names := theme.Names()
	if s.themes != nil {
		names = s.themes.Names()
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"themes": names})
}

// handleRender renders the document in the request body without a
// session. The output format comes from the "output" query parameter.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, format, err := readDocument(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := r.URL.Query().Get("output")
	if out == "" {
		out = pipeline.FormatSVG
	}
	opts, err := s.renderOptions(r, doc, format, out)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.execute(w, r, nil, opts)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	doc, format, err := readDocument(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sess := session.New(doc, format, s.ttl)
	sess.Theme = r.URL.Query().Get("theme")
	if err := s.store.Set(r.Context(), sess); err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.logger.Debug("session created", "id", sess.ID, "format", format)
	w.Header().Set("Location", "/sessions/"+sess.ID)
	httputil.WriteJSON(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	doc, format, err := readDocument(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sess.Update(doc, format, s.ttl)
	if th, ok := r.URL.Query()["theme"]; ok {
		sess.Theme = th[0]
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", documentContentType(sess.Format))
	_, _ = w.Write(sess.Document)
}

func (s *Server) handleRenderSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	opts, err := s.renderOptions(r, sess.Document, sess.Format, chi.URLParam(r, "format"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if opts.Theme == "" {
		opts.Theme = sess.Theme
	}
	s.execute(w, r, sess, opts)
}

func (s *Server) handleResolveSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	opts, err := s.renderOptions(r, sess.Document, sess.Format, pipeline.FormatJSON)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if opts.Theme == "" {
		opts.Theme = sess.Theme
	}
	report, _, cached, err := s.runner(sess).Resolve(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(cached))
	httputil.WriteJSON(w, http.StatusOK, report)
}

// problemView is one validation problem.
type problemView struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleValidateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	opts := pipeline.Options{
		Document:       sess.Document,
		DocumentFormat: sess.Format,
		Theme:          sess.Theme,
		Themes:         s.themes,
		Logger:         s.logger,
	}
	l, err := pipeline.Load(opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	wd, problems, err := s.runner(sess).Build(r.Context(), l, opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	wd.Dispose()

	views := make([]problemView, 0, len(problems))
	for _, p := range problems {
		views = append(views, problemView{Code: errors.GetCode(p), Message: errors.UserMessage(p)})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"annotations": len(l.Document.Annotations),
		"problems":    views,
	})
}

// execute runs the pipeline for the single format in opts and writes the
// artifact.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, sess *session.Session, opts pipeline.Options) {
	result, err := s.runner(sess).Execute(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if result.Widget != nil {
		defer result.Widget.Dispose()
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", httputil.ContentType(format))
	w.Header().Set("X-Cache", cacheHeader(result.CacheInfo.RenderHit))
	if n := len(result.Problems); n > 0 {
		w.Header().Set("X-Annotation-Problems", strconv.Itoa(n))
	}
	_, _ = w.Write(result.Artifacts[format])
}

// session loads the session named by the id URL parameter.
func (s *Server) session(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "id")
	if !session.ValidID(id) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	return s.store.Get(r.Context(), id)
}

// renderOptions builds pipeline options from the query parameters.
func (s *Server) renderOptions(r *http.Request, doc []byte, format cnio.Format, output string) (pipeline.Options, error) {
	if err := pipeline.ValidateFormat(output); err != nil {
		return pipeline.Options{}, err
	}
	q := r.URL.Query()
	opts := pipeline.Options{
		Document:       doc,
		DocumentFormat: format,
		Theme:          q.Get("theme"),
		Formats:        []string{output},
		Themes:         s.themes,
		Logger:         s.logger,
	}
	var err error
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "scale %q", v)
		}
	}
	for name, dst := range map[string]*bool{
		"interactive": &opts.Interactive,
		"refresh":     &opts.Refresh,
		"strict":      &opts.Strict,
	} {
		if v := q.Get(name); v != "" {
			if *dst, err = strconv.ParseBool(v); err != nil {
				return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s %q", name, v)
			}
		}
	}
	return opts, nil
}

// readDocument reads and decodes the request body so malformed documents
// are rejected before they are stored.
func readDocument(r *http.Request) ([]byte, cnio.Format, error) {
	format, err := httputil.DocumentFormat(r)
	if err != nil {
		return nil, "", err
	}
	doc, err := httputil.ReadBody(r)
	if err != nil {
		return nil, "", err
	}
	if _, err := cnio.ReadDocument(bytes.NewReader(doc), format); err != nil {
		return nil, "", err
	}
	return doc, format, nil
}

func documentContentType(f cnio.Format) string {
	switch f {
	case cnio.FormatYAML:
		return "application/yaml"
	case cnio.FormatTOML:
		return "application/toml"
	}
	return "application/json"
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
