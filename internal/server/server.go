// Package server implements the chartnote preview server.
//
// Clients either render a document in one request (POST /render) or open a
// session holding the document and render it repeatedly while editing:
//
//	POST   /sessions                     create a session from the body
//	GET    /sessions/{id}                session metadata
//	PUT    /sessions/{id}                replace the document
//	DELETE /sessions/{id}                drop the session
//	GET    /sessions/{id}/document       the stored document
//	GET    /sessions/{id}/render.{fmt}   svg, png, pdf or json
//	GET    /sessions/{id}/resolve        placement report
//	GET    /sessions/{id}/validate       validation problems
//
// Render endpoints accept the query parameters theme, scale, interactive
// and refresh. Artifacts are cached with keys scoped to the session.
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chartnote/pkg/cache"
	"github.com/matzehuels/chartnote/pkg/pipeline"
	"github.com/matzehuels/chartnote/pkg/session"
	"github.com/matzehuels/chartnote/pkg/theme"
)

// DefaultCleanupInterval is how often expired sessions are removed.
const DefaultCleanupInterval = 5 * time.Minute

// Config configures a Server. Zero fields get defaults: an in-memory
// session store, no cache, a discard logger and session.DefaultTTL.
type Config struct {
	Store  session.Store
	Cache  cache.Cache
	Logger *log.Logger
	TTL    time.Duration
	Themes *theme.Registry
}

// Server serves previews of annotated charts.
type Server struct {
	store  session.Store
	cache  cache.Cache
	logger *log.Logger
	ttl    time.Duration
	themes *theme.Registry
	router chi.Router

	// mu serialises read-modify-write of sessions.
	mu sync.Mutex
}

// New creates a server.
func New(cfg Config) *Server {
	s := &Server{
		store:  cfg.Store,
		cache:  cfg.Cache,
		logger: cfg.Logger,
		ttl:    cfg.TTL,
		themes: cfg.Themes,
	}
	if s.store == nil {
		s.store = session.NewMemoryStore()
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.ttl <= 0 {
		s.ttl = session.DefaultTTL
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/themes", s.handleThemes)
	r.Post("/render", s.handleRender)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Put("/", s.handleUpdateSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/document", s.handleSessionDocument)
			r.Get("/render.{format}", s.handleRenderSession)
			r.Get("/resolve", s.handleResolveSession)
			r.Get("/validate", s.handleValidateSession)
		})
	})
	return r
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// runner returns a pipeline runner whose cache keys are scoped to sess,
// or unscoped when sess is nil.
func (s *Server) runner(sess *session.Session) *pipeline.Runner {
	var keyer cache.Keyer
	if sess != nil {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), sess.CacheScope())
	}
	return pipeline.NewRunner(s.cache, keyer, s.logger)
}

// RunCleanup removes expired sessions every interval until ctx is done.
func (s *Server) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.store.Cleanup(ctx)
			if err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.RunCleanup(ctx, DefaultCleanupInterval)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
