package httputil

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/matzehuels/chartnote/pkg/errors"
	cnio "github.com/matzehuels/chartnote/pkg/io"
)

// MaxBodySize bounds request bodies read by [ReadBody].
const MaxBodySize = 4 << 20

// ReadBody reads the request body up to MaxBodySize bytes. Larger and
// empty bodies are rejected.
func ReadBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) > MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodySize)
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty request body")
	}
	return data, nil
}

// DocumentFormat picks the document format of a request: the "format"
// query parameter wins over the Content-Type header; JSON is the default.
func DocumentFormat(r *http.Request) (cnio.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return cnio.ParseFormat(f)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return cnio.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "content type %q", ct)
	}
	switch {
	case mt == "application/json" || strings.HasSuffix(mt, "+json"):
		return cnio.FormatJSON, nil
	case strings.Contains(mt, "yaml"):
		return cnio.FormatYAML, nil
	case strings.Contains(mt, "toml"):
		return cnio.FormatTOML, nil
	case mt == "text/plain":
		return cnio.FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}

// ContentType returns the media type of an output format.
func ContentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	case "json":
		return "application/json"
	}
	return "application/octet-stream"
}
