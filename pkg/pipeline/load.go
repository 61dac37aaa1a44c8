package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/chartnote/pkg/cache"
	"github.com/matzehuels/chartnote/pkg/errors"
	cnio "github.com/matzehuels/chartnote/pkg/io"
	"github.com/matzehuels/chartnote/pkg/theme"
)

// Loaded is a decoded document with its resolved theme.
type Loaded struct {
	Document *cnio.Document
	Theme    *theme.Theme

	// Path is the document path, empty for inline documents.
	Path string
	// Hash identifies the document bytes together with the resolved theme.
	Hash string
}

// Load reads and decodes the document named by opts and resolves its
// theme. Theme options in opts win over the document.
func Load(opts Options) (*Loaded, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	raw, format, dir := opts.Document, opts.DocumentFormat, ""
	if len(raw) == 0 {
		var err error
		if format, err = cnio.FormatOf(opts.DocumentPath); err != nil {
			return nil, err
		}
		if raw, err = os.ReadFile(opts.DocumentPath); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", opts.DocumentPath)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read %s", opts.DocumentPath)
		}
		dir = filepath.Dir(opts.DocumentPath)
	}

	doc, err := cnio.ReadDocument(bytes.NewReader(raw), format)
	if err != nil {
		return nil, err
	}
	if opts.Theme != "" {
		doc.Theme, doc.ThemeFile = opts.Theme, ""
	}
	if opts.ThemeFile != "" {
		doc.ThemeFile = opts.ThemeFile
		if !filepath.IsAbs(doc.ThemeFile) {
			if abs, err := filepath.Abs(doc.ThemeFile); err == nil {
				doc.ThemeFile = abs
			}
		}
	}
	th, err := doc.ResolveTheme(dir, opts.Themes)
	if err != nil {
		return nil, err
	}

	themeData, err := json.Marshal(th)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash theme")
	}
	return &Loaded{
		Document: doc,
		Theme:    th,
		Path:     opts.DocumentPath,
		Hash:     cache.Hash(slices.Concat(raw, []byte{0}, themeData)),
	}, nil
}
