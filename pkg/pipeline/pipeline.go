// Package pipeline provides the load → build → render pipeline shared by
// the CLI commands and the preview server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode the document (JSON, YAML or TOML) and resolve its theme
//  2. Build: Create the widget, apply the annotation options and validate
//     every annotation against the chart
//  3. Render: Generate output in the requested formats (SVG, PNG, PDF, JSON)
//
// Rendered artifacts are cached by document hash, theme and output options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DocumentPath: "chart.yaml",
//	    Formats:      []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	loaded, err := pipeline.Load(opts)
//	w, problems, err := runner.Build(ctx, loaded, opts)
//	artifacts, err := runner.Render(ctx, w, loaded, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartnote/pkg/cache"
	"github.com/matzehuels/chartnote/pkg/errors"
	cnio "github.com/matzehuels/chartnote/pkg/io"
	"github.com/matzehuels/chartnote/pkg/theme"
	"github.com/matzehuels/chartnote/pkg/widget"
)

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = cache.DefaultTTL
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for preview requests.
type Options struct {
	// DocumentPath is the document to load. Ignored when Document is set.
	DocumentPath string `json:"document_path,omitempty"`
	// Document holds the raw document bytes, encoded as DocumentFormat.
	Document       []byte      `json:"document,omitempty"`
	DocumentFormat cnio.Format `json:"document_format,omitempty"`

	// Theme and ThemeFile override the theme named by the document.
	Theme     string `json:"theme,omitempty"`
	ThemeFile string `json:"theme_file,omitempty"`

	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	// Strict turns validation problems into an error.
	Strict  bool `json:"strict,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	Logger        *log.Logger     `json:"-"`
	Themes        *theme.Registry `json:"-"`
	WidgetOptions []widget.Option `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Loaded *Loaded

	// Widget is the rendered widget. It is nil when every artifact came
	// from the cache.
	Widget *widget.Widget

	// Problems lists validation findings. They only fail the run in
	// strict mode.
	Problems errors.List

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Annotations int
	Drawn       int
	LoadTime    time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache usage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Document) == 0 {
		if err := errors.ValidatePath(o.DocumentPath); err != nil {
			return err
		}
	} else if o.DocumentFormat == "" {
		o.DocumentFormat = cnio.FormatJSON
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format, themeName string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		Theme:       themeName,
		Interactive: o.Interactive,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
