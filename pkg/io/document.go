package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/chartnote/pkg/annotation"
	"github.com/matzehuels/chartnote/pkg/chart"
	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/theme"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// FormatOf picks the encoding from the file extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
}

// ParseFormat parses a format name as given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", s)
}

// Document is an annotated chart: the chart the annotations are placed
// on, the settings every annotation inherits and the annotations
// themselves.
type Document struct {
	// Theme names a built-in theme. Empty selects the default theme.
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
	// ThemeFile is a YAML theme, relative to the document. It wins over
	// Theme.
	ThemeFile string `json:"themeFile,omitempty" yaml:"themeFile,omitempty" toml:"themeFile,omitempty"`

	Chart                    chart.Config        `json:"chart" yaml:"chart" toml:"chart"`
	CommonAnnotationSettings annotation.Config   `json:"commonAnnotationSettings,omitempty" yaml:"commonAnnotationSettings,omitempty" toml:"commonAnnotationSettings,omitempty"`
	Annotations              []annotation.Config `json:"annotations,omitempty" yaml:"annotations,omitempty" toml:"annotations,omitempty"`
}

// ResolveTheme returns the theme the document asks for. dir is the
// directory ThemeFile is relative to.
func (d *Document) ResolveTheme(dir string, reg *theme.Registry) (*theme.Theme, error) {
	if d.ThemeFile != "" {
		if err := errors.ValidatePath(d.ThemeFile); err != nil {
			return nil, err
		}
		path := d.ThemeFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return theme.LoadFile(path, reg)
	}
	if reg != nil {
		return reg.Get(d.Theme)
	}
	return theme.Get(d.Theme)
}
