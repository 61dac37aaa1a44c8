// Package theme holds the named visual defaults of a widget: the base font,
// colors, the default annotation settings and the tooltip options.
//
// Two themes are built in, [GenericLight] and [GenericDark]. Custom themes
// are YAML documents loaded with [Load] or [LoadFile]; fields they omit
// inherit from the theme named in "base" (generic.light by default).
package theme

import (
	"bytes"
	"io"
	"os"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartnote/pkg/annotation"
	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/fonts"
	"github.com/matzehuels/chartnote/pkg/render/styles"
	"github.com/matzehuels/chartnote/pkg/tooltip"
)

// Built-in theme names.
const (
	GenericLight = "generic.light"
	GenericDark  = "generic.dark"
)

// Default is the theme used when none is named.
const Default = GenericLight

// Theme is a named set of visual defaults. Font is the base font hosts merge
// under every registered font option.
type Theme struct {
	Name       string      `yaml:"name"`
	Base       string      `yaml:"base,omitempty"`
	Font       styles.Font `yaml:"font"`
	Background string      `yaml:"background"`
	AxisColor  string      `yaml:"axisColor"`
	Palette    []string    `yaml:"palette,omitempty"`

	Annotations annotation.Config `yaml:"commonAnnotationSettings"`
	Tooltip     tooltip.Options   `yaml:"tooltip"`
}

// TooltipOptions returns the tooltip options with the base font merged
// under the tooltip font.
func (t *Theme) TooltipOptions() tooltip.Options {
	o := t.Tooltip
	o.Font = t.Font.Merge(t.Tooltip.Font)
	return o
}

// SeriesColor returns the palette color for the i-th series.
func (t *Theme) SeriesColor(i int) string {
	if len(t.Palette) == 0 {
		return ""
	}
	return t.Palette[i%len(t.Palette)]
}

func ptr[T any](v T) *T { return &v }

func light() *Theme {
	return &Theme{
		Name:       GenericLight,
		Font:       styles.Font{Family: fonts.FallbackFontFamily, Size: 12, Weight: 400, Color: "#767676"},
		Background: "#ffffff",
		AxisColor:  "#767676",
		Palette:    []string{"#1db2f5", "#f5564a", "#97c95c", "#ffc720", "#eb3573", "#a63db8"},
		Annotations: annotation.Config{
			Type:           annotation.TypeText,
			TooltipEnabled: ptr(true),
			Draggable:      ptr(false),
			Color:          "#ffffff",
			Opacity:        ptr(0.9),
			Border: annotation.Border{
				Visible:      ptr(true),
				Width:        ptr(1.0),
				Color:        "#dddddd",
				Opacity:      ptr(1.0),
				CornerRadius: ptr(0.0),
			},
			ArrowLength:      ptr(14.0),
			ArrowWidth:       ptr(14.0),
			PaddingLeftRight: ptr(10.0),
			PaddingTopBottom: ptr(10.0),
			OffsetX:          ptr(0.0),
			OffsetY:          ptr(0.0),
			Image:            annotation.Image{Width: 30, Height: 30},
			Font:             styles.Font{Size: 16, Color: "#333333"},
		},
		Tooltip: tooltip.Options{
			Enabled:          true,
			Color:            "#ffffff",
			Opacity:          1,
			Border:           tooltip.Border{Visible: true, Width: 1, Color: "#d3d3d3"},
			Font:             styles.Font{Color: "#232323", Size: 12},
			ArrowLength:      10,
			PaddingLeftRight: 18,
			PaddingTopBottom: 15,
			CornerRadius:     3,
			Location:         tooltip.LocationCenter,
		},
	}
}

func dark() *Theme {
	t := light()
	t.Name = GenericDark
	t.Font.Color = "#808080"
	t.Background = "#2a2a2a"
	t.AxisColor = "#555555"
	t.Palette = []string{"#5f8b95", "#ba4d51", "#af8a53", "#955f71", "#859666", "#7e688c"}
	t.Annotations.Color = "#2b2b2b"
	t.Annotations.Border.Color = "#494949"
	t.Annotations.Font.Color = "#dedede"
	t.Tooltip.Color = "#2b2b2b"
	t.Tooltip.Border.Color = "#494949"
	t.Tooltip.Font.Color = "#929292"
	return t
}

// Registry maps names to themes. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]*Theme
}

// NewRegistry returns a registry holding the built-in themes.
func NewRegistry() *Registry {
	r := &Registry{themes: map[string]*Theme{}}
	r.themes[GenericLight] = light()
	r.themes[GenericDark] = dark()
	return r
}

// Register adds or replaces t.
func (r *Registry) Register(t *Theme) error {
	if t == nil || t.Name == "" {
		return errors.New(errors.ErrCodeInvalidTheme, "theme has no name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[t.Name] = t
	return nil
}

// Get returns the theme called name, or the default theme for an empty
// name.
func (r *Registry) Get(name string) (*Theme, error) {
	if name == "" {
		name = Default
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (available: %v)", name, r.namesLocked())
	}
	return t, nil
}

// Names returns the registered theme names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.themes))
	for n := range r.themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var builtins = NewRegistry()

// Get looks up a theme in the built-in registry.
func Get(name string) (*Theme, error) { return builtins.Get(name) }

// Names returns the names of the built-in themes.
func Names() []string { return builtins.Names() }

// Load decodes a YAML theme from rd. Fields the document omits keep the
// values of its base theme, resolved in reg (the built-in registry when
// reg is nil).
func Load(rd io.Reader, reg *Registry) (*Theme, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "read theme")
	}
	var head struct {
		Base string `yaml:"base"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode theme")
	}
	if reg == nil {
		reg = builtins
	}
	base, err := reg.Get(head.Base)
	if err != nil {
		return nil, err
	}

	t := clone(base)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode theme")
	}
	if t.Name == "" || t.Name == base.Name {
		return nil, errors.New(errors.ErrCodeInvalidTheme, "theme needs a name different from its base %q", base.Name)
	}
	return t, nil
}

// LoadFile loads a YAML theme from path.
func LoadFile(path string, reg *Registry) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "open theme %s", path)
	}
	defer f.Close()
	return Load(f, reg)
}

// clone deep-copies t so decoding into the copy leaves the base intact.
func clone(t *Theme) *Theme {
	c := *t
	c.Palette = slices.Clone(t.Palette)
	c.Annotations = annotation.Merge(t.Annotations)
	return &c
}
