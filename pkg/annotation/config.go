package annotation

import (
	"maps"

	"github.com/matzehuels/chartnote/pkg/render/styles"
	"github.com/matzehuels/chartnote/pkg/tooltip"
)

// Image configures the picture of an image annotation.
type Image struct {
	URL      string  `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
	Width    float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height   float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Location string  `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`
}

// Border configures the plaque outline.
type Border struct {
	Visible      *bool    `json:"visible,omitempty" yaml:"visible,omitempty" toml:"visible,omitempty"`
	Width        *float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Color        string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty" toml:"opacity,omitempty"`
	CornerRadius *float64 `json:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty" toml:"cornerRadius,omitempty"`
}

// Config is the declarative description of one annotation, as written in
// the "annotations" list or the "commonAnnotationSettings" block. Pointer
// and nil fields are unset and inherit when merged.
//
// Argument and Value are logical chart values: numbers, category strings or
// dates. X and Y are pixel coordinates used when no data coordinate
// resolves.
type Config struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	X        *float64 `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y        *float64 `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
	Argument any      `json:"argument,omitempty" yaml:"argument,omitempty" toml:"argument,omitempty"`
	Value    any      `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Axis     string   `json:"axis,omitempty" yaml:"axis,omitempty" toml:"axis,omitempty"`
	Series   string   `json:"series,omitempty" yaml:"series,omitempty" toml:"series,omitempty"`

	Draggable      *bool  `json:"draggable,omitempty" yaml:"draggable,omitempty" toml:"draggable,omitempty"`
	TooltipEnabled *bool  `json:"tooltipEnabled,omitempty" yaml:"tooltipEnabled,omitempty" toml:"tooltipEnabled,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`

	Text  string      `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Image Image       `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Font  styles.Font `json:"font,omitempty" yaml:"font,omitempty" toml:"font,omitempty"`

	Color            string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Opacity          *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty" toml:"opacity,omitempty"`
	Border           Border   `json:"border,omitempty" yaml:"border,omitempty" toml:"border,omitempty"`
	ArrowLength      *float64 `json:"arrowLength,omitempty" yaml:"arrowLength,omitempty" toml:"arrowLength,omitempty"`
	ArrowWidth       *float64 `json:"arrowWidth,omitempty" yaml:"arrowWidth,omitempty" toml:"arrowWidth,omitempty"`
	PaddingLeftRight *float64 `json:"paddingLeftRight,omitempty" yaml:"paddingLeftRight,omitempty" toml:"paddingLeftRight,omitempty"`
	PaddingTopBottom *float64 `json:"paddingTopBottom,omitempty" yaml:"paddingTopBottom,omitempty" toml:"paddingTopBottom,omitempty"`
	OffsetX          *float64 `json:"offsetX,omitempty" yaml:"offsetX,omitempty" toml:"offsetX,omitempty"`
	OffsetY          *float64 `json:"offsetY,omitempty" yaml:"offsetY,omitempty" toml:"offsetY,omitempty"`
	Width            *float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height           *float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`

	// Data is forwarded untouched to tooltips and sinks.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty" toml:"data,omitempty"`

	CustomizeTooltip tooltip.Customizer `json:"-" yaml:"-" toml:"-"`
}

// Merge returns a deep merge of the configs: later configs win for every
// field they set. Nested blocks merge field by field and Data maps merge
// recursively. The inputs are not modified.
//
// A string field set to "" or an image size set to 0 counts as unset and
// never clears an earlier value. Fields where a zero value is meaningful,
// such as Opacity and Draggable, are pointers: a non-nil pointer to
// the zero value does override.
func Merge(configs ...Config) Config {
	var out Config
	for _, c := range configs {
		out = merge(out, c)
	}
	return out
}

func merge(dst, src Config) Config {
	setString(&dst.Type, src.Type)
	setString(&dst.Name, src.Name)
	setPtr(&dst.X, src.X)
	setPtr(&dst.Y, src.Y)
	if src.Argument != nil {
		dst.Argument = src.Argument
	}
	if src.Value != nil {
		dst.Value = src.Value
	}
	setString(&dst.Axis, src.Axis)
	setString(&dst.Series, src.Series)
	setPtr(&dst.Draggable, src.Draggable)
	setPtr(&dst.TooltipEnabled, src.TooltipEnabled)
	setString(&dst.Description, src.Description)
	setString(&dst.Text, src.Text)

	setString(&dst.Image.URL, src.Image.URL)
	setFloat(&dst.Image.Width, src.Image.Width)
	setFloat(&dst.Image.Height, src.Image.Height)
	setString(&dst.Image.Location, src.Image.Location)

	dst.Font = dst.Font.Merge(src.Font)

	setString(&dst.Color, src.Color)
	setPtr(&dst.Opacity, src.Opacity)
	setPtr(&dst.Border.Visible, src.Border.Visible)
	setPtr(&dst.Border.Width, src.Border.Width)
	setString(&dst.Border.Color, src.Border.Color)
	setPtr(&dst.Border.Opacity, src.Border.Opacity)
	setPtr(&dst.Border.CornerRadius, src.Border.CornerRadius)
	setPtr(&dst.ArrowLength, src.ArrowLength)
	setPtr(&dst.ArrowWidth, src.ArrowWidth)
	setPtr(&dst.PaddingLeftRight, src.PaddingLeftRight)
	setPtr(&dst.PaddingTopBottom, src.PaddingTopBottom)
	setPtr(&dst.OffsetX, src.OffsetX)
	setPtr(&dst.OffsetY, src.OffsetY)
	setPtr(&dst.Width, src.Width)
	setPtr(&dst.Height, src.Height)

	if src.Data != nil {
		dst.Data = mergeData(dst.Data, src.Data)
	}
	if src.CustomizeTooltip != nil {
		dst.CustomizeTooltip = src.CustomizeTooltip
	}
	return dst
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func setFloat(dst *float64, src float64) {
	if src != 0 {
		*dst = src
	}
}

// setPtr copies the pointed-to value so merged configs never share storage
// with their inputs.
func setPtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// mergeData merges src into a copy of dst. Nested maps merge recursively;
// every other value replaces.
func mergeData(dst, src map[string]any) map[string]any {
	out := maps.Clone(dst)
	if out == nil {
		out = make(map[string]any, len(src))
	}
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			out[k] = v
			continue
		}
		prev, _ := out[k].(map[string]any)
		out[k] = mergeData(prev, sub)
	}
	return out
}

func boolValue(b *bool) bool { return b != nil && *b }

func floatValue(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
