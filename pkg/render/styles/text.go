// Package styles turns option values into the CSS properties and escaped
// strings the scene and its sinks consume.
package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Font is the font option block shared by annotations, tooltips and axes.
// A zero field means "inherit".
type Font struct {
	Family  string  `json:"family,omitempty" yaml:"family,omitempty" toml:"family,omitempty"`
	Size    float64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Weight  int     `json:"weight,omitempty" yaml:"weight,omitempty" toml:"weight,omitempty"`
	Color   string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty" yaml:"opacity,omitempty" toml:"opacity,omitempty"`
}

// Merge returns f with the non-zero fields of o applied on top.
func (f Font) Merge(o Font) Font {
	if o.Family != "" {
		f.Family = o.Family
	}
	if o.Size != 0 {
		f.Size = o.Size
	}
	if o.Weight != 0 {
		f.Weight = o.Weight
	}
	if o.Color != "" {
		f.Color = o.Color
	}
	if o.Opacity != 0 {
		f.Opacity = o.Opacity
	}
	return f
}

// PatchFont converts font options into CSS properties. Color maps to fill,
// the way SVG text is colored; opacity maps to fill-opacity.
func PatchFont(f Font) map[string]string {
	css := map[string]string{}
	if f.Family != "" {
		css["font-family"] = f.Family
	}
	if f.Size > 0 {
		css["font-size"] = formatFloat(f.Size) + "px"
	}
	if f.Weight > 0 {
		css["font-weight"] = strconv.Itoa(f.Weight)
	}
	if f.Color != "" {
		css["fill"] = f.Color
	}
	if f.Opacity > 0 && f.Opacity < 1 {
		css["fill-opacity"] = formatFloat(f.Opacity)
	}
	return css
}

// InlineCSS renders properties as a style attribute value with keys in a
// stable order.
func InlineCSS(css map[string]string, order ...string) string {
	var b strings.Builder
	seen := map[string]bool{}
	write := func(k string) {
		v, ok := css[k]
		if !ok || seen[k] {
			return
		}
		seen[k] = true
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", k, v)
	}
	for _, k := range order {
		write(k)
	}
	for _, k := range slices.Sorted(maps.Keys(css)) {
		write(k)
	}
	return b.String()
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
