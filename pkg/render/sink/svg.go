package sink

import (
	"bytes"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/chartnote/pkg/render/scene"
	"github.com/matzehuels/chartnote/pkg/render/styles"
)

const annotationInteractionCSS = `
    g[data-name] { cursor: default; }
    path[data-name] { transition: stroke-width 0.2s ease; }
    path[data-name]:hover { stroke-width: 3; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background  string
	title       string
	interactive bool
}

// WithBackground fills the canvas with color before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTitle adds a <title> element for accessibility.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithInteraction embeds hover styles for series lines and annotations.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG serializes s as a standalone SVG document. Clip rectangles
// become clipPath definitions; elements are written in drawing order.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := s.Size()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(w), num(h), w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	renderClips(&buf, s.Clips())
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
			num(w), num(h), styles.EscapeXML(r.background))
	}
	for _, c := range s.Root().Children() {
		renderElement(&buf, c, 1)
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", annotationInteractionCSS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderClips(buf *bytes.Buffer, clips map[string]scene.Rect) {
	if len(clips) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, id := range slices.Sorted(maps.Keys(clips)) {
		c := clips[id]
		fmt.Fprintf(buf, `    <clipPath id="%s" clipPathUnits="userSpaceOnUse"><rect x="%s" y="%s" width="%s" height="%s"/></clipPath>`+"\n",
			styles.EscapeXML(id), num(c.X), num(c.Y), num(c.W), num(c.H))
	}
	buf.WriteString("  </defs>\n")
}

func renderElement(buf *bytes.Buffer, e *scene.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e.Kind() {
	case scene.KindGroup:
		if len(e.Children()) == 0 {
			return
		}
		fmt.Fprintf(buf, "%s<g%s>\n", indent, attrs(e))
		for _, c := range e.Children() {
			renderElement(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
	case scene.KindPath:
		pts, closed := e.Points()
		if len(pts) == 0 {
			return
		}
		fmt.Fprintf(buf, `%s<path d="%s"%s/>`+"\n", indent, pathData(pts, closed), attrs(e))
	case scene.KindText:
		p := e.Position()
		fmt.Fprintf(buf, `%s<text x="%s" y="%s" dominant-baseline="hanging"%s>%s</text>`+"\n",
			indent, num(p.X), num(p.Y), attrs(e), styles.EscapeXML(e.Text()))
	case scene.KindImage:
		url, w, h, loc := e.Image()
		if url == "" {
			return
		}
		p := e.Position()
		fmt.Fprintf(buf, `%s<image href="%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="%s"%s/>`+"\n",
			indent, styles.EscapeXML(url), num(p.X), num(p.Y), num(w), num(h), aspectRatio(loc), attrs(e))
	}
}

// attrs renders the transform, attributes and style of e with a leading
// space, keys sorted.
func attrs(e *scene.Element) string {
	var b strings.Builder
	if tx, ty := e.Translation(); tx != 0 || ty != 0 {
		fmt.Fprintf(&b, ` transform="translate(%s,%s)"`, num(tx), num(ty))
	}
	a := e.Attrs()
	for _, k := range slices.Sorted(maps.Keys(a)) {
		v := a[k]
		if k == scene.AttrClipPath {
			v = "url(#" + v + ")"
		}
		fmt.Fprintf(&b, ` %s="%s"`, k, styles.EscapeXML(v))
	}
	if css := e.Style(); len(css) > 0 {
		fmt.Fprintf(&b, ` style="%s"`, styles.EscapeXML(styles.InlineCSS(css, "font-family", "font-size")))
	}
	return b.String()
}

func pathData(pts []scene.Point, closed bool) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(num(p.X))
		b.WriteByte(' ')
		b.WriteString(num(p.Y))
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

// aspectRatio maps an image location to preserveAspectRatio: "full"
// stretches, "fit" scales to fit, "center" keeps the picture centered
// and crops it to the box.
func aspectRatio(location string) string {
	switch location {
	case "full":
		return "none"
	case "fit":
		return "xMidYMid meet"
	}
	return "xMidYMid slice"
}

func num(f float64) string {
	r := math.Round(f*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
