package sink

import (
	"bytes"
	"math"
	"strconv"

	"github.com/gogpu/gg"

	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/fonts"
	"github.com/matzehuels/chartnote/pkg/render/scene"
)

// Placeholder colors for image elements. Pictures are not fetched.
const (
	imagePlaceholderFill   = "#f2f2f2"
	imagePlaceholderStroke = "#c8c8c8"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
	clips      map[string]scene.Rect
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground fills the canvas with color before drawing.
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// RenderPNG rasterizes s with the embedded font. Image elements are drawn
// as placeholders of their box.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
	}
	r.clips = s.Clips()

	w, h := s.Size()
	dc := gg.NewContext(int(math.Ceil(w*r.scale)), int(math.Ceil(h*r.scale)))
	defer dc.Close()
	dc.Scale(r.scale, r.scale)

	if c, ok := paint(r.background, 1); ok {
		dc.SetColor(c.Color())
		dc.DrawRectangle(0, 0, w, h)
		if err := dc.Fill(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "fill background")
		}
	}
	if err := r.draw(dc, s.Root(), 0, 0, 1); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// draw paints e at the accumulated offset (ox, oy). alpha is the product of
// the opacities of e's ancestors.
func (r *pngRenderer) draw(dc *gg.Context, e *scene.Element, ox, oy, alpha float64) error {
	tx, ty := e.Translation()
	ox, oy = ox+tx, oy+ty
	alpha *= opacity(e.Attr(scene.AttrOpacity))

	if id := e.Attr(scene.AttrClipPath); id != "" {
		if c, ok := r.clips[id]; ok {
			dc.Push()
			defer dc.Pop()
			dc.ClipRect(c.X, c.Y, c.W, c.H)
		}
	}

	switch e.Kind() {
	case scene.KindGroup:
		for _, c := range e.Children() {
			if err := r.draw(dc, c, ox, oy, alpha); err != nil {
				return err
			}
		}
	case scene.KindPath:
		pts, closed := e.Points()
		if len(pts) < 2 {
			return nil
		}
		return r.drawPath(dc, pts, closed, ox, oy, e.Attr(scene.AttrFill), e.Attr(scene.AttrStroke), e.Attr(scene.AttrStrokeWidth), alpha)
	case scene.KindText:
		return r.drawText(dc, e, ox, oy, alpha)
	case scene.KindImage:
		_, w, h, _ := e.Image()
		p := e.Position()
		pts := []scene.Point{{X: p.X, Y: p.Y}, {X: p.X + w, Y: p.Y}, {X: p.X + w, Y: p.Y + h}, {X: p.X, Y: p.Y + h}}
		return r.drawPath(dc, pts, true, ox, oy, imagePlaceholderFill, imagePlaceholderStroke, "1", alpha)
	}
	return nil
}

func (r *pngRenderer) drawPath(dc *gg.Context, pts []scene.Point, closed bool, ox, oy float64, fill, stroke, width string, alpha float64) error {
	trace := func() {
		dc.ClearPath()
		for i, p := range pts {
			if i == 0 {
				dc.MoveTo(ox+p.X, oy+p.Y)
			} else {
				dc.LineTo(ox+p.X, oy+p.Y)
			}
		}
		if closed {
			dc.ClosePath()
		}
	}
	if c, ok := paint(fill, alpha); ok && closed {
		trace()
		dc.SetColor(c.Color())
		if err := dc.Fill(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "fill path")
		}
	}
	if c, ok := paint(stroke, alpha); ok {
		trace()
		dc.SetColor(c.Color())
		dc.SetLineWidth(parseFloat(width, 1))
		if err := dc.Stroke(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "stroke path")
		}
	}
	dc.ClearPath()
	return nil
}

func (r *pngRenderer) drawText(dc *gg.Context, e *scene.Element, ox, oy, alpha float64) error {
	face := fonts.Face(e.FontSize())
	if face == nil || e.Text() == "" {
		return nil
	}
	css := e.Style()
	fill := css["fill"]
	if fill == "" {
		fill = "#000000"
	}
	if v, ok := css["fill-opacity"]; ok {
		alpha *= parseFloat(v, 1)
	}
	c, ok := paint(fill, alpha)
	if !ok {
		return nil
	}
	p := e.Position()
	dc.SetFont(face)
	dc.SetColor(c.Color())
	dc.DrawString(e.Text(), ox+p.X, oy+p.Y+face.Metrics().Ascent)
	return nil
}

// paint parses a hex color and applies alpha. Empty and "none" paint
// nothing.
func paint(color string, alpha float64) (gg.RGBA, bool) {
	if color == "" || color == "none" || color == "transparent" {
		return gg.RGBA{}, false
	}
	c := gg.Hex(color)
	c.A *= alpha
	return c, true
}

func opacity(v string) float64 {
	if v == "" {
		return 1
	}
	return math.Max(0, math.Min(1, parseFloat(v, 1)))
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
