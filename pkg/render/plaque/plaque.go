// Package plaque draws a callout box with an arrow pointing at an anchor
// point. The box content is supplied by the caller; the plaque sizes the box
// around it and keeps the arrow attached to the anchor when the box moves.
package plaque

import (
	"math"
	"strconv"

	"github.com/matzehuels/chartnote/pkg/render/scene"
)

// Border styles the box outline.
type Border struct {
	Visible      bool
	Width        float64
	Color        string
	Opacity      float64
	CornerRadius float64
}

// Options control plaque appearance and geometry. Zero values are valid:
// no paddings, no arrow, no minimum size.
type Options struct {
	Color            string
	Opacity          float64
	Border           Border
	ArrowLength      float64
	ArrowWidth       float64
	PaddingLeftRight float64
	PaddingTopBottom float64
	OffsetX          float64
	OffsetY          float64
	Width            float64
	Height           float64

	// Bounds limits where the box may be placed. Defaults to the scene.
	Bounds scene.Rect
}

// ContentFunc draws the plaque content into group. Content is laid out in
// its own coordinates; the plaque centers it inside the box.
type ContentFunc func(group *scene.Element)

// Plaque is a box drawn above (or, when there is no room, below) an anchor.
type Plaque struct {
	opts    Options
	scene   *scene.Scene
	root    *scene.Element
	content ContentFunc

	shape, group *scene.Element
	contentBox   scene.Rect

	anchor  scene.Point
	x, y    float64
	w, h    float64
	flipped bool
	drawn   bool
}

// New creates a plaque that draws into root.
func New(opts Options, s *scene.Scene, root *scene.Element, content ContentFunc) *Plaque {
	return &Plaque{opts: opts, scene: s, root: root, content: content}
}

// Draw lays out the plaque for anchor, replacing anything drawn before.
func (p *Plaque) Draw(anchor scene.Point) {
	p.root.Clear()
	p.anchor = anchor

	p.shape = p.scene.Path(nil, true).Append(p.root)
	p.shape.SetAttrs(p.shapeAttrs())

	p.group = p.scene.G().Append(p.root)
	if p.content != nil {
		p.content(p.group)
	}
	p.contentBox = p.group.BBox()

	p.w = math.Max(p.contentBox.W+2*p.opts.PaddingLeftRight, p.opts.Width)
	p.h = math.Max(p.contentBox.H+2*p.opts.PaddingTopBottom, p.opts.Height)

	p.x = anchor.X + p.opts.OffsetX
	p.y = anchor.Y + p.opts.OffsetY
	p.flipped = p.y-p.opts.ArrowLength-p.h < p.bounds().Y
	p.drawn = true
	p.layout()
}

// Move places the box reference point at (x, y). The arrow keeps pointing
// at the anchor passed to Draw.
func (p *Plaque) Move(x, y float64) {
	p.x, p.y = x, y
	if p.drawn {
		p.layout()
	}
}

// X returns the current horizontal reference position.
func (p *Plaque) X() float64 { return p.x }

// Y returns the current vertical reference position.
func (p *Plaque) Y() float64 { return p.y }

// Anchor returns the point the arrow targets.
func (p *Plaque) Anchor() scene.Point { return p.anchor }

// Flipped reports whether the box is drawn below the anchor.
func (p *Plaque) Flipped() bool { return p.flipped }

// Box returns the box rectangle in the coordinates of the plaque root.
func (p *Plaque) Box() scene.Rect {
	top := p.y - p.opts.ArrowLength - p.h
	if p.flipped {
		top = p.y + p.opts.ArrowLength
	}
	return scene.Rect{X: p.x - p.w/2, Y: top, W: p.w, H: p.h}
}

// Shape returns the box outline element, or nil before Draw.
func (p *Plaque) Shape() *scene.Element { return p.shape }

// Content returns the content group, or nil before Draw.
func (p *Plaque) Content() *scene.Element { return p.group }

func (p *Plaque) bounds() scene.Rect {
	if !p.opts.Bounds.Empty() {
		return p.opts.Bounds
	}
	return p.scene.Bounds()
}

func (p *Plaque) layout() {
	box := p.Box()
	p.group.Translate(
		box.X+(box.W-p.contentBox.W)/2-p.contentBox.X,
		box.Y+(box.H-p.contentBox.H)/2-p.contentBox.Y,
	)
	p.shape.SetPoints(outline(box, p.anchor, p.opts), true)
}

func (p *Plaque) shapeAttrs() map[string]string {
	attrs := map[string]string{
		scene.AttrFill:     p.opts.Color,
		scene.AttrLineJoin: "round",
	}
	if p.opts.Opacity > 0 {
		attrs[scene.AttrOpacity] = ftoa(p.opts.Opacity)
	}
	if b := p.opts.Border; b.Visible && b.Width > 0 {
		attrs[scene.AttrStroke] = b.Color
		attrs[scene.AttrStrokeWidth] = ftoa(b.Width)
		if b.Opacity > 0 {
			attrs["stroke-opacity"] = ftoa(b.Opacity)
		}
	}
	return attrs
}

// outline returns the box polygon with rounded corners and, when the
// anchor lies outside the box on the arrow side, an arrow towards it.
func outline(box scene.Rect, anchor scene.Point, opts Options) []scene.Point {
	r := math.Min(opts.Border.CornerRadius, math.Min(box.W, box.H)/2)
	half := opts.ArrowWidth / 2

	var pts []scene.Point
	corner := func(cx, cy, from float64) {
		pts = append(pts, arc(cx, cy, r, from)...)
	}

	arrowBase := math.Max(box.X+r+half, math.Min(anchor.X, box.Right()-r-half))
	arrowBottom := opts.ArrowLength > 0 && half > 0 && anchor.Y > box.Bottom()
	arrowTop := opts.ArrowLength > 0 && half > 0 && anchor.Y < box.Y

	// clockwise from the top-left corner
	corner(box.X+r, box.Y+r, math.Pi)
	if arrowTop {
		pts = append(pts,
			scene.Point{X: arrowBase - half, Y: box.Y},
			anchor,
			scene.Point{X: arrowBase + half, Y: box.Y},
		)
	}
	corner(box.Right()-r, box.Y+r, 1.5*math.Pi)
	corner(box.Right()-r, box.Bottom()-r, 0)
	if arrowBottom {
		pts = append(pts,
			scene.Point{X: arrowBase + half, Y: box.Bottom()},
			anchor,
			scene.Point{X: arrowBase - half, Y: box.Bottom()},
		)
	}
	corner(box.X+r, box.Bottom()-r, 0.5*math.Pi)
	return pts
}

const arcSteps = 4

// arc approximates a quarter circle starting at angle from (screen
// coordinates, y down). A zero radius yields the corner point itself.
func arc(cx, cy, r, from float64) []scene.Point {
	if r <= 0 {
		return []scene.Point{{X: cx, Y: cy}}
	}
	pts := make([]scene.Point, 0, arcSteps+1)
	for i := 0; i <= arcSteps; i++ {
		a := from + float64(i)*(math.Pi/2)/arcSteps
		pts = append(pts, scene.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return pts
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
