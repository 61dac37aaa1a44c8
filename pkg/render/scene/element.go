package scene

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the primitive an Element draws.
type Kind int

const (
	KindGroup Kind = iota
	KindPath
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "g"
	case KindPath:
		return "path"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// Well-known attribute names read by the sinks.
const (
	AttrClass       = "class"
	AttrClipPath    = "clip-path"
	AttrFill        = "fill"
	AttrStroke      = "stroke"
	AttrStrokeWidth = "stroke-width"
	AttrOpacity     = "opacity"
	AttrLineJoin    = "stroke-linejoin"
	AttrData        = "data-name"

	// AttrPointerEvents set to "none" excludes an element and its subtree
	// from hit testing.
	AttrPointerEvents = "pointer-events"
)

// Element is a node of the drawing tree.
type Element struct {
	scene    *Scene
	kind     Kind
	parent   *Element
	children []*Element

	// translation applied to the element and its children
	tx, ty float64

	// KindPath
	points []Point
	closed bool

	// KindText and KindImage
	x, y, w, h float64
	text       string
	url        string
	location   string

	attrs    map[string]string
	css      map[string]string
	handlers map[EventType][]handler
}

func newElement(s *Scene, k Kind) *Element {
	return &Element{scene: s, kind: k, attrs: map[string]string{}, css: map[string]string{}}
}

// Scene returns the scene that created e.
func (e *Element) Scene() *Scene { return e.scene }

// Kind returns the element kind.
func (e *Element) Kind() Kind { return e.kind }

// Parent returns the parent element, or nil when detached or root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child elements in drawing order.
func (e *Element) Children() []*Element { return e.children }

// Append attaches e as the last child of parent and returns e.
// An element that already has a parent is moved.
func (e *Element) Append(parent *Element) *Element {
	if e.parent != nil {
		e.parent.removeChild(e)
	}
	e.parent = parent
	parent.children = append(parent.children, e)
	return e
}

// Remove detaches e from its parent. Listeners of e and its subtree are
// dropped.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.removeChild(e)
		e.parent = nil
	}
	e.offAll()
}

// Clear removes every child of e.
func (e *Element) Clear() {
	for _, c := range e.children {
		c.parent = nil
		c.offAll()
	}
	e.children = nil
}

func (e *Element) removeChild(c *Element) {
	if i := slices.Index(e.children, c); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
}

// Attr returns an attribute value.
func (e *Element) Attr(key string) string { return e.attrs[key] }

// Attrs returns a copy of all attributes.
func (e *Element) Attrs() map[string]string { return maps.Clone(e.attrs) }

// SetAttr sets an attribute. An empty value deletes it.
func (e *Element) SetAttr(key, value string) *Element {
	if value == "" {
		delete(e.attrs, key)
	} else {
		e.attrs[key] = value
	}
	return e
}

// SetAttrs sets several attributes at once.
func (e *Element) SetAttrs(attrs map[string]string) *Element {
	for k, v := range attrs {
		e.SetAttr(k, v)
	}
	return e
}

// CSS merges style properties into the element.
func (e *Element) CSS(props map[string]string) *Element {
	for k, v := range props {
		if v == "" {
			delete(e.css, k)
			continue
		}
		e.css[k] = v
	}
	return e
}

// Style returns a copy of the style properties.
func (e *Element) Style() map[string]string { return maps.Clone(e.css) }

// FontSize returns the font-size style in pixels, falling back to the
// scene default.
func (e *Element) FontSize() float64 {
	if v, ok := e.css["font-size"]; ok {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64); err == nil && f > 0 {
			return f
		}
	}
	return DefaultFontSize
}

// Translate sets the translation of e.
func (e *Element) Translate(x, y float64) *Element {
	e.tx, e.ty = x, y
	return e
}

// Translation returns the translation of e.
func (e *Element) Translation() (float64, float64) { return e.tx, e.ty }

// SetPoints replaces the vertices of a path.
func (e *Element) SetPoints(pts []Point, closed bool) *Element {
	e.points = slices.Clone(pts)
	e.closed = closed
	return e
}

// Points returns the path vertices.
func (e *Element) Points() ([]Point, bool) { return e.points, e.closed }

// SetPosition moves a text or image element.
func (e *Element) SetPosition(x, y float64) *Element {
	e.x, e.y = x, y
	return e
}

// Position returns the top-left corner of a text or image element.
func (e *Element) Position() Point { return Point{X: e.x, Y: e.y} }

// Text returns the string of a text element.
func (e *Element) Text() string { return e.text }

// Image returns the source, size and location of an image element.
func (e *Element) Image() (url string, w, h float64, location string) {
	return e.url, e.w, e.h, e.location
}

// BBox returns the bounds of e in its parent's coordinate space.
func (e *Element) BBox() Rect {
	var r Rect
	switch e.kind {
	case KindPath:
		r = boundsOf(e.points)
	case KindText:
		w, h := e.scene.measurer.Measure(e.text, e.FontSize())
		r = Rect{X: e.x, Y: e.y, W: w, H: h}
	case KindImage:
		r = Rect{X: e.x, Y: e.y, W: e.w, H: e.h}
	case KindGroup:
		for _, c := range e.children {
			r = r.Union(c.BBox())
		}
	}
	return r.Translate(e.tx, e.ty)
}

// AbsBBox returns the bounds of e in scene coordinates.
func (e *Element) AbsBBox() Rect {
	r := e.BBox()
	for p := e.parent; p != nil; p = p.parent {
		r = r.Translate(p.tx, p.ty)
	}
	return r
}

// clipRect returns the clip rectangle that applies to e, looking up the
// ancestor chain.
func (e *Element) clipRect() (Rect, bool) {
	for n := e; n != nil; n = n.parent {
		if id := n.attrs[AttrClipPath]; id != "" {
			r, ok := e.scene.clips[id]
			return r, ok
		}
	}
	return Rect{}, false
}
