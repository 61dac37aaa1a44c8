package scene

import (
	"maps"

	"github.com/matzehuels/chartnote/pkg/fonts"
)

// DefaultFontSize is used for text elements without a font-size style.
const DefaultFontSize = 12.0

// hitSlop widens open paths (lines) for hit testing.
const hitSlop = 3.0

// Measurer computes the advance width and line height of a string.
type Measurer interface {
	Measure(s string, size float64) (w, h float64)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(s string, size float64) (w, h float64)

// Measure calls f.
func (f MeasureFunc) Measure(s string, size float64) (w, h float64) { return f(s, size) }

// Option configures a Scene.
type Option func(*Scene)

// WithMeasurer replaces the font-backed text measurer.
func WithMeasurer(m Measurer) Option { return func(s *Scene) { s.measurer = m } }

// WithRootOffset sets the page offset of the chart root.
func WithRootOffset(o Offset) Option { return func(s *Scene) { s.offset = o } }

// Scene is a drawing tree with pointer dispatch.
type Scene struct {
	width, height float64
	root          *Element
	offset        Offset
	measurer      Measurer
	clips         map[string]Rect

	nextHandlerID uint64
	dragging      *Element
}

// New creates an empty scene of the given size.
func New(width, height float64, opts ...Option) *Scene {
	s := &Scene{
		width:    width,
		height:   height,
		measurer: MeasureFunc(fonts.Measure),
		clips:    map[string]Rect{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.root = newElement(s, KindGroup)
	return s
}

// Size returns the scene dimensions.
func (s *Scene) Size() (w, h float64) { return s.width, s.height }

// Bounds returns the scene rectangle.
func (s *Scene) Bounds() Rect { return Rect{W: s.width, H: s.height} }

// Root returns the root group.
func (s *Scene) Root() *Element { return s.root }

// RootOffset returns the page offset of the root.
func (s *Scene) RootOffset() Offset { return s.offset }

// SetRootOffset changes the page offset of the root.
func (s *Scene) SetRootOffset(o Offset) { s.offset = o }

// DefineClip registers a clip rectangle under id.
func (s *Scene) DefineClip(id string, r Rect) { s.clips[id] = r }

// Clips returns a copy of the registered clip rectangles.
func (s *Scene) Clips() map[string]Rect { return maps.Clone(s.clips) }

// Measure measures s at size using the scene measurer.
func (s *Scene) Measure(text string, size float64) (w, h float64) {
	return s.measurer.Measure(text, size)
}

// G creates a detached group.
func (s *Scene) G() *Element { return newElement(s, KindGroup) }

// Path creates a detached path through pts.
func (s *Scene) Path(pts []Point, closed bool) *Element {
	return newElement(s, KindPath).SetPoints(pts, closed)
}

// Text creates a detached text element. Its position is the top-left
// corner of the text box.
func (s *Scene) Text(text string) *Element {
	e := newElement(s, KindText)
	e.text = text
	return e
}

// Image creates a detached image element. location is one of "center",
// "full", "fit" and controls how the picture fills the w x h box.
func (s *Scene) Image(x, y, w, h float64, url, location string) *Element {
	e := newElement(s, KindImage)
	e.x, e.y, e.w, e.h = x, y, w, h
	e.url, e.location = url, location
	return e
}

// Walk calls fn for every attached element in drawing order. Returning
// false skips the children of the element.
func (s *Scene) Walk(fn func(e *Element) bool) {
	var walk func(e *Element)
	walk = func(e *Element) {
		if !fn(e) {
			return
		}
		for _, c := range e.children {
			walk(c)
		}
	}
	walk(s.root)
}

// HitTest returns the topmost leaf element under p (chart coordinates),
// or the root when nothing is hit.
func (s *Scene) HitTest(p Point) *Element {
	if hit := hitTest(s.root, p); hit != nil {
		return hit
	}
	return s.root
}

func hitTest(e *Element, p Point) *Element {
	if e.attrs[AttrPointerEvents] == "none" {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := hitTest(e.children[i], p); hit != nil {
			return hit
		}
	}
	if e.kind == KindGroup {
		return nil
	}
	r := e.AbsBBox()
	if e.kind == KindPath && !e.closed {
		r = Rect{X: r.X - hitSlop, Y: r.Y - hitSlop, W: r.W + 2*hitSlop, H: r.H + 2*hitSlop}
	}
	if !r.Contains(p) {
		return nil
	}
	if clip, ok := e.clipRect(); ok && !clip.Contains(p) {
		return nil
	}
	return e
}

func (s *Scene) event(t EventType, pageX, pageY float64, target *Element) Event {
	return Event{
		Type:  t,
		PageX: pageX, PageY: pageY,
		X: pageX - s.offset.Left, Y: pageY - s.offset.Top,
		Target: target,
	}
}

// PointerMove dispatches a pointer move at page coordinates. During a drag
// the drag source receives EventDrag; the move event itself always bubbles
// from the hit element.
func (s *Scene) PointerMove(pageX, pageY float64) {
	p := Point{X: pageX - s.offset.Left, Y: pageY - s.offset.Top}
	target := s.HitTest(p)
	if s.dragging != nil {
		s.dragging.fire(s.event(EventDrag, pageX, pageY, s.dragging))
	}
	bubble(target, s.event(EventPointerMove, pageX, pageY, target))
}

// PointerDown dispatches a pointer press and starts a drag when the hit
// element or one of its ancestors listens for drags.
func (s *Scene) PointerDown(pageX, pageY float64) {
	p := Point{X: pageX - s.offset.Left, Y: pageY - s.offset.Top}
	target := s.HitTest(p)
	bubble(target, s.event(EventPointerDown, pageX, pageY, target))
	if src := dragSource(target); src != nil {
		s.dragging = src
		src.fire(s.event(EventDragStart, pageX, pageY, target))
	}
}

// PointerUp ends the current press and drag.
func (s *Scene) PointerUp(pageX, pageY float64) {
	p := Point{X: pageX - s.offset.Left, Y: pageY - s.offset.Top}
	target := s.HitTest(p)
	if s.dragging != nil {
		src := s.dragging
		s.dragging = nil
		src.fire(s.event(EventDragEnd, pageX, pageY, target))
	}
	bubble(target, s.event(EventPointerUp, pageX, pageY, target))
}

// Dragging reports whether a drag is in progress.
func (s *Scene) Dragging() bool { return s.dragging != nil }
