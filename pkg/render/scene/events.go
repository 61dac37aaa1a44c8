package scene

// EventType identifies a pointer event.
type EventType int

const (
	EventPointerMove EventType = iota
	EventPointerDown
	EventPointerUp
	EventDragStart
	EventDrag
	EventDragEnd
)

func (t EventType) String() string {
	switch t {
	case EventPointerMove:
		return "pointermove"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventDragStart:
		return "dragstart"
	case EventDrag:
		return "drag"
	case EventDragEnd:
		return "dragend"
	}
	return "unknown"
}

// Event is delivered to listeners. PageX/PageY are page coordinates;
// X/Y are the same position in chart coordinates.
type Event struct {
	Type         EventType
	PageX, PageY float64
	X, Y         float64
	Target       *Element
}

// Handler receives events.
type Handler func(Event)

type handler struct {
	id uint64
	fn Handler
}

// Handle allows removing a registered listener.
type Handle struct {
	id    uint64
	el    *Element
	event EventType
}

// Remove unbinds the listener. Removing twice, or removing the zero
// Handle, is a no-op.
func (h Handle) Remove() {
	if h.el == nil || h.el.handlers == nil {
		return
	}
	hs := h.el.handlers[h.event]
	for i := range hs {
		if hs[i].id == h.id {
			copy(hs[i:], hs[i+1:])
			hs[len(hs)-1] = handler{}
			h.el.handlers[h.event] = hs[:len(hs)-1]
			return
		}
	}
}

// On registers fn for events of type t on e.
func (e *Element) On(t EventType, fn Handler) Handle {
	if e.handlers == nil {
		e.handlers = make(map[EventType][]handler)
	}
	e.scene.nextHandlerID++
	id := e.scene.nextHandlerID
	e.handlers[t] = append(e.handlers[t], handler{id: id, fn: fn})
	return Handle{id: id, el: e, event: t}
}

// Off removes every listener of type t from e.
func (e *Element) Off(t EventType) {
	delete(e.handlers, t)
}

// Listeners returns the number of listeners of type t bound to e.
func (e *Element) Listeners(t EventType) int { return len(e.handlers[t]) }

func (e *Element) offAll() {
	e.handlers = nil
	for _, c := range e.children {
		c.offAll()
	}
}

// fire calls the listeners of e for ev. The slice is copied so listeners
// may unbind themselves.
func (e *Element) fire(ev Event) {
	hs := append([]handler(nil), e.handlers[ev.Type]...)
	for _, h := range hs {
		h.fn(ev)
	}
}

// bubble delivers ev to target and each ancestor.
func bubble(target *Element, ev Event) {
	for n := target; n != nil; n = n.parent {
		n.fire(ev)
	}
}

// dragSource returns the nearest element in the ancestor chain of e that
// listens for drag starts.
func dragSource(e *Element) *Element {
	for n := e; n != nil; n = n.parent {
		if len(n.handlers[EventDragStart]) > 0 || len(n.handlers[EventDrag]) > 0 {
			return n
		}
	}
	return nil
}
