package scene

import "testing"

var mono = Mono{CharWidth: 0.5, LineHeight: 1.25}

func newTestScene() *Scene {
	return New(400, 300, WithMeasurer(mono), WithRootOffset(Offset{Left: 10, Top: 20}))
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 5, 5}, Rect{0, 0, 25, 25}},
		{"empty left", Rect{}, Rect{1, 2, 3, 4}, Rect{1, 2, 3, 4}},
		{"empty right", Rect{1, 2, 3, 4}, Rect{}, Rect{1, 2, 3, 4}},
		{"nested", Rect{0, 0, 10, 10}, Rect{2, 2, 2, 2}, Rect{0, 0, 10, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAppendMovesElement(t *testing.T) {
	s := newTestScene()
	a := s.G().Append(s.Root())
	b := s.G().Append(s.Root())
	c := s.Path([]Point{{0, 0}, {1, 1}}, false).Append(a)

	c.Append(b)
	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if c.Parent() != b {
		t.Error("element not reparented")
	}
}

func TestTextBBoxUsesMeasurer(t *testing.T) {
	s := newTestScene()
	txt := s.Text("abcd").CSS(map[string]string{"font-size": "20px"}).SetPosition(5, 6)
	got := txt.BBox()
	want := Rect{X: 5, Y: 6, W: 40, H: 25}
	if got != want {
		t.Errorf("BBox = %+v, want %+v", got, want)
	}
}

func TestAbsBBoxAppliesTranslations(t *testing.T) {
	s := newTestScene()
	g := s.G().Translate(100, 50).Append(s.Root())
	inner := s.G().Translate(10, 10).Append(g)
	img := s.Image(0, 0, 20, 30, "a.png", "center").Append(inner)

	got := img.AbsBBox()
	want := Rect{X: 110, Y: 60, W: 20, H: 30}
	if got != want {
		t.Errorf("AbsBBox = %+v, want %+v", got, want)
	}
}

func TestHitTestTopmostAndClip(t *testing.T) {
	s := newTestScene()
	s.DefineClip("pane-0", Rect{X: 0, Y: 0, W: 50, H: 50})

	below := s.Image(0, 0, 100, 100, "", "center").Append(s.Root())
	above := s.Image(10, 10, 20, 20, "", "center").Append(s.Root())
	clipped := s.G().SetAttr(AttrClipPath, "pane-0").Append(s.Root())
	outside := s.Image(60, 60, 20, 20, "", "center").Append(clipped)

	if got := s.HitTest(Point{15, 15}); got != above {
		t.Errorf("HitTest(15,15) = %v, want topmost image", got.Kind())
	}
	if got := s.HitTest(Point{70, 70}); got != below {
		t.Errorf("HitTest(70,70) should skip clipped element %p, got %p", outside, got)
	}
	if got := s.HitTest(Point{300, 250}); got != s.Root() {
		t.Error("HitTest on empty area should return the root")
	}
}

func TestPointerMoveBubblesToRoot(t *testing.T) {
	s := newTestScene()
	g := s.G().Append(s.Root())
	img := s.Image(0, 0, 20, 20, "", "center").Append(g)

	var got []Event
	s.Root().On(EventPointerMove, func(ev Event) { got = append(got, ev) })

	s.PointerMove(15, 25)
	if len(got) != 1 {
		t.Fatalf("root received %d events, want 1", len(got))
	}
	ev := got[0]
	if ev.Target != img {
		t.Error("target should be the hit image")
	}
	if ev.X != 5 || ev.Y != 5 {
		t.Errorf("chart coords = (%v,%v), want (5,5)", ev.X, ev.Y)
	}
	if ev.PageX != 15 || ev.PageY != 25 {
		t.Errorf("page coords = (%v,%v), want (15,25)", ev.PageX, ev.PageY)
	}
}

func TestHandleRemove(t *testing.T) {
	s := newTestScene()
	calls := 0
	h := s.Root().On(EventPointerMove, func(Event) { calls++ })
	other := s.Root().On(EventPointerMove, func(Event) { calls += 10 })

	s.PointerMove(0, 0)
	h.Remove()
	h.Remove()
	s.PointerMove(0, 0)
	other.Remove()
	s.PointerMove(0, 0)

	if calls != 21 {
		t.Errorf("calls = %d, want 21", calls)
	}
	Handle{}.Remove()
}

func TestRemoveDropsSubtreeListeners(t *testing.T) {
	s := newTestScene()
	g := s.G().Append(s.Root())
	img := s.Image(0, 0, 10, 10, "", "center").Append(g)
	img.On(EventPointerDown, func(Event) {})

	g.Remove()
	if img.Listeners(EventPointerDown) != 0 {
		t.Error("listeners survived Remove")
	}
}

func TestDragLifecycle(t *testing.T) {
	s := newTestScene()
	g := s.G().Append(s.Root())
	s.Image(0, 0, 20, 20, "", "center").Append(g)

	var seq []EventType
	var last Event
	g.On(EventDragStart, func(ev Event) { seq = append(seq, ev.Type) })
	g.On(EventDrag, func(ev Event) { seq = append(seq, ev.Type); last = ev })
	g.On(EventDragEnd, func(ev Event) { seq = append(seq, ev.Type) })

	s.PointerMove(15, 25)
	s.PointerDown(15, 25)
	if !s.Dragging() {
		t.Fatal("drag did not start")
	}
	s.PointerMove(40, 60)
	s.PointerUp(40, 60)
	s.PointerMove(50, 70)

	want := []EventType{EventDragStart, EventDrag, EventDragEnd}
	if len(seq) != len(want) {
		t.Fatalf("events = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, seq[i], want[i])
		}
	}
	if last.PageX != 40 || last.PageY != 60 {
		t.Errorf("drag at (%v,%v), want (40,60)", last.PageX, last.PageY)
	}
	if s.Dragging() {
		t.Error("drag still active after pointer up")
	}
}

func TestPointerDownWithoutDragListener(t *testing.T) {
	s := newTestScene()
	s.Image(0, 0, 20, 20, "", "center").Append(s.Root())
	s.PointerDown(15, 25)
	if s.Dragging() {
		t.Error("drag started without listeners")
	}
}

func TestHitTestSkipsPointerEventsNone(t *testing.T) {
	s := newTestScene()
	below := s.Image(0, 0, 50, 50, "", "center").Append(s.Root())
	overlay := s.G().SetAttr(AttrPointerEvents, "none").Append(s.Root())
	s.Image(0, 0, 50, 50, "", "center").Append(overlay)

	if got := s.HitTest(Point{10, 10}); got != below {
		t.Error("overlay with pointer-events none should not be hit")
	}
}
