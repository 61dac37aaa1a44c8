package annotation

import (
	"slices"
	"testing"

	"github.com/matzehuels/chartnote/pkg/chart"
)

func anchorAt(x, y float64) Anchor { return Anchor{X: defined(x), Y: defined(y)} }

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		p        Placement
		rotated  bool
		viewport bool
		want     Anchor
		wantPane string
	}{
		{
			name:     "argument and value on named axis",
			p:        Placement{Argument: 10.0, Value: 5.0, Axis: "price"},
			want:     anchorAt(110, 120),
			wantPane: "top",
		},
		{
			name:     "argument and value on default axis",
			p:        Placement{Argument: 10.0, Value: 5.0},
			want:     anchorAt(110, 120),
			wantPane: "top",
		},
		{
			name:     "category argument",
			p:        Placement{Argument: "Q1", Value: 5.0},
			want:     anchorAt(50, 120),
			wantPane: "top",
		},
		{
			name:     "rotated swaps dimensions",
			p:        Placement{Argument: 10.0, Value: 5.0, Axis: "price"},
			rotated:  true,
			want:     anchorAt(120, 110),
			wantPane: "top",
		},
		{
			name:     "argument only falls back to argument axis position",
			p:        Placement{Argument: 10.0},
			want:     anchorAt(110, 150),
			wantPane: "top",
		},
		{
			name:     "argument only on named axis uses same-pane argument axis",
			p:        Placement{Argument: 10.0, Axis: "volume"},
			want:     anchorAt(110, 350),
			wantPane: "bottom",
		},
		{
			name:     "series inside viewport uses pair coordinate",
			p:        Placement{Argument: 10.0, Series: "rev"},
			viewport: true,
			want:     anchorAt(110, 42),
			wantPane: "bottom",
		},
		{
			name:     "series outside viewport uses same-pane argument axis",
			p:        Placement{Argument: 10.0, Series: "rev"},
			want:     anchorAt(110, 350),
			wantPane: "bottom",
		},
		{
			name:     "value only on named axis uses value axis position",
			p:        Placement{Value: 5.0, Axis: "price"},
			want:     anchorAt(40, 120),
			wantPane: "top",
		},
		{
			name:     "value only on series uses pair coordinate",
			p:        Placement{Value: 7.0, Series: "rev"},
			viewport: true,
			want:     anchorAt(42, 300),
			wantPane: "bottom",
		},
		{
			name:     "value only on series outside viewport",
			p:        Placement{Value: 7.0, Series: "rev"},
			want:     anchorAt(60, 300),
			wantPane: "bottom",
		},
		{
			name:     "series overrides named axis",
			p:        Placement{Argument: 10.0, Value: 5.0, Axis: "price", Series: "rev"},
			want:     anchorAt(110, 320),
			wantPane: "bottom",
		},
		{
			name:     "unknown series drops the value axis",
			p:        Placement{Argument: 10.0, Value: 5.0, Series: "nope"},
			want:     Anchor{X: defined(110)},
			wantPane: "top",
		},
		{
			name:     "unknown series keeps pane of named axis",
			p:        Placement{Argument: 10.0, Value: 5.0, Axis: "volume", Series: "nope"},
			want:     Anchor{X: defined(110)},
			wantPane: "bottom",
		},
		{
			name:     "explicit y fills the undefined dimension",
			p:        Placement{Argument: 10.0, Value: 5.0, Series: "nope", X: ptr(1.0), Y: ptr(2.0)},
			want:     anchorAt(110, 2),
			wantPane: "top",
		},
		{
			name: "explicit screen coordinates",
			p:    Placement{X: ptr(5.0), Y: ptr(6.0)},
			want: anchorAt(5, 6),
		},
		{
			name:     "untranslatable argument is not replaced by a fallback",
			p:        Placement{Argument: "Q9", Value: 5.0},
			want:     Anchor{Y: defined(120)},
			wantPane: "top",
		},
		{
			name: "nothing to resolve",
			p:    Placement{Name: "empty"},
			want: Anchor{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, rev := twoPanes()
			cs.rotated = tt.rotated
			rev.viewport = tt.viewport

			got := Resolve(tt.p, cs)
			if got.Anchor != tt.want {
				t.Errorf("anchor = %+v, want %+v", got.Anchor, tt.want)
			}
			if got.Pane != tt.wantPane {
				t.Errorf("pane = %q, want %q", got.Pane, tt.wantPane)
			}
		})
	}
}

func TestResolvePairCoordDirection(t *testing.T) {
	cs, rev := twoPanes()
	rev.viewport = true

	Resolve(Placement{Argument: 10.0, Series: "rev"}, cs)
	Resolve(Placement{Value: 7.0, Series: "rev"}, cs)

	if want := []bool{true, false}; !slices.Equal(rev.fromArgument, want) {
		t.Errorf("PairCoord directions = %v, want %v", rev.fromArgument, want)
	}
}

func TestResolvePairCoordFailureFallsBack(t *testing.T) {
	cs, rev := twoPanes()
	rev.viewport = true
	rev.pairOK = false

	got := Resolve(Placement{Argument: 10.0, Series: "rev"}, cs)
	if want := anchorAt(110, 350); got.Anchor != want {
		t.Errorf("anchor = %+v, want %+v", got.Anchor, want)
	}
}

// The pane is set by the first step that can decide it. With the argument
// axis and the default value axis in different panes, the argument axis
// wins; a named axis or series decides before either.
func TestResolvePaneFirstWins(t *testing.T) {
	arg := &fakeAxis{pane: "top", tr: table{1.0: 10}, pos: 100}
	low := &fakeAxis{name: "low", pane: "bottom", tr: table{2.0: 200}, pos: 20}
	cs := &fakeChart{args: []chart.Axis{arg}, values: []chart.Axis{low}}

	tests := []struct {
		name string
		p    Placement
		want string
	}{
		{"argument before value", Placement{Argument: 1.0, Value: 2.0}, "top"},
		{"value alone", Placement{Value: 2.0}, "bottom"},
		{"named axis before argument", Placement{Argument: 1.0, Value: 2.0, Axis: "low"}, "bottom"},
		{"untranslatable argument still sets pane", Placement{Argument: 9.0, Value: 2.0}, "top"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 2 {
				if got := Resolve(tt.p, cs).Pane; got != tt.want {
					t.Fatalf("pane = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestResolveWithoutArgumentAxis(t *testing.T) {
	v := &fakeAxis{name: "v", pane: "p", tr: table{3.0: 30}, pos: 7}
	cs := &fakeChart{values: []chart.Axis{v}}

	got := Resolve(Placement{Argument: 1.0, Value: 3.0}, cs)
	if want := (Anchor{Y: defined(30)}); got.Anchor != want {
		t.Errorf("anchor = %+v, want %+v", got.Anchor, want)
	}
}

func TestResolveScreen(t *testing.T) {
	got := ResolveScreen(Placement{X: ptr(3.0), Argument: 1.0})
	if want := (Anchor{X: defined(3)}); got.Anchor != want || got.Pane != "" {
		t.Errorf("ResolveScreen = %+v", got)
	}
}

func TestAnchorPredicates(t *testing.T) {
	if !(Anchor{}).Empty() || (Anchor{}).Complete() {
		t.Error("zero anchor should be empty and incomplete")
	}
	half := Anchor{X: defined(1)}
	if half.Empty() || half.Complete() {
		t.Error("half anchor should be neither empty nor complete")
	}
	if !anchorAt(1, 2).Complete() {
		t.Error("full anchor should be complete")
	}
}

func TestResolveArgumentOnlyOnLaidOutChart(t *testing.T) {
	c, err := chart.New(chart.Config{
		Width: 500, Height: 300,
		Margin:       &chart.Margin{Left: 50, Top: 50, Right: 50, Bottom: 50},
		PaneSpacing:  ptr(0.0),
		Panes:        []chart.PaneConfig{{Name: "top"}, {Name: "bottom"}},
		ArgumentAxis: chart.ArgumentAxisConfig{Type: chart.AxisContinuous, Min: 0.0, Max: 100.0},
		ValueAxes: []chart.ValueAxisConfig{
			{Name: "volume", Pane: "bottom", Min: ptr(0.0), Max: ptr(1000.0)},
			{Name: "price", Pane: "top", Min: ptr(0.0), Max: ptr(10.0)},
		},
	})
	if err != nil {
		t.Fatalf("chart.New: %v", err)
	}

	res := Resolve(Placement{Argument: 50.0}, c)
	if want := anchorAt(250, c.ArgumentAxis().AxisPosition()); res.Anchor != want {
		t.Errorf("anchor = %+v, want %+v", res.Anchor, want)
	}
	if res.Pane != "top" {
		t.Errorf("pane = %q, want top", res.Pane)
	}
	top, _ := c.Pane("top")
	if !top.Bounds.Contains(res.Anchor.Point()) {
		t.Errorf("anchor %+v outside its pane %+v", res.Anchor.Point(), top.Bounds)
	}
}
