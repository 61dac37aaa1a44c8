package annotation

import (
	"github.com/matzehuels/chartnote/pkg/chart"
	"github.com/matzehuels/chartnote/pkg/render/scene"
)

// table translates by lookup; values missing from it do not translate.
type table map[any]float64

func (t table) Translate(v any) (float64, bool) {
	px, ok := t[v]
	return px, ok
}

type fakeAxis struct {
	name, pane string
	tr         table
	pos        float64
}

func (a *fakeAxis) Name() string                 { return a.name }
func (a *fakeAxis) Pane() string                 { return a.pane }
func (a *fakeAxis) Translator() chart.Translator { return a.tr }
func (a *fakeAxis) AxisPosition() float64        { return a.pos }

type fakeSeries struct {
	name     string
	axis     chart.Axis
	viewport bool
	pair     float64
	pairOK   bool

	// fromArgument records the direction of every PairCoord call.
	fromArgument []bool
}

func (s *fakeSeries) Name() string          { return s.name }
func (s *fakeSeries) ValueAxis() chart.Axis { return s.axis }

func (s *fakeSeries) CheckViewportCoord(chart.Axis, float64) bool { return s.viewport }

func (s *fakeSeries) PairCoord(_ float64, fromArgument bool) (float64, bool) {
	s.fromArgument = append(s.fromArgument, fromArgument)
	return s.pair, s.pairOK
}

type fakeChart struct {
	rotated bool
	args    []chart.Axis
	values  []chart.Axis
	series  []chart.Series
}

func (c *fakeChart) Rotated() bool              { return c.rotated }
func (c *fakeChart) ArgumentAxes() []chart.Axis { return c.args }
func (c *fakeChart) Series() []chart.Series     { return c.series }

func (c *fakeChart) ArgumentAxis() chart.Axis {
	if len(c.args) == 0 {
		return nil
	}
	return c.args[0]
}

func (c *fakeChart) ValueAxis(name string) chart.Axis {
	if name == "" {
		if len(c.values) == 0 {
			return nil
		}
		return c.values[0]
	}
	for _, a := range c.values {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// twoPanes builds a chart with a "top" and a "bottom" pane. The argument
// axis of the top pane is primary; "price" lives in the top pane and
// "volume" in the bottom one. Series "rev" plots on "volume".
func twoPanes() (*fakeChart, *fakeSeries) {
	argTop := &fakeAxis{name: "argTop", pane: "top", tr: table{10.0: 110, "Q1": 50}, pos: 150}
	argBottom := &fakeAxis{name: "argBottom", pane: "bottom", tr: table{10.0: 110, "Q1": 50}, pos: 350}
	price := &fakeAxis{name: "price", pane: "top", tr: table{5.0: 120}, pos: 40}
	volume := &fakeAxis{name: "volume", pane: "bottom", tr: table{5.0: 320, 7.0: 300}, pos: 60}
	rev := &fakeSeries{name: "rev", axis: volume, viewport: true, pair: 42, pairOK: true}
	return &fakeChart{
		args:   []chart.Axis{argTop, argBottom},
		values: []chart.Axis{price, volume},
		series: []chart.Series{rev},
	}, rev
}

// fakeHost resolves placements against a chart and records the host-side
// effects of annotation hovering.
type fakeHost struct {
	scene       *scene.Scene
	chart       chart.CoordinateSystem
	hideTooltip int
	clearHover  int
}

func newFakeHost(cs chart.CoordinateSystem) *fakeHost {
	return &fakeHost{
		scene: scene.New(400, 300, scene.WithMeasurer(scene.Mono{CharWidth: 0.5, LineHeight: 1.25})),
		chart: cs,
	}
}

func (h *fakeHost) AnnotationCoords(p Placement) Resolution {
	if h.chart == nil {
		return ResolveScreen(p)
	}
	return Resolve(p, h.chart)
}

func (h *fakeHost) Renderer() *scene.Scene        { return h.scene }
func (h *fakeHost) ClipRectID(pane string) string { return "test-clip-" + pane }
func (h *fakeHost) HideTooltip()                  { h.hideTooltip++ }
func (h *fakeHost) ClearHover()                   { h.clearHover++ }

func ptr[T any](v T) *T { return &v }
