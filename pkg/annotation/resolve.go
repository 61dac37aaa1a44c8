package annotation

import (
	"github.com/matzehuels/chartnote/pkg/chart"
	"github.com/matzehuels/chartnote/pkg/render/scene"
)

// Coord is a pixel coordinate that may be undefined.
type Coord struct {
	Value float64
	Valid bool
}

func defined(v float64) Coord { return Coord{Value: v, Valid: true} }

// Anchor is the resolved screen point of an annotation.
type Anchor struct {
	X, Y Coord
}

// Complete reports whether both coordinates are defined.
func (a Anchor) Complete() bool { return a.X.Valid && a.Y.Valid }

// Empty reports whether neither coordinate is defined.
func (a Anchor) Empty() bool { return !a.X.Valid && !a.Y.Valid }

// Point returns the anchor as a scene point. Undefined coordinates are 0.
func (a Anchor) Point() scene.Point { return scene.Point{X: a.X.Value, Y: a.Y.Value} }

// Resolution is the outcome of Resolve.
type Resolution struct {
	Anchor Anchor
	// Pane is the chart pane the annotation belongs to, empty when no axis
	// or series decided it.
	Pane string
}

// paneSetter assigns the pane once. Later assignments are ignored.
type paneSetter struct {
	pane string
}

func (p *paneSetter) set(pane string) {
	if p.pane == "" {
		p.pane = pane
	}
}

// Resolve computes the anchor and pane of p against the axes and series of
// cs.
//
// The value axis is the one named by p.Axis, or the default value axis when
// no axis is named; a named series replaces it with the series' value axis
// (nil for an unknown series). The pane comes from the named axis or the
// series, then from the argument axis, then from the value axis, whichever
// is first. A data coordinate that is missing falls back to an axis
// position or, for series, to the paired coordinate on the series line.
// Explicit X and Y only fill coordinates that stay undefined.
//
// Unknown names never fail: they degrade to the fallbacks above or leave
// coordinates undefined.
func Resolve(p Placement, cs chart.CoordinateSystem) Resolution {
	var (
		argC, valC Coord
		pane       paneSetter
	)
	argAxis := cs.ArgumentAxis()
	axis := cs.ValueAxis(p.Axis)

	if p.Axis != "" && axis != nil {
		pane.pane = axis.Pane()
	}
	var series chart.Series
	if p.Series != "" {
		series = findSeries(cs, p.Series)
		axis = nil
		if series != nil {
			axis = series.ValueAxis()
		}
		if axis != nil {
			pane.pane = axis.Pane()
		}
	}

	if p.Argument != nil && argAxis != nil {
		if v, ok := argAxis.Translator().Translate(p.Argument); ok {
			argC = defined(v)
		}
		pane.set(argAxis.Pane())
	}

	if p.Value != nil && axis != nil {
		if v, ok := axis.Translator().Translate(p.Value); ok {
			valC = defined(v)
		}
		pane.set(axis.Pane())
	}

	if argC.Valid && p.Value == nil {
		switch {
		case axis == nil && series == nil:
			valC = defined(argAxis.AxisPosition())
		case series == nil:
			valC = defined(samePaneArgumentAxis(cs, axis).AxisPosition())
		default:
			if series.CheckViewportCoord(argAxis, argC.Value) {
				if v, ok := series.PairCoord(argC.Value, true); ok {
					valC = defined(v)
				}
			}
			if !valC.Valid {
				valC = defined(samePaneArgumentAxis(cs, axis).AxisPosition())
			}
		}
	}

	if p.Argument == nil && valC.Valid {
		switch {
		case series == nil:
			argC = defined(axis.AxisPosition())
		default:
			if series.CheckViewportCoord(axis, valC.Value) {
				if v, ok := series.PairCoord(valC.Value, false); ok {
					argC = defined(v)
				}
			}
			if !argC.Valid {
				argC = defined(axis.AxisPosition())
			}
		}
	}

	var a Anchor
	if cs.Rotated() {
		a = Anchor{X: valC, Y: argC}
	} else {
		a = Anchor{X: argC, Y: valC}
	}
	if !a.X.Valid && p.X != nil {
		a.X = defined(*p.X)
	}
	if !a.Y.Valid && p.Y != nil {
		a.Y = defined(*p.Y)
	}
	return Resolution{Anchor: a, Pane: pane.pane}
}

// ResolveScreen places p by its explicit X and Y only. It serves hosts that
// have no axes.
func ResolveScreen(p Placement) Resolution {
	var a Anchor
	if p.X != nil {
		a.X = defined(*p.X)
	}
	if p.Y != nil {
		a.Y = defined(*p.Y)
	}
	return Resolution{Anchor: a}
}

func findSeries(cs chart.CoordinateSystem, name string) chart.Series {
	for _, s := range cs.Series() {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// samePaneArgumentAxis returns the argument axis in the pane of axis, or the
// primary argument axis when there is none.
func samePaneArgumentAxis(cs chart.CoordinateSystem, axis chart.Axis) chart.Axis {
	if axis != nil {
		for _, a := range cs.ArgumentAxes() {
			if a.Pane() == axis.Pane() {
				return a
			}
		}
	}
	return cs.ArgumentAxis()
}
