// Package chart is a small cartesian chart model: panes, an argument axis
// per pane, named value axes and line series. It provides exactly what
// annotations need to find their place on screen, behind the
// CoordinateSystem interface, and draws a plain backdrop of axis lines and
// series polylines.
//
// Layout is deliberately fixed: margins around the plot area and panes
// stacked by weight. There is no zooming or panning.
package chart

// Translator maps a logical value (number, category, time) to a pixel
// coordinate along one axis. ok is false for values it cannot place.
type Translator interface {
	Translate(v any) (px float64, ok bool)
}

// Ranger is implemented by translators that know their visible pixel range.
type Ranger interface {
	Range() (start, end float64)
}

// Axis is one chart axis.
type Axis interface {
	Name() string
	Pane() string
	Translator() Translator
	// AxisPosition is the pixel coordinate, across the axis direction, at
	// which the axis line is drawn.
	AxisPosition() float64
}

// Series is a data series bound to one value axis.
type Series interface {
	Name() string
	ValueAxis() Axis
	// CheckViewportCoord reports whether coord lies in the visible range of
	// axis.
	CheckViewportCoord(axis Axis, coord float64) bool
	// PairCoord returns the coordinate paired with coord on the series
	// line: the value coordinate for an argument coordinate when
	// fromArgument is set, the argument coordinate otherwise.
	PairCoord(coord float64, fromArgument bool) (float64, bool)
}

// CoordinateSystem exposes the axes and series of a chart.
type CoordinateSystem interface {
	Rotated() bool
	// ArgumentAxis returns the primary argument axis.
	ArgumentAxis() Axis
	// ArgumentAxes returns the argument axis of every pane.
	ArgumentAxes() []Axis
	// ValueAxis returns the value axis called name, the default value axis
	// for an empty name, or nil.
	ValueAxis(name string) Axis
	Series() []Series
}

// InRange reports whether coord lies within the visible range of axis.
// Axes whose translator does not implement Ranger accept every coordinate.
func InRange(axis Axis, coord float64) bool {
	if axis == nil {
		return false
	}
	r, ok := axis.Translator().(Ranger)
	if !ok {
		return true
	}
	a, b := r.Range()
	if a > b {
		a, b = b, a
	}
	return coord >= a && coord <= b
}
