package chart

import "math"

type pair struct {
	arg, val float64
}

type series struct {
	name      string
	color     string
	argAxis   Axis
	valueAxis Axis
	coords    []pair
}

var _ Series = (*series)(nil)

func (s *series) Name() string    { return s.name }
func (s *series) ValueAxis() Axis { return s.valueAxis }

// Color returns the configured line color, possibly empty.
func (s *series) Color() string { return s.color }

func (s *series) CheckViewportCoord(axis Axis, coord float64) bool {
	return InRange(axis, coord)
}

// PairCoord interpolates along the series polyline. Coordinates outside the
// data extent have no pair.
func (s *series) PairCoord(coord float64, fromArgument bool) (float64, bool) {
	if len(s.coords) == 1 {
		p := s.coords[0]
		if fromArgument && p.arg == coord {
			return p.val, true
		}
		if !fromArgument && p.val == coord {
			return p.arg, true
		}
		return 0, false
	}
	for i := 1; i < len(s.coords); i++ {
		a, b := s.coords[i-1], s.coords[i]
		if fromArgument {
			if v, ok := lerp(coord, a.arg, b.arg, a.val, b.val); ok {
				return v, true
			}
			continue
		}
		if v, ok := lerp(coord, a.val, b.val, a.arg, b.arg); ok {
			return v, true
		}
	}
	return 0, false
}

// lerp maps x from [x0, x1] (in either order) onto [y0, y1].
func lerp(x, x0, x1, y0, y1 float64) (float64, bool) {
	if x < math.Min(x0, x1) || x > math.Max(x0, x1) {
		return 0, false
	}
	if x0 == x1 {
		return y0, true
	}
	return y0 + (x-x0)/(x1-x0)*(y1-y0), true
}
