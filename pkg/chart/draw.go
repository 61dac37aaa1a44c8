package chart

import (
	"github.com/matzehuels/chartnote/pkg/render/scene"
)

// Backdrop colors used when a Style leaves them empty.
const (
	AxisColor          = "#767676"
	DefaultSeriesColor = "#1db2f5"
)

// Style colors the backdrop. Palette supplies the color of the i-th series
// that configures none; it may be nil.
type Style struct {
	AxisColor string
	Palette   func(i int) string
}

// ClipRectID returns the clip identifier of a pane.
func ClipRectID(prefix, pane string) string {
	return prefix + "-clip-" + pane
}

// Draw registers one clip rectangle per pane and draws the backdrop: pane
// axis lines, then one polyline per series. It returns the series
// polylines keyed by element so hover handling can map hits back to series.
func (c *Chart) Draw(s *scene.Scene, parent *scene.Element, clipPrefix string, st Style) map[*scene.Element]Series {
	for _, p := range c.panes {
		s.DefineClip(ClipRectID(clipPrefix, p.Name), p.Bounds)
	}

	axes := s.G().SetAttr(scene.AttrClass, clipPrefix+"-axes").Append(parent)
	axisColor := st.AxisColor
	if axisColor == "" {
		axisColor = AxisColor
	}
	for _, a := range c.argAxes {
		c.drawAxisLine(s, axes, a, true, axisColor)
	}
	for _, a := range c.valueAxes {
		c.drawAxisLine(s, axes, a, false, axisColor)
	}

	lines := make(map[*scene.Element]Series, len(c.series))
	group := s.G().SetAttr(scene.AttrClass, clipPrefix+"-series").Append(parent)
	for i, sr := range c.series {
		impl := sr.(*series)
		pts := make([]scene.Point, 0, len(impl.coords))
		for _, p := range impl.coords {
			pts = append(pts, c.Point(p.arg, p.val))
		}
		color := impl.color
		if color == "" && st.Palette != nil {
			color = st.Palette(i)
		}
		if color == "" {
			color = DefaultSeriesColor
		}
		el := s.Path(pts, false).SetAttrs(map[string]string{
			scene.AttrStroke:      color,
			scene.AttrStrokeWidth: "2",
			scene.AttrFill:        "none",
			scene.AttrLineJoin:    "round",
			scene.AttrData:        sr.Name(),
			scene.AttrClipPath:    ClipRectID(clipPrefix, sr.ValueAxis().Pane()),
		}).Append(group)
		lines[el] = sr
	}
	return lines
}

func (c *Chart) drawAxisLine(s *scene.Scene, parent *scene.Element, a Axis, argument bool, color string) {
	start, end := 0.0, 0.0
	if r, ok := a.Translator().(Ranger); ok {
		start, end = r.Range()
	}
	pos := a.AxisPosition()
	var pts []scene.Point
	if argument != c.cfg.Rotated {
		pts = []scene.Point{{X: start, Y: pos}, {X: end, Y: pos}}
	} else {
		pts = []scene.Point{{X: pos, Y: start}, {X: pos, Y: end}}
	}
	s.Path(pts, false).SetAttrs(map[string]string{
		scene.AttrStroke:        color,
		scene.AttrStrokeWidth:   "1",
		scene.AttrFill:          "none",
		scene.AttrPointerEvents: "none",
	}).Append(parent)
}
