package chart

import (
	"math"
	"slices"
	"time"

	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/render/scene"
)

// Pane is a laid-out chart region.
type Pane struct {
	Name   string
	Bounds scene.Rect
}

type axis struct {
	name       string
	pane       string
	translator Translator
	position   float64
}

func (a *axis) Name() string           { return a.name }
func (a *axis) Pane() string           { return a.pane }
func (a *axis) Translator() Translator { return a.translator }
func (a *axis) AxisPosition() float64  { return a.position }

// Chart is a laid-out chart. It implements CoordinateSystem.
type Chart struct {
	cfg       Config
	plot      scene.Rect
	panes     []Pane
	argAxes   []Axis
	valueAxes []Axis
	series    []Series
}

var _ CoordinateSystem = (*Chart)(nil)

// New lays out a chart. Unknown pane or axis references and duplicate names
// are reported as ErrCodeInvalidDocument.
func New(cfg Config) (*Chart, error) {
	cfg = cfg.withDefaults()
	m := cfg.Margin
	c := &Chart{
		cfg: cfg,
		plot: scene.Rect{
			X: m.Left, Y: m.Top,
			W: math.Max(0, cfg.Width-m.Left-m.Right),
			H: math.Max(0, cfg.Height-m.Top-m.Bottom),
		},
	}
	if err := c.layoutPanes(); err != nil {
		return nil, err
	}
	if err := c.buildArgumentAxes(); err != nil {
		return nil, err
	}
	if err := c.buildValueAxes(); err != nil {
		return nil, err
	}
	if err := c.buildSeries(); err != nil {
		return nil, err
	}
	return c, nil
}

// Rotated implements CoordinateSystem.
func (c *Chart) Rotated() bool { return c.cfg.Rotated }

// ArgumentAxis implements CoordinateSystem.
func (c *Chart) ArgumentAxis() Axis { return c.argAxes[0] }

// ArgumentAxes implements CoordinateSystem.
func (c *Chart) ArgumentAxes() []Axis { return c.argAxes }

// ValueAxis implements CoordinateSystem. The default axis, named "", is the
// first value axis in the pane of the primary argument axis, or the first
// declared one when that pane has none.
func (c *Chart) ValueAxis(name string) Axis {
	if name == "" {
		pane := c.ArgumentAxis().Pane()
		for _, a := range c.valueAxes {
			if a.Pane() == pane {
				return a
			}
		}
		return c.valueAxes[0]
	}
	for _, a := range c.valueAxes {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// ValueAxes returns every value axis in declaration order.
func (c *Chart) ValueAxes() []Axis { return c.valueAxes }

// Series implements CoordinateSystem.
func (c *Chart) Series() []Series { return c.series }

// Size returns the canvas size.
func (c *Chart) Size() (w, h float64) { return c.cfg.Width, c.cfg.Height }

// Plot returns the plot area.
func (c *Chart) Plot() scene.Rect { return c.plot }

// Panes returns the laid-out panes.
func (c *Chart) Panes() []Pane { return c.panes }

// Pane returns the pane called name.
func (c *Chart) Pane(name string) (Pane, bool) {
	i := slices.IndexFunc(c.panes, func(p Pane) bool { return p.Name == name })
	if i < 0 {
		return Pane{}, false
	}
	return c.panes[i], true
}

func (c *Chart) layoutPanes() error {
	total := 0.0
	seen := map[string]bool{}
	for _, p := range c.cfg.Panes {
		if p.Name == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "pane without a name")
		}
		if seen[p.Name] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate pane %q", p.Name)
		}
		seen[p.Name] = true
		total += weight(p)
	}

	spacing := *c.cfg.PaneSpacing * float64(len(c.cfg.Panes)-1)
	pos := 0.0
	for _, p := range c.cfg.Panes {
		var r scene.Rect
		if c.cfg.Rotated {
			w := (c.plot.W - spacing) * weight(p) / total
			r = scene.Rect{X: c.plot.X + pos, Y: c.plot.Y, W: w, H: c.plot.H}
			pos += w + *c.cfg.PaneSpacing
		} else {
			h := (c.plot.H - spacing) * weight(p) / total
			r = scene.Rect{X: c.plot.X, Y: c.plot.Y + pos, W: c.plot.W, H: h}
			pos += h + *c.cfg.PaneSpacing
		}
		c.panes = append(c.panes, Pane{Name: p.Name, Bounds: r})
	}
	return nil
}

func weight(p PaneConfig) float64 {
	if p.Weight > 0 {
		return p.Weight
	}
	return 1
}

// argumentRange is the pixel span of the argument dimension, shared by all
// panes.
func (c *Chart) argumentRange() (start, end float64) {
	if c.cfg.Rotated {
		return c.plot.Bottom(), c.plot.Y
	}
	return c.plot.X, c.plot.Right()
}

func (c *Chart) buildArgumentAxes() error {
	start, end := c.argumentRange()
	tr, err := c.argumentTranslator(start, end)
	if err != nil {
		return err
	}
	for _, p := range c.panes {
		pos := p.Bounds.Bottom()
		if c.cfg.Rotated {
			pos = p.Bounds.X
		}
		c.argAxes = append(c.argAxes, &axis{name: "argument", pane: p.Name, translator: tr, position: pos})
	}
	return nil
}

func (c *Chart) argumentTranslator(start, end float64) (Translator, error) {
	ac := c.cfg.ArgumentAxis
	typ := ac.Type
	if typ == "" {
		typ = c.detectArgumentType()
	}
	var args []any
	for _, s := range c.cfg.Series {
		for _, p := range s.Points {
			args = append(args, p.Argument)
		}
	}

	switch typ {
	case AxisContinuous:
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, a := range args {
			if f, ok := ToFloat(a); ok {
				lo, hi = math.Min(lo, f), math.Max(hi, f)
			}
		}
		if f, ok := ToFloat(ac.Min); ok {
			lo = f
		}
		if f, ok := ToFloat(ac.Max); ok {
			hi = f
		}
		lo, hi = normalizeExtent(lo, hi)
		return Linear{Min: lo, Max: hi, Start: start, End: end}, nil

	case AxisDiscrete:
		cats := slices.Clone(ac.Categories)
		if len(cats) == 0 {
			for _, a := range args {
				if k, ok := categoryKey(a); ok && !slices.Contains(cats, k) {
					cats = append(cats, k)
				}
			}
		}
		if len(cats) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "discrete argument axis without categories")
		}
		return Category{Categories: cats, Start: start, End: end}, nil

	case AxisDateTime:
		var lo, hi time.Time
		for _, a := range args {
			if t, ok := ToTime(a); ok {
				if lo.IsZero() || t.Before(lo) {
					lo = t
				}
				if hi.IsZero() || t.After(hi) {
					hi = t
				}
			}
		}
		if t, ok := ToTime(ac.Min); ok {
			lo = t
		}
		if t, ok := ToTime(ac.Max); ok {
			hi = t
		}
		if lo.IsZero() || hi.IsZero() {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "datetime argument axis without bounds")
		}
		if !hi.After(lo) {
			hi = lo.Add(24 * time.Hour)
		}
		return DateTime{Min: lo, Max: hi, Start: start, End: end}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown argument axis type %q", typ)
}

func (c *Chart) detectArgumentType() string {
	if len(c.cfg.ArgumentAxis.Categories) > 0 {
		return AxisDiscrete
	}
	for _, s := range c.cfg.Series {
		for _, p := range s.Points {
			switch a := p.Argument.(type) {
			case time.Time:
				return AxisDateTime
			case string:
				if _, ok := ToTime(a); ok {
					return AxisDateTime
				}
				return AxisDiscrete
			}
			return AxisContinuous
		}
	}
	return AxisContinuous
}

func normalizeExtent(lo, hi float64) (float64, float64) {
	switch {
	case math.IsInf(lo, 1) && math.IsInf(hi, -1):
		return 0, 1
	case math.IsInf(lo, 1):
		return hi - 1, hi
	case math.IsInf(hi, -1):
		return lo, lo + 1
	case lo == hi:
		return lo - 1, hi + 1
	case lo > hi:
		return hi, lo
	}
	return lo, hi
}

func (c *Chart) buildValueAxes() error {
	seen := map[string]bool{}
	for i, vc := range c.cfg.ValueAxes {
		name := vc.Name
		if name == "" {
			if i > 0 {
				return errors.New(errors.ErrCodeInvalidDocument, "value axis %d has no name", i)
			}
			name = "value"
		}
		if seen[name] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate value axis %q", name)
		}
		seen[name] = true

		paneName := vc.Pane
		if paneName == "" {
			paneName = c.panes[0].Name
		}
		pane, ok := c.Pane(paneName)
		if !ok {
			return errors.New(errors.ErrCodeInvalidDocument, "value axis %q: unknown pane %q", name, paneName)
		}

		lo, hi := c.valueExtent(vc, i == 0)
		if vc.Min != nil {
			lo = *vc.Min
		}
		if vc.Max != nil {
			hi = *vc.Max
		}
		lo, hi = normalizeExtent(lo, hi)

		b := pane.Bounds
		a := &axis{name: name, pane: pane.Name}
		if c.cfg.Rotated {
			a.translator = Linear{Min: lo, Max: hi, Start: b.X, End: b.Right()}
			a.position = b.Bottom()
		} else {
			a.translator = Linear{Min: lo, Max: hi, Start: b.Bottom(), End: b.Y}
			a.position = b.X
		}
		c.valueAxes = append(c.valueAxes, a)
	}
	return nil
}

// valueExtent returns the data range of the series bound to the axis.
func (c *Chart) valueExtent(vc ValueAxisConfig, isDefault bool) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.cfg.Series {
		if s.Axis != vc.Name && !(s.Axis == "" && isDefault) {
			continue
		}
		for _, p := range s.Points {
			lo, hi = math.Min(lo, p.Value), math.Max(hi, p.Value)
		}
	}
	return lo, hi
}

func (c *Chart) buildSeries() error {
	seen := map[string]bool{}
	for _, sc := range c.cfg.Series {
		if seen[sc.Name] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate series %q", sc.Name)
		}
		seen[sc.Name] = true

		va := c.ValueAxis(sc.Axis)
		if va == nil {
			return errors.New(errors.ErrCodeInvalidDocument, "series %q: unknown value axis %q", sc.Name, sc.Axis)
		}
		argAxis := c.argumentAxisForPane(va.Pane())
		s := &series{name: sc.Name, color: sc.Color, argAxis: argAxis, valueAxis: va}
		for _, p := range sc.Points {
			a, ok := argAxis.Translator().Translate(p.Argument)
			if !ok {
				continue
			}
			v, _ := va.Translator().Translate(p.Value)
			s.coords = append(s.coords, pair{arg: a, val: v})
		}
		slices.SortStableFunc(s.coords, func(x, y pair) int {
			switch {
			case x.arg < y.arg:
				return -1
			case x.arg > y.arg:
				return 1
			}
			return 0
		})
		c.series = append(c.series, s)
	}
	return nil
}

func (c *Chart) argumentAxisForPane(pane string) Axis {
	for _, a := range c.argAxes {
		if a.Pane() == pane {
			return a
		}
	}
	return c.argAxes[0]
}

// Point converts a pair of argument and value coordinates into a scene
// point, honoring rotation.
func (c *Chart) Point(arg, val float64) scene.Point {
	if c.cfg.Rotated {
		return scene.Point{X: val, Y: arg}
	}
	return scene.Point{X: arg, Y: val}
}
