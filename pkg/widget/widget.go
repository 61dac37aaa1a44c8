// Package widget is the chart host annotations live in.
//
// A Widget lays out a [chart.Chart], draws its backdrop into a
// [scene.Scene] and owns an [annotation.Collection]. It implements
// [annotation.Host]: annotations resolve their anchors against the chart
// axes, clip to chart panes, and hide the series tooltip while their own
// tooltip is shown.
//
// Options are changed through typed setters. Every setter marks the
// affected option in an [options.Tracker]; the pending changes run when
// the outermost update ends, and a forced render follows when a change
// asks for one:
//
//	w, err := widget.New(cfg, widget.WithTheme(th), widget.WithLogger(logger))
//	w.BeginUpdate()
//	w.SetCommonAnnotationSettings(common)
//	w.SetAnnotations(items)
//	w.EndUpdate()
//	w.Render()
package widget

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chartnote/pkg/annotation"
	"github.com/matzehuels/chartnote/pkg/chart"
	"github.com/matzehuels/chartnote/pkg/options"
	"github.com/matzehuels/chartnote/pkg/render/scene"
	"github.com/matzehuels/chartnote/pkg/render/styles"
	"github.com/matzehuels/chartnote/pkg/theme"
	"github.com/matzehuels/chartnote/pkg/tooltip"
)

// ClassPrefix prefixes the CSS classes and clip identifiers of every
// widget.
const ClassPrefix = "chartnote"

// hoverStrokeWidth is the stroke width of a hovered series line.
const hoverStrokeWidth = "3"

// EventHandler receives widget events such as tooltip shown and hidden.
type EventHandler func(name string, target any)

type config struct {
	logger    *log.Logger
	ctx       context.Context
	theme     *theme.Theme
	measurer  scene.Measurer
	offset    scene.Offset
	factory   annotation.Factory
	onEvent   EventHandler
	customize annotation.CustomizeFunc
}

// Option configures a Widget.
type Option func(*config)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option { return func(c *config) { c.ctx = ctx } }

// WithTheme sets the initial theme. The default is theme.Default.
func WithTheme(t *theme.Theme) Option { return func(c *config) { c.theme = t } }

// WithMeasurer replaces the text measurer of the scene.
func WithMeasurer(m scene.Measurer) Option { return func(c *config) { c.measurer = m } }

// WithRootOffset sets the page offset of the chart root.
func WithRootOffset(o scene.Offset) Option { return func(c *config) { c.offset = o } }

// WithFactory replaces the annotation factory.
func WithFactory(f annotation.Factory) Option { return func(c *config) { c.factory = f } }

// WithEventHandler receives tooltip events of the widget.
func WithEventHandler(h EventHandler) Option { return func(c *config) { c.onEvent = h } }

// WithCustomizeAnnotation sets the per-item customization callback.
func WithCustomizeAnnotation(f annotation.CustomizeFunc) Option {
	return func(c *config) { c.customize = f }
}

// Widget is a chart with annotations.
type Widget struct {
	id     string
	logger *log.Logger
	ctx    context.Context
	theme  *theme.Theme

	chart    *chart.Chart
	scene    *scene.Scene
	backdrop *scene.Element
	lines    map[*scene.Element]chart.Series
	hovered  *scene.Element

	items     []annotation.Config
	common    annotation.Config
	customize annotation.CustomizeFunc

	registry    *options.Registry
	tracker     *options.Tracker
	updateLevel int

	annotations   *annotation.Collection
	seriesTooltip *tooltip.Tooltip
	onEvent       EventHandler
	hoverH        scene.Handle

	rendered bool
	disposed bool
}

var _ annotation.Host = (*Widget)(nil)

// New lays out cfg and creates a widget without annotations.
func New(cfg chart.Config, opts ...Option) (*Widget, error) {
	c := config{logger: log.New(io.Discard), ctx: context.Background()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.theme == nil {
		th, err := theme.Get(theme.Default)
		if err != nil {
			return nil, err
		}
		c.theme = th
	}

	ch, err := chart.New(cfg)
	if err != nil {
		return nil, err
	}
	w, h := ch.Size()
	sopts := []scene.Option{scene.WithRootOffset(c.offset)}
	if c.measurer != nil {
		sopts = append(sopts, scene.WithMeasurer(c.measurer))
	}

	wd := &Widget{
		id:        uuid.NewString(),
		logger:    c.logger,
		ctx:       c.ctx,
		theme:     c.theme,
		chart:     ch,
		scene:     scene.New(w, h, sopts...),
		customize: c.customize,
		onEvent:   c.onEvent,
	}
	wd.logger = wd.logger.With("widget", wd.id[:8])

	wd.registry = options.NewRegistry()
	if err := annotation.RegisterChanges(wd.registry, wd.rebuildAnnotations); err != nil {
		return nil, err
	}
	wd.tracker = options.NewTracker(wd.registry)

	wd.backdrop = wd.scene.G().SetAttr(scene.AttrClass, ClassPrefix+"-backdrop").Append(wd.scene.Root())

	aopts := []annotation.Option{
		annotation.WithLogger(wd.logger),
		annotation.WithContext(wd.ctx),
		annotation.WithClassPrefix(ClassPrefix),
		annotation.WithEventTrigger(wd.trigger),
		annotation.WithWidgetRoot(wd.id),
	}
	if c.factory != nil {
		aopts = append(aopts, annotation.WithFactory(c.factory))
	}
	wd.annotations = annotation.NewCollection(wd, aopts...)
	wd.annotations.CreateStructure()

	wd.seriesTooltip = tooltip.New(tooltip.Config{
		CSSClass:     ClassPrefix + "-tooltip",
		EventTrigger: wd.trigger,
		WidgetRoot:   wd.id,
	})
	wd.seriesTooltip.SetRendererOptions(tooltip.RendererOptions{Scene: wd.scene})
	wd.seriesTooltip.Update(wd.theme.TooltipOptions())
	wd.hoverH = wd.scene.Root().On(scene.EventPointerMove, wd.handleSeriesHover)

	wd.rebuildAnnotations()
	return wd, nil
}

// ID returns the unique widget identifier.
func (w *Widget) ID() string { return w.id }

// Chart returns the laid-out chart.
func (w *Widget) Chart() *chart.Chart { return w.chart }

// Theme returns the current theme.
func (w *Widget) Theme() *theme.Theme { return w.theme }

// Annotations returns the annotation collection.
func (w *Widget) Annotations() *annotation.Collection { return w.annotations }

// SeriesTooltip returns the tooltip shown over series lines.
func (w *Widget) SeriesTooltip() *tooltip.Tooltip { return w.seriesTooltip }

// Registry returns the change registry of the widget.
func (w *Widget) Registry() *options.Registry { return w.registry }

// Rendered reports whether Render ran since the last dispose.
func (w *Widget) Rendered() bool { return w.rendered }

// Disposed reports whether Dispose was called.
func (w *Widget) Disposed() bool { return w.disposed }

// AnnotationCoords implements annotation.Host.
func (w *Widget) AnnotationCoords(p annotation.Placement) annotation.Resolution {
	return annotation.Resolve(p, w.chart)
}

// Renderer implements annotation.Host.
func (w *Widget) Renderer() *scene.Scene { return w.scene }

// ClipRectID implements annotation.Host.
func (w *Widget) ClipRectID(pane string) string { return chart.ClipRectID(ClassPrefix, pane) }

// HideTooltip implements annotation.Host.
func (w *Widget) HideTooltip() { w.seriesTooltip.Hide() }

// ClearHover implements annotation.Host.
func (w *Widget) ClearHover() {
	if w.hovered == nil {
		return
	}
	w.hovered.SetAttr(scene.AttrStrokeWidth, "2")
	w.hovered = nil
}

// BeginUpdate defers change handling until the matching EndUpdate.
func (w *Widget) BeginUpdate() { w.updateLevel++ }

// EndUpdate runs the changes collected since the outermost BeginUpdate.
func (w *Widget) EndUpdate() {
	if w.updateLevel > 0 {
		w.updateLevel--
	}
	w.applyChanges()
}

// SetAnnotations replaces the annotation items.
func (w *Widget) SetAnnotations(items []annotation.Config) {
	w.items = items
	w.optionChanged(annotation.OptionItems)
}

// SetCommonAnnotationSettings replaces the settings every item inherits.
func (w *Widget) SetCommonAnnotationSettings(c annotation.Config) {
	w.common = c
	w.optionChanged(annotation.OptionSettings)
}

// SetCommonAnnotationFont replaces only the font of the common settings.
func (w *Widget) SetCommonAnnotationFont(f styles.Font) {
	w.common.Font = f
	w.optionChanged(annotation.OptionSettings + ".font")
}

// SetCustomizeAnnotation replaces the customization callback. It is not a
// change by itself: the callback is used by the next rebuild.
func (w *Widget) SetCustomizeAnnotation(f annotation.CustomizeFunc) { w.customize = f }

// SetTheme switches the theme and runs the theme-dependent changes.
func (w *Widget) SetTheme(t *theme.Theme) {
	if t == nil || t == w.theme {
		return
	}
	w.theme = t
	w.seriesTooltip.Update(t.TooltipOptions())
	w.tracker.ThemeChanged()
	w.applyChanges()
}

func (w *Widget) optionChanged(path string) {
	if !w.tracker.OptionChanged(path) {
		w.logger.Debug("option change ignored", "option", path)
		return
	}
	w.applyChanges()
}

func (w *Widget) applyChanges() {
	if w.updateLevel > 0 || w.disposed {
		return
	}
	res := w.tracker.Apply()
	if len(res.Applied) > 0 {
		w.logger.Debug("changes applied", "codes", res.Applied)
	}
	if res.Has(options.ForceRender) && w.rendered {
		w.Render()
	}
}

// commonSettings returns the theme annotation settings overridden by the
// user's, with the theme base font merged under every font field.
func (w *Widget) commonSettings() annotation.Config {
	c := annotation.Merge(w.theme.Annotations, w.common)
	for _, path := range w.registry.FontFields() {
		if f := fontField(&c, path); f != nil {
			*f = w.theme.Font.Merge(*f)
		}
	}
	return c
}

func fontField(c *annotation.Config, path string) *styles.Font {
	if path == annotation.FontFields[0] {
		return &c.Font
	}
	return nil
}

func (w *Widget) rebuildAnnotations() {
	w.annotations.Build(annotation.Source{
		Items:     w.items,
		Common:    w.commonSettings(),
		Customize: w.customize,
		Tooltip:   w.theme.TooltipOptions(),
	})
}

// Render draws the backdrop and the annotations. It may be called again
// at any time; each call replaces the previous drawing.
func (w *Widget) Render() {
	if w.disposed {
		return
	}
	w.ClearHover()
	w.seriesTooltip.Hide()
	w.backdrop.Clear()
	w.lines = w.chart.Draw(w.scene, w.backdrop, ClassPrefix, chart.Style{
		AxisColor: w.theme.AxisColor,
		Palette:   w.theme.SeriesColor,
	})
	w.annotations.Render()
	w.rendered = true
	w.logger.Debug("rendered", "annotations", len(w.annotations.Items()))
}

func (w *Widget) handleSeriesHover(ev scene.Event) {
	sr, ok := w.lines[ev.Target]
	if !ok {
		w.seriesTooltip.Hide()
		w.ClearHover()
		return
	}
	if w.hovered != ev.Target {
		w.ClearHover()
		w.hovered = ev.Target
		w.hovered.SetAttr(scene.AttrStrokeWidth, hoverStrokeWidth)
	}
	w.seriesTooltip.Show(tooltip.FormatObject{ValueText: sr.Name(), Name: sr.Name()},
		scene.Point{X: ev.PageX, Y: ev.PageY}, tooltip.ShowOptions{Target: sr}, nil)
}

func (w *Widget) trigger(name string, target any) {
	if w.onEvent != nil {
		w.onEvent(name, target)
	}
}

// PointerMove forwards a pointer move at page coordinates.
func (w *Widget) PointerMove(pageX, pageY float64) {
	if !w.disposed {
		w.scene.PointerMove(pageX, pageY)
	}
}

// PointerDown forwards a pointer press at page coordinates.
func (w *Widget) PointerDown(pageX, pageY float64) {
	if !w.disposed {
		w.scene.PointerDown(pageX, pageY)
	}
}

// PointerUp forwards a pointer release at page coordinates.
func (w *Widget) PointerUp(pageX, pageY float64) {
	if !w.disposed {
		w.scene.PointerUp(pageX, pageY)
	}
}

// Dispose releases the annotations and tooltips. Later setters and
// renders do nothing.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.annotations.Dispose()
	w.seriesTooltip.Dispose()
	w.hoverH.Remove()
	w.backdrop.Remove()
	w.lines = nil
	w.hovered = nil
	w.disposed = true
	w.rendered = false
}
