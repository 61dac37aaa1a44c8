package annotation

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartnote/pkg/observability"
	"github.com/matzehuels/chartnote/pkg/render/scene"
	"github.com/matzehuels/chartnote/pkg/tooltip"
)

// State is the lifecycle state of a Collection.
type State int

const (
	StateEmpty State = iota
	StateBuilt
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilt:
		return "built"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Tooltip is the tooltip an annotation collection shows on hover.
// *tooltip.Tooltip implements it.
type Tooltip interface {
	SetRendererOptions(tooltip.RendererOptions)
	Update(tooltip.Options)
	Show(fo tooltip.FormatObject, pt scene.Point, so tooltip.ShowOptions, customize tooltip.Customizer) bool
	Hide()
	Dispose()
	Location() string
}

// TooltipFactory creates the tooltip of a build.
type TooltipFactory func(tooltip.Config) Tooltip

// Source holds the options a build consumes.
type Source struct {
	Items     []Config
	Common    Config
	Customize CustomizeFunc
	// Tooltip holds the theme tooltip options.
	Tooltip tooltip.Options
}

// Option configures a Collection.
type Option func(*Collection)

// WithFactory replaces DefaultFactory.
func WithFactory(f Factory) Option { return func(c *Collection) { c.factory = f } }

// WithTooltipFactory replaces the tooltip constructor.
func WithTooltipFactory(f TooltipFactory) Option { return func(c *Collection) { c.newTooltip = f } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option { return func(c *Collection) { c.logger = l } }

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option { return func(c *Collection) { c.ctx = ctx } }

// WithClassPrefix sets the prefix of the CSS classes of the annotation
// group and tooltip.
func WithClassPrefix(p string) Option { return func(c *Collection) { c.prefix = p } }

// WithEventTrigger forwards tooltip shown/hidden events.
func WithEventTrigger(t tooltip.EventTrigger) Option {
	return func(c *Collection) { c.eventTrigger = t }
}

// WithWidgetRoot names the widget element the tooltip belongs to.
func WithWidgetRoot(id string) Option { return func(c *Collection) { c.widgetRoot = id } }

// Collection owns the annotations of one widget. Every Build replaces the
// whole set: the previous tooltip, listeners and instances are discarded
// before new instances exist.
type Collection struct {
	host         Host
	factory      Factory
	newTooltip   TooltipFactory
	logger       *log.Logger
	ctx          context.Context
	prefix       string
	eventTrigger tooltip.EventTrigger
	widgetRoot   string

	state   State
	group   *scene.Element
	items   []*Instance
	tooltip Tooltip
	moveH   scene.Handle
	lookup  map[*scene.Element]*Instance
}

// NewCollection creates an empty collection for h.
func NewCollection(h Host, opts ...Option) *Collection {
	c := &Collection{
		host:    h,
		factory: DefaultFactory,
		newTooltip: func(cfg tooltip.Config) Tooltip {
			return tooltip.New(cfg)
		},
		logger: log.New(io.Discard),
		ctx:    context.Background(),
		prefix: "chart",
		lookup: map[*scene.Element]*Instance{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the lifecycle state.
func (c *Collection) State() State { return c.state }

// Items returns the current instances in configuration order.
func (c *Collection) Items() []*Instance { return c.items }

// Tooltip returns the tooltip of the current build, or nil.
func (c *Collection) Tooltip() Tooltip { return c.tooltip }

// Group returns the element annotations are drawn into.
func (c *Collection) Group() *scene.Element { return c.group }

// CreateStructure creates the annotation group under the renderer root.
func (c *Collection) CreateStructure() {
	if c.state == StateDisposed || c.group != nil {
		return
	}
	c.group = c.host.Renderer().G().SetAttr(scene.AttrClass, c.prefix+"-annotations")
	c.group.Append(c.host.Renderer().Root())
}

// Build discards the current set and creates instances from src. An empty
// item list leaves the collection built but without tooltip or pointer
// listener. Build after Dispose does nothing.
func (c *Collection) Build(src Source) {
	if c.state == StateDisposed {
		return
	}
	c.discard()
	c.state = StateBuilt

	if len(src.Items) == 0 {
		observability.Annotations().OnBuild(c.ctx, 0, 0)
		return
	}

	s := c.host.Renderer()
	c.tooltip = c.newTooltip(tooltip.Config{
		CSSClass:     c.prefix + "-annotation-tooltip",
		EventTrigger: c.eventTrigger,
		WidgetRoot:   c.widgetRoot,
	})
	c.tooltip.SetRendererOptions(tooltip.RendererOptions{Scene: s})
	c.tooltip.Update(src.Tooltip)

	records := c.factory.CreateAnnotations(src.Items, src.Common, src.Customize)
	c.items = make([]*Instance, 0, len(records))
	for _, rec := range records {
		c.items = append(c.items, NewInstance(rec))
	}
	dropped := len(src.Items) - len(records)
	if dropped > 0 {
		c.logger.Debug("dropped annotations with unknown type", "count", dropped)
	}
	c.logger.Debug("annotations built", "count", len(c.items))

	c.moveH = s.Root().On(scene.EventPointerMove, c.HandlePointerMove)
	observability.Annotations().OnBuild(c.ctx, len(c.items), dropped)
}

// Render draws every instance into a freshly cleared annotation group.
func (c *Collection) Render() {
	if c.state == StateDisposed {
		return
	}
	if c.group == nil {
		c.CreateStructure()
	} else if c.group.Parent() == nil {
		c.group.Append(c.host.Renderer().Root())
	}
	c.group.Clear()
	clear(c.lookup)

	for _, inst := range c.items {
		inst.Draw(c.host, c.group)
		observability.Annotations().OnResolve(c.ctx, inst.Name, inst.Anchor().Complete())
		if !inst.Drawn() {
			c.logger.Debug("annotation skipped: anchor unresolved", "name", inst.Name)
			continue
		}
		c.lookup[inst.Group()] = inst
	}
}

// Lookup returns the instance that drew el or one of its ancestors.
func (c *Collection) Lookup(el *scene.Element) *Instance {
	for n := el; n != nil; n = n.Parent() {
		if inst, ok := c.lookup[n]; ok {
			return inst
		}
	}
	return nil
}

// HandlePointerMove shows the tooltip of the annotation under the pointer,
// attached where the tooltip location asks, and hides it when the pointer is elsewhere or the annotation has its
// tooltip disabled. Showing an annotation tooltip hides the host tooltip
// and clears host hover state first.
func (c *Collection) HandlePointerMove(ev scene.Event) {
	if c.state != StateBuilt || c.tooltip == nil {
		return
	}
	inst := c.Lookup(ev.Target)
	if inst == nil || !inst.TooltipEnabled() {
		c.tooltip.Hide()
		return
	}

	c.host.HideTooltip()
	c.host.ClearHover()

	pt := inst.TooltipParams(c.tooltip.Location())
	off := c.host.Renderer().RootOffset()
	pt.X += off.Left
	pt.Y += off.Top
	if c.tooltip.Show(inst.TooltipFormatObject(), pt, tooltip.ShowOptions{Target: inst}, inst.Config.CustomizeTooltip) {
		observability.Annotations().OnTooltipShow(c.ctx, inst.Name)
	}
}

// Dispose discards everything and removes the annotation group. Later
// builds and renders do nothing.
func (c *Collection) Dispose() {
	if c.state == StateDisposed {
		return
	}
	c.discard()
	if c.group != nil {
		c.group.Remove()
		c.group = nil
	}
	c.state = StateDisposed
}

func (c *Collection) discard() {
	if c.tooltip != nil {
		c.tooltip.Dispose()
		c.tooltip = nil
	}
	c.moveH.Remove()
	c.moveH = scene.Handle{}
	if c.group != nil {
		c.group.Clear()
	}
	clear(c.lookup)
	c.items = nil
}
