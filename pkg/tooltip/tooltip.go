// Package tooltip implements the floating label charts show next to a hovered
// element. A Tooltip draws into the scene as an overlay that never takes
// part in hit testing, so showing it does not disturb pointer tracking.
package tooltip

import (
	"github.com/matzehuels/chartnote/pkg/render/plaque"
	"github.com/matzehuels/chartnote/pkg/render/scene"
	"github.com/matzehuels/chartnote/pkg/render/styles"
)

// Event names passed to the EventTrigger.
const (
	EventShown  = "tooltipShown"
	EventHidden = "tooltipHidden"
)

// Locations accepted by Options.Location.
const (
	LocationCenter = "center"
	LocationEdge   = "edge"
)

// Border styles the tooltip outline.
type Border struct {
	Visible bool    `json:"visible" yaml:"visible" toml:"visible"`
	Width   float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Color   string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// Options is the theme-level tooltip configuration.
type Options struct {
	Enabled          bool        `json:"enabled" yaml:"enabled" toml:"enabled"`
	Color            string      `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Opacity          float64     `json:"opacity,omitempty" yaml:"opacity,omitempty" toml:"opacity,omitempty"`
	Border           Border      `json:"border" yaml:"border" toml:"border"`
	Font             styles.Font `json:"font" yaml:"font" toml:"font"`
	ArrowLength      float64     `json:"arrowLength,omitempty" yaml:"arrowLength,omitempty" toml:"arrowLength,omitempty"`
	PaddingLeftRight float64     `json:"paddingLeftRight,omitempty" yaml:"paddingLeftRight,omitempty" toml:"paddingLeftRight,omitempty"`
	PaddingTopBottom float64     `json:"paddingTopBottom,omitempty" yaml:"paddingTopBottom,omitempty" toml:"paddingTopBottom,omitempty"`
	CornerRadius     float64     `json:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty" toml:"cornerRadius,omitempty"`
	Location         string      `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`
}

// FormatObject is the data a tooltip formats. Argument and Value keep the
// raw option values.
type FormatObject struct {
	ValueText   string
	Name        string
	Type        string
	Description string
	Text        string
	Argument    any
	Value       any
	Data        map[string]any
}

// Customization overrides the default rendering of one tooltip.
type Customization struct {
	Text        string
	Color       string
	BorderColor string
	FontColor   string
}

// Customizer returns per-call overrides. It may be nil.
type Customizer func(FormatObject) Customization

// EventTrigger is notified when the tooltip is shown or hidden.
type EventTrigger func(name string, target any)

// Config holds the construction-time settings.
type Config struct {
	CSSClass     string
	EventTrigger EventTrigger
	WidgetRoot   string
}

// RendererOptions binds the tooltip to a scene.
type RendererOptions struct {
	Scene *scene.Scene
}

// ShowOptions carries the bound target of a show call. Target must be
// comparable.
type ShowOptions struct {
	Target any
}

// State describes the visible tooltip.
type State struct {
	Visible bool
	Target  any
	Text    string
	Point   scene.Point
	Color   string
}

// Tooltip is a single reusable tooltip overlay.
type Tooltip struct {
	cfg      Config
	opts     Options
	scene    *scene.Scene
	group    *scene.Element
	plaque   *plaque.Plaque
	state    State
	disposed bool
}

// New creates a hidden tooltip.
func New(cfg Config) *Tooltip {
	return &Tooltip{cfg: cfg, opts: Options{Enabled: true, Location: LocationCenter}}
}

// SetRendererOptions attaches the tooltip to a scene. A visible tooltip is
// hidden first.
func (t *Tooltip) SetRendererOptions(ro RendererOptions) {
	t.Hide()
	t.scene = ro.Scene
}

// Update replaces the tooltip options. An empty location becomes
// LocationCenter.
func (t *Tooltip) Update(opts Options) {
	if opts.Location == "" {
		opts.Location = LocationCenter
	}
	t.opts = opts
}

// Options returns the current options.
func (t *Tooltip) Options() Options { return t.opts }

// Location returns where the tooltip prefers to attach to its target.
func (t *Tooltip) Location() string { return t.opts.Location }

// IsEnabled reports whether Show can display anything.
func (t *Tooltip) IsEnabled() bool { return t.opts.Enabled && !t.disposed }

// IsVisible reports whether the tooltip is drawn.
func (t *Tooltip) IsVisible() bool { return t.state.Visible }

// State returns the visible state.
func (t *Tooltip) State() State { return t.state }

// Show displays the tooltip for fo at pt (page coordinates). It returns false
// when nothing is shown: the tooltip is disabled or disposed, no scene is
// attached, or the formatted text is empty.
func (t *Tooltip) Show(fo FormatObject, pt scene.Point, so ShowOptions, customize Customizer) bool {
	if !t.IsEnabled() || t.scene == nil {
		return false
	}
	var c Customization
	if customize != nil {
		c = customize(fo)
	}
	text := c.Text
	if text == "" {
		text = fo.ValueText
	}
	if text == "" {
		t.Hide()
		return false
	}

	off := t.scene.RootOffset()
	local := scene.Point{X: pt.X - off.Left, Y: pt.Y - off.Top}
	t.draw(text, local, c)

	changed := !t.state.Visible || t.state.Target != so.Target
	t.state = State{Visible: true, Target: so.Target, Text: text, Point: local, Color: t.color(c)}
	if changed {
		t.trigger(EventShown, so.Target)
	}
	return true
}

// Hide removes a visible tooltip.
func (t *Tooltip) Hide() {
	if !t.state.Visible {
		return
	}
	target := t.state.Target
	if t.group != nil {
		t.group.Remove()
		t.group = nil
	}
	t.state = State{}
	t.trigger(EventHidden, target)
}

// Dispose hides the tooltip and makes every later call a no-op.
func (t *Tooltip) Dispose() {
	if t.disposed {
		return
	}
	t.Hide()
	t.disposed = true
	t.scene = nil
}

// Disposed reports whether Dispose was called.
func (t *Tooltip) Disposed() bool { return t.disposed }

func (t *Tooltip) color(c Customization) string {
	if c.Color != "" {
		return c.Color
	}
	return t.opts.Color
}

func (t *Tooltip) draw(text string, at scene.Point, c Customization) {
	if t.group != nil {
		t.group.Remove()
	}
	t.group = t.scene.G().SetAttrs(map[string]string{
		scene.AttrClass:         t.cfg.CSSClass,
		scene.AttrPointerEvents: "none",
	}).Append(t.scene.Root())

	border := t.opts.Border
	if c.BorderColor != "" {
		border.Color = c.BorderColor
	}
	font := t.opts.Font
	if c.FontColor != "" {
		font.Color = c.FontColor
	}
	po := plaque.Options{
		Color:   t.color(c),
		Opacity: t.opts.Opacity,
		Border: plaque.Border{
			Visible:      border.Visible,
			Width:        border.Width,
			Color:        border.Color,
			CornerRadius: t.opts.CornerRadius,
		},
		ArrowLength:      t.opts.ArrowLength,
		ArrowWidth:       t.opts.ArrowLength,
		PaddingLeftRight: t.opts.PaddingLeftRight,
		PaddingTopBottom: t.opts.PaddingTopBottom,
	}
	t.plaque = plaque.New(po, t.scene, t.group, func(g *scene.Element) {
		t.scene.Text(text).CSS(styles.PatchFont(font)).Append(g)
	})
	t.plaque.Draw(at)
}

func (t *Tooltip) trigger(name string, target any) {
	if t.cfg.EventTrigger != nil {
		t.cfg.EventTrigger(name, target)
	}
}
