package annotation

import (
	"github.com/matzehuels/chartnote/pkg/render/plaque"
	"github.com/matzehuels/chartnote/pkg/render/scene"
	"github.com/matzehuels/chartnote/pkg/render/styles"
	"github.com/matzehuels/chartnote/pkg/tooltip"
)

// Host is the widget an annotation collection lives in.
type Host interface {
	// AnnotationCoords resolves a placement against the host's axes.
	AnnotationCoords(p Placement) Resolution
	// Renderer returns the scene annotations draw into.
	Renderer() *scene.Scene
	// ClipRectID returns the clip identifier of a pane.
	ClipRectID(pane string) string
	// HideTooltip hides the host's own tooltip.
	HideTooltip()
	// ClearHover removes hover highlighting from the host's elements.
	ClearHover()
}

// Instance is a record placed on a chart. It is rebuilt, never updated,
// when options change.
type Instance struct {
	*Record

	anchor Anchor
	pane   string
	drawn  bool

	plaque  *plaque.Plaque
	group   *scene.Element
	content []*scene.Element

	dragOffsetX, dragOffsetY float64
}

// NewInstance wraps rec.
func NewInstance(rec *Record) *Instance {
	return &Instance{Record: rec}
}

// Anchor returns the anchor computed by the last Draw.
func (i *Instance) Anchor() Anchor { return i.anchor }

// Pane returns the pane computed by the last Draw.
func (i *Instance) Pane() string { return i.pane }

// Drawn reports whether the last Draw produced a plaque.
func (i *Instance) Drawn() bool { return i.drawn }

// Plaque returns the plaque of the last Draw, or nil.
func (i *Instance) Plaque() *plaque.Plaque { return i.plaque }

// Group returns the element holding the plaque, or nil.
func (i *Instance) Group() *scene.Element { return i.group }

// ContentElements returns the content elements drawn inside the plaque.
func (i *Instance) ContentElements() []*scene.Element { return i.content }

// Draggable reports whether the plaque follows pointer drags.
func (i *Instance) Draggable() bool { return boolValue(i.Config.Draggable) }

// TooltipEnabled reports whether hovering shows a tooltip.
func (i *Instance) TooltipEnabled() bool { return boolValue(i.Config.TooltipEnabled) }

// Draw resolves the anchor through h and draws the plaque into a new group
// under parent. An anchor with an undefined coordinate is not drawn.
func (i *Instance) Draw(h Host, parent *scene.Element) {
	res := h.AnnotationCoords(i.Placement())
	i.anchor, i.pane = res.Anchor, res.Pane
	i.drawn = false
	i.content = nil
	i.plaque, i.group = nil, nil
	if !i.anchor.Complete() {
		return
	}

	s := h.Renderer()
	i.group = s.G().Append(parent)
	if i.Name != "" {
		i.group.SetAttr(scene.AttrData, i.Name)
	}
	i.plaque = plaque.New(i.plaqueOptions(), s, i.group, i.drawContent)
	i.plaque.Draw(i.anchor.Point())
	if i.pane != "" {
		i.group.SetAttr(scene.AttrClipPath, h.ClipRectID(i.pane))
	}

	if i.Draggable() {
		i.group.On(scene.EventDragStart, func(ev scene.Event) {
			i.dragOffsetX = i.plaque.X() - ev.PageX
			i.dragOffsetY = i.plaque.Y() - ev.PageY
		})
		i.group.On(scene.EventDrag, func(ev scene.Event) {
			i.plaque.Move(ev.PageX+i.dragOffsetX, ev.PageY+i.dragOffsetY)
		})
	}
	i.drawn = true
}

func (i *Instance) drawContent(g *scene.Element) {
	s := g.Scene()
	var el *scene.Element
	switch c := i.Content.(type) {
	case TextContent:
		el = s.Text(c.Text).CSS(styles.PatchFont(c.Font))
	case ImageContent:
		el = s.Image(0, 0, c.Width, c.Height, c.URL, c.Location)
	default:
		return
	}
	i.content = append(i.content, el.Append(g))
}

func (i *Instance) plaqueOptions() plaque.Options {
	c := i.Config
	return plaque.Options{
		Color:   c.Color,
		Opacity: floatValue(c.Opacity),
		Border: plaque.Border{
			Visible:      boolValue(c.Border.Visible),
			Width:        floatValue(c.Border.Width),
			Color:        c.Border.Color,
			Opacity:      floatValue(c.Border.Opacity),
			CornerRadius: floatValue(c.Border.CornerRadius),
		},
		ArrowLength:      floatValue(c.ArrowLength),
		ArrowWidth:       floatValue(c.ArrowWidth),
		PaddingLeftRight: floatValue(c.PaddingLeftRight),
		PaddingTopBottom: floatValue(c.PaddingTopBottom),
		OffsetX:          floatValue(c.OffsetX),
		OffsetY:          floatValue(c.OffsetY),
		Width:            floatValue(c.Width),
		Height:           floatValue(c.Height),
	}
}

// TooltipFormatObject returns the merged options as tooltip data, with the
// value text taken from the description.
func (i *Instance) TooltipFormatObject() tooltip.FormatObject {
	c := i.Config
	return tooltip.FormatObject{
		ValueText:   c.Description,
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		Text:        c.Text,
		Argument:    c.Argument,
		Value:       c.Value,
		Data:        c.Data,
	}
}

// TooltipParams returns the point, in chart coordinates, the tooltip
// attaches to for location. LocationCenter attaches to the anchor.
// LocationEdge attaches to the middle of the plaque edge facing away from
// the anchor, so the tooltip does not cover the plaque. Unknown locations
// and undrawn instances use the anchor.
func (i *Instance) TooltipParams(location string) scene.Point {
	if location != tooltip.LocationEdge || i.plaque == nil {
		return i.anchor.Point()
	}
	box := i.plaque.Box()
	if i.plaque.Flipped() {
		return scene.Point{X: box.X + box.W/2, Y: box.Bottom()}
	}
	return scene.Point{X: box.X + box.W/2, Y: box.Y}
}
