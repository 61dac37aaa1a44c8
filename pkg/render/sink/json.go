package sink

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/matzehuels/chartnote/pkg/annotation"
	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/render/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme  string
	source string
	indent bool
}

// WithJSONTheme records the theme name in the output.
func WithJSONTheme(name string) JSONOption { return func(r *jsonRenderer) { r.theme = name } }

// WithJSONSource records the path of the document that produced the scene.
func WithJSONSource(path string) JSONOption { return func(r *jsonRenderer) { r.source = path } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// Report is the JSON document written by [RenderJSON].
type Report struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Theme       string      `json:"theme,omitempty"`
	Source      string      `json:"source,omitempty"`
	Panes       []Pane      `json:"panes,omitempty"`
	Annotations []Placement `json:"annotations"`
}

// Pane is a chart pane and its clip rectangle.
type Pane struct {
	Name   string `json:"name"`
	Bounds Rect   `json:"bounds"`
}

// Placement is the resolved position of one annotation. X and Y are nil
// when the coordinate could not be resolved.
type Placement struct {
	Name        string         `json:"name,omitempty"`
	Type        string         `json:"type"`
	X           *float64       `json:"x"`
	Y           *float64       `json:"y"`
	Pane        string         `json:"pane,omitempty"`
	Drawn       bool           `json:"drawn"`
	Plaque      *Rect          `json:"plaque,omitempty"`
	Flipped     bool           `json:"flipped,omitempty"`
	Description string         `json:"description,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// Rect is a rectangle in scene pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// RenderJSON exports the resolved placement of items: the anchor of each
// annotation (null for an undefined coordinate), its pane and, when drawn,
// the plaque box. Clip rectangles of s are exported as panes.
func RenderJSON(s *scene.Scene, items []*annotation.Instance, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := BuildReport(s, items, opts...)

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode annotations")
	}
	return data, nil
}

// BuildReport collects what [RenderJSON] encodes.
func BuildReport(s *scene.Scene, items []*annotation.Instance, opts ...JSONOption) Report {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := s.Size()
	out := Report{
		Width:       w,
		Height:      h,
		Theme:       r.theme,
		Source:      r.source,
		Panes:       buildPanes(s),
		Annotations: make([]Placement, 0, len(items)),
	}
	for _, inst := range items {
		out.Annotations = append(out.Annotations, buildAnnotation(inst))
	}
	return out
}

func buildPanes(s *scene.Scene) []Pane {
	clips := s.Clips()
	panes := make([]Pane, 0, len(clips))
	for _, id := range slices.Sorted(maps.Keys(clips)) {
		panes = append(panes, Pane{Name: id, Bounds: toRect(clips[id])})
	}
	return panes
}

func buildAnnotation(inst *annotation.Instance) Placement {
	a := inst.Anchor()
	out := Placement{
		Name:        inst.Name,
		Type:        inst.Type,
		Pane:        inst.Pane(),
		Drawn:       inst.Drawn(),
		Description: inst.Config.Description,
		Data:        inst.Config.Data,
	}
	if a.X.Valid {
		out.X = &a.X.Value
	}
	if a.Y.Valid {
		out.Y = &a.Y.Value
	}
	if p := inst.Plaque(); p != nil && inst.Drawn() {
		box := toRect(p.Box())
		out.Plaque = &box
		out.Flipped = p.Flipped()
	}
	return out
}

func toRect(r scene.Rect) Rect { return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }
