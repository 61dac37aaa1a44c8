package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/chartnote/pkg/annotation"
	"github.com/matzehuels/chartnote/pkg/chart"
	"github.com/matzehuels/chartnote/pkg/render/scene"
	"github.com/matzehuels/chartnote/pkg/widget"
)

func ptr[T any](v T) *T { return &v }

func testScene() *scene.Scene {
	s := scene.New(200, 100, scene.WithMeasurer(scene.Mono{CharWidth: 0.5, LineHeight: 1.25}))
	s.DefineClip("clip-top", scene.Rect{X: 10, Y: 10, W: 180, H: 80})
	g := s.G().SetAttr(scene.AttrClipPath, "clip-top").Translate(5, 0).Append(s.Root())
	s.Path([]scene.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}}, true).SetAttrs(map[string]string{
		scene.AttrFill:   "#ff0000",
		scene.AttrStroke: "#000000",
	}).Append(g)
	s.Text("a < b").CSS(map[string]string{"font-size": "12px", "fill": "#333333"}).SetPosition(30, 40).Append(g)
	s.Image(50, 50, 10, 10, "https://example.com/x.png", "fit").Append(g)
	s.G().Append(s.Root())
	return s
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene(), WithBackground("#ffffff"), WithTitle("Q&A"), WithInteraction()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="200" height="100">`,
		`<title>Q&amp;A</title>`,
		`<clipPath id="clip-top" clipPathUnits="userSpaceOnUse"><rect x="10" y="10" width="180" height="80"/></clipPath>`,
		`<rect x="0" y="0" width="200" height="100" fill="#ffffff"/>`,
		`<g transform="translate(5,0)" clip-path="url(#clip-top)">`,
		`<path d="M0 0 L20 0 L20 10 Z" fill="#ff0000" stroke="#000000"/>`,
		`>a &lt; b</text>`,
		`style="font-size: 12px; fill: #333333"`,
		`preserveAspectRatio="xMidYMid meet"`,
		`<style>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q\n%s", want, svg)
		}
	}
	if strings.Count(svg, "<g") != 1 {
		t.Errorf("empty groups should be skipped:\n%s", svg)
	}
}

func TestRenderSVGWithoutOptions(t *testing.T) {
	svg := string(RenderSVG(scene.New(10, 10)))
	for _, unwanted := range []string{"<title>", "<defs>", "<style>", "<rect"} {
		if strings.Contains(svg, unwanted) {
			t.Errorf("svg contains %q:\n%s", unwanted, svg)
		}
	}
}

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"full", "none"},
		{"fit", "xMidYMid meet"},
		{"center", "xMidYMid slice"},
		{"", "xMidYMid slice"},
	}
	for _, tt := range tests {
		if got := aspectRatio(tt.location); got != tt.want {
			t.Errorf("aspectRatio(%q) = %q, want %q", tt.location, got, tt.want)
		}
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{1.256, "1.26"},
		{-0.001, "0"},
		{150, "150"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testScene(), WithScale(1.5), WithPNGBackground("#ffffff"))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 150 {
		t.Errorf("size = %dx%d, want 300x150", b.Dx(), b.Dy())
	}

	if _, err := RenderPNG(testScene(), WithScale(0)); err == nil {
		t.Error("zero scale accepted")
	}
}

func TestPaint(t *testing.T) {
	if _, ok := paint("none", 1); ok {
		t.Error("none should not paint")
	}
	if _, ok := paint("", 1); ok {
		t.Error("empty should not paint")
	}
	c, ok := paint("#ff0000", 0.5)
	if !ok || c.R != 1 || c.A != 0.5 {
		t.Errorf("paint(#ff0000, 0.5) = %+v, %v", c, ok)
	}
}

func TestRenderJSON(t *testing.T) {
	w, err := widget.New(chart.Config{
		Width: 500, Height: 300,
		Margin:       &chart.Margin{Left: 50, Top: 50, Right: 50, Bottom: 50},
		Panes:        []chart.PaneConfig{{Name: "top"}},
		ArgumentAxis: chart.ArgumentAxisConfig{Type: chart.AxisContinuous, Min: 0.0, Max: 100.0},
		ValueAxes:    []chart.ValueAxisConfig{{Name: "price", Pane: "top", Min: ptr(0.0), Max: ptr(10.0)}},
	}, widget.WithMeasurer(scene.Mono{CharWidth: 0.5, LineHeight: 1.25}))
	if err != nil {
		t.Fatal(err)
	}
	w.SetAnnotations([]annotation.Config{
		{Type: annotation.TypeText, Name: "note", Text: "hi", Argument: 25.0, Value: 5.0, Axis: "price", Data: map[string]any{"id": 7}},
		{Type: annotation.TypeText, Name: "lost", Text: "?", Axis: "missing", Value: 5.0},
	})
	w.Render()

	data, err := RenderJSON(w.Renderer(), w.Annotations().Items(), WithJSONTheme("generic.light"), WithJSONIndent())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out Report
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 500 || out.Height != 300 {
		t.Errorf("size = %vx%v", out.Width, out.Height)
	}
	if out.Theme != "generic.light" {
		t.Errorf("Theme = %q", out.Theme)
	}
	if len(out.Panes) != 1 || out.Panes[0].Name != "chartnote-clip-top" {
		t.Errorf("Panes = %+v", out.Panes)
	}
	if len(out.Annotations) != 2 {
		t.Fatalf("Annotations count = %d, want 2", len(out.Annotations))
	}

	note := out.Annotations[0]
	if note.X == nil || *note.X != 150 || note.Y == nil || *note.Y != 150 {
		t.Errorf("note anchor = %v, %v", note.X, note.Y)
	}
	if !note.Drawn || note.Pane != "top" || note.Plaque == nil {
		t.Errorf("note = %+v", note)
	}
	if note.Data["id"] != 7.0 {
		t.Errorf("note data = %v", note.Data)
	}

	lost := out.Annotations[1]
	if lost.X != nil || lost.Y != nil || lost.Drawn || lost.Plaque != nil {
		t.Errorf("lost = %+v", lost)
	}
	if !strings.Contains(string(data), `"x": null`) {
		t.Errorf("undefined coordinates should encode as null:\n%s", data)
	}
}
