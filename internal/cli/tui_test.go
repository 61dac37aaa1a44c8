package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/chartnote/pkg/render/sink"
)

func ptr(v float64) *float64 { return &v }

func testReport() *sink.Report {
	return &sink.Report{
		Source: "chart.yaml",
		Annotations: []sink.Placement{
			{Name: "peak", Type: "text", X: ptr(200), Y: ptr(150), Pane: "top", Drawn: true,
				Plaque: &sink.Rect{X: 150, Y: 100, W: 100, H: 30}, Data: map[string]any{"id": 7}},
			{Name: "lost", Type: "text"},
			{Type: "image", X: ptr(10), Y: ptr(10), Drawn: true},
		},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAnnotationListNavigation(t *testing.T) {
	var m tea.Model = NewAnnotationListModel(testReport())

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	if got := m.(AnnotationListModel).Cursor; got != 2 {
		t.Errorf("cursor after three downs = %d, want 2", got)
	}
	m, _ = m.Update(key("k"))
	if sel := m.(AnnotationListModel).Selected(); sel == nil || sel.Name != "lost" {
		t.Errorf("selected = %+v", sel)
	}
}

func TestAnnotationListSkippedFilter(t *testing.T) {
	var m tea.Model = NewAnnotationListModel(testReport())
	m, _ = m.Update(key("s"))

	lm := m.(AnnotationListModel)
	if !lm.OnlySkipped || len(lm.visible()) != 1 {
		t.Fatalf("visible = %v", lm.visible())
	}
	if sel := lm.Selected(); sel == nil || sel.Name != "lost" {
		t.Errorf("selected = %+v", sel)
	}
}

func TestAnnotationListQuit(t *testing.T) {
	_, cmd := NewAnnotationListModel(testReport()).Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestAnnotationListView(t *testing.T) {
	view := NewAnnotationListModel(testReport()).View()
	for _, want := range []string{"peak", "lost", "#2", "data.id", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestPlacementTable(t *testing.T) {
	out := placementTable(testReport().Annotations).Render()
	for _, want := range []string{"Name", "peak", "200", "—", "#2"} {
		if !strings.Contains(out, want) {
			t.Errorf("table lacks %q", want)
		}
	}
}
