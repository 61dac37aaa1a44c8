package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `theme: generic.light
chart:
  width: 400
  height: 300
  margin: {left: 50, top: 50, right: 50, bottom: 50}
  panes: [{name: top}]
  argumentAxis: {type: continuous, min: 0, max: 100}
  valueAxes: [{name: price, pane: top, min: 0, max: 10}]
  series:
    - {name: rev, axis: price, points: [{argument: 0, value: 0}, {argument: 100, value: 10}]}
annotations:
  - {type: text, name: peak, text: peak, argument: 50, series: rev}
  - {type: text, name: lost, text: lost, value: 5, axis: missing}
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "chart.yaml", "chart"},
		{"", "dir/chart.toml", "dir/chart"},
		{"out.svg", "chart.yaml", "out"},
		{"out.png", "chart.yaml", "out"},
		{"out", "chart.yaml", "out"},
		{"out.txt", "chart.yaml", "out.txt"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, format string
		multiple       bool
		want           string
	}{
		{"", "svg", false, "chart.svg"},
		{"x.svg", "svg", false, "x.svg"},
		{"-", "svg", false, "-"},
		{"x.svg", "png", true, "x.png"},
		{"", "json", true, "chart.json"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, "chart.yaml", tt.format, tt.multiple); got != tt.want {
			t.Errorf("outputPath(%q, %s, %v) = %q, want %q", tt.output, tt.format, tt.multiple, got, tt.want)
		}
	}
}

func TestRunRender(t *testing.T) {
	input := writeSample(t)
	c := New(&bytes.Buffer{}, LogInfo)
	opts := renderOpts{
		formats: "svg,json",
		scale:   1,
		cache:   cacheFlags{noCache: true},
	}
	if err := c.runRender(context.Background(), input, opts); err != nil {
		t.Fatal(err)
	}

	base := basePath("", input)
	for _, ext := range []string{".svg", ".json"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Fatalf("output %s: %v", ext, err)
		}
		if len(data) == 0 {
			t.Errorf("output %s is empty", ext)
		}
	}
}

func TestRunRenderStrict(t *testing.T) {
	input := writeSample(t)
	c := New(&bytes.Buffer{}, LogInfo)
	opts := renderOpts{
		docOpts: docOpts{strict: true},
		formats: "svg",
		cache:   cacheFlags{noCache: true},
	}
	if err := c.runRender(context.Background(), input, opts); err == nil {
		t.Error("strict render of a document with problems succeeded")
	}
}

func TestRunRenderBadFormat(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	opts := renderOpts{formats: "gif", cache: cacheFlags{noCache: true}}
	if err := c.runRender(context.Background(), "chart.yaml", opts); err == nil {
		t.Error("unknown format accepted")
	}
}
