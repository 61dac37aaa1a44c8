package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/chartnote/pkg/cache"
	"github.com/matzehuels/chartnote/pkg/errors"
	cnio "github.com/matzehuels/chartnote/pkg/io"
	"github.com/matzehuels/chartnote/pkg/render/sink"
)

const doc = `theme: generic.light
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

func yamlOptions() Options {
	return Options{Document: []byte(doc), DocumentFormat: cnio.FormatYAML}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg, PNG ,json", []string{"svg", "png", "json"}},
		{"svg,,svg", []string{"svg"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := yamlOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v", opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no document", Options{}, errors.ErrCodeInvalidPath},
		{"bad format", Options{DocumentPath: "a.yaml", Formats: []string{"gif"}}, errors.ErrCodeInvalidInput},
		{"negative scale", Options{DocumentPath: "a.yaml", Scale: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 3, Interactive: true}
	if got := opts.ArtifactKeyOpts(FormatSVG, "generic.light"); got.Scale != 0 || !got.Interactive {
		t.Errorf("svg key opts = %+v", got)
	}
	if got := opts.ArtifactKeyOpts(FormatPNG, "generic.light"); got.Scale != 3 {
		t.Errorf("png key opts = %+v", got)
	}
}

func TestLoad(t *testing.T) {
	l, err := Load(yamlOptions())
	if err != nil {
		t.Fatal(err)
	}
	if l.Theme.Name != "generic.light" {
		t.Errorf("theme = %q", l.Theme.Name)
	}
	if len(l.Document.Annotations) != 2 {
		t.Errorf("annotations = %d", len(l.Document.Annotations))
	}

	opts := yamlOptions()
	opts.Theme = "generic.dark"
	dark, err := Load(opts)
	if err != nil {
		t.Fatal(err)
	}
	if dark.Theme.Name != "generic.dark" {
		t.Errorf("theme override = %q", dark.Theme.Name)
	}
	if dark.Hash == l.Hash {
		t.Error("hash ignores the theme")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(Options{DocumentPath: path})
	if err != nil {
		t.Fatal(err)
	}
	if l.Path != path {
		t.Errorf("Path = %q", l.Path)
	}

	_, err = Load(Options{DocumentPath: filepath.Join(dir, "missing.yaml")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	_, err = Load(Options{DocumentPath: filepath.Join(dir, "chart.txt")})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown extension error = %v", err)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := yamlOptions()
	opts.Formats = []string{FormatSVG, FormatPNG, FormatJSON}
	opts.Scale = 1

	res, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Annotations != 2 || res.Stats.Drawn != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.Problems) != 2 || !errors.Is(res.Problems[0], errors.ErrCodeUnknownAxis) {
		t.Errorf("Problems = %v", res.Problems)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact missing")
	}

	var report sink.Report
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Annotations) != 2 || !report.Annotations[0].Drawn || report.Annotations[1].Drawn {
		t.Errorf("report annotations = %+v", report.Annotations)
	}
}

func TestExecuteStrict(t *testing.T) {
	opts := yamlOptions()
	opts.Strict = true
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("strict error = %v", err)
	}
}

func TestExecuteCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	first, err := runner.Execute(context.Background(), yamlOptions())
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run hit the cache")
	}

	second, err := runner.Execute(context.Background(), yamlOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit || second.Widget != nil {
		t.Error("second run did not hit the cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	opts := yamlOptions()
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh hit the cache")
	}
}

func TestResolve(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)

	report, problems, hit, err := runner.Resolve(context.Background(), yamlOptions())
	if err != nil {
		t.Fatal(err)
	}
	if hit || len(problems) != 2 {
		t.Errorf("hit = %v, problems = %v", hit, problems)
	}
	peak := report.Annotations[0]
	if peak.X == nil || peak.Y == nil || *peak.X != 200 {
		t.Errorf("peak = %+v", peak)
	}

	cached, _, hit, err := runner.Resolve(context.Background(), yamlOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !hit || len(cached.Annotations) != 2 {
		t.Errorf("second resolve hit = %v, annotations = %d", hit, len(cached.Annotations))
	}
}
