package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/chartnote/pkg/errors"
)

func TestBuiltins(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != GenericDark || names[1] != GenericLight {
		t.Fatalf("names = %v", names)
	}
	def, err := Get("")
	if err != nil {
		t.Fatal(err)
	}
	if def.Name != Default {
		t.Errorf("default theme = %q", def.Name)
	}
	if _, err := Get("neon"); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("unknown theme error = %v", err)
	}
}

func TestDarkOverridesLight(t *testing.T) {
	l, _ := Get(GenericLight)
	d, _ := Get(GenericDark)
	if d.Font.Family != l.Font.Family {
		t.Errorf("dark family = %q, want %q", d.Font.Family, l.Font.Family)
	}
	if d.Annotations.Color == l.Annotations.Color {
		t.Error("dark theme keeps the light annotation color")
	}
	if *d.Annotations.ArrowLength != 14 {
		t.Errorf("arrow length = %v", *d.Annotations.ArrowLength)
	}
	if d.Annotations.ArrowLength == l.Annotations.ArrowLength {
		t.Error("dark and light share option storage")
	}
}

func TestTooltipOptions(t *testing.T) {
	th, _ := Get(GenericLight)
	o := th.TooltipOptions()
	if !o.Enabled || o.Font.Family == "" || o.Font.Color != "#232323" {
		t.Errorf("tooltip options = %+v", o)
	}
}

func TestSeriesColorCycles(t *testing.T) {
	th := &Theme{Palette: []string{"a", "b"}}
	if got := th.SeriesColor(3); got != "b" {
		t.Errorf("SeriesColor(3) = %q", got)
	}
	if got := (&Theme{}).SeriesColor(0); got != "" {
		t.Errorf("empty palette = %q", got)
	}
}

func TestLoad(t *testing.T) {
	doc := `
name: corporate
base: generic.dark
background: "#101010"
commonAnnotationSettings:
  color: "#ff0000"
  border:
    width: 3
tooltip:
  enabled: false
`
	reg := NewRegistry()
	th, err := Load(strings.NewReader(doc), reg)
	if err != nil {
		t.Fatal(err)
	}
	if th.Background != "#101010" || th.Annotations.Color != "#ff0000" {
		t.Errorf("overrides not applied: %+v", th)
	}
	if *th.Annotations.Border.Width != 3 || th.Annotations.Border.Color != "#494949" {
		t.Errorf("border = width %v color %q, want merged over dark", *th.Annotations.Border.Width, th.Annotations.Border.Color)
	}
	if th.Tooltip.Enabled {
		t.Error("tooltip should be disabled")
	}
	if th.AxisColor != "#555555" {
		t.Errorf("axis color = %q, want inherited from dark", th.AxisColor)
	}

	base, _ := reg.Get(GenericDark)
	if *base.Annotations.Border.Width != 1 || base.Annotations.Color != "#2b2b2b" {
		t.Error("loading modified the base theme")
	}

	if err := reg.Register(th); err != nil {
		t.Fatal(err)
	}
	if got, err := reg.Get("corporate"); err != nil || got != th {
		t.Errorf("Get(corporate) = %v, %v", got, err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"no name", "background: red\n", errors.ErrCodeInvalidTheme},
		{"unknown base", "name: x\nbase: nope\n", errors.ErrCodeInvalidTheme},
		{"unknown field", "name: x\nshadow: true\n", errors.ErrCodeInvalidFormat},
		{"malformed", "name: [x\n", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), nil)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.yaml")
	if err := os.WriteFile(path, []byte("name: file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "file" || th.Background != "#ffffff" {
		t.Errorf("theme = %+v", th)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.yaml"), nil); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}
