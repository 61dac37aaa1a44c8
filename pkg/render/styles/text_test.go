package styles

import "testing"

func TestPatchFont(t *testing.T) {
	got := PatchFont(Font{Family: "Go", Size: 14, Weight: 600, Color: "#333", Opacity: 0.5})
	want := map[string]string{
		"font-family":  "Go",
		"font-size":    "14px",
		"font-weight":  "600",
		"fill":         "#333",
		"fill-opacity": "0.5",
	}
	if len(got) != len(want) {
		t.Fatalf("PatchFont = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}

	if css := PatchFont(Font{Opacity: 1}); len(css) != 0 {
		t.Errorf("opaque zero font should produce no CSS, got %v", css)
	}
}

func TestFontMerge(t *testing.T) {
	base := Font{Family: "Go", Size: 12, Color: "#000"}
	got := base.Merge(Font{Size: 16, Weight: 700})
	want := Font{Family: "Go", Size: 16, Weight: 700, Color: "#000"}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}

func TestInlineCSS(t *testing.T) {
	css := map[string]string{"fill": "red", "font-size": "12px", "font-family": "Go"}
	got := InlineCSS(css, "font-size")
	want := "font-size: 12px; fill: red; font-family: Go"
	if got != want {
		t.Errorf("InlineCSS = %q, want %q", got, want)
	}
}

func TestEscapeXML(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"a < b & c", "a &lt; b &amp; c"},
		{`"q"`, "&#34;q&#34;"},
	}
	for _, tt := range tests {
		if got := EscapeXML(tt.in); got != tt.want {
			t.Errorf("EscapeXML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
