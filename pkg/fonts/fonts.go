// Package fonts provides the font used to measure and rasterize annotation
// text.
//
// The Go Regular font from golang.org/x/image is compiled into the binary,
// so measurement and PNG output work without system fonts. SVG output
// names the same family with generic fallbacks.
package fonts

import (
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for renderers without the embedded font.
const FallbackFontFamily = `'Go', 'Segoe UI', 'Helvetica Neue', Arial, sans-serif`

var (
	sourceOnce sync.Once
	source     *text.FontSource
	sourceErr  error

	facesMu sync.Mutex
	faces   = map[float64]text.Face{}
)

// Source returns the parsed embedded font. The result is computed once.
func Source() (*text.FontSource, error) {
	sourceOnce.Do(func() {
		source, sourceErr = text.NewFontSource(goregular.TTF)
	})
	return source, sourceErr
}

// Face returns a face of the embedded font at size points. Faces are cached
// per size. It returns nil when the font cannot be parsed.
func Face(size float64) text.Face {
	src, err := Source()
	if err != nil {
		return nil
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[size]; ok {
		return f
	}
	f := src.Face(size)
	faces[size] = f
	return f
}

// Measure returns the advance width and line height of s at size points.
// Without a usable font it falls back to an average glyph width estimate.
func Measure(s string, size float64) (w, h float64) {
	if f := Face(size); f != nil {
		return text.Measure(s, f)
	}
	return float64(len([]rune(s))) * size * 0.55, size * 1.2
}
