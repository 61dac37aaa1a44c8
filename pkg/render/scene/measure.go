package scene

import "unicode/utf8"

// Mono measures text as if every rune had the same advance. It is used by
// tests and by headless callers that must not depend on font metrics.
type Mono struct {
	// CharWidth is the advance of one rune at size 1.
	CharWidth float64
	// LineHeight is the line height at size 1.
	LineHeight float64
}

// Measure implements Measurer.
func (m Mono) Measure(s string, size float64) (w, h float64) {
	if s == "" {
		return 0, 0
	}
	return float64(utf8.RuneCountInString(s)) * m.CharWidth * size, m.LineHeight * size
}
