package chart

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"time"
)

// Linear maps a numeric domain onto a pixel range. Start is the pixel of
// Min, End the pixel of Max; End may be smaller than Start for inverted
// axes.
type Linear struct {
	Min, Max   float64
	Start, End float64
}

// Translate implements Translator.
func (l Linear) Translate(v any) (float64, bool) {
	f, ok := ToFloat(v)
	if !ok {
		return 0, false
	}
	return l.scale(f), true
}

func (l Linear) scale(f float64) float64 {
	if l.Max == l.Min {
		return (l.Start + l.End) / 2
	}
	return l.Start + (f-l.Min)/(l.Max-l.Min)*(l.End-l.Start)
}

// Range implements Ranger.
func (l Linear) Range() (float64, float64) { return l.Start, l.End }

// Category places each category in the middle of an equal band.
type Category struct {
	Categories []string
	Start, End float64
}

// Translate implements Translator. Numbers are accepted when their string
// form names a category.
func (c Category) Translate(v any) (float64, bool) {
	key, ok := categoryKey(v)
	if !ok {
		return 0, false
	}
	i := slices.Index(c.Categories, key)
	if i < 0 {
		return 0, false
	}
	band := (c.End - c.Start) / float64(len(c.Categories))
	return c.Start + band*(float64(i)+0.5), true
}

// Range implements Ranger.
func (c Category) Range() (float64, float64) { return c.Start, c.End }

// DateTime maps times linearly onto a pixel range.
type DateTime struct {
	Min, Max   time.Time
	Start, End float64
}

// Translate implements Translator. Strings are parsed as RFC 3339 or
// YYYY-MM-DD dates.
func (d DateTime) Translate(v any) (float64, bool) {
	t, ok := ToTime(v)
	if !ok {
		return 0, false
	}
	l := Linear{Min: unixf(d.Min), Max: unixf(d.Max), Start: d.Start, End: d.End}
	return l.scale(unixf(t)), true
}

// Range implements Ranger.
func (d DateTime) Range() (float64, float64) { return d.Start, d.End }

func unixf(t time.Time) float64 { return float64(t.UnixMilli()) }

// ToFloat converts the numeric types produced by the JSON, YAML and TOML
// decoders to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// ToTime converts times and date strings.
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if p, err := time.Parse(layout, t); err == nil {
				return p, true
			}
		}
	}
	return time.Time{}, false
}

func categoryKey(v any) (string, bool) {
	switch k := v.(type) {
	case string:
		return k, true
	case nil:
		return "", false
	}
	if f, ok := ToFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}
