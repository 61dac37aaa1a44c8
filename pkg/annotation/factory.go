package annotation

import (
	"github.com/matzehuels/chartnote/pkg/render/styles"
)

// Annotation types.
const (
	TypeText  = "text"
	TypeImage = "image"
)

// DefaultImageLocation is used when an image annotation names no location.
const DefaultImageLocation = "center"

// Content is the drawable payload of an annotation: TextContent or
// ImageContent.
type Content interface {
	isContent()
}

// TextContent draws a single text line.
type TextContent struct {
	Text string
	Font styles.Font
}

// ImageContent draws a picture.
type ImageContent struct {
	URL           string
	Width, Height float64
	Location      string
}

func (TextContent) isContent()  {}
func (ImageContent) isContent() {}

// Placement is the part of a config that decides where an annotation sits.
type Placement struct {
	Name     string
	X, Y     *float64
	Argument any
	Value    any
	Axis     string
	Series   string
}

// Record is a typed annotation produced by a Factory.
type Record struct {
	Type    string
	Name    string
	Config  Config
	Content Content
}

// Placement returns the placement fields of the merged config.
func (r *Record) Placement() Placement {
	c := r.Config
	return Placement{
		Name: c.Name, X: c.X, Y: c.Y,
		Argument: c.Argument, Value: c.Value,
		Axis: c.Axis, Series: c.Series,
	}
}

// CustomizeFunc returns per-item overrides. It receives the item as
// written, before any merging.
type CustomizeFunc func(item Config) Config

// Factory turns configs into records.
type Factory interface {
	CreateAnnotations(items []Config, common Config, customize CustomizeFunc) []*Record
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(items []Config, common Config, customize CustomizeFunc) []*Record

// CreateAnnotations calls f.
func (f FactoryFunc) CreateAnnotations(items []Config, common Config, customize CustomizeFunc) []*Record {
	return f(items, common, customize)
}

// DefaultFactory is the Factory backed by CreateAnnotations.
var DefaultFactory Factory = FactoryFunc(CreateAnnotations)

// CreateAnnotation merges common, item and the result of customize(item),
// in that order, and builds the record for the merged type. ok is false
// for any type other than TypeText and TypeImage.
func CreateAnnotation(item, common Config, customize CustomizeFunc) (rec *Record, ok bool) {
	cfg := Merge(common, item)
	if customize != nil {
		cfg = Merge(cfg, customize(item))
	}

	var content Content
	switch cfg.Type {
	case TypeImage:
		img := cfg.Image
		if img.Location == "" {
			img.Location = DefaultImageLocation
		}
		content = ImageContent{URL: img.URL, Width: img.Width, Height: img.Height, Location: img.Location}
	case TypeText:
		content = TextContent{Text: cfg.Text, Font: cfg.Font}
	default:
		return nil, false
	}
	return &Record{Type: cfg.Type, Name: cfg.Name, Config: cfg, Content: content}, true
}

// CreateAnnotations builds records for items in order, dropping items
// whose type is not recognized.
func CreateAnnotations(items []Config, common Config, customize CustomizeFunc) []*Record {
	records := make([]*Record, 0, len(items))
	for _, item := range items {
		if rec, ok := CreateAnnotation(item, common, customize); ok {
			records = append(records, rec)
		}
	}
	return records
}
