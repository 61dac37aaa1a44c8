// Package sink provides output format renderers for annotated charts.
//
// # Overview
//
// A "sink" walks a drawn [scene.Scene] and turns it into a final output
// format:
//
//   - SVG: standalone vector output with clip paths and optional hover styles
//   - PNG: raster output drawn with gogpu/gg and the embedded Go font
//   - PDF: print output (requires rsvg-convert)
//   - JSON: resolved annotation anchors and plaque boxes for external tools
//
// Sinks only read the scene. Render the widget first:
//
//	w.Render()
//	svg := sink.RenderSVG(w.Renderer(),
//	    sink.WithBackground(w.Theme().Background),
//	    sink.WithInteraction(),
//	)
//
// # PNG Output
//
// [RenderPNG] rasterizes paths and text itself, so no external tool is
// needed. Image annotations are drawn as placeholders of their box because
// pictures are never fetched during rendering.
//
//	png, err := sink.RenderPNG(w.Renderer(), sink.WithScale(2))
//
// # JSON Output
//
// [RenderJSON] exports what resolution decided for every annotation:
//
//	data, err := sink.RenderJSON(w.Renderer(), w.Annotations().Items(),
//	    sink.WithJSONTheme(w.Theme().Name),
//	)
//
// Undefined coordinates encode as null and undrawn annotations carry no
// plaque box.
//
// [scene.Scene]: github.com/matzehuels/chartnote/pkg/render/scene#Scene
package sink
