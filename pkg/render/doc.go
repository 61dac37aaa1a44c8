// Package render holds the drawing side of chartnote.
//
// # Overview
//
// Charts, annotations and tooltips draw into a retained [scene.Scene]: a
// tree of groups, paths, text and images with attributes, style properties
// and pointer listeners. The scene is format neutral. Output formats are
// produced by the [sink] subpackage, which walks the tree.
//
// Subpackages:
//   - [scene]: the drawing tree, hit testing and pointer dispatch
//   - [plaque]: the callout shape (box plus arrow) annotations and
//     tooltips are drawn in
//   - [styles]: font options and CSS helpers shared by scene and sinks
//   - [sink]: SVG, PNG, PDF and JSON output
//
// # Format Conversion
//
// [ToPDF] converts SVG to PDF using the external rsvg-convert tool (from
// librsvg). PNG output does not need it; [sink.RenderPNG] rasterizes the
// scene directly.
//
//	svg := sink.RenderSVG(w.Renderer())
//	pdf, err := render.ToPDF(svg)
//
// [scene]: github.com/matzehuels/chartnote/pkg/render/scene
// [plaque]: github.com/matzehuels/chartnote/pkg/render/plaque
// [styles]: github.com/matzehuels/chartnote/pkg/render/styles
// [sink]: github.com/matzehuels/chartnote/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/chartnote/pkg/render/sink#RenderPNG
// [scene.Scene]: github.com/matzehuels/chartnote/pkg/render/scene#Scene
package render
