// Package pkg provides the core libraries of chartnote, a chart annotation
// engine.
//
// # Overview
//
// Chartnote places notes on charts. An annotation names a data coordinate
// (an argument, a value, an axis or a series) or a screen point; chartnote
// resolves it against the chart's axes into a pixel anchor and draws a
// plaque, a box with an arrow pointing at the anchor, carrying text or an
// image. Hovering a plaque shows its tooltip.
//
// # Architecture
//
// The typical data flow:
//
//	Chart document (YAML, TOML or JSON)
//	         ↓
//	    [io] package (decode + validate document)
//	         ↓
//	    [widget] package (chart + annotation collection + tooltip)
//	         ↓
//	    [render/scene] package (retained drawing tree)
//	         ↓
//	    SVG/PNG/PDF/JSON output ([render/sink])
//
// [pipeline] runs this flow end to end, backed by [cache].
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    DocumentPath: "chart.yaml",
//	    Formats:      []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("chart.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
//
// # Main Packages
//
//   - [chart]: panes, axes, translators and series; the coordinate system
//     annotations resolve against
//   - [annotation]: annotation configs, the factory, anchor resolution,
//     instances and the collection that owns them
//   - [tooltip]: the hover tooltip shared by series and annotations
//   - [options]: change tracking that rebuilds annotations when options or
//     the theme change
//   - [theme]: named themes and their annotation and tooltip defaults
//   - [widget]: the host tying chart, annotations, tooltip and scene together
//   - [render]: the scene, the plaque shape, styles and output sinks
//   - [io]: document import and export
//   - [pipeline]: load, build, render and resolve with caching
//   - [cache]: file, Redis and null caches with scoped keys
//   - [session]: stored documents for the HTTP server
//   - [httputil]: JSON responses and request decoding for the HTTP server
//   - [errors]: coded errors shared by every package
//   - [observability]: hooks for build, resolve and render events
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/chart
// [annotation]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/annotation
// [tooltip]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/tooltip
// [options]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/options
// [theme]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/theme
// [widget]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/widget
// [render]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/render
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/render/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/render/sink
// [io]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/session
// [httputil]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/chartnote/pkg/observability
package pkg
