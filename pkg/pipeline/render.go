package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/observability"
	"github.com/matzehuels/chartnote/pkg/render/sink"
	"github.com/matzehuels/chartnote/pkg/widget"
)

// Render generates the artifacts of a rendered widget in every requested
// format. It does not touch the cache; see [Runner.Execute].
func (r *Runner) Render(ctx context.Context, w *widget.Widget, l *Loaded, opts Options) (artifacts map[string][]byte, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	s := w.Renderer()
	th := w.Theme()
	svgOpts := []sink.SVGOption{sink.WithBackground(th.Background)}
	if l.Path != "" {
		svgOpts = append(svgOpts, sink.WithTitle(l.Path))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(s, sink.WithScale(opts.Scale), sink.WithPNGBackground(th.Background))
		case FormatPDF:
			data, err = sink.RenderPDF(s, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(s, w.Annotations().Items(), reportOptions(th.Name, l.Path)...)
		default:
			err = errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}

func reportOptions(themeName, path string) []sink.JSONOption {
	return []sink.JSONOption{
		sink.WithJSONTheme(themeName),
		sink.WithJSONSource(path),
		sink.WithJSONIndent(),
	}
}
