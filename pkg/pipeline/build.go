package pipeline

import (
	"context"

	"github.com/matzehuels/chartnote/pkg/annotation"
	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/widget"
)

// Build creates and renders the widget of a loaded document and validates
// its annotations against the chart. Validation problems are returned, not
// treated as failure; the widget skips what it cannot place.
func (r *Runner) Build(ctx context.Context, l *Loaded, opts Options) (*widget.Widget, errors.List, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	wopts := append([]widget.Option{
		widget.WithLogger(opts.Logger),
		widget.WithContext(ctx),
		widget.WithTheme(l.Theme),
	}, opts.WidgetOptions...)
	w, err := widget.New(l.Document.Chart, wopts...)
	if err != nil {
		return nil, nil, err
	}

	doc := l.Document
	w.BeginUpdate()
	w.SetCommonAnnotationSettings(doc.CommonAnnotationSettings)
	w.SetAnnotations(doc.Annotations)
	w.EndUpdate()
	w.Render()

	problems := annotation.Validate(doc.Annotations, doc.CommonAnnotationSettings, nil, w.Chart())
	for _, p := range problems {
		opts.Logger.Warn("annotation problem", "error", errors.UserMessage(p))
	}
	return w, problems, nil
}
