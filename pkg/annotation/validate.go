package annotation

import (
	"fmt"

	"github.com/matzehuels/chartnote/pkg/chart"
	"github.com/matzehuels/chartnote/pkg/errors"
)

// Validate checks items the way a build would consume them and reports
// every problem a render would silently skip: unknown types, bad image
// URLs, references to unknown axes or series and anchors that cannot be
// resolved. cs may be nil, in which case only explicit X and Y count.
func Validate(items []Config, common Config, customize CustomizeFunc, cs chart.CoordinateSystem) errors.List {
	var errs errors.List
	for i, item := range items {
		rec, ok := CreateAnnotation(item, common, customize)
		if !ok {
			merged := Merge(common, item)
			errs = append(errs, errors.New(errors.ErrCodeInvalidAnnotation,
				"%s: unknown type %q", label(i, merged.Name), merged.Type))
			continue
		}
		at := label(i, rec.Name)

		if img, ok := rec.Content.(ImageContent); ok {
			if err := errors.ValidateImageURL(img.URL); err != nil {
				errs = append(errs, errors.Wrap(errors.ErrCodeInvalidAnnotation, err, "%s: image", at))
			}
		}

		p := rec.Placement()
		var res Resolution
		if cs == nil {
			res = ResolveScreen(p)
		} else {
			if p.Axis != "" && cs.ValueAxis(p.Axis) == nil {
				errs = append(errs, errors.New(errors.ErrCodeUnknownAxis, "%s: unknown axis %q", at, p.Axis))
			}
			if p.Series != "" && findSeries(cs, p.Series) == nil {
				errs = append(errs, errors.New(errors.ErrCodeUnknownSeries, "%s: unknown series %q", at, p.Series))
			}
			res = Resolve(p, cs)
		}
		if !res.Anchor.Complete() {
			errs = append(errs, errors.New(errors.ErrCodeUnresolvedAnchor,
				"%s: anchor unresolved (x defined: %t, y defined: %t)", at, res.Anchor.X.Valid, res.Anchor.Y.Valid))
		}
	}
	return errs
}

func label(i int, name string) string {
	if name != "" {
		return fmt.Sprintf("annotation %d (%s)", i, name)
	}
	return fmt.Sprintf("annotation %d", i)
}
