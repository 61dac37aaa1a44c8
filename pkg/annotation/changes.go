package annotation

import "github.com/matzehuels/chartnote/pkg/options"

// Change codes registered by annotations.
const (
	CodeItems       options.Code = "ANNOTATIONITEMS"
	CodeSettings    options.Code = "ANNOTATIONSSETTINGS"
	CodeAnnotations options.Code = "ANNOTATIONS"
)

// Option names that trigger annotation changes.
const (
	OptionItems    = "annotations"
	OptionSettings = "commonAnnotationSettings"
)

// FontFields lists the option paths holding annotation fonts. Hosts merge
// the theme font into them.
var FontFields = []string{OptionSettings + ".font"}

// RegisterChanges adds the annotation changes to r. Changing the items or
// the common settings requests CodeAnnotations, which calls rebuild and
// requests a forced render. CodeAnnotations also runs on theme changes.
func RegisterChanges(r *options.Registry, rebuild func()) error {
	changes := []options.Change{
		{
			Code:    CodeItems,
			Option:  OptionItems,
			Handler: func(req options.Requester) { req.Request(CodeAnnotations) },
		},
		{
			Code:    CodeSettings,
			Option:  OptionSettings,
			Handler: func(req options.Requester) { req.Request(CodeAnnotations) },
		},
		{
			Code:           CodeAnnotations,
			ThemeDependent: true,
			Handler: func(req options.Requester) {
				rebuild()
				req.Request(options.ForceRender)
			},
		},
	}
	for _, c := range changes {
		if err := r.Add(c); err != nil {
			return err
		}
	}
	r.AddFontFields(FontFields...)
	return nil
}
