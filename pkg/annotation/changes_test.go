package annotation

import (
	"slices"
	"testing"

	"github.com/matzehuels/chartnote/pkg/options"
)

func TestRegisterChanges(t *testing.T) {
	tests := []struct {
		name        string
		trigger     func(tr *options.Tracker)
		wantApplied []options.Code
	}{
		{
			name:        "items option",
			trigger:     func(tr *options.Tracker) { tr.OptionChanged("annotations") },
			wantApplied: []options.Code{CodeItems, CodeAnnotations},
		},
		{
			name:        "nested settings option",
			trigger:     func(tr *options.Tracker) { tr.OptionChanged("commonAnnotationSettings.font.size") },
			wantApplied: []options.Code{CodeSettings, CodeAnnotations},
		},
		{
			name:        "theme change",
			trigger:     func(tr *options.Tracker) { tr.ThemeChanged() },
			wantApplied: []options.Code{CodeAnnotations},
		},
		{
			name:        "both options in one pass",
			trigger:     func(tr *options.Tracker) { tr.OptionChanged("commonAnnotationSettings"); tr.OptionChanged("annotations") },
			wantApplied: []options.Code{CodeItems, CodeSettings, CodeAnnotations},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := options.NewRegistry()
			rebuilds := 0
			if err := RegisterChanges(reg, func() { rebuilds++ }); err != nil {
				t.Fatal(err)
			}
			tr := options.NewTracker(reg)
			tt.trigger(tr)
			res := tr.Apply()

			if !slices.Equal(res.Applied, tt.wantApplied) {
				t.Errorf("applied = %v, want %v", res.Applied, tt.wantApplied)
			}
			if rebuilds != 1 {
				t.Errorf("rebuilds = %d, want 1", rebuilds)
			}
			if !slices.Equal(res.Unhandled, []options.Code{options.ForceRender}) {
				t.Errorf("unhandled = %v, want [%s]", res.Unhandled, options.ForceRender)
			}
		})
	}
}

func TestRegisterChangesFontFields(t *testing.T) {
	reg := options.NewRegistry()
	if err := RegisterChanges(reg, func() {}); err != nil {
		t.Fatal(err)
	}
	if got := reg.FontFields(); !slices.Equal(got, []string{"commonAnnotationSettings.font"}) {
		t.Errorf("font fields = %v", got)
	}
	if err := RegisterChanges(reg, func() {}); err == nil {
		t.Error("registering twice should fail")
	}
}

func TestUnrelatedOptionIgnored(t *testing.T) {
	reg := options.NewRegistry()
	if err := RegisterChanges(reg, func() { t.Error("rebuild called") }); err != nil {
		t.Fatal(err)
	}
	tr := options.NewTracker(reg)
	if tr.OptionChanged("series") {
		t.Error("series option queued an annotation change")
	}
	if res := tr.Apply(); len(res.Applied) != 0 {
		t.Errorf("applied = %v", res.Applied)
	}
}
