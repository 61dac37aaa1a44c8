package options

import (
	"slices"
	"testing"

	"github.com/matzehuels/chartnote/pkg/errors"
)

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(Change{Code: "A"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(Change{Code: "A"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate add = %v, want invalid input", err)
	}
	if err := r.Add(Change{}); err == nil {
		t.Error("add without code should fail")
	}
	if err := r.Add(Change{Code: "B"}); err != nil {
		t.Fatal(err)
	}
	if got := r.Codes(); !slices.Equal(got, []Code{"A", "B"}) {
		t.Errorf("codes = %v", got)
	}
	if _, ok := r.Lookup("C"); ok {
		t.Error("lookup of unknown code succeeded")
	}
}

func TestFontFieldsDeduplicated(t *testing.T) {
	r := NewRegistry()
	r.AddFontFields("title.font", "legend.font")
	r.AddFontFields("title.font")
	got := r.FontFields()
	if !slices.Equal(got, []string{"title.font", "legend.font"}) {
		t.Errorf("font fields = %v", got)
	}
	got[0] = "mutated"
	if r.FontFields()[0] != "title.font" {
		t.Error("FontFields exposes internal storage")
	}
}

func TestApplyOrder(t *testing.T) {
	var calls []Code
	record := func(c Code, next ...Code) func(Requester) {
		return func(r Requester) {
			calls = append(calls, c)
			r.Request(next...)
		}
	}
	reg := NewRegistry()
	for _, c := range []Change{
		{Code: "LAYOUT", Handler: record("LAYOUT", ForceRender)},
		{Code: "ITEMS", Option: "items", Handler: record("ITEMS", "LAYOUT", "DATA")},
		{Code: "DATA", ThemeDependent: true, Handler: record("DATA", "LAYOUT")},
	} {
		if err := reg.Add(c); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name      string
		trigger   func(tr *Tracker)
		want      []Code
		unhandled []Code
	}{
		{
			name:      "option change",
			trigger:   func(tr *Tracker) { tr.OptionChanged("items.0.name") },
			want:      []Code{"ITEMS", "LAYOUT", "DATA"},
			unhandled: []Code{ForceRender},
		},
		{
			name:      "theme change",
			trigger:   func(tr *Tracker) { tr.ThemeChanged() },
			want:      []Code{"DATA", "LAYOUT"},
			unhandled: []Code{ForceRender},
		},
		{
			name:      "explicit request",
			trigger:   func(tr *Tracker) { tr.Request("LAYOUT", "LAYOUT") },
			want:      []Code{"LAYOUT"},
			unhandled: []Code{ForceRender},
		},
		{
			name:    "nothing pending",
			trigger: func(*Tracker) {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = nil
			tr := NewTracker(reg)
			tt.trigger(tr)
			res := tr.Apply()

			if !slices.Equal(res.Applied, tt.want) {
				t.Errorf("applied = %v, want %v", res.Applied, tt.want)
			}
			if !slices.Equal(calls, tt.want) {
				t.Errorf("handler calls = %v, want %v", calls, tt.want)
			}
			if !slices.Equal(res.Unhandled, tt.unhandled) {
				t.Errorf("unhandled = %v, want %v", res.Unhandled, tt.unhandled)
			}
			if len(tr.Pending()) != 0 {
				t.Errorf("pending after apply = %v", tr.Pending())
			}
		})
	}
}

func TestResultHas(t *testing.T) {
	res := Result{Applied: []Code{"A"}, Unhandled: []Code{ForceRender}}
	if !res.Has("A") || !res.Has(ForceRender) || res.Has("B") {
		t.Errorf("Has mismatch for %+v", res)
	}
}
