// Package options tracks which widget options changed and runs the handlers
// registered for them.
//
// Components register a [Change] per code. A change is triggered by an
// option name (for option-driven changes), by a theme switch (for
// theme-dependent changes), or by another handler requesting it. A
// [Tracker] collects pending codes and [Tracker.Apply] runs the handlers in
// registration order until nothing is pending. Codes nobody registered,
// such as [ForceRender], are returned to the widget to act on.
package options

import (
	"slices"
	"strings"

	"github.com/matzehuels/chartnote/pkg/errors"
)

// Code identifies a change.
type Code string

// ForceRender asks the widget to redraw.
const ForceRender Code = "FORCE_RENDER"

// Requester lets a handler queue further changes in the same pass.
type Requester interface {
	Request(codes ...Code)
}

// Change is a registered change handler.
type Change struct {
	Code Code
	// Option is the top-level option name that triggers the change.
	Option string
	// ThemeDependent changes run when the theme changes.
	ThemeDependent bool
	Handler        func(r Requester)
}

// Registry holds the changes of one widget type.
type Registry struct {
	changes    []Change
	fontFields []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Add registers a change. Codes must be unique.
func (r *Registry) Add(c Change) error {
	if c.Code == "" {
		return errors.New(errors.ErrCodeInvalidInput, "change without a code")
	}
	if r.index(c.Code) >= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "change %s already registered", c.Code)
	}
	r.changes = append(r.changes, c)
	return nil
}

// Codes returns the registered codes in registration order.
func (r *Registry) Codes() []Code {
	codes := make([]Code, len(r.changes))
	for i, c := range r.changes {
		codes[i] = c.Code
	}
	return codes
}

// Lookup returns the change registered for code.
func (r *Registry) Lookup(code Code) (Change, bool) {
	if i := r.index(code); i >= 0 {
		return r.changes[i], true
	}
	return Change{}, false
}

// AddFontFields declares option paths that hold font blocks.
func (r *Registry) AddFontFields(paths ...string) {
	for _, p := range paths {
		if !slices.Contains(r.fontFields, p) {
			r.fontFields = append(r.fontFields, p)
		}
	}
}

// FontFields returns the declared font option paths.
func (r *Registry) FontFields() []string { return slices.Clone(r.fontFields) }

func (r *Registry) index(code Code) int {
	return slices.IndexFunc(r.changes, func(c Change) bool { return c.Code == code })
}

// Tracker collects pending changes for one widget instance.
type Tracker struct {
	reg     *Registry
	pending []Code
}

// NewTracker returns a tracker over reg.
func NewTracker(reg *Registry) *Tracker { return &Tracker{reg: reg} }

// Request queues codes. Duplicates collapse.
func (t *Tracker) Request(codes ...Code) {
	for _, c := range codes {
		if !slices.Contains(t.pending, c) {
			t.pending = append(t.pending, c)
		}
	}
}

// OptionChanged queues the change bound to the top-level segment of path.
// It reports whether any change was queued.
func (t *Tracker) OptionChanged(path string) bool {
	name, _, _ := strings.Cut(path, ".")
	queued := false
	for _, c := range t.reg.changes {
		if c.Option != "" && c.Option == name {
			t.Request(c.Code)
			queued = true
		}
	}
	return queued
}

// ThemeChanged queues every theme-dependent change.
func (t *Tracker) ThemeChanged() {
	for _, c := range t.reg.changes {
		if c.ThemeDependent {
			t.Request(c.Code)
		}
	}
}

// Pending returns the queued codes.
func (t *Tracker) Pending() []Code { return slices.Clone(t.pending) }

// Result reports what an Apply pass did.
type Result struct {
	// Applied lists the handlers run, in order.
	Applied []Code
	// Unhandled lists requested codes without a registered change.
	Unhandled []Code
}

// Has reports whether code was applied or left unhandled.
func (r Result) Has(code Code) bool {
	return slices.Contains(r.Applied, code) || slices.Contains(r.Unhandled, code)
}

// Apply runs pending handlers in registration order. Handlers may request
// more codes; each code runs at most once per pass.
func (t *Tracker) Apply() Result {
	var res Result
	done := map[Code]bool{}
	for len(t.pending) > 0 {
		progressed := false
		for _, c := range t.reg.changes {
			if done[c.Code] || !slices.Contains(t.pending, c.Code) {
				continue
			}
			t.pending = slices.DeleteFunc(t.pending, func(p Code) bool { return p == c.Code })
			done[c.Code] = true
			res.Applied = append(res.Applied, c.Code)
			if c.Handler != nil {
				c.Handler(t)
			}
			progressed = true
			break
		}
		if progressed {
			continue
		}
		for _, p := range t.pending {
			if !done[p] && !slices.Contains(res.Unhandled, p) {
				if _, ok := t.reg.Lookup(p); !ok {
					res.Unhandled = append(res.Unhandled, p)
				}
			}
		}
		t.pending = nil
	}
	return res
}
