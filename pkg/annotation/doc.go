// Package annotation places user-declared annotations on a chart.
//
// An annotation is declared with a [Config]: a type ("text" or "image"),
// a position given as data coordinates (argument, value, axis, series) or
// as pixels (x, y), and plaque styling. Items are merged over the common
// settings by a [Factory] into typed [Record] values.
//
// On every render pass [Resolve] turns the placement of each record into
// a screen [Anchor] and the pane it belongs to, falling back to axis
// positions and series lines when a data coordinate is missing. An
// [Instance] then draws a plaque pointing at the anchor and, when
// draggable, lets the pointer move it.
//
// A [Collection] owns the instances of one widget. It rebuilds them
// wholesale when options or the theme change, and shows the annotation
// tooltip on hover:
//
//	c := annotation.NewCollection(host, annotation.WithLogger(logger))
//	c.Build(annotation.Source{Items: items, Common: common, Tooltip: tt})
//	c.Render()
//
// Hosts register the change codes with [RegisterChanges] so that edits of
// the "annotations" and "commonAnnotationSettings" options, or a theme
// switch, lead to a rebuild followed by a forced render.
package annotation
