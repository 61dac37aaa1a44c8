// Package scene is the retained-mode drawing tree that chart widgets and
// annotations build into and that output sinks walk.
//
// A [Scene] owns a root group. Elements are created detached (G, Path, Text,
// Image) and attached with [Element.Append]. Groups carry a translation so a
// plaque can be moved without rebuilding its children.
//
// # Events
//
// Pointer input enters through [Scene.PointerMove], [Scene.PointerDown] and
// [Scene.PointerUp] in page coordinates (chart coordinates plus the root
// offset). Move events bubble from the hit element up to the root, the way
// DOM events do, so a single root listener sees every move with the deepest
// element as [Event.Target]. A pointer down on an element whose ancestor
// chain carries drag-start listeners starts a drag; subsequent moves are
// delivered as [EventDrag] to that element until the pointer is released.
//
// Listener registration returns a [Handle]; removing the handle is the only
// way to unbind a single listener.
package scene
