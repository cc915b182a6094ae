// Package view is the interaction state machine that sits between user input
// and a node-link renderer.
//
// A [Graph] owns one graph instance's state: the set of expanded tiers
// ([ExpansionSet]), explicit node positions ([Overrides]), and the spacing
// mode. Every state change recomputes the layout with [layout.Compute] and,
// unless a node is being dragged, pushes the result to the [Renderer].
//
// # Drag
//
// A drag is DragStart, any number of DragMove calls, and one DragStop. While
// a drag is active the displayed layout is frozen: only the dragged node
// moves, and only to the positions the renderer reports. DragStop commits the
// drop position as an override so the next layout pass reproduces it.
// Non-finite drop positions are rejected and the node snaps back.
//
// # Format and Reset
//
// Format switches to the wide spacing preset and writes the resulting
// positions of every visible node as overrides. Reset clears expansion,
// overrides, and spacing. Both return a channel that is closed once the
// change is committed and the viewport fit has been requested; the fit runs
// through the graph's [Scheduler] so hosts can run it after their next paint.
//
// # Handshake
//
// Hosts that need Reset and Format handles before the graph has data register
// with [Graph.OnReady]; the callback fires once the hierarchy is loaded.
//
// A Graph is safe for concurrent use. Renderer calls, scheduled
// continuations, and ready callbacks run outside its lock, so they may call
// back into the Graph.
package view
