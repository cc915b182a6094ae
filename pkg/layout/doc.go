// Package layout is the tiered-grid layout engine for career-path graphs.
//
// [Compute] is a pure function from a hierarchy and interaction state
// (expanded tiers, position overrides, spacing mode) to a render-ready list
// of nodes and edges. Identical inputs always produce identical output: the
// same node order and the same coordinates.
//
// # Geometry
//
// The root sits at [RootDefault]. Tiers form one horizontal row at [TierY],
// centered on x = 0 and spaced by the mode's TierGap. The leaves of an
// expanded tier form a grid [LeafOffsetY] below the tier node, with a fixed
// number of columns per row; every row, including a short last row, is
// centered on the tier's x.
//
//	             root
//	       /      |      \
//	   tier-1   tier-2   tier-3
//	  a  b  c
//	   d  e
//
// Leaf defaults are relative to the tier's effective position, so dragging a
// tier moves its collapsed-then-expanded leaves with it.
//
// # Overrides
//
// An override for a node id always wins over the computed default. Format
// writes its whole result as overrides so that a later plain recompute
// reproduces it exactly.
//
// # Node Order
//
// Nodes are emitted as [root, tiers in catalog order, leaves grouped by tier
// in catalog order]. Edges are every root->tier edge in tier order followed by
// one tier->leaf edge per visible leaf.
//
// # Serialization
//
// [Layout] is also the wire format written by the CLI ("layout.json"); see
// [Marshal], [Unmarshal], [WriteFile], and [ReadFile].
package layout
