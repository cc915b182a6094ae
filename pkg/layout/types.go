package layout

import (
	"fmt"
	"math"
)

// Node kinds.
const (
	KindRoot = "root"
	KindTier = "tier"
	KindLeaf = "leaf"
)

// Edge style tags.
const (
	StyleRootTier = "root-tier"
	StyleTierLeaf = "tier-leaf"
)

// Fixed geometry shared by every spacing mode.
const (
	TierY       = 220.0
	LeafOffsetY = 150.0
)

// RootDefault is the root's position when it has no override.
var RootDefault = Point{X: 0, Y: 40}

// Point is a position in layout coordinates (y grows downwards).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are neither NaN nor infinite.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Node is one render-ready node.
type Node struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Data     NodeData `json:"data"`
	Position Point    `json:"position"`
}

// NodeData is the display payload of a node. Which fields are set depends on
// the node kind.
type NodeData struct {
	Label       string `json:"label,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Expanded    bool   `json:"expanded,omitempty"`     // tier
	TierID      string `json:"tier_id,omitempty"`      // leaf
	LeafID      string `json:"leaf_id,omitempty"`      // leaf
	Code        string `json:"code,omitempty"`         // leaf
	Title       string `json:"title,omitempty"`        // leaf
	Description string `json:"description,omitempty"` // leaf
}

// Edge connects two node ids. Style distinguishes root->tier from tier->leaf.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Style  string `json:"style"`
}

// Layout is the output of one layout pass.
type Layout struct {
	GraphID string      `json:"graph_id"`
	Mode    SpacingMode `json:"mode"`
	Nodes   []Node      `json:"nodes"`
	Edges   []Edge      `json:"edges"`
}

// Clone returns a copy of l that shares no slices with it.
func (l Layout) Clone() Layout {
	out := l
	out.Nodes = append([]Node(nil), l.Nodes...)
	out.Edges = append([]Edge(nil), l.Edges...)
	return out
}

// Node returns the node with the given id.
func (l Layout) Node(id string) (Node, bool) {
	if i := l.index(id); i >= 0 {
		return l.Nodes[i], true
	}
	return Node{}, false
}

// SetPosition moves the node with the given id in place and reports whether
// it exists.
func (l Layout) SetPosition(id string, p Point) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.Nodes[i].Position = p
	return true
}

// Positions returns every node's position keyed by node id.
func (l Layout) Positions() map[string]Point {
	out := make(map[string]Point, len(l.Nodes))
	for _, n := range l.Nodes {
		out[n.ID] = n.Position
	}
	return out
}

// Count returns the number of nodes of the given kind.
func (l Layout) Count(kind string) int {
	n := 0
	for i := range l.Nodes {
		if l.Nodes[i].Kind == kind {
			n++
		}
	}
	return n
}

func (l Layout) index(id string) int {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}
