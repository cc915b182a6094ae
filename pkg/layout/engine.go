package layout

import (
	"github.com/matzehuels/pathgraph/pkg/hierarchy"
)

// Input is the interaction state a layout pass is computed from.
// Compute only reads the maps; callers may pass their live stores.
type Input struct {
	GraphID   string
	Expanded  map[string]bool  // tier id -> expanded
	Overrides map[string]Point // node id -> explicit position
	Mode      SpacingMode
}

// RootID returns the root node id of the graph.
func RootID(graphID string) string {
	return graphID + "-root"
}

// LeafID returns the node id of a leaf in the graph.
func LeafID(graphID, leafID string) string {
	return "leaf-" + graphID + "-" + leafID
}

// EdgeID returns the id of the edge from source to target.
func EdgeID(source, target string) string {
	return source + "-" + target
}

// Compute lays out h for the given interaction state. It has no side
// effects. A nil hierarchy yields an empty layout.
func Compute(h *hierarchy.Hierarchy, in Input) Layout {
	out := Layout{GraphID: in.GraphID, Mode: in.Mode}
	if h == nil {
		return out
	}
	sp := in.Mode.Spacing()

	rootID := RootID(in.GraphID)
	out.Nodes = append(out.Nodes, Node{
		ID:       rootID,
		Kind:     KindRoot,
		Data:     NodeData{Label: h.RootLabel},
		Position: resolve(in.Overrides, rootID, RootDefault),
	})

	tierPos := make([]Point, len(h.Tiers))
	for i, t := range h.Tiers {
		tierPos[i] = resolve(in.Overrides, t.ID, TierSlot(i, len(h.Tiers), sp))
		out.Nodes = append(out.Nodes, Node{
			ID:       t.ID,
			Kind:     KindTier,
			Data:     NodeData{Label: t.Label, Icon: t.Icon, Expanded: in.Expanded[t.ID]},
			Position: tierPos[i],
		})
		out.Edges = append(out.Edges, Edge{
			ID:     EdgeID(rootID, t.ID),
			Source: rootID,
			Target: t.ID,
			Style:  StyleRootTier,
		})
	}

	for i, t := range h.Tiers {
		if !in.Expanded[t.ID] {
			continue
		}
		leaves := h.LeavesOf(i)
		for j, lf := range leaves {
			id := LeafID(in.GraphID, lf.ID)
			out.Nodes = append(out.Nodes, Node{
				ID:   id,
				Kind: KindLeaf,
				Data: NodeData{
					TierID:      t.ID,
					LeafID:      lf.ID,
					Code:        lf.Code,
					Title:       lf.Title,
					Description: lf.Description,
				},
				Position: resolve(in.Overrides, id, LeafSlot(tierPos[i], j, len(leaves), sp)),
			})
			out.Edges = append(out.Edges, Edge{
				ID:     EdgeID(t.ID, id),
				Source: t.ID,
				Target: id,
				Style:  StyleTierLeaf,
			})
		}
	}
	return out
}

// Defaults returns the override-free positions Compute would produce for in,
// keyed by node id. in.Overrides is ignored.
func Defaults(h *hierarchy.Hierarchy, in Input) map[string]Point {
	in.Overrides = nil
	return Compute(h, in).Positions()
}

// TierSlot returns the default position of tier i out of n: one row at TierY,
// centered on x = 0.
func TierSlot(i, n int, sp Spacing) Point {
	startX := -(float64(n-1) * sp.TierGap) / 2
	return Point{X: startX + float64(i)*sp.TierGap, Y: TierY}
}

// LeafSlot returns the default position of leaf j out of n under a tier at
// tier. Each row, including a partial last row, is centered on tier.X.
func LeafSlot(tier Point, j, n int, sp Spacing) Point {
	cols := sp.Columns
	if cols < 1 {
		cols = 1
	}
	row := j / cols
	col := j % cols
	inRow := min(cols, n-row*cols)
	offset := float64(inRow-1) * sp.ColumnGap / 2
	return Point{
		X: tier.X + float64(col)*sp.ColumnGap - offset,
		Y: tier.Y + LeafOffsetY + float64(row)*sp.RowGap,
	}
}

func resolve(overrides map[string]Point, id string, def Point) Point {
	if p, ok := overrides[id]; ok {
		return p
	}
	return def
}
