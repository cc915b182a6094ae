package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/pathgraph/pkg/hierarchy"
)

// scenarioA is root + tier-1 (3 leaves) + tier-2 (0 leaves).
func scenarioA() *hierarchy.Hierarchy {
	return &hierarchy.Hierarchy{
		RootLabel: "Software Engineering",
		Tiers: []hierarchy.Tier{
			{ID: "tier-1", Label: "Core", Icon: "*"},
			{ID: "tier-2", Label: "Electives"},
		},
		Leaves: []hierarchy.Leaf{
			{ID: "cs101", Code: "CS 101", Title: "Intro", Tier: 1},
			{ID: "cs102", Code: "CS 102", Title: "Data Structures", Tier: 1},
			{ID: "cs201", Code: "CS 201", Title: "Algorithms", Tier: 1},
		},
	}
}

func withLeaves(n int) *hierarchy.Hierarchy {
	h := &hierarchy.Hierarchy{
		RootLabel: "root",
		Tiers:     []hierarchy.Tier{{ID: "tier-1", Label: "One"}},
	}
	for i := 0; i < n; i++ {
		h.Leaves = append(h.Leaves, hierarchy.Leaf{ID: string(rune('a' + i)), Tier: 1})
	}
	return h
}

func TestComputeNilHierarchy(t *testing.T) {
	l := Compute(nil, Input{GraphID: "g"})
	if len(l.Nodes) != 0 || len(l.Edges) != 0 {
		t.Errorf("got %d nodes, %d edges, want empty", len(l.Nodes), len(l.Edges))
	}
	if l.GraphID != "g" {
		t.Errorf("GraphID = %q, want g", l.GraphID)
	}
}

func TestComputeDeterministic(t *testing.T) {
	h := scenarioA()
	in := Input{
		GraphID:   "g",
		Expanded:  map[string]bool{"tier-1": true},
		Overrides: map[string]Point{"tier-2": {X: 7, Y: 9}},
		Mode:      Formatted,
	}
	a := Compute(h, in)
	b := Compute(h, in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Compute not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestComputeNodeOrder(t *testing.T) {
	h := scenarioA()
	h.Tiers = append(h.Tiers, hierarchy.Tier{ID: "tier-3", Label: "Extra"})
	h.Leaves = append(h.Leaves, hierarchy.Leaf{ID: "x1", Tier: 3})
	// Catalog order of leaves is interleaved across tiers on purpose.
	h.Leaves = append([]hierarchy.Leaf{{ID: "x0", Tier: 3}}, h.Leaves...)

	l := Compute(h, Input{GraphID: "g", Expanded: map[string]bool{"tier-1": true, "tier-3": true}})

	var got []string
	for _, n := range l.Nodes {
		got = append(got, n.ID)
	}
	want := []string{
		"g-root", "tier-1", "tier-2", "tier-3",
		"leaf-g-cs101", "leaf-g-cs102", "leaf-g-cs201",
		"leaf-g-x0", "leaf-g-x1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v\nwant %v", got, want)
	}

	var edges []string
	for _, e := range l.Edges {
		edges = append(edges, e.ID)
	}
	wantEdges := []string{
		"g-root-tier-1", "g-root-tier-2", "g-root-tier-3",
		"tier-1-leaf-g-cs101", "tier-1-leaf-g-cs102", "tier-1-leaf-g-cs201",
		"tier-3-leaf-g-x0", "tier-3-leaf-g-x1",
	}
	if !reflect.DeepEqual(edges, wantEdges) {
		t.Errorf("edge order = %v\nwant %v", edges, wantEdges)
	}
}

func TestComputeScenarioA(t *testing.T) {
	h := scenarioA()
	tests := []struct {
		name       string
		expanded   map[string]bool
		wantLeaves int
		wantEdges  int
	}{
		{"Initial", nil, 0, 2},
		{"Tier1Expanded", map[string]bool{"tier-1": true}, 3, 5},
		{"BothExpanded", map[string]bool{"tier-1": true, "tier-2": true}, 3, 5},
		{"OnlyEmptyTier", map[string]bool{"tier-2": true}, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Compute(h, Input{GraphID: "g", Expanded: tt.expanded})
			if got := l.Count(KindRoot); got != 1 {
				t.Errorf("roots = %d, want 1", got)
			}
			if got := l.Count(KindTier); got != 2 {
				t.Errorf("tiers = %d, want 2", got)
			}
			if got := l.Count(KindLeaf); got != tt.wantLeaves {
				t.Errorf("leaves = %d, want %d", got, tt.wantLeaves)
			}
			if len(l.Edges) != tt.wantEdges {
				t.Errorf("edges = %d, want %d", len(l.Edges), tt.wantEdges)
			}
		})
	}
}

func TestComputeDefaults(t *testing.T) {
	h := scenarioA()
	l := Compute(h, Input{GraphID: "g", Expanded: map[string]bool{"tier-1": true}})

	want := map[string]Point{
		"g-root":       {0, 40},
		"tier-1":       {-200, 220},
		"tier-2":       {200, 220},
		"leaf-g-cs101": {-420, 370},
		"leaf-g-cs102": {-200, 370},
		"leaf-g-cs201": {20, 370},
	}
	got := l.Positions()
	for id, p := range want {
		if got[id] != p {
			t.Errorf("%s at %v, want %v", id, got[id], p)
		}
	}
}

func TestComputeFormattedDefaults(t *testing.T) {
	h := scenarioA()
	l := Compute(h, Input{GraphID: "g", Expanded: map[string]bool{"tier-1": true}, Mode: Formatted})

	want := map[string]Point{
		"tier-1":       {-300, 220},
		"tier-2":       {300, 220},
		"leaf-g-cs101": {-450, 370},
		"leaf-g-cs102": {-150, 370},
		"leaf-g-cs201": {-300, 490},
	}
	got := l.Positions()
	for id, p := range want {
		if got[id] != p {
			t.Errorf("%s at %v, want %v", id, got[id], p)
		}
	}
	if l.Mode != Formatted {
		t.Errorf("Mode = %v, want formatted", l.Mode)
	}
}

func TestComputeOverridePrecedence(t *testing.T) {
	h := scenarioA()
	overrides := map[string]Point{
		"g-root":       {1, 2},
		"tier-2":       {-999.5, 12.25},
		"leaf-g-cs102": {3, 4},
	}
	l := Compute(h, Input{GraphID: "g", Expanded: map[string]bool{"tier-1": true}, Overrides: overrides})
	got := l.Positions()
	for id, p := range overrides {
		if got[id] != p {
			t.Errorf("%s at %v, want override %v", id, got[id], p)
		}
	}

	// Without the overrides the formula comes back.
	l = Compute(h, Input{GraphID: "g", Expanded: map[string]bool{"tier-1": true}})
	if p, _ := l.Node("tier-2"); p.Position != (Point{200, 220}) {
		t.Errorf("tier-2 at %v after clearing override, want (200, 220)", p.Position)
	}
}

func TestComputeLeavesFollowTier(t *testing.T) {
	h := scenarioA()
	in := Input{
		GraphID:   "g",
		Expanded:  map[string]bool{"tier-1": true},
		Overrides: map[string]Point{"tier-1": {1000, 500}},
	}
	l := Compute(h, in)
	n, ok := l.Node("leaf-g-cs102")
	if !ok {
		t.Fatal("leaf-g-cs102 missing")
	}
	if want := (Point{1000, 650}); n.Position != want {
		t.Errorf("middle leaf at %v, want %v", n.Position, want)
	}
}

func TestComputeRowCentering(t *testing.T) {
	for _, mode := range []SpacingMode{Compact, Formatted} {
		for n := 1; n <= 8; n++ {
			h := withLeaves(n)
			l := Compute(h, Input{GraphID: "g", Expanded: map[string]bool{"tier-1": true}, Mode: mode})
			tier, _ := l.Node("tier-1")

			rows := make(map[float64][]float64)
			for _, node := range l.Nodes {
				if node.Kind == KindLeaf {
					rows[node.Position.Y] = append(rows[node.Position.Y], node.Position.X)
				}
			}
			for y, xs := range rows {
				sum := 0.0
				for _, x := range xs {
					sum += x
				}
				if mean := sum / float64(len(xs)); math.Abs(mean-tier.Position.X) > 1e-9 {
					t.Errorf("%v n=%d row y=%v: mean x %v, want %v", mode, n, y, mean, tier.Position.X)
				}
				if len(xs) > mode.Spacing().Columns {
					t.Errorf("%v n=%d row y=%v has %d leaves", mode, n, y, len(xs))
				}
			}
		}
	}
}

func TestComputeNodeData(t *testing.T) {
	h := scenarioA()
	l := Compute(h, Input{GraphID: "g", Expanded: map[string]bool{"tier-1": true}})

	root, _ := l.Node("g-root")
	if root.Data.Label != "Software Engineering" {
		t.Errorf("root label = %q", root.Data.Label)
	}
	t1, _ := l.Node("tier-1")
	if !t1.Data.Expanded || t1.Data.Icon != "*" || t1.Data.Label != "Core" {
		t.Errorf("tier-1 data = %+v", t1.Data)
	}
	t2, _ := l.Node("tier-2")
	if t2.Data.Expanded {
		t.Error("tier-2 should not be marked expanded")
	}
	leaf, _ := l.Node("leaf-g-cs201")
	if leaf.Data.TierID != "tier-1" || leaf.Data.LeafID != "cs201" || leaf.Data.Code != "CS 201" || leaf.Data.Title != "Algorithms" {
		t.Errorf("leaf data = %+v", leaf.Data)
	}
}

func TestComputeEdgeStyles(t *testing.T) {
	l := Compute(scenarioA(), Input{GraphID: "g", Expanded: map[string]bool{"tier-1": true}})
	for _, e := range l.Edges {
		want := StyleTierLeaf
		if e.Source == "g-root" {
			want = StyleRootTier
		}
		if e.Style != want {
			t.Errorf("edge %s style = %q, want %q", e.ID, e.Style, want)
		}
		if e.ID != EdgeID(e.Source, e.Target) {
			t.Errorf("edge id %q does not match endpoints", e.ID)
		}
	}
}

func TestComputeOrphansSkipped(t *testing.T) {
	h := scenarioA()
	h.Leaves = append(h.Leaves, hierarchy.Leaf{ID: "lost", Tier: 9})
	l := Compute(h, Input{GraphID: "g", Expanded: map[string]bool{"tier-1": true, "tier-2": true}})
	if _, ok := l.Node(LeafID("g", "lost")); ok {
		t.Error("orphan leaf rendered")
	}
}

func TestDefaultsIgnoresOverrides(t *testing.T) {
	h := scenarioA()
	in := Input{GraphID: "g", Overrides: map[string]Point{"tier-1": {5, 5}}}
	d := Defaults(h, in)
	if d["tier-1"] != (Point{-200, 220}) {
		t.Errorf("default tier-1 = %v", d["tier-1"])
	}
	if len(in.Overrides) != 1 {
		t.Error("Defaults mutated caller overrides")
	}
}

func TestTierSlot(t *testing.T) {
	sp := Compact.Spacing()
	tests := []struct {
		i, n int
		want Point
	}{
		{0, 1, Point{0, TierY}},
		{0, 2, Point{-200, TierY}},
		{1, 2, Point{200, TierY}},
		{0, 3, Point{-400, TierY}},
		{2, 3, Point{400, TierY}},
	}
	for _, tt := range tests {
		if got := TierSlot(tt.i, tt.n, sp); got != tt.want {
			t.Errorf("TierSlot(%d, %d) = %v, want %v", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestLeafSlot(t *testing.T) {
	sp := Compact.Spacing()
	tier := Point{0, TierY}
	tests := []struct {
		name string
		j, n int
		want Point
	}{
		{"Single", 0, 1, Point{0, 370}},
		{"FullRowLeft", 0, 3, Point{-220, 370}},
		{"FullRowRight", 2, 3, Point{220, 370}},
		{"PartialRowLeft", 3, 5, Point{-110, 470}},
		{"PartialRowRight", 4, 5, Point{110, 470}},
		{"PartialRowSingle", 3, 4, Point{0, 470}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeafSlot(tier, tt.j, tt.n, sp); got != tt.want {
				t.Errorf("LeafSlot(%d, %d) = %v, want %v", tt.j, tt.n, got, tt.want)
			}
		})
	}
}
