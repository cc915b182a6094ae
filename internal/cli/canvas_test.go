package cli

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/view"
)

func twoNodeLayout() layout.Layout {
	return layout.Layout{
		Nodes: []layout.Node{
			{ID: "g-root", Kind: layout.KindRoot, Data: layout.NodeData{Label: "Root"}, Position: layout.Point{X: 0, Y: 0}},
			{ID: "tier-1", Kind: layout.KindTier, Data: layout.NodeData{Label: "One"}, Position: layout.Point{X: 0, Y: 200}},
		},
		Edges: []layout.Edge{{ID: "g-root-tier-1", Source: "g-root", Target: "tier-1"}},
	}
}

func TestFitCamera(t *testing.T) {
	l := twoNodeLayout()

	cam := fitCamera(l, view.FitOptions{Padding: 0.1, MaxZoom: 1.5}, 80, 24)
	if cam.center != (layout.Point{X: 0, Y: 100}) {
		t.Errorf("center = %v, want (0, 100)", cam.center)
	}
	// 24 rows * 20 units / (200 + 2*20 padding) = 2, capped at 1.5.
	if cam.zoom != 1.5 {
		t.Errorf("zoom = %v, want 1.5", cam.zoom)
	}

	cam = fitCamera(l, view.FitOptions{Padding: 0.1}, 80, 12)
	if cam.zoom != 1 {
		t.Errorf("uncapped zoom = %v, want 1", cam.zoom)
	}

	if cam := fitCamera(layout.Layout{}, view.ResetFit, 80, 24); cam.zoom != 1 {
		t.Errorf("empty layout zoom = %v, want 1", cam.zoom)
	}
}

func TestCameraCell(t *testing.T) {
	cam := camera{center: layout.Point{X: 0, Y: 100}, zoom: 1}
	tests := []struct {
		p      layout.Point
		wx, wy int
	}{
		{layout.Point{X: 0, Y: 100}, 40, 12},
		{layout.Point{X: 100, Y: 100}, 50, 12},
		{layout.Point{X: 0, Y: 0}, 40, 7},
	}
	for _, tt := range tests {
		x, y := cam.cell(tt.p, 80, 24)
		if x != tt.wx || y != tt.wy {
			t.Errorf("cell(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestNodeLabel(t *testing.T) {
	tests := []struct {
		name string
		node layout.Node
		want string
	}{
		{"root", layout.Node{Kind: layout.KindRoot, Data: layout.NodeData{Label: "SWE"}}, "[SWE]"},
		{"collapsed tier", layout.Node{Kind: layout.KindTier, Data: layout.NodeData{Label: "Core", Icon: "🟢"}}, "▸ 🟢 Core"},
		{"expanded tier", layout.Node{Kind: layout.KindTier, Data: layout.NodeData{Label: "Core", Expanded: true}}, "▾ Core"},
		{"leaf code", layout.Node{Kind: layout.KindLeaf, Data: layout.NodeData{Code: "CSE 11", Title: "Programming"}}, "CSE 11"},
		{"leaf title", layout.Node{Kind: layout.KindLeaf, Data: layout.NodeData{Title: "Programming"}}, "Programming"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nodeLabel(tt.node); got != tt.want {
				t.Errorf("nodeLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDrawLayout(t *testing.T) {
	l := twoNodeLayout()
	cam := fitCamera(l, view.ResetFit, 40, 12)

	out := drawLayout(l, cam, 40, 12, "tier-1").String()
	if got := strings.Count(out, "\n"); got != 11 {
		t.Errorf("rows = %d, want 12", got+1)
	}
	for _, want := range []string{"[Root]", "▸ One", "·"} {
		if !strings.Contains(out, want) {
			t.Errorf("canvas missing %q:\n%s", want, out)
		}
	}
}

func TestCanvasClips(t *testing.T) {
	c := newCanvas(4, 2)
	c.label(0, 0, "abcdef", cellLeaf)
	c.set(-1, 5, 'x', cellLeaf)

	lines := strings.Split(c.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "def") || strings.Contains(lines[0], "abc") {
		t.Errorf("row 0 = %q, want the clipped label tail", lines[0])
	}
}

func TestCanvasWideRunes(t *testing.T) {
	c := newCanvas(12, 1)
	c.label(6, 0, "▸ 🟢 Core", cellTier)

	got := c.String()
	if want := "  ▸ 🟢 Core"; !strings.HasPrefix(got, want) {
		t.Errorf("row = %q, want prefix %q", got, want)
	}
	if w := runewidth.StringWidth(got); w != 12 {
		t.Errorf("row width = %d cells, want 12", w)
	}

	// Overwriting half of a wide rune blanks the other half.
	c.set(5, 0, 'x', cellLeaf)
	if got := c.String(); strings.Contains(got, "🟢") || runewidth.StringWidth(got) != 12 {
		t.Errorf("row = %q after overwriting the emoji tail", got)
	}
}

func TestCanvasWideRuneAtEdge(t *testing.T) {
	c := newCanvas(3, 1)
	c.label(2, 0, "a🟢", cellLeaf)
	if got := c.String(); runewidth.StringWidth(got) != 3 || strings.Contains(got, "🟢") {
		t.Errorf("row = %q, want the clipped emoji dropped", got)
	}
}
