package view_test

import (
	"fmt"

	"github.com/matzehuels/pathgraph/pkg/hierarchy"
	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/view"
)

func exampleHierarchy() *hierarchy.Hierarchy {
	return &hierarchy.Hierarchy{
		RootLabel: "Paths",
		Tiers:     []hierarchy.Tier{{ID: "tier-1", Label: "Core"}},
		Leaves:    []hierarchy.Leaf{{ID: "cs101", Title: "Intro", Tier: 1}},
	}
}

func ExampleGraph_DragStop() {
	g, _ := view.New(exampleHierarchy(), view.WithID("demo"))
	g.Toggle("tier-1")

	id := layout.LeafID("demo", "cs101")
	g.DragStart(id)
	g.DragMove(id, layout.Point{X: 10, Y: 10})
	g.DragStop(id, layout.Point{X: 42, Y: 7})

	n, _ := g.Displayed().Node(id)
	fmt.Println(n.Position)
	// Output: (42, 7)
}

func ExampleGraph_OnReady() {
	g, _ := view.New(nil, view.WithID("demo"))

	// The toolbar registers before the graph has data.
	g.OnReady(func(reset view.ResetFunc, format view.FormatFunc) {
		<-format()
		fmt.Println("mode:", g.Mode())
		<-reset()
		fmt.Println("mode:", g.Mode())
	})

	_ = g.Load(exampleHierarchy())
	// Output:
	// mode: formatted
	// mode: compact
}
