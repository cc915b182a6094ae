// Package pkg provides the core libraries for pathgraph.
//
// # Overview
//
// Pathgraph draws a career-path catalog as a three-level graph: a root, one
// node per tier, and the recommended leaves of each expanded tier. Users
// expand and collapse tiers, drag nodes, format the graph into a wide grid,
// and reset it. The pkg directory is organized into:
//
//  1. [hierarchy] - The root, tier, leaf catalog and its TOML/JSON loader
//  2. [layout] - The pure layout engine and the layout.json format
//  3. [view] - The per-graph view model: expansion, overrides, drag, format, reset
//  4. [render] - Graphviz rendering of layouts (SVG, DOT, PNG, PDF)
//  5. [pipeline] - Batch orchestration (load, layout, render) with caching
//  6. [cache] - File, Redis, and null cache backends
//
// Supporting packages are [errors] (coded errors), [observability] (event
// hooks), and [buildinfo].
//
// # Architecture
//
//	hierarchy file (TOML/JSON)
//	         ↓
//	    [hierarchy] Load + Validate
//	         ↓
//	    [view] Graph  ← Toggle / DragStop / Format / Reset
//	         ↓
//	    [layout] Compute (expansion, overrides, spacing mode)
//	         ↓
//	    Renderer (terminal host, or [render] via [pipeline])
//
// # Quick Start
//
//	h, _ := hierarchy.Load("robotics.toml")
//	g, _ := view.New(h, view.WithID("robotics"))
//	g.Toggle("tier-1")
//	<-g.Format()
//	l := g.Displayed()
//	svg, _ := nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{}))
//
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/pathgraph/pkg/hierarchy
// [layout]: https://pkg.go.dev/github.com/matzehuels/pathgraph/pkg/layout
// [view]: https://pkg.go.dev/github.com/matzehuels/pathgraph/pkg/view
// [render]: https://pkg.go.dev/github.com/matzehuels/pathgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pathgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pathgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/pathgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pathgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pathgraph/pkg/buildinfo
package pkg
