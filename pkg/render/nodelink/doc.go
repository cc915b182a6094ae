// Package nodelink renders computed layouts as node-link diagrams.
//
// # Overview
//
// This package turns a [layout.Layout] into Graphviz DOT with every node
// pinned at its computed position, then draws it with the neato engine. The
// picture matches what an interactive renderer shows for the same state:
// the root on top, the row of tiers, and the leaf grids under expanded tiers.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Styling
//
// Root-to-tier edges are drawn thicker and darker than tier-to-leaf edges.
// Collapsed tiers have a dashed outline.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
