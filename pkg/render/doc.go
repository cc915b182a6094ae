// Package render provides output format conversion for rendered graphs.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Diagram generation itself
// lives in the [nodelink] subpackage.
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/pathgraph/pkg/render/nodelink
package render
