package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds leaf descriptions to labels.
	// When false, leaves show only their code and title.
	Detailed bool
}

// Edge colors per style tag.
const (
	rootTierColor = "#94a3b8"
	tierLeafColor = "#cbd5e1"
)

// pointsPerInch converts layout units to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a layout to Graphviz DOT format. Every node is pinned at its
// layout position, so the neato engine draws the layout as computed instead
// of arranging it. The result can be rendered with [RenderSVG].
//
// Collapsed tiers have a dashed outline, expanded tiers a solid one.
func ToDOT(l layout.Layout, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", l.GraphID)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		attrs := append([]string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
			fmt.Sprintf("pos=%q", fmtPos(n.Position)),
		}, fmtAttrs(n)...)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, edgeAttrs(e.Style))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtPos(p layout.Point) string {
	// Graphviz y grows upwards.
	return fmt.Sprintf("%.3f,%.3f!", p.X/pointsPerInch, -p.Y/pointsPerInch)
}

func fmtLabel(n layout.Node, detailed bool) string {
	d := n.Data
	switch n.Kind {
	case layout.KindRoot:
		return d.Label
	case layout.KindTier:
		if d.Icon != "" {
			return d.Icon + " " + d.Label
		}
		return d.Label
	}

	parts := make([]string, 0, 3)
	for _, s := range []string{d.Code, d.Title} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if detailed && d.Description != "" {
		parts = append(parts, d.Description)
	}
	if len(parts) == 0 {
		return d.LeafID
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n layout.Node) []string {
	switch n.Kind {
	case layout.KindRoot:
		return []string{"fillcolor=\"#1e293b\"", "fontcolor=white", "fontsize=18"}
	case layout.KindTier:
		style := "style=\"rounded,filled,dashed\""
		if n.Data.Expanded {
			style = "style=\"rounded,filled\""
		}
		return []string{style, "fillcolor=\"#f1f5f9\"", "penwidth=2"}
	default:
		return []string{"fontsize=12"}
	}
}

func edgeAttrs(style string) string {
	if style == layout.StyleRootTier {
		return fmt.Sprintf("color=%q, penwidth=2", rootTierColor)
	}
	return fmt.Sprintf("color=%q, penwidth=1.5", tierLeafColor)
}

// RenderSVG renders DOT produced by [ToDOT] to SVG using Graphviz's neato
// engine. Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
