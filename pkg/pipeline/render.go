package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/pathgraph/pkg/errors"
	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/render"
	"github.com/matzehuels/pathgraph/pkg/render/nodelink"
)

// RenderFromLayout renders l in every requested format. SVG is produced at
// most once and shared by the PNG and PDF conversions.
func RenderFromLayout(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})
	var svg []byte
	getSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(ctx, dot)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = layout.Marshal(l)
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = getSVG()
		case FormatPDF:
			if data, err = getSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatPNG:
			if data, err = getSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		default:
			err = fmt.Errorf("unsupported format %q", format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
