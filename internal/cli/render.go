package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgraph/pkg/pipeline"
)

// renderCommand creates the render command, which goes from a hierarchy file
// straight to output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [hierarchy.toml]",
		Short: "Render a hierarchy to SVG, DOT, JSON, PNG, or PDF",
		Long: `Render a hierarchy to SVG, DOT, JSON, PNG, or PDF.

The render command runs layout and rendering in one step. Graphviz draws the
nodes at their computed positions. PNG and PDF output require rsvg-convert.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	addLayoutFlags(cmd, &opts)
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// addRenderFlags registers the output flags shared by render and visualize.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "output-format", "f", "", "output format(s): svg (default), dot, json, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include leaf descriptions in labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
}

// runRender loads the hierarchy, runs the pipeline, and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	h, err := loadHierarchy(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, h, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if result.Stats.Orphans > 0 {
		printWarning("%d orphan leaves skipped (run '%s validate %s')", result.Stats.Orphans, appName, input)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     len(result.Layout.Nodes),
		edges:     len(result.Layout.Edges),
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// parseFormats parses the --output-format flag. If empty, defaults to svg.
func parseFormats(s string) []string {
	if f := pipeline.ParseFormats(s); len(f) > 0 {
		return f
	}
	return []string{pipeline.FormatSVG}
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. A known format
// extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its file. A single format honors an explicit
// output path as given.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

type artifactWriteParams struct {
	artifacts    map[string][]byte
	formats      []string
	input        string
	output       string
	nodes, edges int
	cacheHit     bool
}

// writeArtifacts writes rendered artifacts in format order and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths := outputPaths(p.formats, p.input, p.output)

	printSuccess("Render complete")
	for _, f := range p.formats {
		data, ok := p.artifacts[f]
		if !ok {
			continue
		}
		if err := os.WriteFile(paths[f], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
		printFile(paths[f])
	}
	printStats(p.nodes, p.edges, p.cacheHit)
	return nil
}
