package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [hierarchy.toml]",
		Short: "Compute a graph layout from a hierarchy file",
		Long: `Compute a graph layout from a hierarchy file.

The layout command loads a hierarchy (TOML or JSON), expands the requested
tiers, optionally formats the graph, and writes the displayed layout as
layout.json. The file can be rendered with the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the flags that drive the view model.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringSliceVarP(&opts.Expand, "expand", "e", nil, "tier ids to expand (comma-separated)")
	cmd.Flags().BoolVar(&opts.ExpandAll, "all", false, "expand every tier")
	cmd.Flags().BoolVar(&opts.Format, "format", false, "apply the formatted spacing")
	cmd.Flags().StringVar(&opts.GraphID, "graph-id", pipeline.DefaultGraphID, "graph id used to scope node ids")
	_ = cmd.RegisterFlagCompletionFunc("expand", completeTierIDs)
}

// runLayout loads the hierarchy, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, h, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}

	if err := layout.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete (%s)", l.Mode)
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
