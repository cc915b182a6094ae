// Package cli implements the pathgraph command-line interface.
//
// This package provides commands for laying out career-path hierarchies,
// rendering them as node-link diagrams, exploring them interactively in the
// terminal, and managing the render cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout.json from a hierarchy file
//   - render: Compute and render a hierarchy to SVG, DOT, JSON, PNG, or PDF
//   - visualize: Render a saved layout.json
//   - explore: Interactive terminal view (expand, drag, format, reset)
//   - validate: Check a hierarchy file and report orphan leaves
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgraph/pkg/buildinfo"
	"github.com/matzehuels/pathgraph/pkg/cache"
	"github.com/matzehuels/pathgraph/pkg/hierarchy"
	"github.com/matzehuels/pathgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pathgraph"

	// redisURLEnv selects the Redis cache backend when set.
	redisURLEnv = "PATHGRAPH_REDIS_URL"

	// redisKeyPrefix scopes pathgraph keys in a shared Redis.
	redisKeyPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Pathgraph lays out and explores career-path graphs",
		Long:         `Pathgraph turns a catalog of tiers and recommended items into an interactive root, tier, leaf graph. Tiers expand and collapse, nodes can be dragged, and the whole graph can be formatted into a wide grid or reset.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache picks the cache backend: Redis when PATHGRAPH_REDIS_URL is set,
// otherwise the XDG file cache. An unreachable Redis falls back to files.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache {
		return cache.NewNullCache(), nil, nil
	}
	if url := os.Getenv(redisURLEnv); url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err == nil {
			c.Logger.Debug("using redis cache", "prefix", redisKeyPrefix)
			return rc, cache.NewScopedKeyer(nil, redisKeyPrefix), nil
		}
		c.Logger.Warn("redis unavailable, using file cache", "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pathgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Helpers
// =============================================================================

// loadHierarchy reads a hierarchy file and logs its size and load time.
func loadHierarchy(ctx context.Context, path string) (*hierarchy.Hierarchy, error) {
	prog := newProgress(loggerFromContext(ctx))
	h, err := hierarchy.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load hierarchy %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Loaded %d tiers, %d leaves from %s", len(h.Tiers), len(h.Leaves), path))
	return h, nil
}

// ErrorMessage formats a command error for the terminal.
func ErrorMessage(err error) string {
	return styleIconError.Render(iconError) + " " + err.Error()
}
