// Package pipeline provides the batch layout and render pipeline used by the
// CLI.
//
// The pipeline has two stages:
//
//  1. Layout: drive a [view.Graph] through the requested interactions
//     (expand tiers, optionally format) and take the displayed layout
//  2. Render: generate output in various formats (SVG, DOT, JSON, PNG, PDF)
//
// Both stages go through the runner's cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, h, pipeline.Options{
//	    Expand:  []string{"tier-1"},
//	    Format:  true,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathgraph/pkg/cache"
	"github.com/matzehuels/pathgraph/pkg/layout"
)

// DefaultGraphID scopes node ids when no graph id is given. Batch output uses
// a fixed id so repeated runs produce identical files.
const DefaultGraphID = "career"

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Layout options
	GraphID   string   `json:"graph_id,omitempty"`
	Expand    []string `json:"expand,omitempty"`     // tier ids to expand, in order
	ExpandAll bool     `json:"expand_all,omitempty"` // expand every tier
	Format    bool     `json:"format,omitempty"`     // apply Format after expanding

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"` // bypass cache reads

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout    layout.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tiers      int
	Leaves     int
	Edges      int
	Orphans    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, dot, json, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// SetDefaults fills in unset options. It is idempotent.
func (o *Options) SetDefaults() {
	if o.GraphID == "" {
		o.GraphID = DefaultGraphID
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate sets defaults and checks the options.
func (o *Options) Validate() error {
	o.SetDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
// expanded is the resolved list of expanded tiers.
func (o *Options) LayoutKeyOpts(expanded []string) cache.LayoutKeyOpts {
	mode := layout.Compact
	if o.Format {
		mode = layout.Formatted
	}
	return cache.LayoutKeyOpts{
		Expanded: expanded,
		Mode:     mode.String(),
		GraphID:  o.GraphID,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
