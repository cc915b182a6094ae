package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathgraph/pkg/cache"
	"github.com/matzehuels/pathgraph/pkg/hierarchy"
	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/observability"
)

// Cache key types reported to cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs layout and render with caching.
func (r *Runner) Execute(ctx context.Context, h *hierarchy.Hierarchy, opts Options) (*Result, error) {
	if err := r.validate(&opts); err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.Tiers = len(h.Tiers)
	result.Stats.Orphans = len(h.Orphans())

	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, h, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Leaves = l.Count(layout.KindLeaf)
	result.Stats.Edges = len(l.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"tiers", result.Stats.Tiers,
		"leaves", result.Stats.Leaves,
		"mode", l.Mode,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo builds a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, h *hierarchy.Hierarchy, opts Options) (l layout.Layout, hit bool, err error) {
	if err := r.validate(&opts); err != nil {
		return layout.Layout{}, false, err
	}
	expanded, err := ExpandedTiers(h, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.GraphID, len(h.Tiers))
	defer func() {
		observability.Pipeline().OnLayoutComplete(ctx, opts.GraphID, time.Since(start), err)
	}()

	hierarchyData, err := json.Marshal(h)
	if err != nil {
		return layout.Layout{}, false, fmt.Errorf("serialize hierarchy for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(hierarchyData), opts.LayoutKeyOpts(expanded))

	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, cacheKey, keyTypeLayout); ok {
			if cached, err := layout.Unmarshal(data); err == nil {
				return cached, true, nil
			}
		}
	}

	l, err = BuildLayout(h, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}
	if data, err := layout.Marshal(l); err == nil {
		r.cacheSet(ctx, cacheKey, keyTypeLayout, data, cache.LayoutTTL)
	}
	return l, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, h *hierarchy.Hierarchy, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, h, opts)
	return l, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := r.validate(&opts); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		artifacts = make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, ok := r.cacheGet(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), keyTypeArtifact)
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := RenderFromLayout(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.cacheSet(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), keyTypeArtifact, data, cache.ArtifactTTL)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) validate(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// cacheGet reads from the cache. Backend errors count as misses.
func (r *Runner) cacheGet(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// cacheSet writes to the cache. Failures are logged, never returned.
func (r *Runner) cacheSet(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
