package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathgraph/pkg/observability"
)

// RegisterHooks routes observability events to the CLI logger at debug level.
func (c *CLI) RegisterHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetGraphHooks(h)
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

// logHooks implements every observability hook interface by logging.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnLayoutComputed(graphID string, nodes, edges int, d time.Duration) {
	h.logger.Debug("layout", "graph", graphID, "nodes", nodes, "edges", edges, "took", d)
}

func (h logHooks) OnToggle(graphID, tierID string, expanded bool) {
	h.logger.Debug("toggle", "graph", graphID, "tier", tierID, "expanded", expanded)
}

func (h logHooks) OnDragCommit(graphID, nodeID string, accepted bool) {
	if !accepted {
		h.logger.Warn("drop rejected", "graph", graphID, "node", nodeID)
		return
	}
	h.logger.Debug("drop", "graph", graphID, "node", nodeID)
}

func (h logHooks) OnFormat(graphID string, overrides int) {
	h.logger.Debug("format", "graph", graphID, "overrides", overrides)
}

func (h logHooks) OnReset(graphID string) {
	h.logger.Debug("reset", "graph", graphID)
}

func (h logHooks) OnLayoutStart(_ context.Context, graphID string, tiers int) {
	h.logger.Debug("layout start", "graph", graphID, "tiers", tiers)
}

func (h logHooks) OnLayoutComplete(_ context.Context, graphID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "graph", graphID, "err", err)
		return
	}
	h.logger.Debug("layout done", "graph", graphID, "took", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "took", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
