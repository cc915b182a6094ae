package view

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pathgraph/pkg/errors"
	"github.com/matzehuels/pathgraph/pkg/hierarchy"
	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/observability"
)

// ResetFunc resets a graph. The channel is closed when the reset is done.
type ResetFunc func() <-chan struct{}

// FormatFunc formats a graph. The channel is closed when the format is done.
type FormatFunc func() <-chan struct{}

// ReadyFunc receives a graph's Reset and Format handles once it is loaded.
type ReadyFunc func(reset ResetFunc, format FormatFunc)

// Option configures a Graph.
type Option func(*Graph)

// WithID sets the graph id used to scope node ids. Defaults to a random UUID.
func WithID(id string) Option {
	return func(g *Graph) { g.id = id }
}

// WithRenderer sets the renderer that receives displayed layouts and fit
// requests.
func WithRenderer(r Renderer) Option {
	return func(g *Graph) { g.renderer = r }
}

// WithScheduler sets how Format and Reset continuations are run.
func WithScheduler(s Scheduler) Option {
	return func(g *Graph) {
		if s != nil {
			g.scheduler = s
		}
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// Graph is the view model of one interactive graph.
type Graph struct {
	mu sync.Mutex

	id        string
	h         *hierarchy.Hierarchy
	expanded  *ExpansionSet
	overrides *Overrides
	mode      layout.SpacingMode
	dragging  string // node id, empty when idle

	computed  layout.Layout
	displayed layout.Layout
	loaded    bool
	ready     []ReadyFunc

	renderer  Renderer
	viewport  Viewport
	scheduler Scheduler
	logger    *log.Logger
}

// New creates a graph. h may be nil if the hierarchy is not available yet;
// call Load when it is.
func New(h *hierarchy.Hierarchy, opts ...Option) (*Graph, error) {
	g := &Graph{
		expanded:  NewExpansionSet(nil),
		overrides: NewOverrides(),
		scheduler: Immediate,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.id == "" {
		g.id = uuid.NewString()
	}
	if err := errors.ValidateID("graph", g.id); err != nil {
		return nil, err
	}
	g.viewport = Viewport{r: g.renderer}
	g.logger = g.logger.With("graph", g.id)

	if h != nil {
		if err := g.Load(h); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Load makes the hierarchy available. The first layout is computed and
// displayed, and pending OnReady callbacks fire. A graph loads only once.
func (g *Graph) Load(h *hierarchy.Hierarchy) error {
	if h == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil hierarchy")
	}
	if err := h.Validate(); err != nil {
		return err
	}
	if err := checkNodeIDs(g.id, h); err != nil {
		return err
	}

	g.mu.Lock()
	if g.loaded {
		g.mu.Unlock()
		return errors.New(errors.ErrCodeInvalidInput, "graph %s already loaded", g.id)
	}
	g.h = h
	g.expanded = NewExpansionSet(h.TierIDs())
	g.loaded = true

	for _, l := range h.Orphans() {
		g.logger.Warn("orphan leaf", "category", "orphan-leaf", "leaf", l.ID, "tier", l.Tier)
	}

	var fx effects
	g.syncLocked(&fx)
	ready := g.ready
	g.ready = nil
	g.mu.Unlock()

	fx.run()
	for _, cb := range ready {
		cb(g.Reset, g.Format)
	}
	return nil
}

// checkNodeIDs rejects tier ids that would collide with the root or a leaf
// node id under graphID.
func checkNodeIDs(graphID string, h *hierarchy.Hierarchy) error {
	taken := map[string]string{layout.RootID(graphID): "root"}
	for _, l := range h.Leaves {
		taken[layout.LeafID(graphID, l.ID)] = "leaf " + l.ID
	}
	for _, t := range h.Tiers {
		if other, ok := taken[t.ID]; ok {
			return errors.New(errors.ErrCodeInvalidHierarchy, "tier id %q collides with the %s node of graph %s", t.ID, other, graphID)
		}
	}
	return nil
}

// OnReady registers cb to receive the Reset and Format handles. It is called
// immediately if the graph is already loaded, otherwise once Load succeeds.
func (g *Graph) OnReady(cb ReadyFunc) {
	if cb == nil {
		return
	}
	g.mu.Lock()
	if !g.loaded {
		g.ready = append(g.ready, cb)
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()
	cb(g.Reset, g.Format)
}

// Toggle expands or collapses a tier and reports whether anything changed.
// Unknown tier ids are ignored.
func (g *Graph) Toggle(tierID string) bool {
	g.mu.Lock()
	expanded, ok := g.expanded.Toggle(tierID)
	if !ok {
		g.mu.Unlock()
		return false
	}
	g.logger.Debug("toggle", "tier", tierID, "expanded", expanded)

	var fx effects
	g.syncLocked(&fx)
	id := g.id
	g.mu.Unlock()

	fx.run()
	observability.Graph().OnToggle(id, tierID, expanded)
	return true
}

// DragStart begins dragging a displayed node. It reports false for nodes that
// are not displayed and while another node is being dragged; that drag must
// be dropped first.
func (g *Graph) DragStart(nodeID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.displayed.Node(nodeID); !ok {
		return false
	}
	if g.dragging != "" && g.dragging != nodeID {
		return false
	}
	g.dragging = nodeID
	return true
}

// DragMove moves the dragged node on screen without recomputing the layout.
// Calls for any other node and non-finite positions are ignored.
func (g *Graph) DragMove(nodeID string, p layout.Point) {
	g.mu.Lock()
	if g.dragging == "" || g.dragging != nodeID || !p.Finite() {
		g.mu.Unlock()
		return
	}
	g.displayed.SetPosition(nodeID, p)
	var fx effects
	g.renderLocked(&fx)
	g.mu.Unlock()

	fx.run()
}

// DragStop ends a drag and commits p as the node's override. A non-finite p
// is rejected: the drag still ends and the node keeps its prior position.
// While a drag is active, a drop for any other node is ignored and the drag
// continues. It reports whether p was committed.
func (g *Graph) DragStop(nodeID string, p layout.Point) bool {
	g.mu.Lock()
	if _, ok := g.displayed.Node(nodeID); !ok || (g.dragging != "" && g.dragging != nodeID) {
		g.mu.Unlock()
		return false
	}
	g.dragging = ""

	accepted := true
	if err := g.overrides.Set(nodeID, p); err != nil {
		accepted = false
		g.logger.Debug("drop rejected", "node", nodeID, "err", err)
	}

	var fx effects
	g.syncLocked(&fx)
	id := g.id
	g.mu.Unlock()

	fx.run()
	observability.Graph().OnDragCommit(id, nodeID, accepted)
	return accepted
}

// Format switches to the formatted spacing and commits the resulting position
// of every visible node as an override, replacing all previous overrides.
func (g *Graph) Format() <-chan struct{} {
	done := make(chan struct{})

	g.mu.Lock()
	if !g.loaded {
		g.mu.Unlock()
		close(done)
		return done
	}
	g.mode = layout.Formatted
	g.dragging = ""
	defaults := layout.Defaults(g.h, g.input())
	if err := g.overrides.Replace(defaults); err != nil {
		// Defaults are computed from finite constants.
		g.logger.Error("format", "err", err)
	}
	n := g.overrides.Len()
	g.logger.Debug("format", "overrides", n)

	var fx effects
	g.syncLocked(&fx)
	id := g.id
	g.mu.Unlock()

	fx.run()
	observability.Graph().OnFormat(id, n)
	g.scheduler.Defer(func() {
		g.viewport.Fit(FormatFit)
		close(done)
	})
	return done
}

// Reset collapses every tier, clears all overrides, and returns to the
// compact spacing.
func (g *Graph) Reset() <-chan struct{} {
	done := make(chan struct{})

	g.mu.Lock()
	g.expanded.Clear()
	g.overrides.Clear()
	g.mode = layout.Compact
	g.dragging = ""
	loaded := g.loaded
	g.logger.Debug("reset")

	var fx effects
	if loaded {
		g.syncLocked(&fx)
	}
	id := g.id
	g.mu.Unlock()

	if !loaded {
		close(done)
		return done
	}
	fx.run()
	observability.Graph().OnReset(id)
	g.scheduler.Defer(func() {
		g.viewport.Fit(ResetFit)
		close(done)
	})
	return done
}

// Fit requests a fit-to-view with opts.
func (g *Graph) Fit(opts FitOptions) {
	g.viewport.Fit(opts)
}

// ID returns the graph id.
func (g *Graph) ID() string { return g.id }

// Hierarchy returns the loaded hierarchy, or nil.
func (g *Graph) Hierarchy() *hierarchy.Hierarchy {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.h
}

// Loaded reports whether the hierarchy has been loaded.
func (g *Graph) Loaded() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loaded
}

// Mode returns the current spacing mode.
func (g *Graph) Mode() layout.SpacingMode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

// IsExpanded reports whether the tier is expanded.
func (g *Graph) IsExpanded(tierID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.expanded.IsExpanded(tierID)
}

// Expanded returns the expanded tier ids in catalog order.
func (g *Graph) Expanded() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.expanded.IDs()
}

// Dragging returns the id of the node being dragged.
func (g *Graph) Dragging() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dragging, g.dragging != ""
}

// Override returns the explicit position of a node.
func (g *Graph) Override(nodeID string) (layout.Point, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.overrides.Get(nodeID)
}

// Overrides returns a copy of all explicit positions.
func (g *Graph) Overrides() map[string]layout.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.overrides.Snapshot()
}

// Displayed returns a copy of the layout currently shown.
func (g *Graph) Displayed() layout.Layout {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.displayed.Clone()
}

// Computed returns a copy of the most recently computed layout.
func (g *Graph) Computed() layout.Layout {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.computed.Clone()
}

func (g *Graph) input() layout.Input {
	return layout.Input{
		GraphID:   g.id,
		Expanded:  g.expanded.set,
		Overrides: g.overrides.m,
		Mode:      g.mode,
	}
}

// syncLocked recomputes the layout and, unless a drag is active, replaces the
// displayed layout with it.
func (g *Graph) syncLocked(fx *effects) {
	start := time.Now()
	g.computed = layout.Compute(g.h, g.input())
	elapsed := time.Since(start)

	id, nodes, edges := g.id, len(g.computed.Nodes), len(g.computed.Edges)
	fx.add(func() { observability.Graph().OnLayoutComputed(id, nodes, edges, elapsed) })

	if g.dragging != "" {
		return
	}
	g.displayed = g.computed.Clone()
	g.renderLocked(fx)
}

func (g *Graph) renderLocked(fx *effects) {
	if g.renderer == nil {
		return
	}
	r, snapshot := g.renderer, g.displayed.Clone()
	fx.add(func() { r.Render(snapshot) })
}

// effects are calls made after the lock is released.
type effects []func()

func (fx *effects) add(f func()) { *fx = append(*fx, f) }

func (fx effects) run() {
	for _, f := range fx {
		f()
	}
}
