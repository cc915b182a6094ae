package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgraph/pkg/hierarchy"
	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/pipeline"
	"github.com/matzehuels/pathgraph/pkg/view"
)

const (
	panelWidth = 38
	dragStep   = 20.0 // layout units per arrow key press
)

var (
	panelStyle = lipgloss.NewStyle().
			Width(panelWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "explore [hierarchy.toml]",
		Short: "Explore a hierarchy interactively in the terminal",
		Long: `Explore a hierarchy interactively in the terminal.

Select nodes with tab, expand or collapse tiers with enter, drag the selected
node with d and the arrow keys, format with f, and reset with r.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Expand, "expand", "e", nil, "tier ids to expand on start (comma-separated)")
	cmd.Flags().BoolVar(&opts.ExpandAll, "all", false, "expand every tier on start")
	cmd.Flags().BoolVar(&opts.Format, "format", false, "start formatted")
	_ = cmd.RegisterFlagCompletionFunc("expand", completeTierIDs)

	return cmd
}

// runExplore runs the terminal host until the user quits. Log output is held
// back while the alternate screen is active and written afterwards.
func (c *CLI) runExplore(ctx context.Context, input string, opts pipeline.Options) error {
	h, err := loadHierarchy(ctx, input)
	if err != nil {
		return err
	}
	expand, err := pipeline.ExpandedTiers(h, opts)
	if err != nil {
		return err
	}

	var logs bytes.Buffer
	c.Logger.SetOutput(&logs)
	defer func() {
		c.Logger.SetOutput(os.Stderr)
		os.Stderr.Write(logs.Bytes())
	}()

	m, err := newExploreModel(h, c.Logger)
	if err != nil {
		return err
	}
	m.start(expand, opts.Format)

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// Host - view.Renderer and view.Scheduler for the terminal
// =============================================================================

// exploreHost receives layouts and fit requests from the graph and queues its
// deferred continuations until the next flush message.
type exploreHost struct {
	mu      sync.Mutex
	shown   layout.Layout
	fit     *view.FitOptions
	pending []func()
	renders int
}

// Render implements view.Renderer.
func (h *exploreHost) Render(l layout.Layout) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shown = l
	h.renders++
}

// FitView implements view.Renderer. The request is applied on the next frame.
func (h *exploreHost) FitView(opts view.FitOptions) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fit = &opts
}

// Defer implements view.Scheduler.
func (h *exploreHost) Defer(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, fn)
}

// frame returns the shown layout and takes the pending fit request, if any.
func (h *exploreHost) frame() (layout.Layout, *view.FitOptions) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fit := h.fit
	h.fit = nil
	return h.shown, fit
}

func (h *exploreHost) drain() []func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	fns := h.pending
	h.pending = nil
	return fns
}

func (h *exploreHost) hasPending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending) > 0
}

// flushMsg runs the host's deferred continuations.
type flushMsg struct{}

// =============================================================================
// Model
// =============================================================================

type exploreKeyHandler func(*exploreModel) tea.Cmd

// exploreModel is the bubbletea model of the explore command.
type exploreModel struct {
	h      *hierarchy.Hierarchy
	graph  *view.Graph
	host   *exploreHost
	reset  view.ResetFunc
	format view.FormatFunc
	keys   exploreKeyMap
	help   help.Model
	route  map[string]exploreKeyHandler

	shown    layout.Layout
	cam      camera
	selected string
	dragPos  layout.Point
	width    int
	height   int
	status   string
}

func newExploreModel(h *hierarchy.Hierarchy, logger *log.Logger) (*exploreModel, error) {
	host := &exploreHost{}
	m := &exploreModel{h: h, host: host, width: 100, height: 30, keys: newExploreKeyMap(), help: help.New()}
	m.route = m.keys.routes()

	g, err := view.New(nil, view.WithRenderer(host), view.WithScheduler(host), view.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	g.OnReady(func(reset view.ResetFunc, format view.FormatFunc) {
		m.reset = reset
		m.format = format
	})
	if err := g.Load(h); err != nil {
		return nil, err
	}
	m.graph = g
	m.selected = layout.RootID(g.ID())
	return m, nil
}

// start applies the initial expansion and mode, then fits the view.
func (m *exploreModel) start(expand []string, format bool) {
	for _, id := range expand {
		m.graph.Toggle(id)
	}
	if format {
		m.format()
	} else {
		m.graph.Fit(view.ResetFit)
	}
	m.flush()
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.graph.Fit(view.ResetFit)
	case tea.KeyMsg:
		handler, ok := m.route[msg.String()]
		if !ok {
			return m, nil
		}
		cmd := handler(m)
		m.sync()
		return m, tea.Batch(cmd, m.flushCmd())
	case flushMsg:
		m.flush()
		return m, nil
	}
	m.sync()
	return m, nil
}

// flushCmd schedules a flush if continuations are waiting.
func (m *exploreModel) flushCmd() tea.Cmd {
	if !m.host.hasPending() {
		return nil
	}
	return func() tea.Msg { return flushMsg{} }
}

// flush runs queued continuations, which may add fit requests.
func (m *exploreModel) flush() {
	for _, fn := range m.host.drain() {
		fn()
	}
	m.sync()
}

// sync pulls the latest frame from the host and keeps the selection valid.
func (m *exploreModel) sync() {
	l, fit := m.host.frame()
	m.shown = l
	if fit != nil {
		w, h := m.canvasSize()
		m.cam = fitCamera(l, *fit, w, h)
	}
	if _, ok := l.Node(m.selected); !ok {
		m.selected = layout.RootID(m.graph.ID())
	}
}

func (m *exploreModel) canvasSize() (int, int) {
	rows := 4
	if m.help.ShowAll {
		rows += 3
	}
	return max(m.width-panelWidth-4, 20), max(m.height-rows, 5)
}

// =============================================================================
// Key Handlers
// =============================================================================

type exploreKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Drag   key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Format key.Binding
	Reset  key.Binding
	Fit    key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newExploreKeyMap() exploreKeyMap {
	return exploreKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "j"),
			key.WithHelp("tab/j", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "k"),
			key.WithHelp("shift+tab/k", "previous"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle/drop"),
		),
		Drag: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "drag"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("←↑↓→", "move"),
		),
		Down:  key.NewBinding(key.WithKeys("down")),
		Left:  key.NewBinding(key.WithKeys("left")),
		Right: key.NewBinding(key.WithKeys("right")),
		Format: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "format"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Fit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "fit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Toggle, k.Drag, k.Up, k.Format, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Toggle},
		{k.Drag, k.Up},
		{k.Format, k.Reset, k.Fit},
		{k.Help, k.Quit},
	}
}

// routes maps every bound key string to its handler.
func (k exploreKeyMap) routes() map[string]exploreKeyHandler {
	bound := []struct {
		binding key.Binding
		handler exploreKeyHandler
	}{
		{k.Quit, handleExploreQuit},
		{k.Next, handleSelectNext},
		{k.Prev, handleSelectPrev},
		{k.Toggle, handleActivate},
		{k.Drag, handleDrag},
		{k.Up, dragBy(0, -dragStep)},
		{k.Down, dragBy(0, dragStep)},
		{k.Left, dragBy(-dragStep, 0)},
		{k.Right, dragBy(dragStep, 0)},
		{k.Format, handleFormat},
		{k.Reset, handleReset},
		{k.Fit, handleFit},
		{k.Help, handleHelp},
	}
	routes := make(map[string]exploreKeyHandler)
	for _, b := range bound {
		for _, s := range b.binding.Keys() {
			routes[s] = b.handler
		}
	}
	return routes
}

func handleExploreQuit(m *exploreModel) tea.Cmd {
	return tea.Quit
}

func handleSelectNext(m *exploreModel) tea.Cmd {
	m.moveSelection(1)
	return nil
}

func handleSelectPrev(m *exploreModel) tea.Cmd {
	m.moveSelection(-1)
	return nil
}

func (m *exploreModel) moveSelection(delta int) {
	if _, dragging := m.graph.Dragging(); dragging || len(m.shown.Nodes) == 0 {
		return
	}
	idx := 0
	for i, n := range m.shown.Nodes {
		if n.ID == m.selected {
			idx = i
			break
		}
	}
	n := len(m.shown.Nodes)
	m.selected = m.shown.Nodes[((idx+delta)%n+n)%n].ID
}

// handleActivate drops a dragged node, or toggles the selected tier.
func handleActivate(m *exploreModel) tea.Cmd {
	if _, dragging := m.graph.Dragging(); dragging {
		m.drop()
		return nil
	}
	node, ok := m.shown.Node(m.selected)
	if !ok || node.Kind != layout.KindTier {
		return nil
	}
	if m.graph.Toggle(node.ID) {
		state := "collapsed"
		if m.graph.IsExpanded(node.ID) {
			state = "expanded"
		}
		m.status = node.Data.Label + " " + state
	}
	return nil
}

// handleDrag picks up the selected node, or drops it if it is being dragged.
func handleDrag(m *exploreModel) tea.Cmd {
	if _, dragging := m.graph.Dragging(); dragging {
		m.drop()
		return nil
	}
	node, ok := m.shown.Node(m.selected)
	if !ok || !m.graph.DragStart(node.ID) {
		return nil
	}
	m.dragPos = node.Position
	m.status = "dragging " + nodeLabel(node)
	return nil
}

func (m *exploreModel) drop() {
	id, _ := m.graph.Dragging()
	if m.graph.DragStop(id, m.dragPos) {
		m.status = "placed at " + m.dragPos.String()
	} else {
		m.status = "drop rejected"
	}
}

func dragBy(dx, dy float64) exploreKeyHandler {
	return func(m *exploreModel) tea.Cmd {
		id, dragging := m.graph.Dragging()
		if !dragging {
			return nil
		}
		m.dragPos = layout.Point{X: m.dragPos.X + dx, Y: m.dragPos.Y + dy}
		m.graph.DragMove(id, m.dragPos)
		return nil
	}
}

func handleFormat(m *exploreModel) tea.Cmd {
	m.format()
	m.status = "formatted"
	return nil
}

func handleReset(m *exploreModel) tea.Cmd {
	m.reset()
	m.selected = layout.RootID(m.graph.ID())
	m.status = "reset"
	return nil
}

func handleFit(m *exploreModel) tea.Cmd {
	m.graph.Fit(view.ResetFit)
	return nil
}

func handleHelp(m *exploreModel) tea.Cmd {
	m.help.ShowAll = !m.help.ShowAll
	return nil
}

// =============================================================================
// View
// =============================================================================

func (m *exploreModel) View() string {
	w, h := m.canvasSize()
	board := drawLayout(m.shown, m.cam, w, h, m.selected).String()

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, " ", panelStyle.Render(m.detail())))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(iconInfo + " " + m.status))
	}
	return b.String()
}

func (m *exploreModel) header() string {
	expanded := len(m.graph.Expanded())
	parts := []string{
		StyleTitle.Render(m.h.RootLabel),
		StyleDim.Render(m.graph.Mode().String()),
		StyleDim.Render(fmt.Sprintf("%d/%d tiers open", expanded, len(m.h.Tiers))),
	}
	if _, dragging := m.graph.Dragging(); dragging {
		parts = append(parts, StyleWarning.Render("dragging"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// detail renders the side panel for the selected node.
func (m *exploreModel) detail() string {
	node, ok := m.shown.Node(m.selected)
	if !ok {
		return ""
	}
	var lines []string
	switch node.Kind {
	case layout.KindTier:
		lines = m.tierDetail(node)
	case layout.KindLeaf:
		lines = m.leafDetail(node)
	default:
		lines = m.rootDetail()
	}
	if p, ok := m.graph.Override(node.ID); ok {
		lines = append(lines, "", StyleDim.Render("pinned at "+p.String()))
	}
	return strings.Join(lines, "\n")
}

func (m *exploreModel) rootDetail() []string {
	lines := []string{
		StyleTitle.Render(m.h.RootLabel),
		"",
		detailRow("Tiers", fmt.Sprint(len(m.h.Tiers))),
		detailRow("Leaves", fmt.Sprint(len(m.h.Leaves))),
	}
	if n := len(m.h.Orphans()); n > 0 {
		lines = append(lines, detailRow("Orphans", StyleWarning.Render(fmt.Sprint(n))))
	}
	return lines
}

func (m *exploreModel) tierDetail(node layout.Node) []string {
	i, _ := m.h.TierIndex(node.ID)
	state := "collapsed"
	if node.Data.Expanded {
		state = "expanded"
	}
	lines := []string{
		StyleTitle.Render(strings.TrimSpace(node.Data.Icon + " " + node.Data.Label)),
		"",
		detailRow("State", state),
		detailRow("Leaves", fmt.Sprint(len(m.h.LeavesOf(i)))),
	}
	if intro := m.h.TierIntros[node.ID]; intro != "" {
		lines = append(lines, "", intro)
	}
	return lines
}

func (m *exploreModel) leafDetail(node layout.Node) []string {
	leaf, ok := m.h.Leaf(node.Data.LeafID)
	if !ok {
		return []string{node.Data.Title}
	}
	lines := []string{
		StyleTitle.Render(leaf.Code),
		StyleValue.Render(leaf.DisplayTitle()),
	}
	if leaf.Description != "" {
		lines = append(lines, "", leaf.Description)
	}
	if len(leaf.Prerequisites) > 0 {
		lines = append(lines, "", detailRow("Requires", strings.Join(leaf.Prerequisites, ", ")))
	}
	lines = append(lines, detailList("Resources", leaf.Resources)...)

	d := leaf.Details
	if d == nil {
		return lines
	}
	if d.Credits > 0 {
		lines = append(lines, detailRow("Credits", fmt.Sprint(d.Credits)))
	}
	lines = append(lines, detailList("Topics", d.Topics)...)
	lines = append(lines, detailList("Outcomes", d.LearningOutcomes)...)
	if d.CareerRelevance != "" {
		lines = append(lines, "", headerStyle.Render("Career relevance"), d.CareerRelevance)
	}
	lines = append(lines, detailList("Tools", d.Tools)...)
	return lines
}

func detailRow(label, value string) string {
	return headerStyle.Width(10).Render(label) + value
}

func detailList(title string, items []string) []string {
	if len(items) == 0 {
		return nil
	}
	lines := []string{"", headerStyle.Render(title)}
	for _, it := range items {
		lines = append(lines, StyleDim.Render("• ")+it)
	}
	return lines
}
