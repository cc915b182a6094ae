package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/view"
)

// Layout units per terminal cell at zoom 1. Cells are about twice as tall as
// they are wide.
const (
	unitsPerCol = 10.0
	unitsPerRow = 20.0
)

// camera maps layout coordinates to canvas cells.
type camera struct {
	center layout.Point
	zoom   float64
}

// fitCamera returns a camera showing l padded by opts.Padding on a canvas of
// w x h cells, never zooming in past opts.MaxZoom.
func fitCamera(l layout.Layout, opts view.FitOptions, w, h int) camera {
	b, ok := l.Bounds()
	if !ok || w <= 0 || h <= 0 {
		return camera{zoom: 1}
	}
	b = b.Pad(opts.Padding)
	zoom := math.Min(float64(w)*unitsPerCol/b.Width(), float64(h)*unitsPerRow/b.Height())
	if opts.MaxZoom > 0 && zoom > opts.MaxZoom {
		zoom = opts.MaxZoom
	}
	return camera{center: b.Center(), zoom: zoom}
}

// cell returns the column and row of p on a w x h canvas.
func (c camera) cell(p layout.Point, w, h int) (int, int) {
	x := (p.X-c.center.X)*c.zoom/unitsPerCol + float64(w)/2
	y := (p.Y-c.center.Y)*c.zoom/unitsPerRow + float64(h)/2
	return int(math.Round(x)), int(math.Round(y))
}

type cellStyle uint8

const (
	cellBlank cellStyle = iota
	cellEdge
	cellRoot
	cellTier
	cellLeaf
	cellSelected
)

var cellStyles = map[cellStyle]lipgloss.Style{
	cellBlank:    lipgloss.NewStyle(),
	cellEdge:     lipgloss.NewStyle().Foreground(colorDim),
	cellRoot:     lipgloss.NewStyle().Bold(true).Foreground(colorWhite),
	cellTier:     lipgloss.NewStyle().Bold(true).Foreground(colorCyan),
	cellLeaf:     lipgloss.NewStyle().Foreground(colorGray),
	cellSelected: lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(colorGreen),
}

// wideTail fills the second cell of a double-width rune.
const wideTail rune = 0

// canvas is a fixed-size grid of styled runes.
type canvas struct {
	w, h  int
	runes [][]rune
	style [][]cellStyle
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 1), h: max(h, 1)}
	c.runes = make([][]rune, c.h)
	c.style = make([][]cellStyle, c.h)
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", c.w))
		c.style[y] = make([]cellStyle, c.w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, s cellStyle) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.clear(x, y)
	c.runes[y][x] = r
	c.style[y][x] = s
}

// clear blanks the cell at (x, y) and the other half of any wide rune it is
// part of.
func (c *canvas) clear(x, y int) {
	row := c.runes[y]
	switch {
	case row[x] == wideTail && x > 0:
		row[x-1] = ' '
	case x+1 < c.w && row[x+1] == wideTail:
		row[x+1] = ' '
	}
	row[x] = ' '
}

// setWide writes a double-width rune over (x, y) and (x+1, y). A rune that
// would not fit is dropped.
func (c *canvas) setWide(x, y int, r rune, s cellStyle) {
	if x < 0 || y < 0 || x+1 >= c.w || y >= c.h {
		c.set(x, y, ' ', s)
		c.set(x+1, y, ' ', s)
		return
	}
	c.clear(x, y)
	c.clear(x+1, y)
	c.runes[y][x], c.runes[y][x+1] = r, wideTail
	c.style[y][x], c.style[y][x+1] = s, s
}

// line draws a dotted segment between two cells, leaving the endpoints free.
func (c *canvas) line(x0, y0, x1, y1 int) {
	steps := max(abs(x1-x0), abs(y1-y0))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		c.set(x, y, '·', cellEdge)
	}
}

// label writes text centered on (x, y), measured in terminal cells.
// Zero-width runes such as emoji variation selectors are dropped.
func (c *canvas) label(x, y int, text string, s cellStyle) {
	col := x - runewidth.StringWidth(text)/2
	for _, ch := range text {
		switch runewidth.RuneWidth(ch) {
		case 0:
		case 2:
			c.setWide(col, y, ch, s)
			col += 2
		default:
			c.set(col, y, ch, s)
			col++
		}
	}
}

// String renders the grid, styling runs of equal cells together.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.style[y][x] == c.style[y][start] {
				continue
			}
			b.WriteString(cellStyles[c.style[y][start]].Render(visible(c.runes[y][start:x])))
			start = x
		}
	}
	return b.String()
}

// visible drops the filler cells of wide runes.
func visible(rs []rune) string {
	var b strings.Builder
	for _, r := range rs {
		if r != wideTail {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// drawLayout paints l onto a new w x h canvas through cam. The node with id
// selected is highlighted.
func drawLayout(l layout.Layout, cam camera, w, h int, selected string) *canvas {
	c := newCanvas(w, h)
	for _, e := range l.Edges {
		s, ok1 := l.Node(e.Source)
		t, ok2 := l.Node(e.Target)
		if !ok1 || !ok2 {
			continue
		}
		x0, y0 := cam.cell(s.Position, c.w, c.h)
		x1, y1 := cam.cell(t.Position, c.w, c.h)
		c.line(x0, y0, x1, y1)
	}
	for _, n := range l.Nodes {
		x, y := cam.cell(n.Position, c.w, c.h)
		st := kindStyle(n.Kind)
		if n.ID == selected {
			st = cellSelected
		}
		c.label(x, y, nodeLabel(n), st)
	}
	return c
}

func kindStyle(kind string) cellStyle {
	switch kind {
	case layout.KindRoot:
		return cellRoot
	case layout.KindTier:
		return cellTier
	default:
		return cellLeaf
	}
}

// nodeLabel is the short on-canvas text of a node.
func nodeLabel(n layout.Node) string {
	switch n.Kind {
	case layout.KindTier:
		marker := "▸"
		if n.Data.Expanded {
			marker = "▾"
		}
		label := n.Data.Label
		if n.Data.Icon != "" {
			label = n.Data.Icon + " " + label
		}
		return marker + " " + label
	case layout.KindLeaf:
		if n.Data.Code != "" {
			return n.Data.Code
		}
		return n.Data.Title
	default:
		return "[" + n.Data.Label + "]"
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
