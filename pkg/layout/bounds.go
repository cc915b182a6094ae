package layout

// Rect is an axis-aligned bounding box in layout coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Pad grows r by a fraction of its size on every side, the way a viewport
// fit applies padding. Degenerate extents are padded by at least one unit.
func (r Rect) Pad(fraction float64) Rect {
	dx := max(r.Width()*fraction, 1)
	dy := max(r.Height()*fraction, 1)
	return Rect{MinX: r.MinX - dx, MinY: r.MinY - dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Bounds returns the bounding box of the node positions in l and false if l
// has no nodes.
func (l Layout) Bounds() (Rect, bool) {
	if len(l.Nodes) == 0 {
		return Rect{}, false
	}
	p := l.Nodes[0].Position
	r := Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	for _, n := range l.Nodes[1:] {
		r.MinX = min(r.MinX, n.Position.X)
		r.MinY = min(r.MinY, n.Position.Y)
		r.MaxX = max(r.MaxX, n.Position.X)
		r.MaxY = max(r.MaxY, n.Position.Y)
	}
	return r, true
}
