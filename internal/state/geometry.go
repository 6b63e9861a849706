package state

// Rect is an axis-aligned rectangle in logical grid space.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside r. Edges count as inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Touching edges count.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X+r.Width < other.X || other.X+other.Width < r.X ||
		r.Y+r.Height < other.Y || other.Y+other.Height < r.Y)
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Expand grows (or with a negative pad, shrinks) r on every side.
func (r Rect) Expand(pad float64) Rect {
	return Rect{X: r.X - pad, Y: r.Y - pad, Width: r.Width + 2*pad, Height: r.Height + 2*pad}
}

// BoundsOf returns the union of every item's footprint.
// ok is false for an empty board.
func BoundsOf(items []BoardItem) (r Rect, ok bool) {
	for i, it := range items {
		if i == 0 {
			r = it.Bounds()
			continue
		}
		r = r.Union(it.Bounds())
	}
	return r, len(items) > 0
}
