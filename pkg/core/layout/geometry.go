package layout

// Point is a location in container coordinates (origin top-left, Y down).
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r. The top and left edges are
// inclusive, the bottom and right edges exclusive.
func (r Rect) Contains(p Point) bool {
	if r.IsEmpty() {
		return false
	}
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Insets are distances from the container edges. Leading and Trailing are
// direction-neutral; this package treats them as left and right.
type Insets struct {
	Top, Leading, Bottom, Trailing float64
}

// Horizontal returns Leading + Trailing.
func (i Insets) Horizontal() float64 { return i.Leading + i.Trailing }

// Vertical returns Top + Bottom.
func (i Insets) Vertical() float64 { return i.Top + i.Bottom }

// Container is an immutable snapshot of the host surface supplied on every
// layout pass.
type Container struct {
	Width, Height float64
	SafeArea      Insets
}

// Bounds returns the container rectangle at the origin.
func (c Container) Bounds() Rect {
	return Rect{Width: c.Width, Height: c.Height}
}

// Handle describes the grip bar drawn at the top of the panel.
type Handle struct {
	Size           Size
	VerticalMargin float64
}

// DefaultHandle is a 40×4 grip with 10 points of margin above and below.
var DefaultHandle = Handle{
	Size:           Size{Width: 40, Height: 4},
	VerticalMargin: 10,
}

// AreaHeight is the vertical space the handle reserves at the top of the
// panel: its height plus both margins.
func (h Handle) AreaHeight() float64 {
	return h.Size.Height + 2*h.VerticalMargin
}
