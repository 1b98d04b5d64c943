package pixel

// Point is an integer-valued screen or buffer coordinate.
type Point struct {
	X, Y int32
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by the inverse of q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is an integer-valued width/height pair.
type Size struct {
	W, H int32
}

// Rect is an axis-aligned integer rectangle specified by its top-left
// corner and size. A rect is empty when its width or height is <= 0.
type Rect struct {
	X, Y, W, H int32
}

// NewRect builds a rect from a position and size.
func NewRect(x, y, w, h int32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Empty reports whether r has non-positive width or height.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Min returns the top-left corner of r.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner of r (exclusive).
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Center returns the integer-truncated center point of r.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether p lies within r (max edges exclusive).
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Add returns r translated by p.
func (r Rect) Add(p Point) Rect { return Rect{r.X + p.X, r.Y + p.Y, r.W, r.H} }

// Subtract returns r translated by the inverse of p.
func (r Rect) Subtract(p Point) Rect { return Rect{r.X - p.X, r.Y - p.Y, r.W, r.H} }

// Clamp pulls p into the closed bounds of r (inclusive of the max edge),
// used to keep drag/resize gestures from producing positions that make no
// geometric sense relative to the rect they are constrained to.
func (r Rect) Clamp(p Point) Point {
	out := p
	if out.X < r.X {
		out.X = r.X
	}
	if out.X > r.X+r.W {
		out.X = r.X + r.W
	}
	if out.Y < r.Y {
		out.Y = r.Y
	}
	if out.Y > r.Y+r.H {
		out.Y = r.Y + r.H
	}
	return out
}

// Intersect returns the overlapping region of r and s. Intersect is
// commutative and associative; the result is empty if r and s do not
// overlap.
func Intersect(r, s Rect) Rect {
	if r.Empty() || s.Empty() {
		return Rect{}
	}
	x0 := max32(r.X, s.X)
	y0 := max32(r.Y, s.Y)
	x1 := min32(r.X+r.W, s.X+s.W)
	y1 := min32(r.Y+r.H, s.Y+s.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Intersect is the method form of Intersect(r, s).
func (r Rect) Intersect(s Rect) Rect { return Intersect(r, s) }

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
