package tiling

import (
	"fmt"
	"math"
)

// Size represents integer pixel dimensions.
type Size struct {
	W, H int
}

// IsEmpty returns true if the size has no area.
func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// String returns a string representation of the size.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// SizeF represents floating-point dimensions.
type SizeF struct {
	W, H float64
}

// IsEmpty returns true if the size has no area.
func (s SizeF) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// ScaleSizeCeil scales a size and rounds each dimension up.
func ScaleSizeCeil(s Size, scale float64) Size {
	return Size{
		W: int(math.Ceil(float64(s.W) * scale)),
		H: int(math.Ceil(float64(s.H) * scale)),
	}
}

// ScaleSizeFloor scales a size and rounds each dimension down.
func ScaleSizeFloor(s Size, scale float64) Size {
	return Size{
		W: int(math.Floor(float64(s.W) * scale)),
		H: int(math.Floor(float64(s.H) * scale)),
	}
}

// Vector represents a 2D offset with float64 components.
type Vector struct {
	X, Y float64
}

// Add returns the sum of two vectors.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the difference of two vectors.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns the vector scaled by f.
func (v Vector) Scale(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

// Rect represents an integer pixel rectangle.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// RectFromSize returns the rectangle anchored at the origin with size s.
func RectFromSize(s Size) Rect {
	return Rect{W: s.W, H: s.H}
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Area returns the rectangle's area. Empty rectangles have zero area.
func (r Rect) Area() int64 {
	if r.IsEmpty() {
		return 0
	}
	return int64(r.W) * int64(r.H)
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if o is entirely inside r.
// An empty rectangle is contained by any rectangle.
func (r Rect) Contains(o Rect) bool {
	if o.IsEmpty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersects returns true if r and o share interior area.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// Intersect returns the intersection of r and o.
// The result is the zero Rect if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// Inset shrinks the rectangle by the given amount on each side.
// Negative values grow the rectangle.
func (r Rect) Inset(left, top, right, bottom int) Rect {
	return Rect{
		X: r.X + left,
		Y: r.Y + top,
		W: r.W - left - right,
		H: r.H - top - bottom,
	}
}

// Offset returns the rectangle translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// ToRectF converts the rectangle to floating-point coordinates.
func (r Rect) ToRectF() RectF {
	return RectF{X: float64(r.X), Y: float64(r.Y), W: float64(r.W), H: float64(r.H)}
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// ScaleRectEnclosing scales a rectangle and returns the smallest integer
// rectangle enclosing the result: the origin is rounded down and the far
// edges are rounded up.
func ScaleRectEnclosing(r Rect, scale float64) Rect {
	x := int(math.Floor(float64(r.X) * scale))
	y := int(math.Floor(float64(r.Y) * scale))
	right := int(math.Ceil(float64(r.Right()) * scale))
	bottom := int(math.Ceil(float64(r.Bottom()) * scale))
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// ScaleRectF scales an integer rectangle into floating-point coordinates.
func ScaleRectF(r Rect, scale float64) RectF {
	return RectF{
		X: float64(r.X) * scale,
		Y: float64(r.Y) * scale,
		W: float64(r.W) * scale,
		H: float64(r.H) * scale,
	}
}

// RectF represents a rectangle with float64 coordinates.
type RectF struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// Right returns the right edge x-coordinate.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// IsEmpty returns true if the rectangle has no area.
func (r RectF) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if r and o share interior area.
func (r RectF) Intersects(o RectF) bool {
	return !r.IsEmpty() && !o.IsEmpty() &&
		r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the intersection of r and o.
// The result is the zero RectF if they do not overlap.
func (r RectF) Intersect(o RectF) RectF {
	x := math.Max(r.X, o.X)
	y := math.Max(r.Y, o.Y)
	right := math.Min(r.Right(), o.Right())
	bottom := math.Min(r.Bottom(), o.Bottom())
	if right <= x || bottom <= y {
		return RectF{}
	}
	return RectF{X: x, Y: y, W: right - x, H: bottom - y}
}

// Union returns the smallest rectangle containing both r and o.
func (r RectF) Union(o RectF) RectF {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return RectF{X: x, Y: y, W: right - x, H: bottom - y}
}

// Offset returns the rectangle translated by v.
func (r RectF) Offset(v Vector) RectF {
	return RectF{X: r.X + v.X, Y: r.Y + v.Y, W: r.W, H: r.H}
}

// Scale returns the rectangle with all coordinates scaled by f.
func (r RectF) Scale(f float64) RectF {
	return RectF{X: r.X * f, Y: r.Y * f, W: r.W * f, H: r.H * f}
}

// ManhattanInternalDistance returns the Manhattan (taxicab) distance
// between the two closest points of r and o. It is zero when the
// rectangles touch or overlap.
func (r RectF) ManhattanInternalDistance(o RectF) float64 {
	c := r.Union(o)
	x := math.Max(0, c.W-r.W-o.W)
	y := math.Max(0, c.H-r.H-o.H)
	return x + y
}

// String returns a string representation of the rectangle.
func (r RectF) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

// Region is an ordered set of disjoint integer rectangles, used to
// describe invalidated areas in layer space. Regions are consumed by the
// engine, never stored.
type Region struct {
	rects []Rect
}

// NewRegion creates a region from the given rectangles. The rectangles
// are unioned one by one, so overlapping inputs are allowed.
func NewRegion(rects ...Rect) Region {
	var g Region
	for _, r := range rects {
		g.Union(r)
	}
	return g
}

// IsEmpty returns true if the region covers no area.
func (g *Region) IsEmpty() bool {
	return len(g.rects) == 0
}

// Rects returns the region's disjoint rectangles.
func (g *Region) Rects() []Rect {
	return g.rects
}

// Intersects returns true if any rectangle of the region overlaps r.
func (g *Region) Intersects(r Rect) bool {
	for _, o := range g.rects {
		if o.Intersects(r) {
			return true
		}
	}
	return false
}

// Union grows the region to cover r, keeping stored rectangles disjoint.
func (g *Region) Union(r Rect) {
	if r.IsEmpty() {
		return
	}
	pieces := []Rect{r}
	for _, o := range g.rects {
		var next []Rect
		for _, p := range pieces {
			next = append(next, subtractRect(p, o)...)
		}
		pieces = next
	}
	g.rects = append(g.rects, pieces...)
}

// Subtract removes r from the region.
func (g *Region) Subtract(r Rect) {
	if r.IsEmpty() || len(g.rects) == 0 {
		return
	}
	var out []Rect
	for _, o := range g.rects {
		out = append(out, subtractRect(o, r)...)
	}
	g.rects = out
}

// subtractRect returns a minus b as up to four disjoint rectangles.
func subtractRect(a, b Rect) []Rect {
	in := a.Intersect(b)
	if in.IsEmpty() {
		return []Rect{a}
	}
	if in == a {
		return nil
	}
	var out []Rect
	if in.Y > a.Y { // strip above
		out = append(out, Rect{X: a.X, Y: a.Y, W: a.W, H: in.Y - a.Y})
	}
	if in.Bottom() < a.Bottom() { // strip below
		out = append(out, Rect{X: a.X, Y: in.Bottom(), W: a.W, H: a.Bottom() - in.Bottom()})
	}
	if in.X > a.X { // strip to the left
		out = append(out, Rect{X: a.X, Y: in.Y, W: in.X - a.X, H: in.H})
	}
	if in.Right() < a.Right() { // strip to the right
		out = append(out, Rect{X: in.Right(), Y: in.Y, W: a.Right() - in.Right(), H: in.H})
	}
	return out
}
