// Package grid provides the integer-coordinate primitives shared by the
// visibility and lighting engine: points, depth-tagged points, and the
// packed keys used to deduplicate point sets.
package grid

// Point represents a tile coordinate in the world grid
type Point struct {
	X, Y int
}

// DepthPoint is a Point tagged with the discrete ring depth at which the
// field iterator reached it. Depth is a loop index outward from the origin,
// not a Euclidean distance.
type DepthPoint struct {
	Point
	Depth int
}

// Add returns the point offset by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// SquaredDistance returns the squared Euclidean distance between two points
func SquaredDistance(a, b Point) int {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
