// Package geometry provides the 3D point value type shared by the
// spatial index and the interpolation engine.
package geometry

// Point is a location in 3D space. Grid cells are represented as Points
// by promoting their integer indices to coordinates.
type Point struct {
	X, Y, Z float64
}

// NewPoint constructs a Point from three coordinates.
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// SquaredDistanceTo returns the squared Euclidean distance to q.
// Every distance comparison in this module works on squared distances,
// so the square root is only taken where an actual radius is needed.
func (p Point) SquaredDistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return dx*dx + dy*dy + dz*dz
}

// Coord returns the coordinate along the given axis (0=X, 1=Y, 2=Z).
func (p Point) Coord(axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	default:
		panic("geometry: illegal axis")
	}
}
