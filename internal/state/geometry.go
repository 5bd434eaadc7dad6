package state

import "math"

// Rect is an axis-aligned area of the board.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Field is the playing area drawn underneath every entity.
var Field = Rect{X: 10, Y: 10, Width: 100, Height: 37}

// EndZoneRatio places the end-zone lines at this fraction of the field
// width, measured from each side.
const EndZoneRatio = 0.18

const (
	TokenRadius = 2.0
	DiscRadius  = 1.0
)

// BoundsOf returns the bounding box of points grown by padding on every side.
func BoundsOf(points []Point, padding float64) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{
		X:      minX - padding,
		Y:      minY - padding,
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

func (r Rect) Overlaps(o Rect) bool {
	return !(r.X+r.Width < o.X || o.X+o.Width < r.X ||
		r.Y+r.Height < o.Y || o.Y+o.Height < r.Y)
}

// Distance is the euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// SegmentDistance is the shortest distance from p to the segment a-b.
func SegmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Distance(p, Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// PolylineDistance is the shortest distance from p to any segment of path.
// A single-point path is measured as a point.
func PolylineDistance(p Point, path []Point) float64 {
	switch len(path) {
	case 0:
		return math.Inf(1)
	case 1:
		return Distance(p, path[0])
	}
	best := math.Inf(1)
	for i := 1; i < len(path); i++ {
		best = math.Min(best, SegmentDistance(p, path[i-1], path[i]))
	}
	return best
}
