package geometry

import (
	"math"
	"strconv"
	"strings"
)

// Path is a polyline; consecutive points are joined by straight segments.
type Path []Point

// Segments returns the number of line segments.
func (p Path) Segments() int {
	if len(p) < 2 {
		return 0
	}
	return len(p) - 1
}

// Start returns the first point.
func (p Path) Start() Point {
	if len(p) == 0 {
		return Point{}
	}
	return p[0]
}

// End returns the last point.
func (p Path) End() Point {
	if len(p) == 0 {
		return Point{}
	}
	return p[len(p)-1]
}

// SVG renders the path as SVG path data ("M x y L x y ...").
func (p Path) SVG() string {
	var b strings.Builder
	for i, pt := range p {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatFloat(pt.X))
		b.WriteByte(' ')
		b.WriteString(formatFloat(pt.Y))
	}
	return b.String()
}

func formatFloat(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// unit vectors for the eight 45-degree headings, clockwise from +x.
var headings = [8]Point{
	{X: 1, Y: 0},
	{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	{X: 0, Y: 1},
	{X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	{X: -1, Y: 0},
	{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2},
	{X: 0, Y: -1},
	{X: math.Sqrt2 / 2, Y: -math.Sqrt2 / 2},
}

const (
	minSmoothDistance = 10
	maxDiagonalStub   = 100
)

// Smooth45Path routes from one anchor to another. Short or exactly diagonal
// connections are a single segment. Everything else leaves along the nearest
// 45-degree heading for min(d/3, 100), then finishes with one horizontal and one
// vertical leg, ending on whichever axis still has the larger distance to cover.
func Smooth45Path(from, to Point) Path {
	dx, dy := to.X-from.X, to.Y-from.Y
	dist := math.Hypot(dx, dy)
	if dist < minSmoothDistance {
		return Path{from, to}
	}
	if dx != 0 && math.Abs(dx) == math.Abs(dy) {
		return Path{from, to}
	}

	k := int(math.Round(math.Atan2(dy, dx) / (math.Pi / 4)))
	h := headings[(k%8+8)%8]
	stub := math.Min(dist/3, maxDiagonalStub)
	mid := Point{X: from.X + h.X*stub, Y: from.Y + h.Y*stub}

	if math.Abs(to.X-mid.X) > math.Abs(to.Y-mid.Y) {
		return Path{from, mid, {X: to.X, Y: mid.Y}, to}
	}
	return Path{from, mid, {X: mid.X, Y: to.Y}, to}
}

// OrthogonalPath joins the facing sides of two boxes with a single bend at the
// midpoint of the dominant axis.
func OrthogonalPath(src, dst BoundingBox) Path {
	sc, dc := src.Center(), dst.Center()
	dx, dy := dc.X-sc.X, dc.Y-sc.Y

	var s, t Point
	horizontal := math.Abs(dx) > math.Abs(dy)
	switch {
	case horizontal && dx > 0:
		s, t = Point{X: src.Right(), Y: sc.Y}, Point{X: dst.X, Y: dc.Y}
	case horizontal:
		s, t = Point{X: src.X, Y: sc.Y}, Point{X: dst.Right(), Y: dc.Y}
	case dy > 0:
		s, t = Point{X: sc.X, Y: src.Bottom()}, Point{X: dc.X, Y: dst.Y}
	default:
		s, t = Point{X: sc.X, Y: src.Y}, Point{X: dc.X, Y: dst.Bottom()}
	}

	if horizontal {
		midX := (s.X + t.X) / 2
		return Path{s, {X: midX, Y: s.Y}, {X: midX, Y: t.Y}, t}
	}
	midY := (s.Y + t.Y) / 2
	return Path{s, {X: s.X, Y: midY}, {X: t.X, Y: midY}, t}
}

// DefaultStepOffset is how far a stepped route travels out of the source before bending.
const DefaultStepOffset = 40

// SteppedOrthogonalPath picks the quadrant of dst relative to src, leaves the
// facing side of src, steps out by stepOffset, crosses over, and enters the
// facing side of dst. Ties between axes go horizontal.
func SteppedOrthogonalPath(src, dst BoundingBox, stepOffset float64) Path {
	sc, dc := src.Center(), dst.Center()
	dx, dy := dc.X-sc.X, dc.Y-sc.Y
	horizontal := math.Abs(dx) >= math.Abs(dy)

	switch {
	case horizontal && dx >= 0:
		s, t := Point{X: src.Right(), Y: sc.Y}, Point{X: dst.X, Y: dc.Y}
		bend := s.X + stepOffset
		return Path{s, {X: bend, Y: s.Y}, {X: bend, Y: t.Y}, t}
	case horizontal:
		s, t := Point{X: src.X, Y: sc.Y}, Point{X: dst.Right(), Y: dc.Y}
		bend := s.X - stepOffset
		return Path{s, {X: bend, Y: s.Y}, {X: bend, Y: t.Y}, t}
	case dy >= 0:
		s, t := Point{X: sc.X, Y: src.Bottom()}, Point{X: dc.X, Y: dst.Y}
		bend := s.Y + stepOffset
		return Path{s, {X: s.X, Y: bend}, {X: t.X, Y: bend}, t}
	default:
		s, t := Point{X: sc.X, Y: src.Y}, Point{X: dc.X, Y: dst.Bottom()}
		bend := s.Y - stepOffset
		return Path{s, {X: s.X, Y: bend}, {X: t.X, Y: bend}, t}
	}
}
