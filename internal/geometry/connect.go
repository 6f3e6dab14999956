package geometry

import "math"

// Side is the edge of a box a connector leaves or enters through.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// ConnectionPoint is an anchor on a box edge.
type ConnectionPoint struct {
	Point
	Side Side `json:"side"`
}

// BestConnectionPoints picks the exit point on from and the entry point on to.
// With prefer45 the centre-to-centre direction snaps to the nearest of eight
// 45-degree directions and diagonals use box corners; otherwise the four
// cardinal quadrants pick edge midpoints.
func BestConnectionPoints(from, to BoundingBox, prefer45 bool) (ConnectionPoint, ConnectionPoint) {
	fc, tc := from.Center(), to.Center()
	dx, dy := tc.X-fc.X, tc.Y-fc.Y
	if dx == 0 && dy == 0 {
		return ConnectionPoint{Point: Point{X: fc.X, Y: from.Bottom()}, Side: SideBottom},
			ConnectionPoint{Point: Point{X: tc.X, Y: to.Y}, Side: SideTop}
	}

	angle := normalizeDegrees(math.Atan2(dy, dx) * 180 / math.Pi)
	opposite := math.Mod(angle+180, 360)
	if prefer45 {
		return snappedPoint(from, angle), snappedPoint(to, opposite)
	}
	return cardinalPoint(from, angle), cardinalPoint(to, opposite)
}

func normalizeDegrees(a float64) float64 {
	return math.Mod(a+360, 360)
}

// snappedPoint maps a direction to one of eight anchors. Angles grow clockwise
// because canvas y points down: 90 is below, 270 is above.
func snappedPoint(b BoundingBox, angle float64) ConnectionPoint {
	c := b.Center()
	switch int(math.Round(angle/45)*45) % 360 {
	case 0:
		return ConnectionPoint{Point: Point{X: b.Right(), Y: c.Y}, Side: SideRight}
	case 45:
		return ConnectionPoint{Point: Point{X: b.Right(), Y: b.Bottom()}, Side: SideRight}
	case 90:
		return ConnectionPoint{Point: Point{X: c.X, Y: b.Bottom()}, Side: SideBottom}
	case 135:
		return ConnectionPoint{Point: Point{X: b.X, Y: b.Bottom()}, Side: SideLeft}
	case 180:
		return ConnectionPoint{Point: Point{X: b.X, Y: c.Y}, Side: SideLeft}
	case 225:
		return ConnectionPoint{Point: Point{X: b.X, Y: b.Y}, Side: SideLeft}
	case 270:
		return ConnectionPoint{Point: Point{X: c.X, Y: b.Y}, Side: SideTop}
	default: // 315
		return ConnectionPoint{Point: Point{X: b.Right(), Y: b.Y}, Side: SideRight}
	}
}

func cardinalPoint(b BoundingBox, angle float64) ConnectionPoint {
	c := b.Center()
	switch {
	case angle < 45 || angle >= 315:
		return ConnectionPoint{Point: Point{X: b.Right(), Y: c.Y}, Side: SideRight}
	case angle < 135:
		return ConnectionPoint{Point: Point{X: c.X, Y: b.Bottom()}, Side: SideBottom}
	case angle < 225:
		return ConnectionPoint{Point: Point{X: b.X, Y: c.Y}, Side: SideLeft}
	default:
		return ConnectionPoint{Point: Point{X: c.X, Y: b.Y}, Side: SideTop}
	}
}
