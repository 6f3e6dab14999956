// Package geometry holds the pure box and path helpers shared by the layout engines.
package geometry

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a node footprint.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoundingBox is an axis-aligned rectangle anchored at its top-left corner.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoxAround returns the box of the given size centred on c.
func BoxAround(c Point, s Size) BoundingBox {
	return BoundingBox{X: c.X - s.Width/2, Y: c.Y - s.Height/2, Width: s.Width, Height: s.Height}
}

// BoxAt returns the box of the given size whose top-left corner is p.
func BoxAt(p Point, s Size) BoundingBox {
	return BoundingBox{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Center returns the centre of the box.
func (b BoundingBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Right is the x of the right edge.
func (b BoundingBox) Right() float64 { return b.X + b.Width }

// Bottom is the y of the bottom edge.
func (b BoundingBox) Bottom() float64 { return b.Y + b.Height }

// Collides reports whether a and b overlap or sit closer than padding on both axes.
// Boxes separated by exactly padding do not collide.
func Collides(a, b BoundingBox, padding float64) bool {
	xClear := a.Right()+padding <= b.X || b.Right()+padding <= a.X
	yClear := a.Bottom()+padding <= b.Y || b.Bottom()+padding <= a.Y
	return !xClear && !yClear
}

// CollidesAny reports whether box collides with any of placed.
func CollidesAny(box BoundingBox, placed []BoundingBox, padding float64) bool {
	for _, p := range placed {
		if Collides(box, p, padding) {
			return true
		}
	}
	return false
}
