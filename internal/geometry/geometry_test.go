package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxAround(t *testing.T) {
	b := BoxAround(Point{X: 600, Y: 150}, Size{Width: 260, Height: 100})
	assert.Equal(t, BoundingBox{X: 470, Y: 100, Width: 260, Height: 100}, b)
	assert.Equal(t, Point{X: 600, Y: 150}, b.Center())
}

func TestCollides(t *testing.T) {
	a := BoundingBox{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name    string
		b       BoundingBox
		padding float64
		want    bool
	}{
		{"overlapping", BoundingBox{X: 50, Y: 50, Width: 100, Height: 100}, 0, true},
		{"far right", BoundingBox{X: 300, Y: 0, Width: 100, Height: 100}, 40, false},
		{"gap smaller than padding", BoundingBox{X: 120, Y: 0, Width: 100, Height: 100}, 40, true},
		{"gap equal to padding", BoundingBox{X: 140, Y: 0, Width: 100, Height: 100}, 40, false},
		{"touching without padding", BoundingBox{X: 100, Y: 0, Width: 100, Height: 100}, 0, false},
		{"close on x but clear on y", BoundingBox{X: 110, Y: 500, Width: 100, Height: 100}, 40, false},
		{"below within padding", BoundingBox{X: 0, Y: 130, Width: 100, Height: 100}, 40, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collides(a, tt.b, tt.padding))
			assert.Equal(t, tt.want, Collides(tt.b, a, tt.padding), "symmetric")
		})
	}
}

func TestBestConnectionPoints_Snapped(t *testing.T) {
	from := BoundingBox{X: 0, Y: 0, Width: 100, Height: 50}

	tests := []struct {
		name     string
		to       BoundingBox
		fromSide Side
		fromPt   Point
		toSide   Side
		toPt     Point
	}{
		{"right", BoundingBox{X: 400, Y: 0, Width: 100, Height: 50}, SideRight, Point{X: 100, Y: 25}, SideLeft, Point{X: 400, Y: 25}},
		{"below", BoundingBox{X: 0, Y: 400, Width: 100, Height: 50}, SideBottom, Point{X: 50, Y: 50}, SideTop, Point{X: 50, Y: 400}},
		{"above", BoundingBox{X: 0, Y: -400, Width: 100, Height: 50}, SideTop, Point{X: 50, Y: 0}, SideBottom, Point{X: 50, Y: -350}},
		{"diagonal down right", BoundingBox{X: 300, Y: 300, Width: 100, Height: 50}, SideRight, Point{X: 100, Y: 50}, SideLeft, Point{X: 300, Y: 300}},
		{"diagonal up left", BoundingBox{X: -300, Y: -300, Width: 100, Height: 50}, SideLeft, Point{X: 0, Y: 0}, SideRight, Point{X: -200, Y: -250}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, to := BestConnectionPoints(from, tt.to, true)
			assert.Equal(t, tt.fromSide, f.Side)
			assert.InDelta(t, tt.fromPt.X, f.X, 1e-9)
			assert.InDelta(t, tt.fromPt.Y, f.Y, 1e-9)
			assert.Equal(t, tt.toSide, to.Side)
			assert.InDelta(t, tt.toPt.X, to.X, 1e-9)
			assert.InDelta(t, tt.toPt.Y, to.Y, 1e-9)
		})
	}
}

func TestBestConnectionPoints_Cardinal(t *testing.T) {
	from := BoundingBox{X: 0, Y: 0, Width: 100, Height: 50}
	to := BoundingBox{X: 100, Y: 150, Width: 100, Height: 50}

	f, tp := BestConnectionPoints(from, to, false)
	assert.Equal(t, SideBottom, f.Side)
	assert.Equal(t, Point{X: 50, Y: 50}, f.Point)
	assert.Equal(t, SideTop, tp.Side)
	assert.Equal(t, Point{X: 150, Y: 150}, tp.Point)

	// the same pair snaps to the lower-right corner when diagonals are allowed
	f, _ = BestConnectionPoints(from, to, true)
	assert.Equal(t, SideRight, f.Side)
	assert.Equal(t, Point{X: 100, Y: 50}, f.Point)
}

func TestBestConnectionPoints_SameCenter(t *testing.T) {
	b := BoundingBox{X: 0, Y: 0, Width: 100, Height: 50}
	f, to := BestConnectionPoints(b, b, true)
	assert.Equal(t, SideBottom, f.Side)
	assert.Equal(t, Point{X: 50, Y: 50}, f.Point)
	assert.Equal(t, SideTop, to.Side)
	assert.Equal(t, Point{X: 50, Y: 0}, to.Point)
}

func TestSmooth45Path(t *testing.T) {
	t.Run("short is straight", func(t *testing.T) {
		p := Smooth45Path(Point{X: 0, Y: 0}, Point{X: 3, Y: 4})
		assert.Equal(t, 1, p.Segments())
	})

	t.Run("exact diagonal is straight", func(t *testing.T) {
		p := Smooth45Path(Point{X: 0, Y: 0}, Point{X: 200, Y: -200})
		assert.Equal(t, Path{{X: 0, Y: 0}, {X: 200, Y: -200}}, p)
	})

	t.Run("vertical dominant ends vertically", func(t *testing.T) {
		p := Smooth45Path(Point{X: 0, Y: 0}, Point{X: 0, Y: 600})
		require.Len(t, p, 4)
		assert.Equal(t, Point{X: 0, Y: 100}, p[1])
		assert.Equal(t, p[1].X, p[2].X)
		assert.Equal(t, Point{X: 0, Y: 600}, p.End())
	})

	t.Run("horizontal dominant ends horizontally", func(t *testing.T) {
		p := Smooth45Path(Point{X: 0, Y: 0}, Point{X: 600, Y: 30})
		require.Len(t, p, 4)
		assert.Equal(t, Point{X: 100, Y: 0}, p[1])
		assert.Equal(t, Point{X: 600, Y: 0}, p[2])
		assert.Equal(t, "M 0 0 L 100 0 L 600 0 L 600 30", p.SVG())
	})
}

func TestOrthogonalPath(t *testing.T) {
	src := BoundingBox{X: 0, Y: 0, Width: 100, Height: 50}
	dst := BoundingBox{X: 400, Y: 100, Width: 100, Height: 50}

	p := OrthogonalPath(src, dst)
	assert.Equal(t, "M 100 25 L 250 25 L 250 125 L 400 125", p.SVG())

	p = OrthogonalPath(src, BoundingBox{X: 0, Y: 400, Width: 100, Height: 50})
	assert.Equal(t, "M 50 50 L 50 225 L 50 225 L 50 400", p.SVG())
}

func TestSteppedOrthogonalPath(t *testing.T) {
	src := BoundingBox{X: 500, Y: 500, Width: 100, Height: 50}

	tests := []struct {
		name string
		dst  BoundingBox
		want string
	}{
		{"right", BoundingBox{X: 900, Y: 600, Width: 100, Height: 50}, "M 600 525 L 640 525 L 640 625 L 900 625"},
		{"left", BoundingBox{X: 0, Y: 400, Width: 100, Height: 50}, "M 500 525 L 460 525 L 460 425 L 100 425"},
		{"below", BoundingBox{X: 550, Y: 1000, Width: 100, Height: 50}, "M 550 550 L 550 590 L 600 590 L 600 1000"},
		{"above", BoundingBox{X: 450, Y: 0, Width: 100, Height: 50}, "M 550 500 L 550 460 L 500 460 L 500 50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SteppedOrthogonalPath(src, tt.dst, DefaultStepOffset)
			assert.Equal(t, tt.want, p.SVG())
		})
	}
}
