package terminal

import (
	"math"

	"github.com/plus3/zapper/zapper"
)

const hudRows = 2

// layout places a square canvas of side rows by 2*side columns, since a
// terminal cell is about twice as tall as it is wide.
type layout struct {
	ox, oy int
	side   int
}

func fit(width, height int) layout {
	side := max(min(height-hudRows, width/2), 0)
	return layout{
		ox:   (width - 2*side) / 2,
		oy:   hudRows + (height-hudRows-side)/2,
		side: side,
	}
}

// click converts a cell to a canvas click measured in rows. Cells outside
// the canvas yield false.
func (l layout) click(col, row int) (zapper.Click, bool) {
	cx, cy := col-l.ox, row-l.oy
	if l.side == 0 || cx < 0 || cy < 0 || cx >= 2*l.side || cy >= l.side {
		return zapper.Click{}, false
	}
	return zapper.Click{
		X:            (float64(cx) + 0.5) / 2,
		Y:            float64(cy) + 0.5,
		CanvasWidth:  float64(l.side),
		CanvasHeight: float64(l.side),
	}, true
}

// ndc is the centre of a canvas cell in normalised device coordinates.
func (l layout) ndc(cx, cy int) (float64, float64) {
	side := float64(l.side)
	x := 2*((float64(cx)+0.5)/2)/side - 1
	y := 1 - 2*(float64(cy)+0.5)/side
	return x, y
}

type shade int

const (
	shadeEmpty shade = iota
	shadeDisk
	shadeBacterium
)

// shadeAt picks what covers a point: the last bacterium drawn wins, as in
// the desktop renderer.
func shadeAt(snap zapper.Snapshot, x, y float64) (shade, *zapper.Sprite) {
	for i := len(snap.Bacteria) - 1; i >= 0; i-- {
		b := &snap.Bacteria[i]
		if math.Hypot(x-b.X, y-b.Y) <= b.Radius {
			return shadeBacterium, b
		}
	}
	if math.Hypot(x, y) <= snap.DiskRadius {
		return shadeDisk, nil
	}
	return shadeEmpty, nil
}
