package zapper

// Click is a pointer press in device pixels, measured from the top-left
// corner of a canvas of the given size.
type Click struct {
	X, Y                      float64
	CanvasWidth, CanvasHeight float64
}

// NDC converts the click to normalised device coordinates with y pointing
// up. ok is false for a zero-sized canvas.
func (c Click) NDC() (x, y float64, ok bool) {
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return 0, 0, false
	}
	x = 2*c.X/c.CanvasWidth - 1
	y = 1 - 2*c.Y/c.CanvasHeight
	return x, y, true
}

// PointerQueue holds clicks waiting for the hit-test system.
type PointerQueue struct {
	pending []Click
}

func (q *PointerQueue) push(c Click) {
	q.pending = append(q.pending, c)
}

func (q *PointerQueue) drain() []Click {
	clicks := q.pending
	q.pending = nil
	return clicks
}

// Tally counts clicks by result. Clicks ignored because the game is over
// or the canvas is empty are not counted.
type Tally struct {
	Clicks int
	Hits   int
	Misses int
}
