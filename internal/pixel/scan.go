package pixel

// Scanner walks the coordinates of a Bitmap in column-major order.
//
// Starting at (x, y), it yields every remaining y of the first column, then
// every full column to the right of it, starting each at y = 0. This makes
// Scan(w-n, h-m) address a trailing block of a column-major walk rather than
// a rectangle.
//
// A Scanner is single-use: once Next returns false it stays exhausted.
//
//	s := bm.Scan(0, 0)
//	for s.Next() {
//	    x, y, idx := s.Point()
//	    ...
//	}
type Scanner struct {
	width, height int
	x, y          int
	cur           [3]int
	done          bool
}

// Scan returns a fresh Scanner starting at (x, y). Dimensions are captured at
// the time of the call, so plugins may swap storage while scanning.
func (bm *Bitmap) Scan(x, y int) *Scanner {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return &Scanner{width: bm.Width(), height: bm.Height(), x: x, y: y}
}

// Next advances to the next coordinate and reports whether there is one.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	if s.y >= s.height {
		s.x++
		s.y = 0
	}
	if s.x >= s.width || s.height == 0 {
		s.done = true
		return false
	}

	s.cur = [3]int{s.x, s.y, s.width*s.y + s.x}
	s.y++
	return true
}

// Point returns the current x, y and row-major index.
func (s *Scanner) Point() (x, y, idx int) {
	return s.cur[0], s.cur[1], s.cur[2]
}
