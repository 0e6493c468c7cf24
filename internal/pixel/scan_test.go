package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct{ x, y, idx int }

func collect(s *Scanner) []point {
	var out []point
	for s.Next() {
		x, y, idx := s.Point()
		out = append(out, point{x, y, idx})
	}
	return out
}

func TestScanFull(t *testing.T) {
	_, bm, release := newTestBitmap(t, 3, 2, false)
	defer release()

	want := []point{
		{0, 0, 0}, {0, 1, 3},
		{1, 0, 1}, {1, 1, 4},
		{2, 0, 2}, {2, 1, 5},
	}
	assert.Equal(t, want, collect(bm.Scan(0, 0)))
}

func TestScanPartialFirstColumn(t *testing.T) {
	_, bm, release := newTestBitmap(t, 3, 3, false)
	defer release()

	want := []point{
		{1, 2, 7},
		{2, 0, 2}, {2, 1, 5}, {2, 2, 8},
	}
	assert.Equal(t, want, collect(bm.Scan(1, 2)))
}

func TestScanLastPixel(t *testing.T) {
	_, bm, release := newTestBitmap(t, 7, 5, false)
	defer release()

	assert.Equal(t, []point{{6, 4, 34}}, collect(bm.Scan(6, 4)))
}

func TestScanExhausted(t *testing.T) {
	_, bm, release := newTestBitmap(t, 2, 2, false)
	defer release()

	s := bm.Scan(0, 0)
	assert.Len(t, collect(s), 4)
	assert.False(t, s.Next())

	// a new call starts over
	assert.Len(t, collect(bm.Scan(0, 0)), 4)
}

func TestScanEmpty(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		sx, sy int
	}{
		{"zero width", 0, 3, 0, 0},
		{"zero height", 3, 0, 0, 0},
		{"start past width", 3, 3, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bm, release := newTestBitmap(t, tt.w, tt.h, false)
			defer release()
			assert.Empty(t, collect(bm.Scan(tt.sx, tt.sy)))
		})
	}
}
