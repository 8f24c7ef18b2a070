package core

import (
	"errors"
	"testing"
)

func TestIndexCoordRoundTrip(t *testing.T) {
	const cols = 7
	for i := 0; i < cols*cols; i++ {
		x, y := ToCoord(cols, i)
		got, err := ToIndex(cols, x, y)
		if err != nil {
			t.Fatalf("ToIndex(%d,%d): %v", x, y, err)
		}
		if got != i {
			t.Fatalf("round trip of %d produced %d", i, got)
		}
	}
}

func TestToIndexOutOfRange(t *testing.T) {
	cases := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {9, 9}}
	for _, c := range cases {
		if _, err := ToIndex(4, c[0], c[1]); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("ToIndex(4,%d,%d) err=%v, expected ErrOutOfRange", c[0], c[1], err)
		}
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		cols, v, delta, want int
	}{
		{5, 0, -1, 4},
		{5, 4, 1, 0},
		{5, 2, 0, 2},
		{5, -13, 0, 2},
		{5, 27, 0, 2},
		{5, 0, -10, 0},
		{1, 0, -1, 0},
	}
	for _, c := range cases {
		if got := Wrap(c.cols, c.v, c.delta); got != c.want {
			t.Fatalf("Wrap(%d,%d,%d)=%d, expected %d", c.cols, c.v, c.delta, got, c.want)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{7, 4, 1},
		{-1, 4, -1},
		{-4, 4, -1},
		{-5, 4, -2},
		{0, 4, 0},
	}
	for _, c := range cases {
		if got := FloorDiv(c.a, c.b); got != c.want {
			t.Fatalf("FloorDiv(%d,%d)=%d, expected %d", c.a, c.b, got, c.want)
		}
	}
}

func TestClampCols(t *testing.T) {
	if ClampCols(0) != 1 || ClampCols(-5) != 1 || ClampCols(12) != 12 {
		t.Fatal("ClampCols must enforce a minimum of one")
	}
}
