package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := make([]bool, 256)
	b := make([]bool, 256)
	NewRNG(99).FillDensity(a, 0.4)
	NewRNG(99).FillDensity(b, 0.4)
	alive := 0
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs for equal seeds", i)
		}
		if a[i] {
			alive++
		}
	}
	if alive == 0 || alive == len(a) {
		t.Fatalf("expected a mixed fill, got %d alive", alive)
	}
}

func TestChanceBounds(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}
