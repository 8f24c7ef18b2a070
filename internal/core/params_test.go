package core

import "testing"

func TestNextPreset(t *testing.T) {
	presets := []float64{0.5, 1, 2, 4}
	cases := []struct {
		current float64
		dir     int
		want    float64
		ok      bool
	}{
		{1, 1, 2, true},
		{1, -1, 0.5, true},
		{0.5, -1, 0.5, false},
		{4, 1, 4, false},
		{3, 1, 4, true},
		{3, -1, 2, true},
	}
	for _, c := range cases {
		got, ok := NextPreset(presets, c.current, c.dir)
		if got != c.want || ok != c.ok {
			t.Fatalf("NextPreset(%v,%d)=(%v,%v), expected (%v,%v)", c.current, c.dir, got, ok, c.want, c.ok)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q)=(%v,%v)", m.String(), got, err)
		}
	}
	if _, err := ParseMode("chaos"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if ModeMadness.Next() != ModeClassic {
		t.Fatal("mode cycling should wrap")
	}
}
