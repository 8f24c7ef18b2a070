package persist

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"life-canvas/internal/core"
	"life-canvas/internal/ledger"
	"life-canvas/internal/life"
)

func sampleState(cols int) State {
	g := life.NewGrid(cols)
	g.Fill(core.NewRNG(11), 0.4)
	for i := 0; i < 5; i++ {
		g.Step(core.ModeSuperpower, life.DefaultRules())
	}
	return State{
		Cols:       cols,
		Score:      4321,
		Steps:      7,
		Generation: 5,
		Mode:       core.ModeSuperpower,
		Cells:      g.Snapshot(),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, steps := range []int{7, 0, ledger.Unlimited} {
		in := sampleState(9)
		in.Steps = steps
		data, err := Encode(in)
		if err != nil {
			t.Fatal(err)
		}
		out, err := Decode(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.Cols != in.Cols || out.Score != in.Score || out.Steps != in.Steps ||
			out.Generation != in.Generation || out.Mode != in.Mode {
			t.Fatalf("header mismatch: %+v vs %+v", out, in)
		}
		for i, c := range in.Cells {
			got := out.Cells[i]
			if got.Alive != c.Alive || got.Age != c.Age || got.Index != c.Index || got.X != c.X || got.Y != c.Y {
				t.Fatalf("cell %d: got %+v, expected %+v", i, got, c)
			}
		}
	}
}

func TestEncodeLayout(t *testing.T) {
	s := State{Cols: 1, Score: 3, Steps: -5, Generation: 2, Mode: core.ModeMadness,
		Cells: []life.Cell{{Index: 0, Alive: true, Age: 4}}}
	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[1,3,-1,2,2,0,1,4]"; string(data) != want {
		t.Fatalf("encoded %s, expected %s", data, want)
	}
}

func TestDecodeRejectsCorruption(t *testing.T) {
	cases := map[string]string{
		"not json":        "{{{",
		"object":          `{"cols":2}`,
		"short header":    "[2,0,0]",
		"string value":    `[1,0,0,0,"classic",0,0,0]`,
		"null value":      "[1,0,0,0,0,null,0,0]",
		"fraction":        "[1,0.5,0,0,0,0,0,0]",
		"zero cols":       "[0,0,0,0,0]",
		"bad mode":        "[1,0,0,0,9,0,0,0]",
		"bad steps":       "[1,0,-2,0,0,0,0,0]",
		"negative score":  "[1,-1,0,0,0,0,0,0]",
		"missing cells":   "[2,0,0,0,0,0,0,0]",
		"index range":     "[1,0,0,0,0,3,0,0]",
		"duplicate index": "[2,0,0,0,0,0,0,0,0,0,0,1,0,0,2,0,0]",
		"alive flag":      "[1,0,0,0,0,0,2,0]",
		"huge cols":       "[4294967296,0,0,0,0]",
	}
	for name, in := range cases {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
}

func quietLogger() *log.Logger { return log.New(&bytes.Buffer{}, "", 0) }

func TestLoadDiscardsCorruptValue(t *testing.T) {
	store := NewMemoryStore()
	store.Set(Key, []byte("[1,2,3"))
	s := NewSaver(store, quietLogger())
	defer s.Close()

	if st, ok := s.Load(); ok || st != nil {
		t.Fatal("corrupt snapshot must not load")
	}
	if _, ok, _ := store.Get(Key); ok {
		t.Fatal("corrupt snapshot must be removed from the store")
	}
	if _, ok := s.Load(); ok {
		t.Fatal("missing snapshot must not load")
	}
}

func TestSaverFlushesOnClose(t *testing.T) {
	store := NewMemoryStore()
	s := NewSaver(store, quietLogger())
	first := sampleState(4)
	last := sampleState(4)
	last.Score = 99999
	s.Save(first)
	s.Save(last)
	s.Close()
	s.Save(first)

	loader := NewSaver(store, quietLogger())
	defer loader.Close()
	st, ok := loader.Load()
	if !ok {
		t.Fatal("expected a stored snapshot")
	}
	if st.Score != 99999 {
		t.Fatalf("expected newest snapshot, got score %d", st.Score)
	}
}

type countingSource struct {
	mu sync.Mutex
	n  int
}

func (c *countingSource) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	st := sampleState(3)
	st.Generation = c.n
	return st
}

func TestRunSavesPeriodically(t *testing.T) {
	store := NewMemoryStore()
	s := NewSaver(store, quietLogger())
	src := &countingSource{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, src, 2*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		src.mu.Lock()
		n := src.n
		src.mu.Unlock()
		if n >= 3 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done
	s.Close()

	if _, ok, _ := store.Get(Key); !ok {
		t.Fatal("periodic saves should have written a snapshot")
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	fs := FileStore{Dir: dir}

	if _, ok, err := fs.Get(Key); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	if err := fs.Set(Key, []byte("[1]")); err != nil {
		t.Fatal(err)
	}
	v, ok, err := fs.Get(Key)
	if err != nil || !ok || string(v) != "[1]" {
		t.Fatalf("get after set: %q ok=%v err=%v", v, ok, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}
	if err := fs.Remove(Key); err != nil {
		t.Fatal(err)
	}
	if err := fs.Remove(Key); err != nil {
		t.Fatalf("removing a missing key should succeed, got %v", err)
	}
	if err := fs.Set("../escape", nil); err == nil {
		t.Fatal("path-like keys must be rejected")
	}
}
