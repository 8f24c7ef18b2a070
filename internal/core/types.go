package core

import (
	"fmt"
	"strings"
)

// Size describes the pixel dimensions of a host surface.
type Size struct {
	W int
	H int
}

// Mode selects which cells are promoted to walls.
type Mode uint8

const (
	// ModeClassic never forms walls.
	ModeClassic Mode = iota
	// ModeSuperpower forms walls that decay after a very long life.
	ModeSuperpower
	// ModeMadness forms permanent walls.
	ModeMadness
)

var modeNames = [...]string{"classic", "superpower", "madness"}

// Modes lists every mode in cycling order.
func Modes() []Mode { return []Mode{ModeClassic, ModeSuperpower, ModeMadness} }

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return int(m) < len(modeNames) }

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode { return Mode((int(m) + 1) % len(modeNames)) }

// ParseMode accepts a mode name or its numeric value.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for i, name := range modeNames {
		if s == name || s == fmt.Sprint(i) {
			return Mode(i), nil
		}
	}
	return ModeClassic, fmt.Errorf("unknown mode %q", s)
}

// RunState is the simulation clock's lifecycle state.
type RunState uint8

const (
	Stopped RunState = iota
	Running
	Paused
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}
