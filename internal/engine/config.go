package engine

import (
	"strconv"
	"strings"
	"time"

	"life-canvas/internal/clock"
	"life-canvas/internal/core"
	"life-canvas/internal/ledger"
	"life-canvas/internal/life"
)

// SpeedPresets are the multipliers offered by the hosts.
var SpeedPresets = []float64{0.5, 1, 2, 4, 8, 16}

// ColsPresets are the grid sizes offered by the hosts.
var ColsPresets = []int{20, 40, 80, 160, 200, 240, 280}

// Config controls a new Engine.
type Config struct {
	Cols     int
	Mode     core.Mode
	Speed    float64
	Interval time.Duration
	// Steps is the initial toggle budget, ledger.Unlimited for none.
	Steps int
	Rules life.Rules
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Cols:     80,
		Mode:     core.ModeClassic,
		Speed:    1,
		Interval: 100 * time.Millisecond,
		Steps:    50,
		Rules:    life.DefaultRules(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Apply(cfg)
}

// Apply overrides fields of c from cfg. Unparseable or out of range values
// are ignored.
func (c Config) Apply(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["mode"]; ok {
		if parsed, err := core.ParseMode(v); err == nil {
			c.Mode = parsed
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Speed = min(parsed, clock.MaxSpeed)
		}
	}
	if v, ok := cfg["interval_ms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Interval = time.Duration(parsed) * time.Millisecond
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			if parsed < 0 {
				parsed = ledger.Unlimited
			}
			c.Steps = parsed
		}
	}
	if v, ok := cfg["wall_age"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Rules.WallAge = parsed
		}
	}
	if v, ok := cfg["wall_decay_age"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rules.WallDecayAge = parsed
		}
	}
	if v, ok := cfg["afterglow_floor"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed <= 0 {
			c.Rules.AfterglowFloor = parsed
		}
	}
	if v, ok := cfg["score_numerator"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Rules.ScoreNumerator = parsed
		}
	}
	return c
}

// ParsePairs splits "k=v,k=v" into a map. Empty segments are skipped.
func ParsePairs(s string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
