package app

import (
	"flag"
	"time"

	"life-canvas/internal/core"
	"life-canvas/internal/engine"
	"life-canvas/internal/persist"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Engine engine.Config

	Width  int
	Height int
	FPS    int
	TPS    int
	Seed   int64

	StoreDir        string
	Fresh           bool
	PersistInterval time.Duration
	Rules           string
	Capture         string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Engine:          engine.DefaultConfig(),
		Width:           800,
		Height:          800,
		FPS:             30,
		TPS:             60,
		Seed:            42,
		PersistInterval: persist.DefaultInterval,
		Capture:         "life-canvas.png",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Engine.Cols, "cols", c.Engine.Cols, "grid side length in cells")
	fs.Float64Var(&c.Engine.Speed, "speed", c.Engine.Speed, "clock speed multiplier")
	fs.DurationVar(&c.Engine.Interval, "interval", c.Engine.Interval, "base tick interval at speed 1")
	fs.IntVar(&c.Engine.Steps, "steps", c.Engine.Steps, "initial toggle budget, -1 for unlimited")
	fs.Func("mode", "wall mode: classic, superpower or madness", func(s string) error {
		m, err := core.ParseMode(s)
		if err != nil {
			return err
		}
		c.Engine.Mode = m
		return nil
	})
	fs.StringVar(&c.Rules, "rules", c.Rules, "rule overrides as k=v pairs, e.g. wall_age=12,afterglow_floor=-12")

	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.FPS, "fps", c.FPS, "maximum canvas redraws per second")
	fs.IntVar(&c.TPS, "tps", c.TPS, "input ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fills")

	fs.StringVar(&c.StoreDir, "store", c.StoreDir, "directory for the saved game (default: user config dir)")
	fs.BoolVar(&c.Fresh, "fresh", c.Fresh, "ignore any saved game")
	fs.DurationVar(&c.PersistInterval, "save-every", c.PersistInterval, "how often to save the game")
	fs.StringVar(&c.Capture, "capture", c.Capture, "file written by the capture key")
}

// EngineConfig returns the engine configuration with rule overrides applied.
func (c *Config) EngineConfig() engine.Config {
	if c.Rules == "" {
		return c.Engine
	}
	return c.Engine.Apply(engine.ParsePairs(c.Rules))
}

// OpenStore returns the store selected by the flags.
func (c *Config) OpenStore() (persist.Store, error) {
	dir := c.StoreDir
	if dir == "" {
		var err error
		dir, err = persist.DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	return persist.FileStore{Dir: dir}, nil
}
