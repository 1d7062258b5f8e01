package main

import (
	"fmt"
	"math"
	"time"

	"github.com/keilerkonzept/sortvis/internal/channel"
	"github.com/keilerkonzept/sortvis/internal/errors"
	"github.com/keilerkonzept/sortvis/internal/logger"
	"github.com/keilerkonzept/sortvis/internal/render"
	"github.com/keilerkonzept/sortvis/internal/sorts"
)

type Config struct {
	// run
	Algorithm   string
	RandomCount int
	RandomMax   int
	Seed        int64 // 0 picks one from the clock
	InputPath   string
	Replay      bool
	StepPeriod  time.Duration

	// window
	Width     int
	Height    int
	Margin    int
	Refresh   time.Duration
	Capacity  int
	Headless  bool
	AltScreen bool

	// stats
	StatsEnabled bool
	StatsWindow  int
	HotK         int
	HotWindow    time.Duration
	HotTick      time.Duration
	FullRefresh  time.Duration
	PartialSize  int

	// logging
	LogFile string
	Debug   bool
}

func defaultConfig() Config {
	return Config{
		RandomMax: 1000,

		Width:     160,
		Height:    48,
		Margin:    1,
		Refresh:   10 * time.Millisecond,
		Capacity:  channel.DefaultCapacity,
		AltScreen: true,

		StatsEnabled: true,
		StatsWindow:  256,
		HotK:         10,
		HotWindow:    10 * time.Second,
		HotTick:      time.Second,
		FullRefresh:  2 * time.Second,

		LogFile: logger.DefaultLogPath,
	}
}

func (c *Config) validateAndNormalize() error {
	if c.Algorithm == "" {
		return errors.ConfigInvalid("--algorithm is required (see --list)")
	}
	if _, err := sorts.Lookup[uint32](c.Algorithm); err != nil {
		return err
	}
	if c.RandomCount < 0 {
		return errors.ConfigInvalid("--random must be >= 0")
	}
	if c.RandomMax < 1 || int64(c.RandomMax) > math.MaxUint32 {
		return errors.ConfigInvalid(fmt.Sprintf("--max must be in [1,%d]", uint32(math.MaxUint32)))
	}
	if c.StepPeriod < 0 {
		return errors.ConfigInvalid("--step must be >= 0")
	}
	if c.Width < 1 {
		return errors.ConfigInvalid("--width must be >= 1")
	}
	if c.Height < 1 {
		return errors.ConfigInvalid("--height must be >= 1")
	}
	if c.Margin < 0 {
		return errors.ConfigInvalid("--margin must be >= 0")
	}
	if c.Height <= 2*c.Margin {
		return errors.ConfigInvalid("--height must be larger than twice --margin")
	}
	if c.Refresh < 0 {
		return errors.ConfigInvalid("--refresh must be >= 0")
	}
	if c.Capacity < 1 {
		return errors.ConfigInvalid("--capacity must be >= 1")
	}
	if c.HotK < 1 {
		return errors.ConfigInvalid("--hot-k must be >= 1")
	}
	if c.HotTick <= 0 {
		return errors.ConfigInvalid("--hot-tick must be > 0")
	}
	if c.HotWindow < c.HotTick {
		return errors.ConfigInvalid("--hot-window must be >= --hot-tick")
	}
	if c.HotWindow%c.HotTick != 0 {
		return errors.ConfigInvalid(fmt.Sprintf("--hot-window must be a multiple of --hot-tick (got window=%s tick=%s)", c.HotWindow, c.HotTick))
	}
	if c.FullRefresh < 0 {
		return errors.ConfigInvalid("--full-refresh must be >= 0")
	}
	if c.PartialSize < 0 {
		return errors.ConfigInvalid("--partial-size must be >= 0")
	}

	// Terminal cells are two pixels tall.
	if c.Height%2 != 0 {
		c.Height++
	}
	if c.StatsWindow < 16 {
		c.StatsWindow = 16
	}
	return nil
}

func (c Config) renderConfig() render.Config {
	return render.Config{
		Width:       c.Width,
		Height:      c.Height,
		Margin:      c.Margin,
		Refresh:     c.Refresh,
		Palette:     render.DefaultPalette,
		ExitOnDrain: c.Headless,
	}
}
