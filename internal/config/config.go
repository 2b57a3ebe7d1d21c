// Package config validates the command-line options and loads the YAML
// tuning file for the capsule puzzle.
package config

import (
	"errors"
	"fmt"
)

// Level bounds accepted by --level.
const (
	MinLevel = 1
	MaxLevel = 20
)

// Sentinel errors for option and tuning validation. Returned errors wrap
// these so callers can test with errors.Is.
var (
	ErrInvalidLevel  = errors.New("invalid level")
	ErrInvalidFPS    = errors.New("invalid fps")
	ErrInvalidSpeed  = errors.New("invalid speed")
	ErrInvalidTuning = errors.New("invalid tuning")
)

// Options are the validated command-line options of a game session.
type Options struct {
	Level int
	FPS   float64
	Speed Speed
}

// DefaultOptions returns the options used when no flags are given.
func DefaultOptions() Options {
	return Options{
		Level: 10,
		FPS:   64,
		Speed: SpeedMid,
	}
}

// NewOptions validates raw flag values and builds Options from them.
func NewOptions(level int, fps float64, speed string) (Options, error) {
	s, err := ParseSpeed(speed)
	if err != nil {
		return Options{}, err
	}
	opts := Options{Level: level, FPS: fps, Speed: s}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks the options and returns the first problem found.
func (o Options) Validate() error {
	if o.Level < MinLevel || o.Level > MaxLevel {
		return fmt.Errorf("%w '%d': should be from %d to %d", ErrInvalidLevel, o.Level, MinLevel, MaxLevel)
	}
	if !(o.FPS > 0) {
		return fmt.Errorf("%w '%g': should be more than 0", ErrInvalidFPS, o.FPS)
	}
	if !o.Speed.valid() {
		return fmt.Errorf("%w '%s': should be 'low', 'mid', or 'hi'", ErrInvalidSpeed, string(o.Speed))
	}
	return nil
}

// PlumberConfig holds the tuning loaded from YAML.
type PlumberConfig struct {
	Timing PlumberTiming `yaml:"timing"`
	Speeds PlumberSpeeds `yaml:"speeds"`
	Rules  PlumberRules  `yaml:"rules"`
}

// PlumberTiming defines phase durations in milliseconds.
type PlumberTiming struct {
	VirusRevealMs int `yaml:"virus_reveal_ms"` // Time to reveal the whole virus set
	ReadyMs       int `yaml:"ready_ms"`
	LandingMs     int `yaml:"landing_ms"`
	VanishMs      int `yaml:"vanish_ms"`
	GameOverMs    int `yaml:"game_over_ms"`
	WinMs         int `yaml:"win_ms"`
}

// PlumberSpeeds maps each --speed value to a fall interval in milliseconds.
type PlumberSpeeds struct {
	LowMs int `yaml:"low_ms"`
	MidMs int `yaml:"mid_ms"`
	HiMs  int `yaml:"hi_ms"`
}

// PlumberRules defines gameplay rules.
type PlumberRules struct {
	VirusesPerLevel int  `yaml:"viruses_per_level"` // Viruses = (level+1) * this
	VirusTopRow     int  `yaml:"virus_top_row"`     // Highest row a virus may occupy
	ChainReactions  bool `yaml:"chain_reactions"`
}

// Validate checks that every duration is positive and the rules fit the bottle.
func (c PlumberConfig) Validate() error {
	durations := []struct {
		name string
		ms   int
	}{
		{"timing.virus_reveal_ms", c.Timing.VirusRevealMs},
		{"timing.ready_ms", c.Timing.ReadyMs},
		{"timing.landing_ms", c.Timing.LandingMs},
		{"timing.vanish_ms", c.Timing.VanishMs},
		{"timing.game_over_ms", c.Timing.GameOverMs},
		{"timing.win_ms", c.Timing.WinMs},
		{"speeds.low_ms", c.Speeds.LowMs},
		{"speeds.mid_ms", c.Speeds.MidMs},
		{"speeds.hi_ms", c.Speeds.HiMs},
	}
	for _, d := range durations {
		if d.ms <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidTuning, d.name, d.ms)
		}
	}

	if c.Rules.VirusTopRow < 1 || c.Rules.VirusTopRow > bottleRows {
		return fmt.Errorf("%w: rules.virus_top_row must be from 1 to %d, got %d",
			ErrInvalidTuning, bottleRows, c.Rules.VirusTopRow)
	}
	if c.Rules.VirusesPerLevel <= 0 {
		return fmt.Errorf("%w: rules.viruses_per_level must be positive, got %d",
			ErrInvalidTuning, c.Rules.VirusesPerLevel)
	}
	capacity := (bottleRows - c.Rules.VirusTopRow + 1) * bottleCols
	if most := (MaxLevel + 1) * c.Rules.VirusesPerLevel; most > capacity {
		return fmt.Errorf("%w: level %d needs %d viruses but rows %d-%d hold %d",
			ErrInvalidTuning, MaxLevel, most, c.Rules.VirusTopRow, bottleRows, capacity)
	}
	return nil
}

// Bottle geometry used to bound virus placement.
const (
	bottleRows = 16
	bottleCols = 8
)
