package config

import (
	"fmt"
	"strings"
	"time"
)

// Speed is the --speed option: how fast capsules fall on their own.
type Speed string

const (
	SpeedLow Speed = "low"
	SpeedMid Speed = "mid"
	SpeedHi  Speed = "hi"
)

// ParseSpeed converts a flag value to a Speed.
func ParseSpeed(s string) (Speed, error) {
	sp := Speed(strings.ToLower(strings.TrimSpace(s)))
	if !sp.valid() {
		return "", fmt.Errorf("%w '%s': should be 'low', 'mid', or 'hi'", ErrInvalidSpeed, s)
	}
	return sp, nil
}

func (s Speed) valid() bool {
	switch s {
	case SpeedLow, SpeedMid, SpeedHi:
		return true
	}
	return false
}

// FallInterval returns the time between automatic drops for a speed.
// Panics on an invalid speed; options are validated before this is called.
func (c PlumberConfig) FallInterval(s Speed) time.Duration {
	switch s {
	case SpeedLow:
		return Millis(c.Speeds.LowMs)
	case SpeedMid:
		return Millis(c.Speeds.MidMs)
	case SpeedHi:
		return Millis(c.Speeds.HiMs)
	}
	panic(fmt.Sprintf("config: invalid speed %q", string(s)))
}

// FallInterval returns the fall interval for the options with default tuning.
func (o Options) FallInterval() time.Duration {
	return DefaultPlumberConfig().FallInterval(o.Speed)
}

// VirusCount returns the number of viruses placed at the given level.
func (c PlumberConfig) VirusCount(level int) int {
	return (level + 1) * c.Rules.VirusesPerLevel
}

// Millis converts a millisecond count from YAML to a Duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
