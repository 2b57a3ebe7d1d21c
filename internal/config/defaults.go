package config

import (
	_ "embed"
)

//go:embed defaults/plumber.yaml
var defaultPlumberYAML []byte

// DefaultPlumberConfig returns the hardcoded tuning. It mirrors
// defaults/plumber.yaml and is used when the embedded file cannot be parsed.
func DefaultPlumberConfig() PlumberConfig {
	return PlumberConfig{
		Timing: PlumberTiming{
			VirusRevealMs: 3000,
			ReadyMs:       500,
			LandingMs:     200,
			VanishMs:      400,
			GameOverMs:    500,
			WinMs:         500,
		},
		Speeds: PlumberSpeeds{
			LowMs: 1500,
			MidMs: 1000,
			HiMs:  500,
		},
		Rules: PlumberRules{
			VirusesPerLevel: 4,
			VirusTopRow:     3,
			ChainReactions:  false,
		},
	}
}
