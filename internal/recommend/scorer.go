// Package recommend implements the hybrid pick recommender: three
// statistical scorers over the corpus index, blended by a weighted
// ranker.
package recommend

import (
	"github.com/kwhitford/e7-draft-backend/internal/engine"
)

// Scorer rates draft candidates against the current state.
//
// The returned bool reports whether the signal is defined at all for
// this state; an undefined scorer (for example the counter scorer with
// no enemy picks yet) is dropped from the blend and its weight is
// redistributed. A defined scorer with nothing to say returns zeros,
// not false.
type Scorer interface {
	Name() string
	Score(s engine.State, candidates []string) (map[string]float64, bool)
}

// Config carries every tunable of the recommender. The thresholds are
// deliberately configuration rather than constants; the right values
// depend on the dataset size.
type Config struct {
	Weights Weights `toml:"weights"`
	// MinSamples is the per-pair observation floor below which matchup
	// and synergy cells read as neutral.
	MinSamples int `toml:"min_samples"`
	// PrebanOverlap is the minimum fraction of the live pre-bans that
	// must also appear in a historical record's pre-bans for the record
	// to count as pattern-similar. 0 disables the filter.
	PrebanOverlap float64 `toml:"preban_overlap"`
	// PartialFallback retries pattern matching with a looser any-slot
	// enemy match when the strict prefix match finds nothing.
	PartialFallback bool `toml:"partial_fallback"`
}

// Weights blends the three signals. They must be non-negative; the
// ranker normalizes whatever sum it is given.
type Weights struct {
	Pattern float64 `toml:"pattern"`
	Counter float64 `toml:"counter"`
	Synergy float64 `toml:"synergy"`
}

func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Pattern: 1.0 / 3.0,
			Counter: 1.0 / 3.0,
			Synergy: 1.0 / 3.0,
		},
		MinSamples:      5,
		PrebanOverlap:   0,
		PartialFallback: true,
	}
}
