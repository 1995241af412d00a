package recommend

import (
	"errors"
	"sort"

	"github.com/kwhitford/e7-draft-backend/internal/corpus"
	"github.com/kwhitford/e7-draft-backend/internal/engine"
	"github.com/kwhitford/e7-draft-backend/internal/hero"
)

var ErrInsufficientCandidates = errors.New("not enough draftable heroes")

type weightedScorer struct {
	scorer Scorer
	weight float64
}

// Ranker blends the scorers into one ranked suggestion list.
type Ranker struct {
	catalog *hero.Catalog
	idx     *corpus.Index
	scorers []weightedScorer
}

func NewRanker(catalog *hero.Catalog, idx *corpus.Index, cfg Config) *Ranker {
	return &Ranker{
		catalog: catalog,
		idx:     idx,
		scorers: []weightedScorer{
			{NewPatternMatcher(idx, cfg), cfg.Weights.Pattern},
			{NewCounterAnalyzer(idx), cfg.Weights.Counter},
			{NewSynergyAnalyzer(idx), cfg.Weights.Synergy},
		},
	}
}

// Recommend returns the top slots candidates for the next own picks.
// A banned or already-picked hero is never returned. The ordering is
// deterministic: blended score descending, then corpus-wide pick count
// descending, then hero code ascending.
func (r *Ranker) Recommend(s engine.State, slots int) ([]string, error) {
	if slots < 1 {
		slots = 1
	}

	taken := s.Unavailable()
	candidates := make([]string, 0, r.catalog.Len())
	for _, code := range r.catalog.Codes() {
		if !taken[code] {
			candidates = append(candidates, code)
		}
	}
	if len(candidates) < slots {
		return nil, ErrInsufficientCandidates
	}

	type component struct {
		scores map[string]float64
		weight float64
	}
	var available []component
	totalWeight := 0.0
	for _, ws := range r.scorers {
		if ws.weight <= 0 {
			continue
		}
		scores, ok := ws.scorer.Score(s, candidates)
		if !ok {
			// Undefined signal: its weight is redistributed across the
			// rest by normalizing over the defined total below.
			continue
		}
		available = append(available, component{scores: scores, weight: ws.weight})
		totalWeight += ws.weight
	}

	final := make(map[string]float64, len(candidates))
	if totalWeight > 0 {
		for _, comp := range available {
			w := comp.weight / totalWeight
			for _, c := range candidates {
				final[c] += w * comp.scores[c]
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if final[a] != final[b] {
			return final[a] > final[b]
		}
		if pa, pb := r.idx.PickCount(a), r.idx.PickCount(b); pa != pb {
			return pa > pb
		}
		return a < b
	})
	return candidates[:slots], nil
}

// RecommendNext derives the slot count from the draft state itself and
// recommends picks for the upcoming own turns.
func (r *Ranker) RecommendNext(s engine.State) ([]string, error) {
	slots := engine.UpcomingOwnSlots(s)
	if slots == 0 {
		return nil, nil
	}
	return r.Recommend(s, slots)
}
