package recommend

import (
	"github.com/kwhitford/e7-draft-backend/internal/corpus"
	"github.com/kwhitford/e7-draft-backend/internal/engine"
)

// CounterAnalyzer scores a candidate by its average historical win rate
// against each enemy hero already picked. Pairings the corpus has never
// seen read as neutral, so sparse data cannot push a score to an
// extreme.
type CounterAnalyzer struct {
	idx *corpus.Index
}

func NewCounterAnalyzer(idx *corpus.Index) *CounterAnalyzer {
	return &CounterAnalyzer{idx: idx}
}

func (a *CounterAnalyzer) Name() string { return "counter" }

func (a *CounterAnalyzer) Score(s engine.State, candidates []string) (map[string]float64, bool) {
	enemies := s.Picks[engine.SideEnemy]
	if len(enemies) == 0 {
		return nil, false
	}

	scores := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		sum := 0.0
		for _, e := range enemies {
			rate, ok := a.idx.MatchupRate(c, e)
			if !ok {
				rate = corpus.NeutralRate
			}
			sum += rate
		}
		scores[c] = sum / float64(len(enemies))
	}
	return scores, true
}
