package recommend

import (
	"github.com/kwhitford/e7-draft-backend/internal/corpus"
	"github.com/kwhitford/e7-draft-backend/internal/engine"
)

// SynergyAnalyzer is the counter analyzer's mirror: it scores a
// candidate by its average historical win rate when teamed with each
// friendly hero already picked.
type SynergyAnalyzer struct {
	idx *corpus.Index
}

func NewSynergyAnalyzer(idx *corpus.Index) *SynergyAnalyzer {
	return &SynergyAnalyzer{idx: idx}
}

func (a *SynergyAnalyzer) Name() string { return "synergy" }

func (a *SynergyAnalyzer) Score(s engine.State, candidates []string) (map[string]float64, bool) {
	allies := s.Picks[engine.SideMe]
	if len(allies) == 0 {
		return nil, false
	}

	scores := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		sum := 0.0
		for _, ally := range allies {
			rate, ok := a.idx.SynergyRate(c, ally)
			if !ok {
				rate = corpus.NeutralRate
			}
			sum += rate
		}
		scores[c] = sum / float64(len(allies))
	}
	return scores, true
}
