package recommend

import (
	"github.com/kwhitford/e7-draft-backend/internal/corpus"
	"github.com/kwhitford/e7-draft-backend/internal/engine"
)

// PatternMatcher scores candidates by how often they were the next own
// pick in historical drafts that resemble the current one: same
// first-picker orientation, pick sequence matching at the same
// positions, and pre-ban overlap above the configured threshold.
type PatternMatcher struct {
	idx *corpus.Index
	cfg Config
}

func NewPatternMatcher(idx *corpus.Index, cfg Config) *PatternMatcher {
	return &PatternMatcher{idx: idx, cfg: cfg}
}

func (p *PatternMatcher) Name() string { return "pattern" }

// Score is always defined: when no record matches, every candidate
// scores zero and the other signals carry the blend.
func (p *PatternMatcher) Score(s engine.State, candidates []string) (map[string]float64, bool) {
	scores := make(map[string]float64, len(candidates))

	// Empty board: rank by historical first-pick frequency.
	if s.Cursor == 0 {
		total := float64(p.idx.TotalMatches())
		for _, c := range candidates {
			scores[c] = float64(p.idx.FirstPickCount(c)) / total
		}
		return scores, true
	}

	matched := p.match(s, true)
	if len(matched) == 0 && p.cfg.PartialFallback {
		matched = p.match(s, false)
	}
	if len(matched) == 0 {
		return scores, true
	}

	slots := engine.UpcomingOwnSlots(s)
	if slots == 0 {
		slots = 1
	}
	nextIdx := len(s.Picks[engine.SideMe])

	counts := map[string]int{}
	for _, rec := range matched {
		for i := nextIdx; i < nextIdx+slots && i < len(rec.MyPicks); i++ {
			if h := rec.MyPicks[i]; h != "" {
				counts[h]++
			}
		}
	}
	for _, c := range candidates {
		scores[c] = float64(counts[c]) / float64(len(matched))
	}
	return scores, true
}

// match filters the corpus down to records similar to s. In strict mode
// every pick made so far must appear at the same position in the
// record; in loose mode a single positional enemy match suffices.
func (p *PatternMatcher) match(s engine.State, strict bool) []corpus.Record {
	myPicks := s.Picks[engine.SideMe]
	enemyPicks := s.Picks[engine.SideEnemy]
	wantFirst := s.FirstPicker == engine.SideMe

	var matched []corpus.Record
	for _, rec := range p.idx.Records() {
		if rec.MyFirst != wantFirst {
			continue
		}
		if !p.prebanSimilar(s, rec) {
			continue
		}

		if strict {
			if prefixMatches(myPicks, rec.MyPicks) && prefixMatches(enemyPicks, rec.EnemyPicks) {
				matched = append(matched, rec)
			}
			continue
		}
		for i, h := range enemyPicks {
			if h != "" && i < len(rec.EnemyPicks) && rec.EnemyPicks[i] == h {
				matched = append(matched, rec)
				break
			}
		}
	}
	return matched
}

func (p *PatternMatcher) prebanSimilar(s engine.State, rec corpus.Record) bool {
	if p.cfg.PrebanOverlap <= 0 {
		return true
	}
	live := append(append([]string{}, s.PreBans[engine.SideMe]...), s.PreBans[engine.SideEnemy]...)
	if len(live) == 0 {
		return true
	}
	recorded := map[string]bool{}
	for _, b := range rec.MyPreBans {
		recorded[b] = true
	}
	for _, b := range rec.EnemyPreBans {
		recorded[b] = true
	}
	overlap := 0
	for _, b := range live {
		if recorded[b] {
			overlap++
		}
	}
	return float64(overlap)/float64(len(live)) >= p.cfg.PrebanOverlap
}

func prefixMatches(picked, recorded []string) bool {
	if len(picked) > len(recorded) {
		return false
	}
	for i, h := range picked {
		if recorded[i] != h {
			return false
		}
	}
	return true
}
