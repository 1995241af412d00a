package corpus

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMinSamples is the minimum observations a matchup or synergy
	// cell needs before its win rate is trusted. Below it the cell
	// collapses to NeutralRate.
	DefaultMinSamples = 5
	NeutralRate       = 0.5
)

type IndexConfig struct {
	MinSamples int
}

// Index is the immutable, read-optimized view of the corpus: overall
// pick/win statistics plus the matchup and synergy win-rate matrices.
// Safe for concurrent readers once built.
type Index struct {
	records []Record

	totalMatches    int
	pickCounts      map[string]int
	firstPickCounts map[string]int
	winRates        map[string]float64

	// matchups[mine][enemy] = win rate of mine when facing enemy.
	matchups map[string]map[string]float64
	// synergies[a][b] = win rate of a when teamed with b. Symmetric.
	synergies map[string]map[string]float64
}

type pairTally struct {
	wins  int
	total int
}

// BuildIndex loads every record from src and computes all statistics.
// The matrices are independent, so they build concurrently.
func BuildIndex(ctx context.Context, src Source, cfg IndexConfig, log *zap.Logger) (*Index, error) {
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = DefaultMinSamples
	}

	records, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty dataset", ErrDataUnavailable)
	}

	idx := &Index{
		records:      records,
		totalMatches: len(records),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		idx.pickCounts, idx.firstPickCounts, idx.winRates = tallyHeroes(records)
		return nil
	})
	g.Go(func() error {
		idx.matchups = buildMatchups(records, cfg.MinSamples)
		return nil
	})
	g.Go(func() error {
		idx.synergies = buildSynergies(records, cfg.MinSamples)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("corpus index built",
		zap.Int("matches", idx.totalMatches),
		zap.Int("heroes", len(idx.pickCounts)),
		zap.Int("matchup_heroes", len(idx.matchups)),
		zap.Int("synergy_heroes", len(idx.synergies)),
	)
	return idx, nil
}

func tallyHeroes(records []Record) (picks, firsts map[string]int, winRates map[string]float64) {
	picks = map[string]int{}
	firsts = map[string]int{}
	wins := map[string]int{}

	for _, r := range records {
		for _, h := range r.MyPicks {
			if h == "" {
				continue
			}
			picks[h]++
			if r.MyWin {
				wins[h]++
			}
		}
		for _, h := range r.EnemyPicks {
			if h == "" {
				continue
			}
			picks[h]++
			if !r.MyWin {
				wins[h]++
			}
		}

		first := r.EnemyPicks
		if r.MyFirst {
			first = r.MyPicks
		}
		if len(first) > 0 && first[0] != "" {
			firsts[first[0]]++
		}
	}

	winRates = make(map[string]float64, len(picks))
	for h, n := range picks {
		winRates[h] = float64(wins[h]) / float64(n)
	}
	return picks, firsts, winRates
}

func buildMatchups(records []Record, minSamples int) map[string]map[string]float64 {
	tally := map[string]map[string]*pairTally{}
	for _, r := range records {
		for _, mine := range r.MyPicks {
			if mine == "" {
				continue
			}
			for _, enemy := range r.EnemyPicks {
				if enemy == "" {
					continue
				}
				bump(tally, mine, enemy, r.MyWin)
			}
		}
	}
	return smooth(tally, minSamples)
}

func buildSynergies(records []Record, minSamples int) map[string]map[string]float64 {
	tally := map[string]map[string]*pairTally{}
	for _, r := range records {
		for i, a := range r.MyPicks {
			if a == "" {
				continue
			}
			for _, b := range r.MyPicks[i+1:] {
				if b == "" || a == b {
					continue
				}
				bump(tally, a, b, r.MyWin)
				bump(tally, b, a, r.MyWin)
			}
		}
	}
	return smooth(tally, minSamples)
}

func bump(tally map[string]map[string]*pairTally, a, b string, won bool) {
	row, ok := tally[a]
	if !ok {
		row = map[string]*pairTally{}
		tally[a] = row
	}
	cell, ok := row[b]
	if !ok {
		cell = &pairTally{}
		row[b] = cell
	}
	cell.total++
	if won {
		cell.wins++
	}
}

func smooth(tally map[string]map[string]*pairTally, minSamples int) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(tally))
	for a, row := range tally {
		outRow := make(map[string]float64, len(row))
		for b, cell := range row {
			if cell.total < minSamples {
				outRow[b] = NeutralRate
				continue
			}
			outRow[b] = float64(cell.wins) / float64(cell.total)
		}
		out[a] = outRow
	}
	return out
}

// Records exposes the raw record slice for prefix queries. Callers must
// not mutate it.
func (i *Index) Records() []Record { return i.records }

func (i *Index) TotalMatches() int { return i.totalMatches }

// PickCount returns how many times the hero was picked anywhere in the
// corpus.
func (i *Index) PickCount(id string) int { return i.pickCounts[id] }

// FirstPickCount returns how many times the hero opened a draft.
func (i *Index) FirstPickCount(id string) int { return i.firstPickCounts[id] }

// WinRate returns the hero's overall win rate and whether it was ever
// observed.
func (i *Index) WinRate(id string) (float64, bool) {
	r, ok := i.winRates[id]
	return r, ok
}

// MatchupRate returns mine's win rate against enemy. The second return
// is false for pairings never observed; callers fall back to
// NeutralRate.
func (i *Index) MatchupRate(mine, enemy string) (float64, bool) {
	r, ok := i.matchups[mine][enemy]
	return r, ok
}

// SynergyRate returns a's win rate when teamed with b.
func (i *Index) SynergyRate(a, b string) (float64, bool) {
	r, ok := i.synergies[a][b]
	return r, ok
}
