package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kwhitford/e7-draft-backend/internal/corpus"
	"github.com/kwhitford/e7-draft-backend/internal/engine"
	"github.com/kwhitford/e7-draft-backend/internal/hero"
)

type sliceSource []corpus.Record

func (s sliceSource) Records(ctx context.Context) ([]corpus.Record, error) { return s, nil }

func testCatalog(codes ...string) *hero.Catalog {
	heroes := make([]hero.Hero, 0, len(codes))
	for _, c := range codes {
		heroes = append(heroes, hero.Hero{Code: c, Name: c})
	}
	return hero.NewCatalog(heroes)
}

func testIndex(t *testing.T, records []corpus.Record) *corpus.Index {
	t.Helper()
	idx, err := corpus.BuildIndex(context.Background(), sliceSource(records), corpus.IndexConfig{MinSamples: 2}, zap.NewNop())
	require.NoError(t, err)
	return idx
}

// enemyFirstRecord is a corpus match where the enemy opened with
// Yufine and the recorded player answered with Vildred and Ran.
func enemyFirstRecord(win bool) corpus.Record {
	return corpus.Record{
		MyPicks:    []string{"Vildred", "Ran", "Peira", "Destina", "Emilia"},
		EnemyPicks: []string{"Yufine", "Gunther", "Hwayoung", "Ilynav", "Jenua"},
		MyFirst:    false,
		MyWin:      win,
	}
}

func TestRecommend_AfterEnemyFirstPick(t *testing.T) {
	catalog := testCatalog(
		"Yufine", "Vildred", "Ran", "Peira", "Destina", "Emilia",
		"Gunther", "Hwayoung", "Ilynav", "Jenua", "Aria", "Belian",
	)
	idx := testIndex(t, []corpus.Record{
		enemyFirstRecord(true), enemyFirstRecord(true), enemyFirstRecord(false),
	})
	ranker := NewRanker(catalog, idx, DefaultConfig())

	s := engine.NewEmptyState()
	_, s, err := engine.Apply(s, engine.Command{Type: engine.CmdLockPick, Side: engine.SideEnemy, HeroID: "Yufine"})
	require.NoError(t, err)
	require.Equal(t, engine.SideEnemy, s.FirstPicker)
	require.Equal(t, 1, s.Cursor)

	recs, err := ranker.Recommend(s, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.NotContains(t, recs, "Yufine")
	// Every matching record answered Yufine with Vildred and Ran.
	assert.ElementsMatch(t, []string{"Vildred", "Ran"}, recs)
}

func TestRecommend_NeverReturnsTakenHeroes(t *testing.T) {
	catalog := testCatalog(
		"Yufine", "Vildred", "Ran", "Peira", "Destina", "Emilia",
		"Gunther", "Hwayoung", "Ilynav", "Jenua", "Aria", "Belian",
	)
	idx := testIndex(t, []corpus.Record{enemyFirstRecord(true)})
	ranker := NewRanker(catalog, idx, DefaultConfig())

	s := engine.NewEmptyState()
	s.FirstPicker = engine.SideEnemy
	s.Cursor = 3
	s.Picks[engine.SideEnemy] = []string{"Yufine"}
	s.Picks[engine.SideMe] = []string{"Vildred", "Ran"}
	s.PreBans[engine.SideMe] = []string{"Aria"}
	s.PreBans[engine.SideEnemy] = []string{"Belian"}

	recs, err := ranker.Recommend(s, 2)
	require.NoError(t, err)
	for _, taken := range []string{"Yufine", "Vildred", "Ran", "Aria", "Belian"} {
		assert.NotContains(t, recs, taken)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	catalog := testCatalog(
		"Yufine", "Vildred", "Ran", "Peira", "Destina", "Emilia",
		"Gunther", "Hwayoung", "Ilynav", "Jenua",
	)
	idx := testIndex(t, []corpus.Record{enemyFirstRecord(true), enemyFirstRecord(false)})
	ranker := NewRanker(catalog, idx, DefaultConfig())

	s := engine.NewEmptyState()
	s.FirstPicker = engine.SideEnemy
	s.Cursor = 1
	s.Picks[engine.SideEnemy] = []string{"Yufine"}

	first, err := ranker.Recommend(s, 2)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ranker.Recommend(s, 2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommend_NoMatchingRecordsStillRanks(t *testing.T) {
	catalog := testCatalog(
		"Yufine", "Vildred", "Ran", "Peira", "Destina", "Emilia",
		"Gunther", "Hwayoung", "Ilynav", "Jenua", "Zio",
	)
	// All records are enemy-first; a me-first draft matches none of them.
	idx := testIndex(t, []corpus.Record{
		enemyFirstRecord(true), enemyFirstRecord(true), enemyFirstRecord(false),
	})
	ranker := NewRanker(catalog, idx, DefaultConfig())

	s := engine.NewEmptyState()
	s.FirstPicker = engine.SideMe
	s.Cursor = 3
	s.Picks[engine.SideMe] = []string{"Zio"}
	s.Picks[engine.SideEnemy] = []string{"Yufine", "Gunther"}

	pm := NewPatternMatcher(idx, DefaultConfig())
	scores, ok := pm.Score(s, []string{"Vildred", "Ran", "Peira"})
	require.True(t, ok)
	for c, v := range scores {
		assert.Zerof(t, v, "pattern score for %s", c)
	}

	// Counter and synergy still produce a full ranked list.
	recs, err := ranker.Recommend(s, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestRecommend_InsufficientCandidates(t *testing.T) {
	catalog := testCatalog("Yufine", "Vildred", "Ran")
	idx := testIndex(t, []corpus.Record{enemyFirstRecord(true)})
	ranker := NewRanker(catalog, idx, DefaultConfig())

	s := engine.NewEmptyState()
	s.FirstPicker = engine.SideEnemy
	s.Cursor = 1
	s.Picks[engine.SideEnemy] = []string{"Yufine"}
	s.PreBans[engine.SideMe] = []string{"Vildred"}

	_, err := ranker.Recommend(s, 2)
	require.ErrorIs(t, err, ErrInsufficientCandidates)
}

func TestCounter_NeutralForUnseenMatchup(t *testing.T) {
	idx := testIndex(t, []corpus.Record{enemyFirstRecord(true), enemyFirstRecord(true)})
	counter := NewCounterAnalyzer(idx)

	s := engine.NewEmptyState()
	s.FirstPicker = engine.SideEnemy
	s.Cursor = 1
	s.Picks[engine.SideEnemy] = []string{"Zio"} // never in the corpus

	scores, ok := counter.Score(s, []string{"Vildred"})
	require.True(t, ok)
	assert.Equal(t, corpus.NeutralRate, scores["Vildred"])
}

func TestCounter_UndefinedWithoutEnemyPicks(t *testing.T) {
	idx := testIndex(t, []corpus.Record{enemyFirstRecord(true)})
	counter := NewCounterAnalyzer(idx)

	_, ok := counter.Score(engine.NewEmptyState(), []string{"Vildred"})
	assert.False(t, ok)
}

func TestSynergy_UndefinedWithoutOwnPicks(t *testing.T) {
	idx := testIndex(t, []corpus.Record{enemyFirstRecord(true)})
	synergy := NewSynergyAnalyzer(idx)

	s := engine.NewEmptyState()
	s.FirstPicker = engine.SideEnemy
	s.Cursor = 1
	s.Picks[engine.SideEnemy] = []string{"Yufine"}

	_, ok := synergy.Score(s, []string{"Vildred"})
	assert.False(t, ok)
}

// With no picks on either side only the pattern signal is defined, so
// its weight absorbs the whole blend and the ranking follows first-pick
// frequency.
func TestRecommend_WeightRedistribution(t *testing.T) {
	catalog := testCatalog(
		"Yufine", "Vildred", "Ran", "Peira", "Destina", "Emilia",
		"Gunther", "Hwayoung", "Ilynav", "Jenua",
	)
	idx := testIndex(t, []corpus.Record{
		enemyFirstRecord(true), enemyFirstRecord(true), enemyFirstRecord(false),
	})
	ranker := NewRanker(catalog, idx, DefaultConfig())

	recs, err := ranker.Recommend(engine.NewEmptyState(), 1)
	require.NoError(t, err)
	// Yufine opens every corpus draft.
	assert.Equal(t, []string{"Yufine"}, recs)
}

func TestPattern_FirstPickFrequency(t *testing.T) {
	idx := testIndex(t, []corpus.Record{
		enemyFirstRecord(true), enemyFirstRecord(true),
	})
	pm := NewPatternMatcher(idx, DefaultConfig())

	scores, ok := pm.Score(engine.NewEmptyState(), []string{"Yufine", "Vildred"})
	require.True(t, ok)
	assert.Equal(t, 1.0, scores["Yufine"])
	assert.Equal(t, 0.0, scores["Vildred"])
}
