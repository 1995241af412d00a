package predict

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwhitford/e7-draft-backend/internal/engine"
)

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadModel_Inconsistent(t *testing.T) {
	path := writeModel(t, `{"columns":["main1","is_first"],"means":[0],"scales":[1,1],"coefficients":[1,1]}`)
	_, err := LoadModel(path)
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestLogistic_Predict(t *testing.T) {
	path := writeModel(t, `{
		"columns": ["main1", "is_first"],
		"encodings": {"main1": {"Aria": 2}},
		"means": [0, 0],
		"scales": [1, 1],
		"coefficients": [1.0, -1.0],
		"intercept": 0
	}`)
	model, err := LoadModel(path)
	require.NoError(t, err)

	// z = 1*2 - 1*1 = 1; the target is is_win (0 = win), so the win
	// probability is 1 - sigmoid(1).
	p, err := model.Predict(Vector{"main1": "Aria", "is_first": "1"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0-1.0/(1.0+math.Exp(-1.0)), p, 1e-9)

	// Unknown heroes encode as 0.
	p2, err := model.Predict(Vector{"main1": "Nobody", "is_first": "0"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p2, 1e-9)

	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestVectorFromState(t *testing.T) {
	s := engine.NewEmptyState()
	_, err := VectorFromState(s)
	require.ErrorIs(t, err, engine.ErrDraftNotCompleted)

	s.FirstPicker = engine.SideEnemy
	s.Cursor = engine.TotalPicks
	s.Picks[engine.SideMe] = []string{"m1", "m2", "m3", "m4", "m5"}
	s.Picks[engine.SideEnemy] = []string{"e1", "e2", "e3", "e4", "e5"}
	s.PreBans[engine.SideMe] = []string{"b1"}
	s.PostBans[engine.SideMe] = "e3"

	v, err := VectorFromState(s)
	require.NoError(t, err)
	assert.Equal(t, "m1", v["main1"])
	assert.Equal(t, "e5", v["enemy5"])
	assert.Equal(t, "b1", v["main_pre_b1"])
	assert.Equal(t, "", v["main_pre_b2"])
	assert.Equal(t, "e3", v["main_post_b"])
	assert.Equal(t, "0", v["is_first"])
}
