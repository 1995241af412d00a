// Package predict wraps the pre-trained win-probability model. The
// rest of the service only sees the Predictor interface and the
// returned probability.
package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/kwhitford/e7-draft-backend/internal/engine"
)

var ErrModelUnavailable = errors.New("win model unavailable")

// Columns is the fixed feature order the model was trained on.
var Columns = []string{
	"enemy1", "main1", "enemy2", "main2", "enemy3", "main3",
	"enemy4", "main4", "enemy5", "main5",
	"main_pre_b1", "enemy_pre_b1", "main_pre_b2", "enemy_pre_b2",
	"main_post_b", "enemy_post_b",
	"is_first",
}

// Vector is a completed draft laid out in training-column order.
type Vector map[string]string

// VectorFromState encodes a completed draft. It fails if any of the
// ten picks are still missing.
func VectorFromState(s engine.State) (Vector, error) {
	if !s.Completed() {
		return nil, engine.ErrDraftNotCompleted
	}

	v := Vector{}
	for i := 0; i < 5; i++ {
		v[fmt.Sprintf("main%d", i+1)] = s.Picks[engine.SideMe][i]
		v[fmt.Sprintf("enemy%d", i+1)] = s.Picks[engine.SideEnemy][i]
	}
	v["main_pre_b1"] = at(s.PreBans[engine.SideMe], 0)
	v["main_pre_b2"] = at(s.PreBans[engine.SideMe], 1)
	v["enemy_pre_b1"] = at(s.PreBans[engine.SideEnemy], 0)
	v["enemy_pre_b2"] = at(s.PreBans[engine.SideEnemy], 1)
	v["main_post_b"] = s.PostBans[engine.SideMe]
	v["enemy_post_b"] = s.PostBans[engine.SideEnemy]
	v["is_first"] = "0"
	if s.FirstPicker == engine.SideMe {
		v["is_first"] = "1"
	}
	return v, nil
}

func at(xs []string, i int) string {
	if i < len(xs) {
		return xs[i]
	}
	return ""
}

// Predictor consumes an encoded draft and returns a win probability in
// [0, 1].
type Predictor interface {
	Predict(v Vector) (float64, error)
}

// modelFile is the exported form of the trained logistic regression:
// per-column label encodings, standardization parameters, and the
// coefficient vector.
type modelFile struct {
	Columns      []string                  `json:"columns"`
	Encodings    map[string]map[string]int `json:"encodings"`
	Means        []float64                 `json:"means"`
	Scales       []float64                 `json:"scales"`
	Coefficients []float64                 `json:"coefficients"`
	Intercept    float64                   `json:"intercept"`
}

// Logistic is a logistic-regression Predictor loaded from a weights
// file.
type Logistic struct {
	m modelFile
}

func LoadModel(path string) (*Logistic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	var m modelFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if len(m.Columns) == 0 ||
		len(m.Means) != len(m.Columns) ||
		len(m.Scales) != len(m.Columns) ||
		len(m.Coefficients) != len(m.Columns) {
		return nil, fmt.Errorf("%w: inconsistent weights file", ErrModelUnavailable)
	}
	return &Logistic{m: m}, nil
}

// Predict encodes, standardizes, and runs the logistic function. The
// training target is the dataset's is_win column, where 0 marks a win
// for the recorded player, so the win probability is the complement of
// the model output.
func (l *Logistic) Predict(v Vector) (float64, error) {
	z := l.m.Intercept
	for i, col := range l.m.Columns {
		var code float64
		if col == "is_first" {
			if v[col] == "1" {
				code = 1
			}
		} else if enc, ok := l.m.Encodings[col]; ok {
			// Heroes unseen at training time encode as 0, like any
			// other unknown label.
			code = float64(enc[v[col]])
		}

		x := 0.0
		if l.m.Scales[i] != 0 {
			x = (code - l.m.Means[i]) / l.m.Scales[i]
		}
		z += l.m.Coefficients[i] * x
	}

	p := 1.0 - 1.0/(1.0+math.Exp(-z))
	return math.Min(1, math.Max(0, p)), nil
}
