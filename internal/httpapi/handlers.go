package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"

	"go.uber.org/zap"

	"github.com/kwhitford/e7-draft-backend/internal/engine"
	"github.com/kwhitford/e7-draft-backend/internal/hero"
	"github.com/kwhitford/e7-draft-backend/internal/hub"
	"github.com/kwhitford/e7-draft-backend/internal/predict"
	"github.com/kwhitford/e7-draft-backend/internal/recommend"
	"github.com/kwhitford/e7-draft-backend/internal/session"
	"github.com/kwhitford/e7-draft-backend/pkg/types"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateSession(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan *session.Session, 1)
			h.Inbox() <- hub.GetSession{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			log.Debug("collision on code, regenerating", zap.String("code", c))
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.EnsureSession{Code: code, State: engine.NewEmptyState(), Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, types.CreateSessionResponse{Code: code})
	}
}

func Heroes(catalog *hero.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.All())
	}
}

// Recommend is the stateless recommendation endpoint: the client sends
// the collected draft lists and gets a ranked suggestion list back.
func Recommend(ranker *recommend.Ranker, catalog *hero.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.DraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}

		state, ok := stateFromRequest(w, req, catalog)
		if !ok {
			return
		}

		slots := req.Slots
		if slots == 0 {
			slots = engine.UpcomingOwnSlots(state)
			if slots == 0 {
				// Not my turn; a single look-ahead suggestion is still
				// useful to plan around.
				slots = 1
			}
		}
		if slots > 2 {
			slots = 2
		}

		recs, err := ranker.Recommend(state, slots)
		if err != nil {
			if errors.Is(err, recommend.ErrInsufficientCandidates) {
				writeErr(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.RecommendResponse{Recommended: recs})
	}
}

// WinProb scores a completed draft with the trained model.
func WinProb(predictor predict.Predictor, catalog *hero.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if predictor == nil {
			writeErr(w, http.StatusServiceUnavailable, predict.ErrModelUnavailable.Error())
			return
		}

		var req types.WinProbRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}

		state, ok := stateFromRequest(w, req.DraftRequest, catalog)
		if !ok {
			return
		}
		// Post-bans go through the engine so the completed-draft and
		// opposing-team rules apply to stateless requests too.
		postBans := map[engine.Side]string{
			engine.SideMe:    req.MyPostBan,
			engine.SideEnemy: req.EnemyPostBan,
		}
		for _, side := range []engine.Side{engine.SideMe, engine.SideEnemy} {
			id := postBans[side]
			if id == "" {
				continue
			}
			if !catalog.Valid(id) {
				writeErr(w, http.StatusBadRequest, hero.ErrUnknownHero.Error()+": "+id)
				return
			}
			var err error
			_, state, err = engine.Apply(state, engine.Command{
				Type:   engine.CmdSetPostBan,
				Side:   side,
				HeroID: id,
			})
			if err != nil {
				writeErr(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		v, err := predict.VectorFromState(state)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		p, err := predictor.Predict(v)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.WinProbResponse{WinProbability: p})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func stateFromRequest(w http.ResponseWriter, req types.DraftRequest, catalog *hero.Catalog) (engine.State, bool) {
	for _, group := range [][]string{req.MyPreBans, req.EnemyPreBans, req.MyPicks, req.EnemyPicks} {
		for _, id := range group {
			if !catalog.Valid(id) {
				writeErr(w, http.StatusBadRequest, hero.ErrUnknownHero.Error()+": "+id)
				return engine.State{}, false
			}
		}
	}

	state, err := engine.StateFromLists(
		engine.Side(req.FirstPicker),
		req.MyPreBans, req.EnemyPreBans,
		req.MyPicks, req.EnemyPicks,
	)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return engine.State{}, false
	}
	return state, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}
