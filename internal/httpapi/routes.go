package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kwhitford/e7-draft-backend/internal/hero"
	"github.com/kwhitford/e7-draft-backend/internal/hub"
	"github.com/kwhitford/e7-draft-backend/internal/predict"
	"github.com/kwhitford/e7-draft-backend/internal/recommend"
	"github.com/kwhitford/e7-draft-backend/internal/ws"
)

type Deps struct {
	Catalog   *hero.Catalog
	Ranker    *recommend.Ranker
	Predictor predict.Predictor
	Logger    *zap.Logger
}

func SetupRoutes(h *hub.Hub, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/sessions", CreateSession(h, deps.Logger))
	r.Get("/healthz", Healthz)
	r.Get("/heroes", Heroes(deps.Catalog))
	r.Get("/ws", ws.Handler(h, deps.Catalog, deps.Logger))

	// Stateless query surface for UIs that keep their own draft form.
	r.Post("/draft/recommend", Recommend(deps.Ranker, deps.Catalog))
	r.Post("/draft/winprob", WinProb(deps.Predictor, deps.Catalog))
	return r
}
