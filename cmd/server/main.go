package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/kwhitford/e7-draft-backend/internal/config"
	"github.com/kwhitford/e7-draft-backend/internal/corpus"
	"github.com/kwhitford/e7-draft-backend/internal/hero"
	"github.com/kwhitford/e7-draft-backend/internal/httpapi"
	"github.com/kwhitford/e7-draft-backend/internal/hub"
	"github.com/kwhitford/e7-draft-backend/internal/predict"
	"github.com/kwhitford/e7-draft-backend/internal/recommend"
	"github.com/kwhitford/e7-draft-backend/internal/session"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	catalog, err := hero.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("loading hero catalog", zap.Error(err))
	}
	logger.Info("hero catalog loaded", zap.Int("heroes", catalog.Len()))

	// Postgres when a DSN is configured, the dataset CSV otherwise.
	var src corpus.Source
	if cfg.DatabaseDSN != "" {
		db, err := corpus.OpenDB(cfg.DatabaseDSN)
		if err != nil {
			logger.Fatal("opening match database", zap.Error(err))
		}
		src = db
	} else {
		src = corpus.CSVSource{Path: cfg.DatasetPath}
	}

	weights, err := config.LoadWeights(cfg.WeightsPath)
	if err != nil {
		logger.Fatal("loading recommender weights", zap.Error(err))
	}

	ctx := context.Background()
	idx, err := corpus.BuildIndex(ctx, src, corpus.IndexConfig{MinSamples: weights.MinSamples}, logger)
	if err != nil {
		logger.Fatal("building corpus index", zap.Error(err))
	}

	ranker := recommend.NewRanker(catalog, idx, weights)

	var predictor predict.Predictor
	if cfg.ModelPath != "" {
		m, err := predict.LoadModel(cfg.ModelPath)
		if err != nil {
			logger.Fatal("loading win model", zap.Error(err))
		}
		predictor = m
		logger.Info("win model loaded", zap.String("path", cfg.ModelPath))
	} else {
		logger.Warn("no win model configured; /draft/winprob disabled")
	}

	h := hub.NewHub(ctx, session.Deps{
		Recommender: ranker,
		Predictor:   predictor,
		Logger:      logger,
	})

	handler := httpapi.SetupRoutes(h, httpapi.Deps{
		Catalog:   catalog,
		Ranker:    ranker,
		Predictor: predictor,
		Logger:    logger,
	})

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
