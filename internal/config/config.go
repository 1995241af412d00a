package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/kwhitford/e7-draft-backend/internal/recommend"
)

// Config is the process-level configuration, sourced from the
// environment (optionally seeded by a .env file).
type Config struct {
	Addr        string
	CatalogPath string
	DatasetPath string
	ModelPath   string
	WeightsPath string
	DatabaseDSN string
}

func Load() Config {
	// Missing .env is fine; real deployments set the environment.
	_ = godotenv.Load()

	return Config{
		Addr:        getenv("E7DRAFT_ADDR", ":8080"),
		CatalogPath: getenv("E7DRAFT_HERO_CATALOG", "e7_data/herocodes.json"),
		DatasetPath: getenv("E7DRAFT_DATASET", "e7_data/drafts_dataset.csv"),
		ModelPath:   os.Getenv("E7DRAFT_MODEL"),
		WeightsPath: os.Getenv("E7DRAFT_WEIGHTS"),
		DatabaseDSN: os.Getenv("E7DRAFT_DATABASE_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadWeights reads the recommender tuning file. An empty path returns
// the defaults.
func LoadWeights(path string) (recommend.Config, error) {
	cfg := recommend.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading weights file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing weights file: %w", err)
	}
	return cfg, nil
}
