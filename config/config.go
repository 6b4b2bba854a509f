package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	NarrativeURL string
	DataDir      string
	ModelPath    string
	Port         string
}

// Load reads configuration from environment variables, after loading a .env
// file if one is present. NARRATIVE_URL may be empty: predictions still work,
// every narrative call just degrades to its fallback sentence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	modelPath := os.Getenv("MODEL_PATH")
	if modelPath == "" {
		modelPath = "./model/risk_model.json"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		NarrativeURL: os.Getenv("NARRATIVE_URL"),
		DataDir:      dataDir,
		ModelPath:    modelPath,
		Port:         port,
	}, nil
}
