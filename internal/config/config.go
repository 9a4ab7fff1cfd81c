package config

import (
	"fmt"
	"os"
)

// Config holds process configuration, read from the environment.
type Config struct {
	Addr          string
	MongoURI      string
	DBName        string
	SessionSecret string
	UploadDir     string
	LogLevel      string
}

// Load reads configuration from environment variables. SESSION_SECRET is
// required and has no default: tokens signed with a known fallback secret
// are forgeable, so startup fails instead.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("ADDR", ":8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "itemvault"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads/profile-images"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
