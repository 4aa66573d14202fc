package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DatabaseURL          string
	Neo4jURI             string
	Neo4jUser            string
	Neo4jPassword        string
	WorkerCount          int
	RelatedPathThreshold int
	CatalogExtensions    []string
	LogLevel             string
	WatchDebounce        time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DatabaseURL:          getEnv("DATABASE_URL", "postgres://localhost:5432/addons?sslmode=disable"),
		Neo4jURI:             getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:            getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:        getEnv("NEO4J_PASSWORD", "password"),
		WorkerCount:          getEnvInt("WORKER_COUNT", 8),
		RelatedPathThreshold: getEnvInt("RELATED_PATH_THRESHOLD", 50),
		CatalogExtensions:    getEnvList("CATALOG_EXTENSIONS", []string{".ssc", ".stc", ".dsc"}),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		WatchDebounce:        time.Duration(getEnvInt("WATCH_DEBOUNCE_MS", 200)) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return n
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
