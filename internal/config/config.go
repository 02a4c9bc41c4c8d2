package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	BlobBasePath string // uploaded source documents land here

	// LLM backend selection. Empty means heuristic-only generation.
	LLMProvider  string // "gemini" | "huggingface" | ""
	GeminiAPIKey string
	GeminiModel  string
	HFAPIKey     string
	HFModel      string
	LLMTimeout   time.Duration

	CORSOrigins []string
}

// FromEnv builds the configuration from environment variables, loading a
// local .env file first when one exists.
func FromEnv() Config {
	_ = godotenv.Load()

	provider := strings.ToLower(os.Getenv("PREFERRED_LLM"))
	if provider == "mock" {
		provider = ""
	}

	return Config{
		HTTPAddr:     envOr("HTTP_ADDR", ":8080"),
		PublicURL:    os.Getenv("PUBLIC_URL"),
		DBDriver:     envOr("DB_DRIVER", "sqlite"),
		DBDSN:        envOr("DB_DSN", ""),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./data"),
		LLMProvider:  provider,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-1.5-flash"),
		HFAPIKey:     os.Getenv("HUGGINGFACE_API_KEY"),
		HFModel:      envOr("HF_MODEL", "google/flan-t5-large"),
		LLMTimeout:   envDuration("LLM_TIMEOUT", 60*time.Second),
		CORSOrigins:  csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
