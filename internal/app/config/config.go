package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	InternalToken   string
	CORSAllowOrigin string
	GeminiAPIKey    string
	GeminiModel     string
	GeminiTimeout   time.Duration
	GeminiRetries   int
	QuoteCacheSize  int
	QuoteCacheTTL   time.Duration
}

// MustLoad reads the environment, after loading .env if one exists.
func MustLoad() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:        env("HTTP_ADDR", ":3000"),
		DatabaseURL:     env("DATABASE_URL", ""),
		InternalToken:   env("INTERNAL_TOKEN", ""),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		GeminiAPIKey:    env("GEMINI_API_KEY", ""),
		GeminiModel:     env("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiTimeout:   mustDuration("GEMINI_TIMEOUT", 25*time.Second),
		GeminiRetries:   mustInt("GEMINI_RETRIES", 2),
		QuoteCacheSize:  mustInt("QUOTE_CACHE_SIZE", 256),
		QuoteCacheTTL:   mustDuration("QUOTE_CACHE_TTL", 30*time.Minute),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid env %s=%q: %v", k, v, err)
	}
	return n
}

func mustDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid env %s=%q: %v", k, v, err)
	}
	return d
}
