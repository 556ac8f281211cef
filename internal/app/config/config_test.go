package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMustLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DATABASE_URL", "GEMINI_API_KEY", "GEMINI_TIMEOUT", "GEMINI_RETRIES", "QUOTE_CACHE_SIZE", "QUOTE_CACHE_TTL", "CORS_ALLOW_ORIGIN"} {
		t.Setenv(k, "")
	}
	cfg := MustLoad()

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 25*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 2, cfg.GeminiRetries)
	assert.Equal(t, 256, cfg.QuoteCacheSize)
	assert.Equal(t, "*", cfg.CORSAllowOrigin)
}

func TestMustLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("GEMINI_TIMEOUT", "3s")
	t.Setenv("GEMINI_RETRIES", "0")
	t.Setenv("QUOTE_CACHE_TTL", "1h")
	cfg := MustLoad()

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 0, cfg.GeminiRetries)
	assert.Equal(t, time.Hour, cfg.QuoteCacheTTL)
}
