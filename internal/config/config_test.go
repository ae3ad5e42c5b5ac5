package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_PROJECT_ID", "learn-lingo-test")
	t.Setenv("FIREBASE_DATABASE_URL", "https://learn-lingo-test.firebaseio.com")
	t.Setenv("FIREBASE_WEB_API_KEY", "test-key")
	t.Setenv("SESSION_SECRET", "test-secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "https://open.er-api.com/v6/latest/USD", cfg.RatesAPIURL)
		assert.Equal(t, "noreply@learnlingo.app", cfg.EmailSender)
	})

	t.Run("environment overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PORT", "9090")
		t.Setenv("SESSION_TTL", "24h")
		t.Setenv("REDIS_ADDR", "localhost:6379")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	})

	t.Run("missing project id", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("FIREBASE_PROJECT_ID", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("missing session secret", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SESSION_SECRET", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
