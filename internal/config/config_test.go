package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("OAuthStateTTL converts seconds to duration", func(t *testing.T) {
		cfg := &Config{OAuthStateTTLSeconds: 3600}
		assert.Equal(t, time.Hour, cfg.OAuthStateTTL())
	})

	t.Run("PublishPollInterval converts seconds to duration", func(t *testing.T) {
		cfg := &Config{PublishPollSeconds: 10}
		assert.Equal(t, 10*time.Second, cfg.PublishPollInterval())
	})

	t.Run("MediaURLBase prefers explicit base URL", func(t *testing.T) {
		cfg := &Config{
			MediaBaseURL: "https://media.example.com/",
			RedirectURI:  "https://bot.example.com/oauth/callback",
		}
		assert.Equal(t, "https://media.example.com", cfg.MediaURLBase())
	})

	t.Run("MediaURLBase derives from redirect URI", func(t *testing.T) {
		cfg := &Config{RedirectURI: "https://bot.example.com/oauth/callback"}
		assert.Equal(t, "https://bot.example.com", cfg.MediaURLBase())
	})
}

func TestValidate(t *testing.T) {
	base := Config{
		RedirectURI:         "https://bot.example.com/oauth/callback",
		RedisURL:            "rediss://localhost:6379",
		PublishPollSeconds:  10,
		PublishPollAttempts: 30,
	}

	t.Run("accepts valid config", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate(true))
	})

	t.Run("rejects relative redirect URI", func(t *testing.T) {
		cfg := base
		cfg.RedirectURI = "/oauth/callback"
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("rejects http redirect URI in production", func(t *testing.T) {
		cfg := base
		cfg.RedirectURI = "http://bot.example.com/oauth/callback"
		assert.NoError(t, cfg.Validate(false))
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("rejects non-positive poll settings", func(t *testing.T) {
		cfg := base
		cfg.PublishPollSeconds = 0
		assert.Error(t, cfg.Validate(false))

		cfg = base
		cfg.PublishPollAttempts = -1
		assert.Error(t, cfg.Validate(false))
	})
}

func TestLoad(t *testing.T) {
	vars := []string{
		"PORT", "DATABASE_URL", "REDIS_URL", "TELEGRAM_BOT_TOKEN",
		"INSTAGRAM_APP_ID", "INSTAGRAM_APP_SECRET", "REDIRECT_URI",
		"MEDIA_BASE_URL", "OAUTH_STATE_TTL_SECONDS", "PUBLISH_POLL_SECONDS",
		"PUBLISH_POLL_ATTEMPTS", "STAGING_TTL_SECONDS", "LOG_LEVEL",
	}

	originalEnv := map[string]string{}
	for _, v := range vars {
		originalEnv[v] = os.Getenv(v)
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	setRequired := func() {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
		os.Setenv("INSTAGRAM_APP_ID", "app-id")
		os.Setenv("INSTAGRAM_APP_SECRET", "app-secret")
		os.Setenv("REDIRECT_URI", "https://bot.example.com/oauth/callback")
	}

	t.Run("loads config with defaults", func(t *testing.T) {
		setRequired()
		os.Unsetenv("PORT")
		os.Unsetenv("OAUTH_STATE_TTL_SECONDS")
		os.Unsetenv("PUBLISH_POLL_SECONDS")
		os.Unsetenv("PUBLISH_POLL_ATTEMPTS")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 10000, cfg.Port)
		assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		assert.Equal(t, 3600, cfg.OAuthStateTTLSeconds)
		assert.Equal(t, 10, cfg.PublishPollSeconds)
		assert.Equal(t, 30, cfg.PublishPollAttempts)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("loads custom values", func(t *testing.T) {
		setRequired()
		os.Setenv("PORT", "3000")
		os.Setenv("PUBLISH_POLL_SECONDS", "1")
		os.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, 1, cfg.PublishPollSeconds)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("fails without required TELEGRAM_BOT_TOKEN", func(t *testing.T) {
		setRequired()
		os.Unsetenv("TELEGRAM_BOT_TOKEN")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without required REDIRECT_URI", func(t *testing.T) {
		setRequired()
		os.Unsetenv("REDIRECT_URI")

		_, err := Load()
		assert.Error(t, err)
	})
}
