package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                 int    `env:"PORT" envDefault:"10000"`
	DatabaseURL          string `env:"DATABASE_URL,required"`
	RedisURL             string `env:"REDIS_URL,required"`
	TelegramBotToken     string `env:"TELEGRAM_BOT_TOKEN,required"`
	InstagramAppID       string `env:"INSTAGRAM_APP_ID,required"`
	InstagramAppSecret   string `env:"INSTAGRAM_APP_SECRET,required"`
	RedirectURI          string `env:"REDIRECT_URI,required"`
	MediaBaseURL         string `env:"MEDIA_BASE_URL"`
	OAuthStateTTLSeconds int    `env:"OAUTH_STATE_TTL_SECONDS" envDefault:"3600"`
	PublishPollSeconds   int    `env:"PUBLISH_POLL_SECONDS" envDefault:"10"`
	PublishPollAttempts  int    `env:"PUBLISH_POLL_ATTEMPTS" envDefault:"30"`
	StagingTTLSeconds    int    `env:"STAGING_TTL_SECONDS" envDefault:"3600"`
	LogLevel             string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) OAuthStateTTL() time.Duration {
	return time.Duration(c.OAuthStateTTLSeconds) * time.Second
}

func (c *Config) PublishPollInterval() time.Duration {
	return time.Duration(c.PublishPollSeconds) * time.Second
}

func (c *Config) StagingTTL() time.Duration {
	return time.Duration(c.StagingTTLSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MediaURLBase is the public base under which uploaded videos must be
// reachable before container creation. Falls back to the redirect URI with
// the callback path stripped, which is how the hosting setup exposes it.
func (c *Config) MediaURLBase() string {
	if c.MediaBaseURL != "" {
		return strings.TrimSuffix(c.MediaBaseURL, "/")
	}
	return strings.TrimSuffix(strings.TrimSuffix(c.RedirectURI, "/oauth/callback"), "/")
}

func (c *Config) Validate(isProduction bool) error {
	u, err := url.Parse(c.RedirectURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("REDIRECT_URI must be an absolute URL, got %q", c.RedirectURI)
	}

	if c.PublishPollSeconds <= 0 {
		return fmt.Errorf("PUBLISH_POLL_SECONDS must be positive, got %d", c.PublishPollSeconds)
	}
	if c.PublishPollAttempts <= 0 {
		return fmt.Errorf("PUBLISH_POLL_ATTEMPTS must be positive, got %d", c.PublishPollAttempts)
	}

	if isProduction {
		if u.Scheme != "https" {
			return fmt.Errorf("REDIRECT_URI must use https in production")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
