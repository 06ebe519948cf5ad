package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"

	"github.com/brookfield-academy/site-server-go/internal/util"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port                           int    `env:"PORT" envDefault:"8080"`
	DatabaseURL                    string `env:"DATABASE_URL,required"`
	RedisURL                       string `env:"REDIS_URL,required"`
	AdminSessionSecret             string `env:"ADMIN_SESSION_SECRET" envDefault:"dev-secret-change-me"`
	EncryptionKey                  string `env:"ENCRYPTION_KEY"`
	RevokeSessionsOnPasswordChange bool   `env:"REVOKE_SESSIONS_ON_PASSWORD_CHANGE" envDefault:"true"`
	ContentCacheTTLSeconds         int    `env:"CONTENT_CACHE_TTL_SECONDS" envDefault:"300"`
	LogLevel                       string `env:"LOG_LEVEL" envDefault:"info"`

	Storage StorageConfig `envPrefix:"STORAGE_"`
}

type StorageConfig struct {
	Endpoint      string `env:"ENDPOINT"`
	AccessKey     string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	Bucket        string `env:"BUCKET" envDefault:"school-media"`
	Region        string `env:"REGION" envDefault:"us-east-1"`
	UseSSL        bool   `env:"USE_SSL" envDefault:"true"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

// Enabled reports whether enough settings are present to sign uploads.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != ""
}

func (c *Config) ContentCacheTTL() time.Duration {
	return time.Duration(c.ContentCacheTTLSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate(isProduction bool) error {
	if c.EncryptionKey != "" {
		if err := util.ValidateEncryptionKey(c.EncryptionKey); err != nil {
			return fmt.Errorf("ENCRYPTION_KEY is invalid (generate with: openssl rand -hex 32): %w", err)
		}
	}

	if isProduction {
		if err := validateSecret("ADMIN_SESSION_SECRET", c.AdminSessionSecret); err != nil {
			return err
		}

		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
		if c.EncryptionKey == "" {
			log.Warn().Msg("ENCRYPTION_KEY is empty in production: session client info will be stored in plaintext")
		}
		if !c.Storage.Enabled() {
			log.Warn().Msg("STORAGE_* is not configured in production: image uploads are disabled")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
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
