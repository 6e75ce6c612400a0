// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the full server configuration.
type Config struct {
	Host   string
	Port   int
	DBPath string

	// JWTSecret signs session credentials and API keys.
	JWTSecret  string
	SessionTTL time.Duration

	Discord DiscordConfig

	// AllowedOrigins is the frontend origin allow-list for post-login
	// redirects. Empty means any syntactically valid origin is accepted,
	// which is only safe for local development.
	AllowedOrigins []string
	DefaultOrigin  string

	StateBackend string // "memory" or "redis"
	StateTTL     time.Duration
	Redis        RedisConfig

	LogLevel  string
	LogFormat string

	HTTPSDomain  string
	HTTPSCertDir string
}

// DiscordConfig holds the OAuth application credentials.
type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// RedisConfig holds connection settings for the redis state backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// rawEnv holds raw environment values before normalization.
type rawEnv struct {
	Host   string `env:"BOTAPI_HOST"    envDefault:"0.0.0.0"`
	Port   int    `env:"BOTAPI_PORT"    envDefault:"8080"`
	DBPath string `env:"BOTAPI_DB_PATH" envDefault:"botapi.db"`

	JWTSecret  string        `env:"BOTAPI_JWT_SECRET"`
	SessionTTL time.Duration `env:"BOTAPI_SESSION_TTL" envDefault:"24h"`

	DiscordClientID     string `env:"BOTAPI_DISCORD_CLIENT_ID"`
	DiscordClientSecret string `env:"BOTAPI_DISCORD_CLIENT_SECRET"`
	DiscordRedirectURI  string `env:"BOTAPI_DISCORD_REDIRECT_URI"`

	FrontendOrigins []string `env:"BOTAPI_FRONTEND_ORIGINS" envSeparator:","`
	DefaultOrigin   string   `env:"BOTAPI_DEFAULT_ORIGIN"`

	StateBackend  string        `env:"BOTAPI_STATE_BACKEND"  envDefault:"memory"`
	StateTTL      time.Duration `env:"BOTAPI_STATE_TTL"      envDefault:"10m"`
	RedisAddr     string        `env:"BOTAPI_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string        `env:"BOTAPI_REDIS_PASSWORD"`
	RedisDB       int           `env:"BOTAPI_REDIS_DB"       envDefault:"0"`

	LogLevel  string `env:"BOTAPI_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"BOTAPI_LOG_FORMAT" envDefault:"text"`

	HTTPSDomain  string `env:"BOTAPI_HTTPS_DOMAIN"`
	HTTPSCertDir string `env:"BOTAPI_HTTPS_CERT_DIR" envDefault:".botapi-certs"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return &Config{
		Host:       raw.Host,
		Port:       raw.Port,
		DBPath:     raw.DBPath,
		JWTSecret:  raw.JWTSecret,
		SessionTTL: raw.SessionTTL,
		Discord: DiscordConfig{
			ClientID:     raw.DiscordClientID,
			ClientSecret: raw.DiscordClientSecret,
			RedirectURI:  raw.DiscordRedirectURI,
		},
		AllowedOrigins: trimCSV(raw.FrontendOrigins),
		DefaultOrigin:  strings.TrimSpace(raw.DefaultOrigin),
		StateBackend:   strings.ToLower(raw.StateBackend),
		StateTTL:       raw.StateTTL,
		Redis: RedisConfig{
			Addr:     raw.RedisAddr,
			Password: raw.RedisPassword,
			DB:       raw.RedisDB,
		},
		LogLevel:     raw.LogLevel,
		LogFormat:    raw.LogFormat,
		HTTPSDomain:  raw.HTTPSDomain,
		HTTPSCertDir: raw.HTTPSCertDir,
	}, nil
}

// Validate checks that required settings are present and consistent.
// Failures here are configuration errors and abort startup.
func (c *Config) Validate() error {
	if c.Discord.ClientID == "" {
		return fmt.Errorf("BOTAPI_DISCORD_CLIENT_ID is required")
	}
	if c.Discord.ClientSecret == "" {
		return fmt.Errorf("BOTAPI_DISCORD_CLIENT_SECRET is required")
	}
	if c.Discord.RedirectURI == "" {
		return fmt.Errorf("BOTAPI_DISCORD_REDIRECT_URI is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("BOTAPI_JWT_SECRET is required")
	}
	switch c.StateBackend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("BOTAPI_REDIS_ADDR is required when BOTAPI_STATE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown state backend %q (want memory or redis)", c.StateBackend)
	}
	if c.StateTTL <= 0 {
		return fmt.Errorf("BOTAPI_STATE_TTL must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("BOTAPI_SESSION_TTL must be positive")
	}
	return nil
}

// trimCSV removes empty entries from a CSV-split slice.
func trimCSV(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
