package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode   `env:"MODE" env-default:"offline" env-description:"offline|online"`
	HTTPAddr  string `env:"HTTP_ADDR" env-default:":8080"`
	PublicURL string `env:"PUBLIC_URL"`

	SessionSecret string        `env:"SESSION_SECRET" env-default:"supersecret-dev-key" env-description:"HMAC key for session cookies"`
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"2h"`

	CORSOriginsOnline  []string `env:"CORS_ORIGINS_ONLINE" env-default:"https://cit-celestius.vercel.app"`
	CORSOriginsOffline []string `env:"CORS_ORIGINS_OFFLINE" env-default:"http://localhost:3000,http://localhost:8080"`

	BrandName string `env:"BRAND_NAME" env-default:"Celestius"`
	BrandURL  string `env:"BRAND_URL" env-default:"https://cit-celestius.vercel.app/"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	EnableAPI bool   `env:"ENABLE_API" env-default:"true"`
}

// FromEnv reads the configuration from the process environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	cfg.Mode = Mode(strings.ToLower(strings.TrimSpace(string(cfg.Mode))))
	switch cfg.Mode {
	case ModeOffline, ModeOnline:
	default:
		return Config{}, fmt.Errorf("unsupported MODE %q", cfg.Mode)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	cfg.CORSOriginsOnline = trimAll(cfg.CORSOriginsOnline)
	cfg.CORSOriginsOffline = trimAll(cfg.CORSOriginsOffline)
	return cfg, nil
}

// CORSOrigins returns the allowed origins for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

// Usage describes the supported environment variables.
func Usage() string {
	var cfg Config
	help, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return help
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
