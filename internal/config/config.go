package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTAccessTTL   = 24 * time.Hour
	defaultDiagnosticsMax = 1000
)

// Config is resolved in layers: built-in defaults, then the YAML file named
// by CONFIG_FILE, then environment variables (a local .env is loaded first).
type Config struct {
	AppEnv             string        `yaml:"app_env" env:"APP_ENV"`
	HTTPAddr           string        `yaml:"http_addr" env:"HTTP_ADDR"`
	DatabaseURL        string        `yaml:"database_url" env:"DATABASE_URL"`
	JWTSecret          string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTAccessTTL       time.Duration `yaml:"jwt_access_ttl" env:"JWT_ACCESS_TTL"`
	CORSAllowedOrigins string        `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	RedisAddr          string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword      string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	DiagnosticsMax     int64         `yaml:"diagnostics_max_entries" env:"DIAGNOSTICS_MAX_ENTRIES"`
	MetricsEnabled     bool          `yaml:"metrics_enabled" env:"METRICS_ENABLED"`
}

func defaults() *Config {
	return &Config{
		AppEnv:         "dev",
		HTTPAddr:       defaultHTTPAddr,
		JWTSecret:      defaultJWTSecret,
		JWTAccessTTL:   defaultJWTAccessTTL,
		DiagnosticsMax: defaultDiagnosticsMax,
		MetricsEnabled: true,
	}
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}

	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s redis=%t metrics=%t", cfg.AppEnv, cfg.HTTPAddr, cfg.RedisAddr != "", cfg.MetricsEnabled)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.DiagnosticsMax <= 0 {
		return fmt.Errorf("DIAGNOSTICS_MAX_ENTRIES must be > 0")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
