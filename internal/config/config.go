package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary Primary      `koanf:"primary"`
	Server  ServerConfig `koanf:"server"`
	Logger  LoggerConfig `koanf:"logger"`
	Store   StoreConfig  `koanf:"store"`
	Retry   RetryConfig  `koanf:"retry"`
	Auth    AuthConfig   `koanf:"auth"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

type StoreConfig struct {
	Addr         string        `koanf:"addr" validate:"required"`
	DB           int           `koanf:"db"`
	DialTimeout  time.Duration `koanf:"dial_timeout" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
}

type RetryConfig struct {
	MaxRetries int           `koanf:"max_retries" validate:"required"`
	BaseDelay  time.Duration `koanf:"base_delay" validate:"required"`
	CacheSize  int           `koanf:"cache_size" validate:"required"`
}

type AuthConfig struct {
	Salt       string `koanf:"salt" validate:"required"`
	AdminSalt  string `koanf:"admin_salt" validate:"required"`
	AdminLogin string `koanf:"admin_login" validate:"required"`
}

// defaults mirror the original service's built-in settings; any of them can
// be overridden through SCORING_-prefixed environment variables.
var defaults = map[string]interface{}{
	"primary.env":          "development",
	"server.port":          "8080",
	"server.read_timeout":  15 * time.Second,
	"server.write_timeout": 15 * time.Second,
	"server.idle_timeout":  60 * time.Second,
	"logger.level":          "info",
	"store.addr":            "localhost:6379",
	"store.db":              0,
	"store.dial_timeout":    time.Second,
	"store.read_timeout":    time.Second,
	"store.write_timeout":   time.Second,
	"retry.max_retries":     3,
	"retry.base_delay":      100 * time.Millisecond,
	"retry.cache_size":      10,
	"auth.salt":             "Otus",
	"auth.admin_salt":       "42",
	"auth.admin_login":      "admin",
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load default configuration", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider("SCORING_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "SCORING_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
