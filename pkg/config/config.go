// Package config loads settings from .env files, an optional YAML file and the
// environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the process settings shared by the server and the CLI
type Config struct {
	Port              string  `yaml:"port"`
	DatabaseURL       string  `yaml:"database_url"`
	DataPath          string  `yaml:"data_path"`
	JWTSecret         string  `yaml:"jwt_secret"`
	AdminUsername     string  `yaml:"admin_username"`
	AdminPassword     string  `yaml:"admin_password"`
	GinMode           string  `yaml:"gin_mode"`
	LogLevel          string  `yaml:"log_level"`
	DefaultHourlyRate float64 `yaml:"default_hourly_rate"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Port:              "8000",
		DataPath:          "turni.db",
		AdminUsername:     "admin",
		LogLevel:          "info",
		DefaultHourlyRate: 12.99,
	}
}

// LoadDotEnv loads the first .env found in the working directory or its parents
func LoadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load builds the configuration. path may be empty, in which case TURNI_CONFIG is used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("TURNI_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	override(&cfg.Port, "PORT")
	override(&cfg.DatabaseURL, "DATABASE_URL")
	override(&cfg.DataPath, "DATA_PATH")
	override(&cfg.JWTSecret, "JWT_SECRET")
	override(&cfg.AdminUsername, "ADMIN_USERNAME")
	override(&cfg.AdminPassword, "ADMIN_PASSWORD")
	override(&cfg.GinMode, "GIN_MODE")
	override(&cfg.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("DEFAULT_HOURLY_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("DEFAULT_HOURLY_RATE: %w", err)
		}
		cfg.DefaultHourlyRate = rate
	}
	return cfg, nil
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
