// Package config loads service configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendDynamo = "dynamodb"
	BackendBadger = "badger"
)

// Config is the root service configuration.
type Config struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Store  StoreConfig  `yaml:"store" validate:"required"`
	Log    LogConfig    `yaml:"log"`
	Seed   SeedConfig   `yaml:"seed" validate:"required"`
}

type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
}

type StoreConfig struct {
	// Backend selects the persistence implementation.
	Backend string `yaml:"backend" validate:"oneof=dynamodb badger"`
	// Table is the DynamoDB table name (dynamodb backend only).
	Table string `yaml:"table" validate:"required"`
	// Region overrides the SDK's resolved AWS region when non-empty.
	Region string `yaml:"region"`
	// BadgerPath is the on-disk location for the badger backend; empty
	// means in-memory.
	BadgerPath string `yaml:"badgerPath"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SeedConfig is the window the seed endpoint generates per demo route.
type SeedConfig struct {
	Days        int `yaml:"days" validate:"gt=0"`
	SlotsPerDay int `yaml:"slotsPerDay" validate:"gt=0"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Store: StoreConfig{
			Backend: BackendBadger,
			Table:   "ticket_routes_v2",
		},
		Log:  LogConfig{Level: "info"},
		Seed: SeedConfig{Days: 5, SlotsPerDay: 4},
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (optional when path is empty), then .env / environment overrides,
// then validation.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	_ = godotenv.Load()
	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getenvInt("RAILTIX_PORT", cfg.Server.Port)
	cfg.Store.Backend = getenv("RAILTIX_STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.Table = getenv("RAILTIX_STORE_TABLE", cfg.Store.Table)
	cfg.Store.Region = getenv("AWS_REGION", cfg.Store.Region)
	cfg.Store.BadgerPath = getenv("RAILTIX_BADGER_PATH", cfg.Store.BadgerPath)
	cfg.Log.Level = getenv("RAILTIX_LOG_LEVEL", cfg.Log.Level)
	cfg.Seed.Days = getenvInt("RAILTIX_SEED_DAYS", cfg.Seed.Days)
	cfg.Seed.SlotsPerDay = getenvInt("RAILTIX_SEED_SLOTS", cfg.Seed.SlotsPerDay)
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
