package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"

	FileName = "config.yaml"
)

type Config struct {
	DataDir         string `yaml:"-"`
	StatePath       string `yaml:"-"`
	DBPath          string `yaml:"-"`
	PassportDir     string `yaml:"-"`
	EntitlementPath string `yaml:"-"`

	StoreEngine string `yaml:"store_engine" env:"STEPONE_STORE_ENGINE"`
	LogLevel    string `yaml:"log_level" env:"STEPONE_LOG_LEVEL"`
	LogPath     string `yaml:"log_path" env:"STEPONE_LOG_PATH"`

	FreeJourneyPrefix int           `yaml:"free_journey_prefix" env:"STEPONE_FREE_JOURNEY_PREFIX"`
	ConversionDelay   time.Duration `yaml:"conversion_delay" env:"STEPONE_CONVERSION_DELAY"`
	PurchaseDelay     time.Duration `yaml:"purchase_delay" env:"STEPONE_PURCHASE_DELAY"`
	SignInDelay       time.Duration `yaml:"signin_delay" env:"STEPONE_SIGNIN_DELAY"`
}

// New returns the defaults for a data directory without reading any file or
// environment variable.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:           dataDir,
		StatePath:         filepath.Join(dataDir, "progress.json"),
		DBPath:            filepath.Join(dataDir, "stepone.db"),
		PassportDir:       filepath.Join(dataDir, "passport"),
		EntitlementPath:   filepath.Join(dataDir, "entitlements.json"),
		StoreEngine:       EngineJSON,
		LogLevel:          "info",
		LogPath:           filepath.Join(dataDir, "stepone.log"),
		FreeJourneyPrefix: 7,
		ConversionDelay:   2500 * time.Millisecond,
		PurchaseDelay:     time.Second,
		SignInDelay:       1200 * time.Millisecond,
	}, nil
}

// Load layers <dataDir>/config.yaml and then STEPONE_* environment variables
// over the defaults.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", FileName, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreEngine = strings.ToLower(strings.TrimSpace(cfg.StoreEngine))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreEngine {
	case EngineJSON, EngineSQLite:
	default:
		return fmt.Errorf("unsupported store engine %q", c.StoreEngine)
	}
	if c.FreeJourneyPrefix < 0 {
		return fmt.Errorf("free journey prefix must be non-negative")
	}
	if c.ConversionDelay < 0 || c.PurchaseDelay < 0 || c.SignInDelay < 0 {
		return fmt.Errorf("delays must be non-negative")
	}
	return nil
}
