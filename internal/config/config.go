package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Markup    MarkupConfig    `yaml:"markup" envconfig:"MARKUP"`
	Detection DetectionConfig `yaml:"detection" envconfig:"DETECTION"`
	Limits    LimitsConfig    `yaml:"limits" envconfig:"LIMITS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
}

// MarkupConfig controls markup computation
type MarkupConfig struct {
	Percentages    []float64 `yaml:"percentages" envconfig:"PERCENTAGES" validate:"required,min=1,dive,gte=0"`
	DecimalPlaces  int       `yaml:"decimal_places" envconfig:"DECIMAL_PLACES" validate:"gte=0,lte=10"`
	CurrencySymbol string    `yaml:"currency_symbol" envconfig:"CURRENCY_SYMBOL"`
}

// DetectionConfig controls cost-column detection
type DetectionConfig struct {
	MinConfidence    float64  `yaml:"min_confidence" envconfig:"MIN_CONFIDENCE" validate:"gte=0,lte=1"`
	RequiredDataRows int      `yaml:"required_data_rows" envconfig:"REQUIRED_DATA_ROWS" validate:"gte=1"`
	CustomKeywords   []string `yaml:"custom_keywords" envconfig:"CUSTOM_KEYWORDS"`
}

// LimitsConfig bounds per-sheet work
type LimitsConfig struct {
	MaxRows int `yaml:"max_rows" envconfig:"MAX_ROWS" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Markup: MarkupConfig{
			Percentages:   []float64{5, 10, 15, 20, 30},
			DecimalPlaces: 2,
		},
		Detection: DetectionConfig{
			MinConfidence:    0.3,
			RequiredDataRows: 5,
		},
		Limits: LimitsConfig{
			MaxRows: 50000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence. The file path
// comes from PRICEMARK_CONFIG_FILE, falling back to config.yaml in the
// working directory when present.
func Load() (*Config, error) {
	cfg := Default()

	configFile := os.Getenv("PRICEMARK_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables override file values. Fields without a
	// matching variable keep whatever the earlier layers set.
	if err := envconfig.Process("PRICEMARK", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Logger builds a slog logger matching the logging configuration.
func (c *Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(c.Logging.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
