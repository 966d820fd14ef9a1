// Package config loads the serving-layer configuration from YAML, fills
// defaults, applies environment overrides for credentials, and validates
// the result. The analysis pipeline itself carries no configuration beyond
// the signal settings embedded here.
package config

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/tradeforge-lab/tradeforge/internal/broker"
	"github.com/tradeforge-lab/tradeforge/internal/signal"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the Binance credentials, so secrets can
// stay out of config files.
const (
	EnvBinanceAPIKey    = "TRADEFORGE_BINANCE_API_KEY"
	EnvBinanceSecretKey = "TRADEFORGE_BINANCE_SECRET_KEY"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host" json:"host" default:"0.0.0.0"`
	Port int    `yaml:"port" json:"port" default:"8080" validate:"gte=1,lte=65535"`
	// StorePath is the DuckDB file; empty means in-memory.
	StorePath string `yaml:"store_path" json:"store_path"`
}

// Config is the root configuration of the serving layer.
type Config struct {
	Server ServerConfig  `yaml:"server" json:"server"`
	Signal signal.Config `yaml:"signal" json:"signal"`

	// Binance configures the LIVE destination. Leave it out to run
	// paper-only; routing a live intent then fails with a configuration
	// error instead of silently falling back.
	Binance *broker.BinanceConfig `yaml:"binance,omitempty" json:"binance,omitempty"`

	// DefaultRiskAmount is used when a request does not carry its own
	// risk budget.
	DefaultRiskAmount float64 `yaml:"default_risk_amount" json:"default_risk_amount" default:"1000" validate:"gt=0"`
}

// Default returns the configuration used when no file is given: paper-only,
// in-memory store, level-mode signals.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads a YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(raw)
}

// Parse decodes YAML configuration content.
func Parse(raw []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) finalize() error {
	if err := defaults.Set(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to apply config defaults", err)
	}

	c.applyEnv()

	if err := c.Signal.Validate(); err != nil {
		return err
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.Binance != nil {
		if err := c.Binance.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// applyEnv overlays credential environment variables. Setting either key
// creates the Binance section if the file omitted it.
func (c *Config) applyEnv() {
	apiKey := os.Getenv(EnvBinanceAPIKey)
	secretKey := os.Getenv(EnvBinanceSecretKey)

	if apiKey == "" && secretKey == "" {
		return
	}

	if c.Binance == nil {
		c.Binance = &broker.BinanceConfig{}
	}

	if apiKey != "" {
		c.Binance.APIKey = apiKey
	}

	if secretKey != "" {
		c.Binance.SecretKey = secretKey
	}
}
