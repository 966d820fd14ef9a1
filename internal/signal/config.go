package signal

import (
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
)

// Mode selects how the synthesizer turns scores into actions.
type Mode string

const (
	// ModeLevel classifies every bar by its weighted combined score. Dense:
	// a bar holds BUY for as long as the score stays above the threshold.
	ModeLevel Mode = "level"

	// ModeEdge emits discrete entry/exit events only on the bar where a
	// crossover actually happens. Sparse: suited to trade-trigger lists.
	ModeEdge Mode = "edge"
)

// Config controls signal synthesis. Zero values are filled with the
// defaults below, so the zero Config is usable as-is.
type Config struct {
	Mode Mode `yaml:"mode" json:"mode" default:"level" validate:"oneof=level edge"`

	// Category weights for the combined score. They sum to 1 so the
	// combined score stays within [-1, 1].
	TrendWeight    float64 `yaml:"trend_weight" json:"trend_weight" default:"0.4" validate:"gte=0,lte=1"`
	MomentumWeight float64 `yaml:"momentum_weight" json:"momentum_weight" default:"0.3" validate:"gte=0,lte=1"`
	VolumeWeight   float64 `yaml:"volume_weight" json:"volume_weight" default:"0.2" validate:"gte=0,lte=1"`
	PatternWeight  float64 `yaml:"pattern_weight" json:"pattern_weight" default:"0.1" validate:"gte=0,lte=1"`

	// BuyThreshold and SellThreshold bound the HOLD band: BUY strictly
	// above, SELL strictly below.
	BuyThreshold  float64 `yaml:"buy_threshold" json:"buy_threshold" default:"0.5" validate:"gt=0"`
	SellThreshold float64 `yaml:"sell_threshold" json:"sell_threshold" default:"-0.5" validate:"lt=0"`

	// MinBars is the first bar index eligible for edge-mode triggering.
	// The default clears the slowest required input, the MACD signal line.
	MinBars int `yaml:"min_bars" json:"min_bars" default:"34" validate:"gte=2"`
}

// Validate fills defaults and checks the configuration.
func (c *Config) Validate() error {
	if err := defaults.Set(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to apply signal config defaults", err)
	}

	if c.Mode != ModeLevel && c.Mode != ModeEdge {
		return errors.Newf(errors.ErrCodeUnknownSignalMode, "unknown signal mode: %s", c.Mode)
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid signal config", err)
	}

	return nil
}
