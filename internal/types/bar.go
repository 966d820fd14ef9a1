package types

import (
	"time"

	"github.com/tradeforge-lab/tradeforge/pkg/errors"
)

// Bar is a single OHLCV observation for a fixed time interval.
type Bar struct {
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Open   float64   `yaml:"open" json:"open" csv:"open"`
	High   float64   `yaml:"high" json:"high" csv:"high"`
	Low    float64   `yaml:"low" json:"low" csv:"low"`
	Close  float64   `yaml:"close" json:"close" csv:"close"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// Validate checks the OHLCV invariants of a single bar:
// all prices positive, volume non-negative, and
// low <= min(open, close) <= max(open, close) <= high.
func (b Bar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return errors.Newf(errors.ErrCodeBarInvariant, "non-positive price in bar at %s", b.Time.Format(time.RFC3339))
	}

	if b.Volume < 0 {
		return errors.Newf(errors.ErrCodeBarInvariant, "negative volume in bar at %s", b.Time.Format(time.RFC3339))
	}

	lo := min(b.Open, b.Close)
	hi := max(b.Open, b.Close)

	if b.Low > lo || hi > b.High {
		return errors.Newf(errors.ErrCodeBarInvariant, "OHLC ordering violated in bar at %s", b.Time.Format(time.RFC3339))
	}

	return nil
}

// Body returns the absolute size of the candle body.
func (b Bar) Body() float64 {
	if b.Close >= b.Open {
		return b.Close - b.Open
	}

	return b.Open - b.Close
}

// Range returns the high-low range of the bar.
func (b Bar) Range() float64 {
	return b.High - b.Low
}

// UpperShadow returns the distance between the high and the top of the body.
func (b Bar) UpperShadow() float64 {
	return b.High - max(b.Open, b.Close)
}

// LowerShadow returns the distance between the bottom of the body and the low.
func (b Bar) LowerShadow() float64 {
	return min(b.Open, b.Close) - b.Low
}

// Bullish reports whether the bar closed above its open.
func (b Bar) Bullish() bool {
	return b.Close > b.Open
}

// Bearish reports whether the bar closed below its open.
func (b Bar) Bearish() bool {
	return b.Close < b.Open
}

// BarSeries is an immutable, validated, strictly time-ordered sequence of bars.
// Construct it with NewBarSeries; the zero value is an empty series.
type BarSeries struct {
	bars []Bar
}

// NewBarSeries validates the given bars and returns an immutable series.
// It fails fast with a data error if the series is empty, any bar violates
// the OHLCV invariants, or the timestamps are not strictly increasing.
func NewBarSeries(bars []Bar) (BarSeries, error) {
	if len(bars) == 0 {
		return BarSeries{}, errors.New(errors.ErrCodeEmptySeries, "bar series must contain at least one bar")
	}

	for i, bar := range bars {
		if err := bar.Validate(); err != nil {
			return BarSeries{}, errors.Wrapf(errors.ErrCodeBarInvariant, err, "bar %d is invalid", i)
		}

		if i > 0 && !bars[i-1].Time.Before(bar.Time) {
			return BarSeries{}, errors.Newf(errors.ErrCodeTimestampOrder,
				"timestamps must be strictly increasing: bar %d (%s) does not follow bar %d (%s)",
				i, bar.Time.Format(time.RFC3339), i-1, bars[i-1].Time.Format(time.RFC3339))
		}
	}

	// Copy so later mutation of the caller's slice cannot leak into the series.
	owned := make([]Bar, len(bars))
	copy(owned, bars)

	return BarSeries{bars: owned}, nil
}

// Len returns the number of bars in the series.
func (s BarSeries) Len() int {
	return len(s.bars)
}

// At returns the bar at index i. Panics if i is out of range, like a slice.
func (s BarSeries) At(i int) Bar {
	return s.bars[i]
}

// Last returns the most recent bar in the series.
func (s BarSeries) Last() Bar {
	return s.bars[len(s.bars)-1]
}

// Closes returns a copy of the close prices, index-aligned with the series.
func (s BarSeries) Closes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Close
	}

	return out
}

// Volumes returns a copy of the volumes, index-aligned with the series.
func (s BarSeries) Volumes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Volume
	}

	return out
}
