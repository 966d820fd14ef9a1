package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/tradeforge-lab/tradeforge/internal/types"
)

// WilliamsR computes Williams %R over the trailing period:
// -100*(highestHigh-close)/(highestHigh-lowestLow), ranging from -100
// (close at the low) to 0 (close at the high). A zero trailing range pins
// the value at -50, matching the stochastic convention.
func WilliamsR(series types.BarSeries, period int) Series {
	n := series.Len()
	out := newSeries(n)

	if period <= 0 || n < period {
		return out
	}

	for i := period - 1; i < n; i++ {
		lowest := series.At(i - period + 1).Low
		highest := series.At(i - period + 1).High

		for j := i - period + 2; j <= i; j++ {
			bar := series.At(j)
			if bar.Low < lowest {
				lowest = bar.Low
			}

			if bar.High > highest {
				highest = bar.High
			}
		}

		if highest == lowest {
			out[i] = optional.Some(-50.0)
			continue
		}

		out[i] = optional.Some(-100 * (highest - series.At(i).Close) / (highest - lowest))
	}

	return out
}

// CCI computes the Commodity Channel Index: the typical price's distance
// from its window SMA, scaled by 0.015 times the window's mean absolute
// deviation. A flat window (zero deviation) yields 0.
func CCI(series types.BarSeries, period int) Series {
	n := series.Len()
	out := newSeries(n)

	if period <= 0 || n < period {
		return out
	}

	tp := make([]float64, n)
	for i := 0; i < n; i++ {
		bar := series.At(i)
		tp[i] = (bar.High + bar.Low + bar.Close) / 3
	}

	for i := period - 1; i < n; i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			sum += tp[j]
		}

		mean := sum / float64(period)

		var dev float64
		for j := i - period + 1; j <= i; j++ {
			dev += math.Abs(tp[j] - mean)
		}

		dev /= float64(period)

		if dev == 0 {
			out[i] = optional.Some(0.0)
			continue
		}

		out[i] = optional.Some((tp[i] - mean) / (0.015 * dev))
	}

	return out
}

// ROC computes the rate of change as a percentage:
// (value[t] - value[t-period]) / value[t-period] * 100.
// Undefined for the first period entries and wherever the reference value
// is zero.
func ROC(values []float64, period int) Series {
	out := newSeries(len(values))
	if period <= 0 {
		return out
	}

	for i := period; i < len(values); i++ {
		base := values[i-period]
		if base == 0 {
			continue
		}

		out[i] = optional.Some((values[i] - base) / base * 100)
	}

	return out
}
