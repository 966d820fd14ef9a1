package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/tradeforge-lab/tradeforge/internal/types"
)

// StochasticResult holds the slow %K and %D series of a stochastic
// oscillator calculation.
type StochasticResult struct {
	// K is the slow %K: the raw %K smoothed by a slowing-period SMA.
	K Series
	// D is the %D: an SMA of the slow %K.
	D Series
}

// Stochastic computes the slow stochastic oscillator (14, 3, 3 in the
// classic setup). Raw %K = 100*(close-lowestLow)/(highestHigh-lowestLow)
// over the trailing kPeriod bars; when the trailing range is zero, %K is
// pinned at 50 so the series stays defined.
func Stochastic(series types.BarSeries, kPeriod, slowing, dPeriod int) StochasticResult {
	n := series.Len()
	fastK := newSeries(n)

	if kPeriod <= 0 || n < kPeriod {
		return StochasticResult{K: newSeries(n), D: newSeries(n)}
	}

	for i := kPeriod - 1; i < n; i++ {
		lowest := series.At(i - kPeriod + 1).Low
		highest := series.At(i - kPeriod + 1).High

		for j := i - kPeriod + 2; j <= i; j++ {
			bar := series.At(j)
			if bar.Low < lowest {
				lowest = bar.Low
			}

			if bar.High > highest {
				highest = bar.High
			}
		}

		if highest == lowest {
			fastK[i] = optional.Some(50.0)
			continue
		}

		fastK[i] = optional.Some(100 * (series.At(i).Close - lowest) / (highest - lowest))
	}

	slowK := SMAOverSeries(fastK, slowing)

	return StochasticResult{
		K: slowK,
		D: SMAOverSeries(slowK, dPeriod),
	}
}
