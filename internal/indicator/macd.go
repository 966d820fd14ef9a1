package indicator

import "github.com/moznion/go-optional"

// MACDResult holds the three aligned series of a MACD calculation.
type MACDResult struct {
	// MACD is EMA(fast) - EMA(slow), defined once both EMAs are.
	MACD Series
	// Signal is an EMA of the MACD line, defined signalPeriod-1 entries
	// after the MACD line.
	Signal Series
	// Histogram is MACD - Signal.
	Histogram Series
}

// MACD computes the Moving Average Convergence Divergence of values with
// the given fast, slow and signal periods (12, 26, 9 in the classic setup).
func MACD(values []float64, fastPeriod, slowPeriod, signalPeriod int) MACDResult {
	result := MACDResult{
		MACD:      newSeries(len(values)),
		Signal:    newSeries(len(values)),
		Histogram: newSeries(len(values)),
	}

	fast := EMA(values, fastPeriod)
	slow := EMA(values, slowPeriod)

	for i := range values {
		f, okFast := fast.Float(i)
		s, okSlow := slow.Float(i)

		if okFast && okSlow {
			result.MACD[i] = optional.Some(f - s)
		}
	}

	result.Signal = EMAOverSeries(result.MACD, signalPeriod)

	for i := range values {
		m, okM := result.MACD.Float(i)
		s, okS := result.Signal.Float(i)

		if okM && okS {
			result.Histogram[i] = optional.Some(m - s)
		}
	}

	return result
}
