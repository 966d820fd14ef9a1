package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/tradeforge-lab/tradeforge/internal/types"
)

// TrueRange computes the true range for every bar:
// max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close, so its true range is high-low.
func TrueRange(series types.BarSeries) []float64 {
	out := make([]float64, series.Len())

	for i := 0; i < series.Len(); i++ {
		bar := series.At(i)

		tr := bar.High - bar.Low
		if i > 0 {
			prevClose := series.At(i - 1).Close
			tr = math.Max(tr, math.Abs(bar.High-prevClose))
			tr = math.Max(tr, math.Abs(bar.Low-prevClose))
		}

		out[i] = tr
	}

	return out
}

// ATR computes the Average True Range with Wilder smoothing: the entry at
// index period-1 is the arithmetic mean of the first period true ranges,
// then ATR[t] = (ATR[t-1]*(period-1) + TR[t]) / period.
func ATR(series types.BarSeries, period int) Series {
	n := series.Len()
	out := newSeries(n)

	if period <= 0 || n < period {
		return out
	}

	tr := TrueRange(series)

	var seed float64
	for i := 0; i < period; i++ {
		seed += tr[i]
	}

	atr := seed / float64(period)
	out[period-1] = optional.Some(atr)

	for i := period; i < n; i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out[i] = optional.Some(atr)
	}

	return out
}

// NATR normalizes the ATR by the close, as a percentage, so volatility is
// comparable across price levels. Undefined while the ATR warms up.
func NATR(series types.BarSeries, period int) Series {
	atr := ATR(series, period)
	out := newSeries(series.Len())

	for i := range out {
		v, ok := atr.Float(i)
		if !ok {
			continue
		}

		out[i] = optional.Some(v / series.At(i).Close * 100)
	}

	return out
}
