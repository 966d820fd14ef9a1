package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/tradeforge-lab/tradeforge/internal/types"
)

// OBV computes On-Balance Volume: a cumulative sum starting at volume[0],
// adding volume on up-closes, subtracting on down-closes and holding on
// unchanged closes. Defined for every bar.
func OBV(series types.BarSeries) Series {
	n := series.Len()
	out := newSeries(n)

	if n == 0 {
		return out
	}

	obv := series.At(0).Volume
	out[0] = optional.Some(obv)

	for i := 1; i < n; i++ {
		cur := series.At(i).Close
		prev := series.At(i - 1).Close

		switch {
		case cur > prev:
			obv += series.At(i).Volume
		case cur < prev:
			obv -= series.At(i).Volume
		}

		out[i] = optional.Some(obv)
	}

	return out
}

// VolumeROC computes the volume rate of change: ROC over the volume
// column. Undefined for the first period bars and wherever the reference
// volume is zero.
func VolumeROC(volumes []float64, period int) Series {
	return ROC(volumes, period)
}

// AD computes the Chaikin accumulation/distribution line: a cumulative sum
// of money-flow volume, where each bar's volume is weighed by where the
// close sits inside the bar's range. Zero-range bars contribute nothing.
// Defined for every bar.
func AD(series types.BarSeries) Series {
	n := series.Len()
	out := newSeries(n)

	var ad float64

	for i := 0; i < n; i++ {
		bar := series.At(i)
		if rng := bar.High - bar.Low; rng > 0 {
			ad += (2*bar.Close - bar.High - bar.Low) / rng * bar.Volume
		}

		out[i] = optional.Some(ad)
	}

	return out
}

// ADOSC is the Chaikin oscillator: the spread between a fast and a slow
// EMA of the accumulation/distribution line.
func ADOSC(series types.BarSeries, fast, slow int) Series {
	ad := AD(series)
	fastEMA := EMAOverSeries(ad, fast)
	slowEMA := EMAOverSeries(ad, slow)

	out := newSeries(series.Len())

	for i := range out {
		f, okFast := fastEMA.Float(i)
		s, okSlow := slowEMA.Float(i)

		if !okFast || !okSlow {
			continue
		}

		out[i] = optional.Some(f - s)
	}

	return out
}
