package indicator

import "github.com/moznion/go-optional"

// EMA computes the exponential moving average of values.
// The first defined entry, at index period-1, is seeded with the simple
// average of the first period values; from there the streaming recurrence
// EMA[t] = value[t]*k + EMA[t-1]*(1-k) with k = 2/(period+1) applies.
func EMA(values []float64, period int) Series {
	return emaFrom(fromValues(values), period)
}

// EMAOverSeries computes the EMA over a partially-defined series. The seed
// window starts at the input's first defined index, so the output becomes
// defined period-1 entries later. Used for the MACD signal line, which is
// an EMA over the MACD series itself.
func EMAOverSeries(src Series, period int) Series {
	return emaFrom(src, period)
}

func emaFrom(src Series, period int) Series {
	out := newSeries(len(src))

	first := src.FirstDefined()
	if first < 0 || period <= 0 || len(src)-first < period {
		return out
	}

	k := 2.0 / float64(period+1)

	var seed float64

	for i := first; i < first+period; i++ {
		v, ok := src.Float(i)
		if !ok {
			return out
		}

		seed += v
	}

	ema := seed / float64(period)
	out[first+period-1] = optional.Some(ema)

	for i := first + period; i < len(src); i++ {
		v, ok := src.Float(i)
		if !ok {
			return out
		}

		// Update form of value*k + ema*(1-k). Exact when value == ema, so
		// a constant input (or the signal line of a linear ramp) stays
		// bit-equal to it instead of drifting by rounding noise.
		ema += k * (v - ema)
		out[i] = optional.Some(ema)
	}

	return out
}
