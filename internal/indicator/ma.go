package indicator

import "github.com/moznion/go-optional"

// SMA computes the simple moving average of values over a trailing window.
// The result is undefined for the first period-1 entries.
func SMA(values []float64, period int) Series {
	out := newSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			out[i] = optional.Some(sum / float64(period))
		}
	}

	return out
}

// SMAOverSeries computes the simple moving average over a partially-defined
// series: the window slides over the defined suffix, so the result becomes
// defined period-1 entries after the input does.
func SMAOverSeries(src Series, period int) Series {
	out := newSeries(len(src))

	first := src.FirstDefined()
	if first < 0 || period <= 0 || len(src)-first < period {
		return out
	}

	var sum float64

	for i := first; i < len(src); i++ {
		v, ok := src.Float(i)
		if !ok {
			// A gap after the first defined value means the input violates
			// the warm-up-prefix shape; stay undefined from here on.
			return out
		}

		sum += v
		if i-first >= period {
			prev, _ := src.Float(i - period)
			sum -= prev
		}

		if i-first >= period-1 {
			out[i] = optional.Some(sum / float64(period))
		}
	}

	return out
}
