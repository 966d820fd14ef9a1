package indicator

import (
	"math"

	"github.com/moznion/go-optional"
)

// BollingerBands holds the four aligned series of a Bollinger Bands
// calculation: middle band, upper band, lower band and band width.
type BollingerBands struct {
	Middle Series
	Upper  Series
	Lower  Series
	// Width is (upper-lower)/middle*100, the band width as a percentage of
	// the middle band.
	Width Series
}

// Bollinger computes Bollinger Bands over values with the given trailing
// period and standard deviation multiplier. The standard deviation is the
// population variant. All four series are undefined for the first
// period-1 entries.
func Bollinger(values []float64, period int, stdDevs float64) BollingerBands {
	bands := BollingerBands{
		Middle: newSeries(len(values)),
		Upper:  newSeries(len(values)),
		Lower:  newSeries(len(values)),
		Width:  newSeries(len(values)),
	}

	if period <= 0 || len(values) < period {
		return bands
	}

	middle := SMA(values, period)

	for i := period - 1; i < len(values); i++ {
		mean, _ := middle.Float(i)

		var variance float64
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}

		variance /= float64(period)
		sd := math.Sqrt(variance)

		upper := mean + stdDevs*sd
		lower := mean - stdDevs*sd

		bands.Middle[i] = optional.Some(mean)
		bands.Upper[i] = optional.Some(upper)
		bands.Lower[i] = optional.Some(lower)

		if mean != 0 {
			bands.Width[i] = optional.Some((upper - lower) / mean * 100)
		}
	}

	return bands
}
