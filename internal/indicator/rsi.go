package indicator

import "github.com/moznion/go-optional"

// RSI computes the Relative Strength Index of values using Wilder
// smoothing. The first defined entry is at index period: the first period
// price changes are averaged arithmetically, then each subsequent average
// follows avg[t] = (avg[t-1]*(period-1) + change[t]) / period.
// RSI is exactly 100 when the smoothed average loss is zero.
func RSI(values []float64, period int) Series {
	out := newSeries(len(values))
	if period <= 0 || len(values) < period+1 {
		return out
	}

	var avgGain, avgLoss float64

	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)

	out[period] = optional.Some(rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]

		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)

		out[i] = optional.Some(rsiValue(avgGain, avgLoss))
	}

	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}
