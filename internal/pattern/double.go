package pattern

import "github.com/tradeforge-lab/tradeforge/internal/types"

// scoreEngulfing detects a body fully engulfing the previous opposite body.
func scoreEngulfing(prev, cur types.Bar) int {
	if cur.Bullish() && prev.Bearish() &&
		cur.Open <= prev.Close && cur.Close >= prev.Open &&
		cur.Body() > prev.Body() {
		return ScoreBull
	}

	if cur.Bearish() && prev.Bullish() &&
		cur.Open >= prev.Close && cur.Close <= prev.Open &&
		cur.Body() > prev.Body() {
		return ScoreBear
	}

	return 0
}

// bodyMidpoint is the price midway through a candle's real body.
func bodyMidpoint(b types.Bar) float64 {
	return (b.Open + b.Close) / 2
}

// scoreDarkCloudCover detects a bear candle opening above the prior bull
// close and closing below the midpoint of its body without engulfing it.
func scoreDarkCloudCover(prev, cur types.Bar) int {
	if prev.Bullish() && cur.Bearish() &&
		cur.Open > prev.Close &&
		cur.Close < bodyMidpoint(prev) &&
		cur.Close > prev.Open {
		return ScoreBear
	}

	return 0
}

// scorePiercing mirrors dark cloud cover on the bullish side.
func scorePiercing(prev, cur types.Bar) int {
	if prev.Bearish() && cur.Bullish() &&
		cur.Open < prev.Close &&
		cur.Close > bodyMidpoint(prev) &&
		cur.Close < prev.Open {
		return ScoreBull
	}

	return 0
}

// scoreDojiStar detects a doji whose body gaps away from the prior candle's
// close in the direction of the prevailing move.
func scoreDojiStar(prev, cur types.Bar) int {
	if scoreDoji(cur) == 0 {
		return 0
	}

	bodyHigh := cur.Open
	bodyLow := cur.Close
	if cur.Close > cur.Open {
		bodyHigh, bodyLow = cur.Close, cur.Open
	}

	if prev.Bearish() && bodyHigh < prev.Close {
		return ScoreBull
	}

	if prev.Bullish() && bodyLow > prev.Close {
		return ScoreBear
	}

	return 0
}
