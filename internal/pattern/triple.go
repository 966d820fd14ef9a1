package pattern

import "github.com/tradeforge-lab/tradeforge/internal/types"

// scoreMorningStar detects a long bear candle, a small body gapping below
// its close, and a bull candle closing above the first body's midpoint.
func scoreMorningStar(first, second, cur types.Bar) int {
	if !first.Bearish() || !cur.Bullish() {
		return 0
	}

	if first.Body() < 2*second.Body() {
		return 0
	}

	starHigh := second.Open
	if second.Close > starHigh {
		starHigh = second.Close
	}
	if starHigh >= first.Close {
		return 0
	}

	if cur.Close > bodyMidpoint(first) {
		return ScoreBull
	}

	return 0
}

// scoreEveningStar mirrors morning star at the top of an advance.
func scoreEveningStar(first, second, cur types.Bar) int {
	if !first.Bullish() || !cur.Bearish() {
		return 0
	}

	if first.Body() < 2*second.Body() {
		return 0
	}

	starLow := second.Open
	if second.Close < starLow {
		starLow = second.Close
	}
	if starLow <= first.Close {
		return 0
	}

	if cur.Close < bodyMidpoint(first) {
		return ScoreBear
	}

	return 0
}

// soldierStep checks one advancing candle of a three white soldiers run:
// bullish, opening inside the prior body, closing above the prior close,
// with a small upper shadow.
func soldierStep(prev, cur types.Bar) bool {
	return cur.Bullish() &&
		cur.Close > prev.Close &&
		cur.Open > prev.Open && cur.Open < prev.Close &&
		cur.UpperShadow() < cur.Body()
}

func scoreThreeWhiteSoldiers(first, second, cur types.Bar) int {
	if first.Bullish() && soldierStep(first, second) && soldierStep(second, cur) {
		return ScoreBull
	}

	return 0
}

// crowStep is the bearish mirror of soldierStep.
func crowStep(prev, cur types.Bar) bool {
	return cur.Bearish() &&
		cur.Close < prev.Close &&
		cur.Open < prev.Open && cur.Open > prev.Close &&
		cur.LowerShadow() < cur.Body()
}

func scoreThreeBlackCrows(first, second, cur types.Bar) int {
	if first.Bearish() && crowStep(first, second) && crowStep(second, cur) {
		return ScoreBear
	}

	return 0
}

// insideBody reports whether b's real body sits strictly inside a's body.
func insideBody(a, b types.Bar) bool {
	aHigh, aLow := a.Open, a.Close
	if a.Close > a.Open {
		aHigh, aLow = a.Close, a.Open
	}

	bHigh, bLow := b.Open, b.Close
	if b.Close > b.Open {
		bHigh, bLow = b.Close, b.Open
	}

	return bHigh < aHigh && bLow > aLow
}

// scoreThreeInside detects a harami followed by a confirming close beyond
// the harami candle.
func scoreThreeInside(first, second, cur types.Bar) int {
	if first.Bearish() && second.Bullish() && insideBody(first, second) &&
		cur.Bullish() && cur.Close > second.Close {
		return ScoreBull
	}

	if first.Bullish() && second.Bearish() && insideBody(first, second) &&
		cur.Bearish() && cur.Close < second.Close {
		return ScoreBear
	}

	return 0
}

// scoreThreeOutside detects an engulfing pair followed by a confirming
// close beyond the engulfing candle.
func scoreThreeOutside(first, second, cur types.Bar) int {
	switch scoreEngulfing(first, second) {
	case ScoreBull:
		if cur.Close > second.Close {
			return ScoreBull
		}
	case ScoreBear:
		if cur.Close < second.Close {
			return ScoreBear
		}
	}

	return 0
}
