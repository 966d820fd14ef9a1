package pattern

import "github.com/tradeforge-lab/tradeforge/internal/types"

// scoreDoji flags candles whose body is at most a tenth of the full range.
// Direction-neutral, so an occurrence always scores bullish magnitude.
func scoreDoji(cur types.Bar) int {
	rng := cur.Range()
	if rng <= 0 {
		return 0
	}

	if cur.Body() <= dojiBodyRatio*rng {
		return ScoreBull
	}

	return 0
}

// hammerShape reports a candle with a long lower shadow, a short upper
// shadow, and a real body. Context decides whether the shape is a hammer
// (after a down bar) or a hanging man (after an up bar).
func hammerShape(cur types.Bar) bool {
	body := cur.Body()
	if body <= 0 {
		return false
	}

	return cur.LowerShadow() >= 2*body && cur.UpperShadow() <= body
}

// invertedHammerShape mirrors hammerShape: long upper shadow, short lower.
func invertedHammerShape(cur types.Bar) bool {
	body := cur.Body()
	if body <= 0 {
		return false
	}

	return cur.UpperShadow() >= 2*body && cur.LowerShadow() <= body
}

func scoreHammer(prev, cur types.Bar) int {
	if hammerShape(cur) && prev.Bearish() {
		return ScoreBull
	}

	return 0
}

func scoreHangingMan(prev, cur types.Bar) int {
	if hammerShape(cur) && prev.Bullish() {
		return ScoreBear
	}

	return 0
}

func scoreShootingStar(prev, cur types.Bar) int {
	if invertedHammerShape(cur) && prev.Bullish() {
		return ScoreBear
	}

	return 0
}

func scoreInvertedHammer(prev, cur types.Bar) int {
	if invertedHammerShape(cur) && prev.Bearish() {
		return ScoreBull
	}

	return 0
}
