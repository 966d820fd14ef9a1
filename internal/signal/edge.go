package signal

import (
	"github.com/tradeforge-lab/tradeforge/internal/indicator"
	"github.com/tradeforge-lab/tradeforge/internal/types"
)

// crossedAbove reports whether a crossed above b at bar t: above at t,
// at-or-below at t-1. False when either series is undefined at t or t-1,
// so warm-up boundaries can never look like crossovers.
func crossedAbove(a, b indicator.Series, t int) bool {
	at, okA := a.Float(t)
	bt, okB := b.Float(t)
	ap, okAP := a.Float(t - 1)
	bp, okBP := b.Float(t - 1)

	return okA && okB && okAP && okBP && at > bt && ap <= bp
}

// crossedUpThrough reports whether s crossed up through the given level at
// bar t.
func crossedUpThrough(s indicator.Series, level float64, t int) bool {
	cur, okC := s.Float(t)
	prev, okP := s.Float(t - 1)

	return okC && okP && cur > level && prev <= level
}

// crossedDownThrough mirrors crossedUpThrough.
func crossedDownThrough(s indicator.Series, level float64, t int) bool {
	cur, okC := s.Float(t)
	prev, okP := s.Float(t - 1)

	return okC && okP && cur < level && prev >= level
}

// edgeAction evaluates the discrete trigger rules at bar t. A BUY fires on
// the bar where SMA10 crosses above SMA20, or where RSI14 crosses up
// through the oversold level while MACD is bullish; SELL mirrors both. Bars
// before MinBars never trigger.
func (s *Synthesizer) edgeAction(ind *indicator.Set, t int) types.Action {
	if t < s.cfg.MinBars {
		return types.ActionHold
	}

	macd, okM := ind.MACD.Float(t)
	macdSignal, okS := ind.MACDSignal.Float(t)
	if !okM || !okS {
		return types.ActionHold
	}

	macdBullish := macd > macdSignal
	macdBearish := macd < macdSignal

	if crossedAbove(ind.SMA10, ind.SMA20, t) ||
		(crossedUpThrough(ind.RSI14, rsiOversold, t) && macdBullish) {
		return types.ActionBuy
	}

	if crossedAbove(ind.SMA20, ind.SMA10, t) ||
		(crossedDownThrough(ind.RSI14, rsiOverbought, t) && macdBearish) {
		return types.ActionSell
	}

	return types.ActionHold
}
