// Package signal combines indicator categories and candlestick pattern
// scores into one trading action per bar.
//
// Two modes are supported. Level mode classifies every bar by a weighted
// combined score. Edge mode only acts on the bar where a crossover
// happens, producing a sparse trigger list. Both read same-or-earlier-bar
// data only.
//
// Warm-up gaps never leak into scoring as zeros: a category whose inputs
// are still undefined at a bar is excluded from that bar's score, and the
// row is marked incomplete until every input is available.
package signal

import (
	"github.com/tradeforge-lab/tradeforge/internal/indicator"
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/pattern"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"go.uber.org/zap"
)

const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0

	// obvAveragePeriod is the lookback of the OBV baseline in the volume rule.
	obvAveragePeriod = 10
)

// Synthesizer turns aligned indicator and pattern sets into per-bar
// signal rows. Stateless across calls.
type Synthesizer struct {
	cfg    Config
	logger *logger.Logger
}

// NewSynthesizer validates the configuration and builds a synthesizer.
// The logger may be nil.
func NewSynthesizer(cfg Config, log *logger.Logger) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Synthesizer{cfg: cfg, logger: log}, nil
}

// Synthesize produces one signal row per bar.
func (s *Synthesizer) Synthesize(series types.BarSeries, ind *indicator.Set, patterns *pattern.Set) []types.SignalRow {
	n := series.Len()
	rows := make([]types.SignalRow, n)

	// The volume category compares OBV with its own trailing average,
	// which is not part of the engine catalog.
	obvSMA := indicator.SMAOverSeries(ind.OBV, obvAveragePeriod)

	for t := 0; t < n; t++ {
		row := types.SignalRow{
			Time:          series.At(t).Time,
			TrendScore:    trendScore(series, ind, t),
			MomentumScore: momentumScore(ind, t),
			VolumeScore:   volumeScore(ind, obvSMA, t),
			PatternScore:  patternScore(patterns, t),
			Complete:      complete(ind, obvSMA, t),
		}

		row.CombinedScore = s.cfg.TrendWeight*float64(row.TrendScore) +
			s.cfg.MomentumWeight*float64(row.MomentumScore) +
			s.cfg.VolumeWeight*float64(row.VolumeScore) +
			s.cfg.PatternWeight*float64(row.PatternScore)

		switch s.cfg.Mode {
		case ModeEdge:
			row.Action = s.edgeAction(ind, t)
		default:
			row.Action = s.levelAction(row.CombinedScore)
		}

		rows[t] = row
	}

	s.logger.Debug("signals synthesized",
		zap.Int("bars", n),
		zap.String("mode", string(s.cfg.Mode)),
	)

	return rows
}

// complete reports whether every scoring input is defined at bar t.
func complete(ind *indicator.Set, obvSMA indicator.Series, t int) bool {
	return ind.SMA10.Defined(t) && ind.SMA20.Defined(t) &&
		ind.RSI14.Defined(t) &&
		ind.MACD.Defined(t) && ind.MACDSignal.Defined(t) &&
		ind.OBV.Defined(t) && obvSMA.Defined(t)
}

// trendScore follows the short moving average: +1 when price rides above a
// rising alignment (SMA10 over SMA20, close over SMA10), -1 on the mirror.
func trendScore(series types.BarSeries, ind *indicator.Set, t int) int {
	sma10, ok10 := ind.SMA10.Float(t)
	sma20, ok20 := ind.SMA20.Float(t)
	if !ok10 || !ok20 {
		return 0
	}

	closePrice := series.At(t).Close

	switch {
	case sma10 > sma20 && closePrice > sma10:
		return 1
	case sma10 < sma20 && closePrice < sma10:
		return -1
	default:
		return 0
	}
}

// momentumScore is contrarian on RSI but requires MACD agreement: oversold
// plus a bullish MACD scores +1, overbought plus a bearish MACD scores -1.
func momentumScore(ind *indicator.Set, t int) int {
	rsi, okR := ind.RSI14.Float(t)
	macd, okM := ind.MACD.Float(t)
	macdSignal, okS := ind.MACDSignal.Float(t)
	if !okR || !okM || !okS {
		return 0
	}

	switch {
	case rsi < rsiOversold && macd > macdSignal:
		return 1
	case rsi > rsiOverbought && macd < macdSignal:
		return -1
	default:
		return 0
	}
}

func volumeScore(ind *indicator.Set, obvSMA indicator.Series, t int) int {
	obv, okO := ind.OBV.Float(t)
	avg, okA := obvSMA.Float(t)
	if !okO || !okA {
		return 0
	}

	switch {
	case obv > avg:
		return 1
	case obv < avg:
		return -1
	default:
		return 0
	}
}

// patternScore condenses the pattern catalog into one category vote. The
// bullish sum wins when a bar shows both bullish and bearish occurrences;
// the tie-break is deliberate and covered by tests.
func patternScore(patterns *pattern.Set, t int) int {
	bullish := patterns.Hammer[t] + patterns.MorningStar[t] + patterns.Engulfing[t]
	bearish := patterns.ShootingStar[t] + patterns.EveningStar[t] + patterns.DarkCloudCover[t]

	if bullish > 0 {
		return 1
	}
	if bearish < 0 {
		return -1
	}

	return 0
}

func (s *Synthesizer) levelAction(combined float64) types.Action {
	switch {
	case combined > s.cfg.BuyThreshold:
		return types.ActionBuy
	case combined < s.cfg.SellThreshold:
		return types.ActionSell
	default:
		return types.ActionHold
	}
}
