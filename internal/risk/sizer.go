// Package risk converts an accepted trading action into a bounded order
// intent: stop-loss, take-profit, and a share quantity derived from a
// currency risk budget.
package risk

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
	"go.uber.org/zap"
)

const (
	// Multiples of ATR used for volatility-scaled exits.
	stopATRMultiple   = 2.0
	targetATRMultiple = 3.0

	// Fixed-percent exits used when no ATR is available at the trigger bar.
	fallbackStopPct   = 0.02
	fallbackTargetPct = 0.05
)

// intentNamespace seeds the deterministic intent IDs. Recomputing the
// pipeline on identical input yields the same ID, so downstream consumers
// can deduplicate replays.
var intentNamespace = uuid.MustParse("7a3cfa2e-8f1d-4c26-9b6a-54c1d0e8f3b1")

// Input is everything the sizer needs about one accepted action. StopLoss
// and TakeProfit are caller overrides; values <= 0 mean absent. ATR is the
// value at the triggering bar, None while still warming up.
type Input struct {
	Ticker      string
	Side        types.Side
	EntryPrice  float64
	RiskAmount  float64
	StopLoss    float64
	TakeProfit  float64
	ATR         optional.Option[float64]
	StrategyTag string
	Mode        types.TradingMode
	BarTime     time.Time
}

// Sizer is a pure computation: no I/O, no state between calls.
type Sizer struct {
	logger *logger.Logger
}

// NewSizer creates a sizer. The logger may be nil.
func NewSizer(log *logger.Logger) *Sizer {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Sizer{logger: log}
}

// Size computes the order intent for one accepted action.
//
// Stop precedence: a caller-supplied stop wins; otherwise the stop is
// entry -/+ 2*ATR when ATR is defined at the trigger bar, else the
// fixed-percent fallback (2% against the position). Take-profit follows the
// same ladder with 3*ATR and 5%. Quantity is floor(risk / |entry - stop|).
//
// A stop equal to the entry cannot bound risk: Size then returns a
// zero-quantity intent together with a degenerate-risk error so the caller
// can surface the rejection instead of dividing by zero.
func (s *Sizer) Size(in Input) (types.OrderIntent, error) {
	if in.EntryPrice <= 0 {
		return types.OrderIntent{}, errors.Newf(errors.ErrCodeInvalidEntryPrice, "entry price must be positive, got %f", in.EntryPrice)
	}
	if in.RiskAmount <= 0 {
		return types.OrderIntent{}, errors.Newf(errors.ErrCodeInvalidRiskBudget, "risk amount must be positive, got %f", in.RiskAmount)
	}
	if in.Side != types.SideBuy && in.Side != types.SideSell {
		return types.OrderIntent{}, errors.Newf(errors.ErrCodeInvalidParameter, "unknown side %q", in.Side)
	}

	stop, atrDriven := s.stopLoss(in)
	target := s.takeProfit(in, atrDriven)

	intent := types.OrderIntent{
		ID:          IntentID(in.Ticker, in.Side, in.BarTime),
		Ticker:      in.Ticker,
		Side:        in.Side,
		EntryPrice:  in.EntryPrice,
		StopLoss:    stop,
		TakeProfit:  target,
		RiskAmount:  in.RiskAmount,
		StrategyTag: in.StrategyTag,
		Mode:        in.Mode,
		BarTime:     in.BarTime,
	}

	perShare := math.Abs(in.EntryPrice - stop)
	if perShare == 0 {
		return intent, errors.Newf(errors.ErrCodeDegenerateRisk, "stop loss equals entry price %f, risk per share is zero", in.EntryPrice)
	}

	intent.Quantity = int64(math.Floor(in.RiskAmount / perShare))

	s.logger.Debug("order intent sized",
		zap.String("ticker", in.Ticker),
		zap.String("side", string(in.Side)),
		zap.Float64("stop_loss", stop),
		zap.Float64("take_profit", target),
		zap.Int64("quantity", intent.Quantity),
	)

	return intent, nil
}

// stopLoss resolves the stop price and reports whether it was ATR-derived.
func (s *Sizer) stopLoss(in Input) (float64, bool) {
	if in.StopLoss > 0 {
		return in.StopLoss, false
	}

	if atr, err := in.ATR.Take(); err == nil {
		if in.Side == types.SideBuy {
			return in.EntryPrice - stopATRMultiple*atr, true
		}

		return in.EntryPrice + stopATRMultiple*atr, true
	}

	if in.Side == types.SideBuy {
		return in.EntryPrice * (1 - fallbackStopPct), false
	}

	return in.EntryPrice * (1 + fallbackStopPct), false
}

// takeProfit resolves the target price. ATR drives the target only when it
// also drove the stop, so the exit pair stays on one scale.
func (s *Sizer) takeProfit(in Input, atrDriven bool) float64 {
	if in.TakeProfit > 0 {
		return in.TakeProfit
	}

	if atrDriven {
		atr := in.ATR.Unwrap()
		if in.Side == types.SideBuy {
			return in.EntryPrice + targetATRMultiple*atr
		}

		return in.EntryPrice - targetATRMultiple*atr
	}

	if in.Side == types.SideBuy {
		return in.EntryPrice * (1 + fallbackTargetPct)
	}

	return in.EntryPrice * (1 - fallbackTargetPct)
}

// IntentID derives the deterministic ID of the intent generated for one
// ticker, side and trigger bar.
func IntentID(ticker string, side types.Side, barTime time.Time) string {
	name := ticker + "|" + string(side) + "|" + barTime.UTC().Format(time.RFC3339)

	return uuid.NewSHA1(intentNamespace, []byte(name)).String()
}
