// Package engine wires the analysis stages into one synchronous pipeline:
// bar series in, signal rows and at most one order intent out. A pipeline
// run is pure and stateless; nothing is retained between invocations, so
// runs for different tickers can proceed concurrently.
package engine

import (
	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/tradeforge-lab/tradeforge/internal/indicator"
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/pattern"
	"github.com/tradeforge-lab/tradeforge/internal/risk"
	"github.com/tradeforge-lab/tradeforge/internal/signal"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
	"go.uber.org/zap"
)

// Request describes one analysis invocation. EntryPrice, StopLoss and
// TakeProfit are caller overrides; values <= 0 mean absent, in which case
// the entry defaults to the last close and the exits are derived from ATR.
type Request struct {
	Ticker      string  `yaml:"ticker" json:"ticker" validate:"required"`
	RiskAmount  float64 `yaml:"risk_amount" json:"risk_amount" validate:"required,gt=0"`
	TradingMode string  `yaml:"trading_mode" json:"trading_mode" validate:"required"`
	EntryPrice  float64 `yaml:"entry_price" json:"entry_price"`
	StopLoss    float64 `yaml:"stop_loss" json:"stop_loss"`
	TakeProfit  float64 `yaml:"take_profit" json:"take_profit"`
	StrategyTag string  `yaml:"strategy_tag" json:"strategy_tag"`

	Signal signal.Config `yaml:"signal" json:"signal"`
}

// Validate validates the Request struct. Signal defaults are filled first
// so a zero Signal config passes the nested struct validation.
func (r *Request) Validate() error {
	if err := r.Signal.Validate(); err != nil {
		return err
	}

	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid analysis request", err)
	}

	return nil
}

// Result bundles everything one pipeline run produced. Exactly one of
// Intent and Rejection is present.
type Result struct {
	Ticker    string                             `yaml:"ticker" json:"ticker"`
	Rows      []types.SignalRow                  `yaml:"rows" json:"rows"`
	Intent    optional.Option[types.OrderIntent] `yaml:"intent" json:"intent"`
	Rejection optional.Option[types.Reason]      `yaml:"rejection" json:"rejection"`
}

// Pipeline composes the indicator engine, pattern detector, signal
// synthesizer and risk sizer. Construct once, run many times.
type Pipeline struct {
	indicators *indicator.Engine
	patterns   *pattern.Detector
	sizer      *risk.Sizer
	logger     *logger.Logger
}

// NewPipeline creates a pipeline. The logger may be nil.
func NewPipeline(log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Pipeline{
		indicators: indicator.NewEngine(log),
		patterns:   pattern.NewDetector(log),
		sizer:      risk.NewSizer(log),
		logger:     log,
	}
}

// Run analyzes the series and, when the latest bar carries an actionable
// signal, sizes an order intent for it. Rejections (nothing to trade, or a
// degenerate stop) are reported in the result, not as errors; errors are
// reserved for invalid requests.
func (p *Pipeline) Run(req Request, series types.BarSeries) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	if series.Len() == 0 {
		return Result{}, errors.New(errors.ErrCodeEmptySeries, "bar series is empty")
	}

	mode, err := types.ParseTradingMode(req.TradingMode)
	if err != nil {
		return Result{}, err
	}

	synthesizer, err := signal.NewSynthesizer(req.Signal, p.logger)
	if err != nil {
		return Result{}, err
	}

	ind := p.indicators.Compute(series)
	patterns := p.patterns.Detect(series)
	rows := synthesizer.Synthesize(series, ind, patterns)

	result := Result{Ticker: req.Ticker, Rows: rows}

	last := rows[len(rows)-1]

	var side types.Side

	switch last.Action {
	case types.ActionBuy:
		side = types.SideBuy
	case types.ActionSell:
		side = types.SideSell
	default:
		result.Rejection = optional.Some(types.Reason{
			Reason:  types.ReasonNoActionableSignal,
			Message: "latest bar is HOLD",
		})

		return result, nil
	}

	lastBar := series.Last()

	entry := req.EntryPrice
	if entry <= 0 {
		entry = lastBar.Close
	}

	intent, err := p.sizer.Size(risk.Input{
		Ticker:      req.Ticker,
		Side:        side,
		EntryPrice:  entry,
		RiskAmount:  req.RiskAmount,
		StopLoss:    req.StopLoss,
		TakeProfit:  req.TakeProfit,
		ATR:         ind.ATR14[series.Len()-1],
		StrategyTag: req.StrategyTag,
		Mode:        mode,
		BarTime:     lastBar.Time,
	})
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeDegenerateRisk) {
			result.Rejection = optional.Some(types.Reason{
				Reason:  types.ReasonDegenerateRisk,
				Message: err.Error(),
			})

			return result, nil
		}

		return Result{}, err
	}

	result.Intent = optional.Some(intent)

	p.logger.Info("pipeline produced order intent",
		zap.String("ticker", req.Ticker),
		zap.String("side", string(side)),
		zap.Int64("quantity", intent.Quantity),
	)

	return result, nil
}
