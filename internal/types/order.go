package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
)

// Side is the direction of an order intent.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// TradingMode selects the destination an order intent is routed to.
type TradingMode string

const (
	TradingModePaper TradingMode = "PAPER"
	TradingModeLive  TradingMode = "LIVE"
)

// ParseTradingMode maps the external request vocabulary ("Paper",
// "Production") onto a TradingMode. The mapping is case-insensitive.
func ParseTradingMode(s string) (TradingMode, error) {
	switch strings.ToLower(s) {
	case "paper":
		return TradingModePaper, nil
	case "production", "live":
		return TradingModeLive, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidTradingMode, "unknown trading mode %q", s)
	}
}

// ExecutionStatus is the local status of a routed order, mapped from the
// broker collaborator's status vocabulary.
type ExecutionStatus string

const (
	ExecutionStatusSubmitted ExecutionStatus = "SUBMITTED"
	ExecutionStatusFilled    ExecutionStatus = "FILLED"
	ExecutionStatusRejected  ExecutionStatus = "REJECTED"
	ExecutionStatusCancelled ExecutionStatus = "CANCELLED"
)

// Reason is a machine-readable rejection or annotation attached to a
// pipeline result or an order.
type Reason struct {
	Reason  string `yaml:"reason" json:"reason" csv:"reason" validate:"required"`
	Message string `yaml:"message" json:"message" csv:"message" validate:"required"`
}

const (
	ReasonNoActionableSignal string = "no_actionable_signal"
	ReasonDegenerateRisk     string = "degenerate_risk"
	ReasonModeNotConfigured  string = "mode_not_configured"
	ReasonStrategy           string = "strategy"
)

// OrderIntent is the core's final output: a fully specified, not yet
// submitted trade request. It is created once by the risk sizer and never
// mutated afterwards.
type OrderIntent struct {
	ID          string      `yaml:"id" json:"id" csv:"id" validate:"required"`
	Ticker      string      `yaml:"ticker" json:"ticker" csv:"ticker" validate:"required"`
	Side        Side        `yaml:"side" json:"side" csv:"side" validate:"required,oneof=BUY SELL"`
	EntryPrice  float64     `yaml:"entry_price" json:"entry_price" csv:"entry_price" validate:"required,gt=0"`
	StopLoss    float64     `yaml:"stop_loss" json:"stop_loss" csv:"stop_loss" validate:"required,gt=0"`
	TakeProfit  float64     `yaml:"take_profit" json:"take_profit" csv:"take_profit" validate:"required,gt=0"`
	Quantity    int64       `yaml:"quantity" json:"quantity" csv:"quantity" validate:"gte=0"`
	RiskAmount  float64     `yaml:"risk_amount" json:"risk_amount" csv:"risk_amount" validate:"required,gt=0"`
	StrategyTag string      `yaml:"strategy_tag" json:"strategy_tag" csv:"strategy_tag"`
	Mode        TradingMode `yaml:"mode" json:"mode" csv:"mode" validate:"required,oneof=PAPER LIVE"`
	// BarTime is the timestamp of the bar that triggered this intent.
	// Using the bar time instead of the wall clock keeps the pipeline
	// deterministic across recomputations.
	BarTime time.Time `yaml:"bar_time" json:"bar_time" csv:"bar_time"`
}

// Validate validates the OrderIntent struct.
func (o *OrderIntent) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid order intent", err)
	}

	return nil
}

// Execution records the outcome of handing an order intent to a broker.
type Execution struct {
	IntentID      string          `yaml:"intent_id" json:"intent_id" csv:"intent_id"`
	BrokerOrderID string          `yaml:"broker_order_id" json:"broker_order_id" csv:"broker_order_id"`
	Status        ExecutionStatus `yaml:"status" json:"status" csv:"status"`
	Quantity      int64           `yaml:"quantity" json:"quantity" csv:"quantity"`
	Broker        string          `yaml:"broker" json:"broker" csv:"broker"`
	Time          time.Time       `yaml:"time" json:"time" csv:"time"`
}
