// Package router selects the trading destination for an order intent and
// maps broker statuses onto the local execution-status enum. Deliberately
// thin: mode selection and status mapping are its only logic.
package router

import (
	"context"
	"time"

	"github.com/tradeforge-lab/tradeforge/internal/broker"
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
	"go.uber.org/zap"
)

// Router forwards order intents to the broker configured for their mode.
// Register all destinations before routing; the broker map is not guarded
// for concurrent mutation.
type Router struct {
	brokers map[types.TradingMode]broker.Broker
	logger  *logger.Logger
}

// NewRouter creates a router with no destinations. The logger may be nil.
func NewRouter(log *logger.Logger) *Router {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Router{
		brokers: make(map[types.TradingMode]broker.Broker),
		logger:  log,
	}
}

// Register attaches a broker as the destination for a trading mode,
// replacing any previous one.
func (r *Router) Register(mode types.TradingMode, b broker.Broker) {
	r.brokers[mode] = b
}

// Modes lists the trading modes with a configured destination.
func (r *Router) Modes() []types.TradingMode {
	modes := make([]types.TradingMode, 0, len(r.brokers))
	for mode := range r.brokers {
		modes = append(modes, mode)
	}

	return modes
}

// Route submits the intent to the broker configured for its mode. The
// intent is forwarded unchanged.
func (r *Router) Route(ctx context.Context, intent types.OrderIntent) (types.Execution, error) {
	b, ok := r.brokers[intent.Mode]
	if !ok {
		return types.Execution{}, errors.Newf(errors.ErrCodeModeNotConfigured, "no broker configured for mode %s", intent.Mode)
	}

	result, err := b.SubmitOrder(ctx, intent)
	if err != nil {
		return types.Execution{}, err
	}

	status, err := mapStatus(result.Status)
	if err != nil {
		return types.Execution{}, err
	}

	execution := types.Execution{
		IntentID:      intent.ID,
		BrokerOrderID: result.BrokerOrderID,
		Status:        status,
		Quantity:      intent.Quantity,
		Broker:        b.Name(),
		Time:          time.Now().UTC(),
	}

	r.logger.Info("order routed",
		zap.String("intent_id", intent.ID),
		zap.String("mode", string(intent.Mode)),
		zap.String("broker", execution.Broker),
		zap.String("status", string(execution.Status)),
	)

	return execution, nil
}

// OrderStatus queries the destination of the given mode for the current
// status of a routed order.
func (r *Router) OrderStatus(ctx context.Context, mode types.TradingMode, ticker, brokerOrderID string) (types.ExecutionStatus, error) {
	b, ok := r.brokers[mode]
	if !ok {
		return "", errors.Newf(errors.ErrCodeModeNotConfigured, "no broker configured for mode %s", mode)
	}

	status, err := b.OrderStatus(ctx, ticker, brokerOrderID)
	if err != nil {
		return "", err
	}

	return mapStatus(status)
}

// mapStatus translates the broker status vocabulary into the local enum.
func mapStatus(status string) (types.ExecutionStatus, error) {
	switch status {
	case broker.StatusSubmitted:
		return types.ExecutionStatusSubmitted, nil
	case broker.StatusFilled:
		return types.ExecutionStatusFilled, nil
	case broker.StatusRejected:
		return types.ExecutionStatusRejected, nil
	case broker.StatusCancelled:
		return types.ExecutionStatusCancelled, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnknownBrokerStatus, "unknown broker status %q", status)
	}
}
