// Package broker defines the order-submission boundary and its
// implementations: a deterministic in-memory broker for paper trading and
// a Binance-backed broker for live trading.
package broker

import (
	"context"

	"github.com/tradeforge-lab/tradeforge/internal/types"
)

// Broker status vocabulary as reported by the collaborator. The order
// router maps these onto the local execution-status enum.
const (
	StatusSubmitted = "submitted"
	StatusFilled    = "filled"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// SubmitResult is the broker's acknowledgement of an order submission.
type SubmitResult struct {
	BrokerOrderID string
	Status        string
}

// Broker is the external order-submission collaborator. Implementations
// own their own latency, timeout and retry policy; callers must serialize
// or rate-limit submissions per destination.
type Broker interface {
	// Name identifies the broker in execution records.
	Name() string

	// SubmitOrder hands one order intent to the broker.
	SubmitOrder(ctx context.Context, intent types.OrderIntent) (SubmitResult, error)

	// OrderStatus reports the current status of a previously submitted
	// order, in the broker status vocabulary above.
	OrderStatus(ctx context.Context, ticker, brokerOrderID string) (string, error)
}
