package broker

import (
	"context"
	"fmt"
	"sync"

	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
	"go.uber.org/zap"
)

// SimBroker is an in-memory paper broker. Every valid order fills
// immediately at its entry price; order IDs are a plain counter so runs
// are reproducible. Safe for concurrent use.
type SimBroker struct {
	mu     sync.Mutex
	next   int64
	orders map[string]types.OrderIntent
	status map[string]string
	logger *logger.Logger
}

// NewSimBroker creates an empty paper broker. The logger may be nil.
func NewSimBroker(log *logger.Logger) *SimBroker {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &SimBroker{
		orders: make(map[string]types.OrderIntent),
		status: make(map[string]string),
		logger: log,
	}
}

// Name implements Broker.
func (b *SimBroker) Name() string {
	return "sim"
}

// SubmitOrder implements Broker. Zero-quantity intents are rejected, not
// errored: the rejection is a normal broker outcome.
func (b *SimBroker) SubmitOrder(_ context.Context, intent types.OrderIntent) (SubmitResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := fmt.Sprintf("sim-%d", b.next)
	b.orders[id] = intent

	status := StatusFilled
	if intent.Quantity <= 0 {
		status = StatusRejected
	}
	b.status[id] = status

	b.logger.Debug("paper order recorded",
		zap.String("broker_order_id", id),
		zap.String("ticker", intent.Ticker),
		zap.Int64("quantity", intent.Quantity),
		zap.String("status", status),
	)

	return SubmitResult{BrokerOrderID: id, Status: status}, nil
}

// OrderStatus implements Broker.
func (b *SimBroker) OrderStatus(_ context.Context, _, brokerOrderID string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	status, ok := b.status[brokerOrderID]
	if !ok {
		return "", errors.Newf(errors.ErrCodeDataNotFound, "unknown order id %q", brokerOrderID)
	}

	return status, nil
}

// Orders returns a copy of every submitted intent keyed by broker order
// ID, for assertions and reporting.
func (b *SimBroker) Orders() map[string]types.OrderIntent {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]types.OrderIntent, len(b.orders))
	for id, intent := range b.orders {
		out[id] = intent
	}

	return out
}
