package broker

import (
	"context"
	"strconv"

	"github.com/adshao/go-binance/v2"
	"github.com/go-playground/validator/v10"
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
	"go.uber.org/zap"
)

// Service interfaces abstracting the Binance API for testing.

// CreateOrderService is the slice of the Binance order-creation builder
// the broker uses.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side binance.SideType) CreateOrderService
	Type(orderType binance.OrderType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	Price(price string) CreateOrderService
	TimeInForce(tif binance.TimeInForceType) CreateOrderService
	Do(ctx context.Context) (*binance.CreateOrderResponse, error)
}

// GetOrderService is the slice of the Binance order-query builder the
// broker uses.
type GetOrderService interface {
	Symbol(symbol string) GetOrderService
	OrderID(orderID int64) GetOrderService
	Do(ctx context.Context) (*binance.Order, error)
}

// BinanceClient abstracts the Binance client for testing.
type BinanceClient interface {
	NewCreateOrderService() CreateOrderService
	NewGetOrderService() GetOrderService
}

type realBinanceClient struct {
	client *binance.Client
}

func (r *realBinanceClient) NewCreateOrderService() CreateOrderService {
	return &realCreateOrderService{service: r.client.NewCreateOrderService()}
}

func (r *realBinanceClient) NewGetOrderService() GetOrderService {
	return &realGetOrderService{service: r.client.NewGetOrderService()}
}

type realCreateOrderService struct {
	service *binance.CreateOrderService
}

func (s *realCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCreateOrderService) Side(side binance.SideType) CreateOrderService {
	s.service = s.service.Side(side)

	return s
}

func (s *realCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	s.service = s.service.Type(orderType)

	return s
}

func (s *realCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.service = s.service.Quantity(quantity)

	return s
}

func (s *realCreateOrderService) Price(price string) CreateOrderService {
	s.service = s.service.Price(price)

	return s
}

func (s *realCreateOrderService) TimeInForce(tif binance.TimeInForceType) CreateOrderService {
	s.service = s.service.TimeInForce(tif)

	return s
}

func (s *realCreateOrderService) Do(ctx context.Context) (*binance.CreateOrderResponse, error) {
	return s.service.Do(ctx)
}

type realGetOrderService struct {
	service *binance.GetOrderService
}

func (s *realGetOrderService) Symbol(symbol string) GetOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realGetOrderService) OrderID(orderID int64) GetOrderService {
	s.service = s.service.OrderID(orderID)

	return s
}

func (s *realGetOrderService) Do(ctx context.Context) (*binance.Order, error) {
	return s.service.Do(ctx)
}

// BinanceConfig contains the credentials of the live destination.
type BinanceConfig struct {
	APIKey    string `yaml:"api_key" json:"api_key" validate:"required"`
	SecretKey string `yaml:"secret_key" json:"secret_key" validate:"required"`
	// BaseURL overrides the API endpoint; it takes precedence over
	// UseTestnet.
	BaseURL    string `yaml:"base_url" json:"base_url"`
	UseTestnet bool   `yaml:"use_testnet" json:"use_testnet"`
}

// Validate validates the BinanceConfig struct.
func (c *BinanceConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid binance config", err)
	}

	return nil
}

// BinanceBroker submits order intents to Binance as GTC limit orders at
// the intent's entry price. It is stateless; order status is fetched from
// the API on demand.
type BinanceBroker struct {
	client BinanceClient
	logger *logger.Logger
}

// NewBinanceBroker connects a broker to Binance with the given
// credentials. The logger may be nil.
func NewBinanceBroker(config BinanceConfig, log *logger.Logger) (*BinanceBroker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.UseTestnet {
		binance.UseTestnet = true
	}

	client := binance.NewClient(config.APIKey, config.SecretKey)
	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BinanceBroker{
		client: &realBinanceClient{client: client},
		logger: log,
	}, nil
}

// newBinanceBrokerWithClient builds a broker around a mock client.
func newBinanceBrokerWithClient(client BinanceClient, log *logger.Logger) *BinanceBroker {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BinanceBroker{client: client, logger: log}
}

// Name implements Broker.
func (b *BinanceBroker) Name() string {
	return "binance"
}

// SubmitOrder implements Broker.
func (b *BinanceBroker) SubmitOrder(ctx context.Context, intent types.OrderIntent) (SubmitResult, error) {
	var side binance.SideType

	switch intent.Side {
	case types.SideBuy:
		side = binance.SideTypeBuy
	case types.SideSell:
		side = binance.SideTypeSell
	default:
		return SubmitResult{}, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported order side: %s", intent.Side)
	}

	if intent.Quantity <= 0 {
		return SubmitResult{}, errors.New(errors.ErrCodeInvalidParameter, "order quantity must be greater than zero")
	}

	resp, err := b.client.NewCreateOrderService().
		Symbol(intent.Ticker).
		Side(side).
		Type(binance.OrderTypeLimit).
		Quantity(strconv.FormatInt(intent.Quantity, 10)).
		Price(strconv.FormatFloat(intent.EntryPrice, 'f', -1, 64)).
		TimeInForce(binance.TimeInForceTypeGTC).
		Do(ctx)
	if err != nil {
		return SubmitResult{}, errors.Wrap(errors.ErrCodeOrderSubmitFailed, "failed to place order on Binance", err)
	}

	result := SubmitResult{
		BrokerOrderID: strconv.FormatInt(resp.OrderID, 10),
		Status:        binanceStatus(resp.Status),
	}

	b.logger.Info("order submitted to binance",
		zap.String("ticker", intent.Ticker),
		zap.String("broker_order_id", result.BrokerOrderID),
		zap.String("status", result.Status),
	)

	return result, nil
}

// OrderStatus implements Broker.
func (b *BinanceBroker) OrderStatus(ctx context.Context, ticker, brokerOrderID string) (string, error) {
	orderID, err := strconv.ParseInt(brokerOrderID, 10, 64)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeInvalidParameter, err, "malformed broker order id %q", brokerOrderID)
	}

	order, err := b.client.NewGetOrderService().
		Symbol(ticker).
		OrderID(orderID).
		Do(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeOrderSubmitFailed, "failed to query order on Binance", err)
	}

	return binanceStatus(order.Status), nil
}

// binanceStatus maps the Binance status vocabulary onto the broker one.
// A partially filled order is still pending, so it stays submitted until
// the fill completes. Unknown statuses map to submitted too: the order
// exists, its terminal state just is not known yet.
func binanceStatus(status binance.OrderStatusType) string {
	switch status {
	case binance.OrderStatusTypeNew, binance.OrderStatusTypePartiallyFilled:
		return StatusSubmitted
	case binance.OrderStatusTypeFilled:
		return StatusFilled
	case binance.OrderStatusTypeRejected, binance.OrderStatusTypeExpired:
		return StatusRejected
	case binance.OrderStatusTypeCanceled:
		return StatusCancelled
	default:
		return StatusSubmitted
	}
}
