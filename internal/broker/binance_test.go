package broker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/suite"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	pkgerrors "github.com/tradeforge-lab/tradeforge/pkg/errors"
)

// Mock implementations for testing

type mockBinanceClient struct {
	createOrderService *mockCreateOrderService
	getOrderService    *mockGetOrderService
}

func newMockBinanceClient() *mockBinanceClient {
	return &mockBinanceClient{
		createOrderService: &mockCreateOrderService{},
		getOrderService:    &mockGetOrderService{},
	}
}

func (m *mockBinanceClient) NewCreateOrderService() CreateOrderService {
	return m.createOrderService
}

func (m *mockBinanceClient) NewGetOrderService() GetOrderService {
	return m.getOrderService
}

type mockCreateOrderService struct {
	response *binance.CreateOrderResponse
	err      error
	symbol   string
	side     binance.SideType
	orderTyp binance.OrderType
	quantity string
	price    string
	tif      binance.TimeInForceType
}

func (m *mockCreateOrderService) Symbol(symbol string) CreateOrderService {
	m.symbol = symbol
	return m
}

func (m *mockCreateOrderService) Side(side binance.SideType) CreateOrderService {
	m.side = side
	return m
}

func (m *mockCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	m.orderTyp = orderType
	return m
}

func (m *mockCreateOrderService) Quantity(quantity string) CreateOrderService {
	m.quantity = quantity
	return m
}

func (m *mockCreateOrderService) Price(price string) CreateOrderService {
	m.price = price
	return m
}

func (m *mockCreateOrderService) TimeInForce(tif binance.TimeInForceType) CreateOrderService {
	m.tif = tif
	return m
}

func (m *mockCreateOrderService) Do(_ context.Context) (*binance.CreateOrderResponse, error) {
	return m.response, m.err
}

type mockGetOrderService struct {
	order   *binance.Order
	err     error
	symbol  string
	orderID int64
}

func (m *mockGetOrderService) Symbol(symbol string) GetOrderService {
	m.symbol = symbol
	return m
}

func (m *mockGetOrderService) OrderID(orderID int64) GetOrderService {
	m.orderID = orderID
	return m
}

func (m *mockGetOrderService) Do(_ context.Context) (*binance.Order, error) {
	return m.order, m.err
}

type BinanceBrokerTestSuite struct {
	suite.Suite

	client *mockBinanceClient
	broker *BinanceBroker
}

func TestBinanceBrokerTestSuite(t *testing.T) {
	suite.Run(t, new(BinanceBrokerTestSuite))
}

func (s *BinanceBrokerTestSuite) SetupTest() {
	s.client = newMockBinanceClient()
	s.broker = newBinanceBrokerWithClient(s.client, nil)
}

func (s *BinanceBrokerTestSuite) intent() types.OrderIntent {
	return types.OrderIntent{
		ID:         "intent-1",
		Ticker:     "BTCUSDT",
		Side:       types.SideBuy,
		EntryPrice: 50000.5,
		StopLoss:   49000,
		TakeProfit: 53000,
		Quantity:   2,
		RiskAmount: 2000,
		Mode:       types.TradingModeLive,
		BarTime:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *BinanceBrokerTestSuite) TestSubmitOrderPlacesLimitOrder() {
	s.client.createOrderService.response = &binance.CreateOrderResponse{
		OrderID: 12345,
		Status:  binance.OrderStatusTypeNew,
	}

	result, err := s.broker.SubmitOrder(context.Background(), s.intent())

	s.Require().NoError(err)
	s.Equal("12345", result.BrokerOrderID)
	s.Equal(StatusSubmitted, result.Status)

	s.Equal("BTCUSDT", s.client.createOrderService.symbol)
	s.Equal(binance.SideTypeBuy, s.client.createOrderService.side)
	s.Equal(binance.OrderTypeLimit, s.client.createOrderService.orderTyp)
	s.Equal("2", s.client.createOrderService.quantity)
	s.Equal("50000.5", s.client.createOrderService.price)
	s.Equal(binance.TimeInForceTypeGTC, s.client.createOrderService.tif)
}

func (s *BinanceBrokerTestSuite) TestSubmitOrderRejectsZeroQuantity() {
	intent := s.intent()
	intent.Quantity = 0

	_, err := s.broker.SubmitOrder(context.Background(), intent)

	s.Require().Error(err)
	s.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeInvalidParameter))
}

func (s *BinanceBrokerTestSuite) TestSubmitOrderWrapsAPIError() {
	s.client.createOrderService.err = errors.New("insufficient balance")

	_, err := s.broker.SubmitOrder(context.Background(), s.intent())

	s.Require().Error(err)
	s.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeOrderSubmitFailed))
}

func (s *BinanceBrokerTestSuite) TestOrderStatusMapping() {
	cases := []struct {
		binance binance.OrderStatusType
		want    string
	}{
		{binance.OrderStatusTypeNew, StatusSubmitted},
		{binance.OrderStatusTypePartiallyFilled, StatusSubmitted},
		{binance.OrderStatusTypeFilled, StatusFilled},
		{binance.OrderStatusTypeRejected, StatusRejected},
		{binance.OrderStatusTypeExpired, StatusRejected},
		{binance.OrderStatusTypeCanceled, StatusCancelled},
	}

	for _, tc := range cases {
		s.client.getOrderService.order = &binance.Order{Status: tc.binance}

		status, err := s.broker.OrderStatus(context.Background(), "BTCUSDT", "42")

		s.Require().NoError(err)
		s.Equal(tc.want, status, string(tc.binance))
	}

	s.Equal(int64(42), s.client.getOrderService.orderID)
	s.Equal("BTCUSDT", s.client.getOrderService.symbol)
}

func (s *BinanceBrokerTestSuite) TestOrderStatusMalformedID() {
	_, err := s.broker.OrderStatus(context.Background(), "BTCUSDT", "not-a-number")

	s.Require().Error(err)
	s.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeInvalidParameter))
}

func (s *BinanceBrokerTestSuite) TestConfigValidation() {
	cfg := BinanceConfig{APIKey: "k"}
	s.Error(cfg.Validate())

	cfg.SecretKey = "s"
	s.NoError(cfg.Validate())
}
