package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tradeforge-lab/tradeforge/internal/broker"
	"github.com/tradeforge-lab/tradeforge/internal/config"
	"github.com/tradeforge-lab/tradeforge/internal/engine"
	"github.com/tradeforge-lab/tradeforge/internal/router"
	"github.com/tradeforge-lab/tradeforge/internal/store"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
)

type ServerTestSuite struct {
	suite.Suite

	server *Server
	api    *httptest.Server
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.T().Setenv(config.EnvBinanceAPIKey, "")
	s.T().Setenv(config.EnvBinanceSecretKey, "")

	cfg, err := config.Default()
	s.Require().NoError(err)

	st, err := store.NewStore("", nil)
	s.Require().NoError(err)

	orders := router.NewRouter(nil)
	orders.Register(types.TradingModePaper, broker.NewSimBroker(nil))

	s.server = New(cfg, engine.NewPipeline(nil), orders, st, nil)
	s.api = httptest.NewServer(s.server.Handler())
}

func (s *ServerTestSuite) TearDownTest() {
	s.api.Close()
	s.NoError(s.server.Close())
}

func bars(n int, step float64) []types.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	out := make([]types.Bar, n)
	for i := range out {
		c := 100 + float64(i)*step
		out[i] = types.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 100,
		}
	}

	return out
}

func (s *ServerTestSuite) postWebhook(payload map[string]any) (*http.Response, map[string]any) {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	resp, err := http.Post(s.api.URL+"/webhook", "application/json", bytes.NewReader(body))
	s.Require().NoError(err)

	defer resp.Body.Close()

	var decoded map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))

	return resp, decoded
}

func (s *ServerTestSuite) get(path string) (*http.Response, map[string]any) {
	resp, err := http.Get(s.api.URL + path)
	s.Require().NoError(err)

	defer resp.Body.Close()

	var decoded map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))

	return resp, decoded
}

func (s *ServerTestSuite) TestWebhookBuySignalRoutesOrder() {
	resp, body := s.postWebhook(map[string]any{
		"ticker":       "AAPL",
		"risk_amount":  100,
		"trading_mode": "paper",
		"bars":         bars(40, 1),
	})

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("BUY", body["action"])
	s.NotNil(body["intent"])
	s.Nil(body["rejection"])

	execution, ok := body["execution"].(map[string]any)
	s.Require().True(ok)
	s.Equal("FILLED", execution["status"])
	s.Equal("sim", execution["broker"])

	_, perf := s.get("/api/performance?ticker=AAPL")
	s.InDelta(40, perf["total_signals"].(float64), 0.5)
	s.InDelta(1, perf["total_executions"].(float64), 0.5)
	s.InDelta(1.0, perf["fill_rate"].(float64), 1e-9)
}

func (s *ServerTestSuite) TestWebhookHoldIsRejectedGracefully() {
	resp, body := s.postWebhook(map[string]any{
		"ticker":       "AAPL",
		"trading_mode": "paper",
		"bars":         bars(40, 0),
	})

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("HOLD", body["action"])
	s.Nil(body["intent"])
	s.Nil(body["execution"])

	rejection, ok := body["rejection"].(map[string]any)
	s.Require().True(ok)
	s.Equal(types.ReasonNoActionableSignal, rejection["reason"])
}

func (s *ServerTestSuite) TestWebhookDefaultRiskAmount() {
	// Default risk budget is 1000; ATR of the rising fixture is 2, so the
	// stop sits 4 below the entry and the quantity is floor(1000/4).
	_, body := s.postWebhook(map[string]any{
		"ticker":       "AAPL",
		"trading_mode": "paper",
		"bars":         bars(40, 1),
	})

	intent, ok := body["intent"].(map[string]any)
	s.Require().True(ok)
	s.InDelta(250, intent["quantity"].(float64), 0.5)
}

func (s *ServerTestSuite) TestWebhookInvalidSeries() {
	resp, body := s.postWebhook(map[string]any{
		"ticker":       "AAPL",
		"trading_mode": "paper",
		"bars":         []types.Bar{},
	})

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.InDelta(float64(errors.ErrCodeEmptySeries), body["code"].(float64), 0.5)
}

func (s *ServerTestSuite) TestWebhookMalformedJSON() {
	resp, err := http.Post(s.api.URL+"/webhook", "application/json", bytes.NewReader([]byte("{")))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerTestSuite) TestWebhookUnconfiguredLiveMode() {
	resp, body := s.postWebhook(map[string]any{
		"ticker":       "AAPL",
		"risk_amount":  100,
		"trading_mode": "production",
		"bars":         bars(40, 1),
	})

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.InDelta(float64(errors.ErrCodeModeNotConfigured), body["code"].(float64), 0.5)
}

func (s *ServerTestSuite) TestListSignals() {
	s.postWebhook(map[string]any{
		"ticker":       "AAPL",
		"trading_mode": "paper",
		"bars":         bars(40, 1),
	})

	resp, body := s.get("/api/signals?ticker=AAPL&limit=5")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.InDelta(5, body["count"].(float64), 0.5)

	signals, ok := body["signals"].([]any)
	s.Require().True(ok)
	s.Require().Len(signals, 5)

	first, ok := signals[0].(map[string]any)
	s.Require().True(ok)
	s.Equal("AAPL", first["ticker"])
}

func (s *ServerTestSuite) TestHealth() {
	resp, body := s.get("/health")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", body["status"])

	modes, ok := body["modes"].([]any)
	s.Require().True(ok)
	s.Contains(modes, "PAPER")
}
