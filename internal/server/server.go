// Package server exposes the analysis pipeline over HTTP: a webhook that
// runs the full pipeline on a posted bar series, plus read endpoints over
// the persisted signals and executions.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/tradeforge-lab/tradeforge/internal/broker"
	"github.com/tradeforge-lab/tradeforge/internal/config"
	"github.com/tradeforge-lab/tradeforge/internal/engine"
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/router"
	"github.com/tradeforge-lab/tradeforge/internal/store"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
	"go.uber.org/zap"
)

// Server wires the pipeline, order router and store behind an HTTP API.
type Server struct {
	cfg      *config.Config
	pipeline *engine.Pipeline
	orders   *router.Router
	store    *store.Store
	logger   *logger.Logger
}

// New assembles a server from explicit collaborators, mainly for tests.
func New(cfg *config.Config, pipeline *engine.Pipeline, orders *router.Router, st *store.Store, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Server{
		cfg:      cfg,
		pipeline: pipeline,
		orders:   orders,
		store:    st,
		logger:   log,
	}
}

// NewFromConfig builds the full serving stack: in-memory or file-backed
// store, a paper broker, and a Binance live broker when credentials are
// configured.
func NewFromConfig(cfg *config.Config, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	st, err := store.NewStore(cfg.Server.StorePath, log)
	if err != nil {
		return nil, err
	}

	orders := router.NewRouter(log)
	orders.Register(types.TradingModePaper, broker.NewSimBroker(log))

	if cfg.Binance != nil {
		live, err := broker.NewBinanceBroker(*cfg.Binance, log)
		if err != nil {
			st.Close()

			return nil, err
		}

		orders.Register(types.TradingModeLive, live)
	}

	return New(cfg, engine.NewPipeline(log), orders, st, log), nil
}

// Handler returns the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/webhook", s.handleWebhook).Methods("POST")
	r.HandleFunc("/api/signals", s.handleListSignals).Methods("GET")
	r.HandleFunc("/api/performance", s.handlePerformance).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	return r
}

// ListenAndServe blocks serving the API on the configured address.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info("server listening", zap.String("addr", addr))

	return http.ListenAndServe(addr, s.Handler())
}

// Close releases the server's store.
func (s *Server) Close() error {
	return s.store.Close()
}

// webhookRequest is the externally-posted analysis trigger. Bars carry the
// OHLCV history; the rest mirrors the pipeline request.
type webhookRequest struct {
	Ticker      string      `json:"ticker"`
	RiskAmount  float64     `json:"risk_amount"`
	TradingMode string      `json:"trading_mode"`
	EntryPrice  float64     `json:"entry_price"`
	StopLoss    float64     `json:"stop_loss"`
	TakeProfit  float64     `json:"take_profit"`
	StrategyTag string      `json:"strategy"`
	Bars        []types.Bar `json:"bars"`
}

// webhookResponse reports one pipeline run and, when an intent was routed,
// its execution.
type webhookResponse struct {
	Ticker    string             `json:"ticker"`
	Action    types.Action       `json:"action"`
	Intent    *types.OrderIntent `json:"intent,omitempty"`
	Rejection *types.Reason      `json:"rejection,omitempty"`
	Execution *types.Execution   `json:"execution,omitempty"`
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, "malformed webhook payload", err))

		return
	}

	series, err := types.NewBarSeries(req.Bars)
	if err != nil {
		s.writeError(w, err)

		return
	}

	riskAmount := req.RiskAmount
	if riskAmount <= 0 {
		riskAmount = s.cfg.DefaultRiskAmount
	}

	result, err := s.pipeline.Run(engine.Request{
		Ticker:      req.Ticker,
		RiskAmount:  riskAmount,
		TradingMode: req.TradingMode,
		EntryPrice:  req.EntryPrice,
		StopLoss:    req.StopLoss,
		TakeProfit:  req.TakeProfit,
		StrategyTag: req.StrategyTag,
		Signal:      s.cfg.Signal,
	}, series)
	if err != nil {
		s.writeError(w, err)

		return
	}

	if err := s.store.SaveSignals(req.Ticker, result.Rows); err != nil {
		s.writeError(w, err)

		return
	}

	resp := webhookResponse{
		Ticker: result.Ticker,
		Action: result.Rows[len(result.Rows)-1].Action,
	}

	if rejection, err := result.Rejection.Take(); err == nil {
		resp.Rejection = &rejection
	}

	if intent, err := result.Intent.Take(); err == nil {
		resp.Intent = &intent

		execution, err := s.orders.Route(r.Context(), intent)
		if err != nil {
			s.writeError(w, err)

			return
		}

		if err := s.store.SaveExecution(intent, execution); err != nil {
			s.writeError(w, err)

			return
		}

		resp.Execution = &execution
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSignals(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	records, err := s.store.ListSignals(r.URL.Query().Get("ticker"), limit, offset)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"signals": records,
		"count":   len(records),
	})
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := s.store.Performance(r.URL.Query().Get("ticker"))
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, perf)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	modes := make([]string, 0)
	for _, mode := range s.orders.Modes() {
		modes = append(modes, string(mode))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"modes":  modes,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps the error-code taxonomy onto HTTP statuses: caller
// mistakes are 4xx, everything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch code := errors.GetCode(err); {
	case code >= 100 && code < 300:
		status = http.StatusBadRequest
	case code == errors.ErrCodeModeNotConfigured:
		status = http.StatusBadRequest
	case code == errors.ErrCodeInvalidTradingMode || code == errors.ErrCodeUnknownSignalMode:
		status = http.StatusBadRequest
	}

	s.logger.Warn("request failed", zap.Error(err))

	s.writeJSON(w, status, map[string]any{
		"error": err.Error(),
		"code":  int(errors.GetCode(err)),
	})
}
