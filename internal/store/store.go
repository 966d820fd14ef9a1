// Package store persists signal rows and order executions in DuckDB. Only
// the serving layer writes here; the analysis pipeline itself never
// touches storage.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/types"
	"github.com/tradeforge-lab/tradeforge/pkg/errors"
	"go.uber.org/zap"
)

// Store is a DuckDB-backed record of synthesized signals and routed
// executions. Safe for concurrent use.
type Store struct {
	db     *sql.DB
	sq     squirrel.StatementBuilderType
	mu     sync.Mutex
	logger *logger.Logger
}

// SignalRecord is one persisted signal row together with its ticker.
type SignalRecord struct {
	Ticker string          `json:"ticker"`
	Row    types.SignalRow `json:"row"`
}

// Performance summarizes what the store has seen for one ticker, or for
// every ticker when the filter is empty.
type Performance struct {
	TotalSignals    int     `json:"total_signals"`
	BuySignals      int     `json:"buy_signals"`
	SellSignals     int     `json:"sell_signals"`
	HoldSignals     int     `json:"hold_signals"`
	TotalExecutions int     `json:"total_executions"`
	FilledOrders    int     `json:"filled_orders"`
	RejectedOrders  int     `json:"rejected_orders"`
	FillRate        float64 `json:"fill_rate"`
}

// NewStore opens (or creates) a store at the given path. An empty path
// opens an in-memory database. The logger may be nil.
func NewStore(path string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreOpenFailed, "failed to create store directory", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreOpenFailed, "failed to open DuckDB", err)
	}

	s := &Store{
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		logger: log,
	}

	if err := s.createTables(); err != nil {
		db.Close()

		return nil, err
	}

	return s, nil
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS signals (
			id TEXT PRIMARY KEY,
			ticker TEXT,
			bar_time TIMESTAMP,
			trend_score INTEGER,
			momentum_score INTEGER,
			volume_score INTEGER,
			pattern_score INTEGER,
			combined_score DOUBLE,
			action TEXT,
			complete BOOLEAN
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreOpenFailed, "failed to create signals table", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS executions (
			intent_id TEXT PRIMARY KEY,
			broker_order_id TEXT,
			ticker TEXT,
			side TEXT,
			entry_price DOUBLE,
			stop_loss DOUBLE,
			take_profit DOUBLE,
			quantity BIGINT,
			risk_amount DOUBLE,
			strategy_tag TEXT,
			mode TEXT,
			status TEXT,
			broker TEXT,
			bar_time TIMESTAMP,
			executed_at TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreOpenFailed, "failed to create executions table", err)
	}

	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSignal upserts one signal row. Re-running the pipeline over the same
// series overwrites rather than duplicates, keyed by ticker and bar time.
func (s *Store) SaveSignal(ticker string, row types.SignalRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := ticker + "|" + row.Time.UTC().Format(time.RFC3339)

	query := s.sq.
		Insert("signals").
		Columns(
			"id", "ticker", "bar_time", "trend_score", "momentum_score",
			"volume_score", "pattern_score", "combined_score", "action", "complete",
		).
		Values(
			id, ticker, row.Time, row.TrendScore, row.MomentumScore,
			row.VolumeScore, row.PatternScore, row.CombinedScore, string(row.Action), row.Complete,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			trend_score = excluded.trend_score,
			momentum_score = excluded.momentum_score,
			volume_score = excluded.volume_score,
			pattern_score = excluded.pattern_score,
			combined_score = excluded.combined_score,
			action = excluded.action,
			complete = excluded.complete`).
		RunWith(s.db)

	if _, err := query.Exec(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to insert signal", err)
	}

	return nil
}

// SaveSignals persists a batch of rows for one ticker.
func (s *Store) SaveSignals(ticker string, rows []types.SignalRow) error {
	for _, row := range rows {
		if err := s.SaveSignal(ticker, row); err != nil {
			return err
		}
	}

	return nil
}

// SaveExecution records the routed outcome of one order intent.
func (s *Store) SaveExecution(intent types.OrderIntent, execution types.Execution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := s.sq.
		Insert("executions").
		Columns(
			"intent_id", "broker_order_id", "ticker", "side", "entry_price",
			"stop_loss", "take_profit", "quantity", "risk_amount", "strategy_tag",
			"mode", "status", "broker", "bar_time", "executed_at",
		).
		Values(
			intent.ID, execution.BrokerOrderID, intent.Ticker, string(intent.Side), intent.EntryPrice,
			intent.StopLoss, intent.TakeProfit, intent.Quantity, intent.RiskAmount, intent.StrategyTag,
			string(intent.Mode), string(execution.Status), execution.Broker, intent.BarTime, execution.Time,
		).
		Suffix(`ON CONFLICT (intent_id) DO UPDATE SET
			broker_order_id = excluded.broker_order_id,
			status = excluded.status,
			executed_at = excluded.executed_at`).
		RunWith(s.db)

	if _, err := query.Exec(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to insert execution", err)
	}

	s.logger.Debug("execution persisted",
		zap.String("intent_id", intent.ID),
		zap.String("status", string(execution.Status)),
	)

	return nil
}

// ListSignals returns persisted signals newest-first, optionally filtered
// by ticker. Offset and limit page through the result; a limit <= 0 means
// no limit.
func (s *Store) ListSignals(ticker string, limit, offset int) ([]SignalRecord, error) {
	query := s.sq.
		Select(
			"ticker", "bar_time", "trend_score", "momentum_score",
			"volume_score", "pattern_score", "combined_score", "action", "complete",
		).
		From("signals").
		OrderBy("bar_time DESC").
		RunWith(s.db)

	if ticker != "" {
		query = query.Where(squirrel.Eq{"ticker": ticker})
	}

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	if offset > 0 {
		query = query.Offset(uint64(offset))
	}

	rows, err := query.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to query signals", err)
	}
	defer rows.Close()

	records := make([]SignalRecord, 0)

	for rows.Next() {
		var record SignalRecord

		var action string

		err := rows.Scan(
			&record.Ticker,
			&record.Row.Time,
			&record.Row.TrendScore,
			&record.Row.MomentumScore,
			&record.Row.VolumeScore,
			&record.Row.PatternScore,
			&record.Row.CombinedScore,
			&action,
			&record.Row.Complete,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to scan signal", err)
		}

		record.Row.Action = types.Action(action)
		record.Row.Time = record.Row.Time.UTC()
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to iterate signals", err)
	}

	return records, nil
}

// Performance aggregates signal and execution counts, optionally filtered
// by ticker.
func (s *Store) Performance(ticker string) (Performance, error) {
	var perf Performance

	signalCounts := s.sq.
		Select(
			"count(*)",
			"count(*) FILTER (WHERE action = 'BUY')",
			"count(*) FILTER (WHERE action = 'SELL')",
			"count(*) FILTER (WHERE action = 'HOLD')",
		).
		From("signals").
		RunWith(s.db)

	executionCounts := s.sq.
		Select(
			"count(*)",
			"count(*) FILTER (WHERE status = 'FILLED')",
			"count(*) FILTER (WHERE status = 'REJECTED')",
		).
		From("executions").
		RunWith(s.db)

	if ticker != "" {
		signalCounts = signalCounts.Where(squirrel.Eq{"ticker": ticker})
		executionCounts = executionCounts.Where(squirrel.Eq{"ticker": ticker})
	}

	err := signalCounts.QueryRow().Scan(&perf.TotalSignals, &perf.BuySignals, &perf.SellSignals, &perf.HoldSignals)
	if err != nil {
		return Performance{}, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to aggregate signals", err)
	}

	err = executionCounts.QueryRow().Scan(&perf.TotalExecutions, &perf.FilledOrders, &perf.RejectedOrders)
	if err != nil {
		return Performance{}, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to aggregate executions", err)
	}

	if perf.TotalExecutions > 0 {
		perf.FillRate = float64(perf.FilledOrders) / float64(perf.TotalExecutions)
	}

	return perf, nil
}
