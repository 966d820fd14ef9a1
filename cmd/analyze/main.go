package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/tradeforge-lab/tradeforge/internal/engine"
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/signal"
	"github.com/tradeforge-lab/tradeforge/internal/store"
	"github.com/tradeforge-lab/tradeforge/internal/version"
	"github.com/tradeforge-lab/tradeforge/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

// analyzeAction runs the full analysis pipeline over a CSV bar file and
// prints the signal list plus the sized order intent, if any.
func analyzeAction(_ context.Context, cmd *cli.Command) error {
	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	series, err := marketdata.LoadCSV(cmd.String("data"))
	if err != nil {
		return fmt.Errorf("failed to load bars: %w", err)
	}

	pipeline := engine.NewPipeline(appLogger)

	result, err := pipeline.Run(engine.Request{
		Ticker:      cmd.String("ticker"),
		RiskAmount:  cmd.Float("risk"),
		TradingMode: cmd.String("mode"),
		StrategyTag: cmd.String("strategy"),
		Signal: signal.Config{
			Mode: signal.Mode(cmd.String("signal-mode")),
		},
	}, series)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if storePath := cmd.String("store"); storePath != "" {
		st, err := store.NewStore(storePath, appLogger)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		if err := st.SaveSignals(result.Ticker, result.Rows); err != nil {
			return fmt.Errorf("failed to persist signals: %w", err)
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to print result: %w", err)
	}

	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "analyze",
		Usage:   "Run the signal pipeline over a CSV bar series",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ticker",
				Aliases:  []string{"t"},
				Usage:    "Ticker symbol of the series",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the CSV bar file (time,open,high,low,close,volume)",
				Required: true,
			},
			&cli.FloatFlag{
				Name:  "risk",
				Usage: "Risk budget in currency units",
				Value: 1000,
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Trading mode: paper or production",
				Value: "paper",
			},
			&cli.StringFlag{
				Name:  "signal-mode",
				Usage: "Signal mode: level (dense per-bar classification) or edge (discrete triggers)",
				Value: string(signal.ModeLevel),
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "Strategy tag attached to the order intent",
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "DuckDB file to persist the signal list into (optional)",
			},
		},
		Action: analyzeAction,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
