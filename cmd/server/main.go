package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tradeforge-lab/tradeforge/internal/config"
	"github.com/tradeforge-lab/tradeforge/internal/logger"
	"github.com/tradeforge-lab/tradeforge/internal/server"
	"github.com/tradeforge-lab/tradeforge/internal/version"
	"github.com/urfave/cli/v3"
)

// serveAction loads the configuration and runs the webhook API until the
// process is stopped.
func serveAction(_ context.Context, cmd *cli.Command) error {
	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	var cfg *config.Config
	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Default()
	}

	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if port := cmd.Int("port"); port != 0 {
		cfg.Server.Port = int(port)
	}

	srv, err := server.NewFromConfig(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	defer srv.Close()

	return srv.ListenAndServe()
}

func main() {
	cmd := &cli.Command{
		Name:    "server",
		Usage:   "Serve the signal webhook API",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured listen port",
			},
		},
		Action: serveAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
