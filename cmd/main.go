package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env", "error", err)
	}

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := newApp(runner)
	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the command tree around r.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "watchlist",
		Usage:   "Track movies to watch from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   r.configPath,
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Backend origin (default: api.base_url or http://localhost:8080)",
				Sources: cli.EnvVars(shared.EnvAPIURL),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.Before,
		After:    r.After,
		Commands: r.register(),
	}
}
