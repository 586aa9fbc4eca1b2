package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/desertthunder/watchlist/internal/tracker"
	"github.com/desertthunder/watchlist/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive watchlist.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.client == nil {
		return fmt.Errorf("%w: movie client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	delay := r.config.Tracker.ToggleDelay
	if d := cmd.Duration("toggle-delay"); d > 0 {
		delay = d
	}

	opts := tracker.ListOpts{
		Client:      r.client,
		Logger:      fileLogger,
		ToggleDelay: delay,
	}
	if j := r.journal(); j != nil {
		opts.Journal = j
	}

	controller := tracker.NewListController(ctx, opts)
	defer controller.Close()

	p := tea.NewProgram(ui.NewModel(controller), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive watchlist",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "toggle-delay",
				Usage: "Simulated latency of a watched toggle (default: tracker.toggle_delay)",
			},
		},
		Action: r.TUI,
	}
}
