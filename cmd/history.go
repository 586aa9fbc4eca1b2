package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// History prints recorded operation outcomes, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.activityRepo()
	if err != nil {
		return err
	}

	if cmd.Bool("clear") {
		n, err := repo.Clear()
		if err != nil {
			return err
		}
		return r.writePlain("✓ Cleared %d entries\n", n)
	}

	criteria := map[string]any{"limit": int(cmd.Int("limit"))}
	if op := cmd.String("operation"); op != "" {
		if !models.Operation(op).Valid() {
			return fmt.Errorf("%w: unknown operation %q", shared.ErrInvalidFlag, op)
		}
		criteria["operation"] = op
	}
	if cmd.Bool("failed") {
		criteria["outcome"] = string(models.OutcomeFailed)
	}

	entries, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list activity: %w", err)
	}

	if cmd.Bool("json") {
		if entries == nil {
			entries = []*models.Activity{}
		}
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		return r.writePlain("No activity recorded.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Activity (%d)", len(entries)))
	for _, a := range entries {
		mark := "✓"
		if a.Outcome() == models.OutcomeFailed {
			mark = "✗"
		}

		subject := a.MovieName()
		if subject == "" && a.MovieID() != 0 {
			subject = fmt.Sprintf("#%d", a.MovieID())
		}

		r.writePlain("%s %s  %-7s %-30s %s\n",
			mark, a.CreatedAt().Local().Format("2006-01-02 15:04:05"), a.Operation(), subject, a.Message())
	}
	return nil
}

// historyCommand shows the local activity journal
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recorded fetch, create, delete and toggle outcomes",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of entries",
				Value:   20,
			},
			&cli.StringFlag{
				Name:  "operation",
				Usage: "Filter by operation: fetch, create, delete, toggle",
			},
			&cli.BoolFlag{
				Name:  "failed",
				Usage: "Only show failures",
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Delete all entries",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.History,
	}
}
