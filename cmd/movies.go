package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/watchlist/internal/formatter"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/desertthunder/watchlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MoviesList prints the collection in backend order.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	if r.client == nil {
		return fmt.Errorf("%w: movie client not initialized", shared.ErrServiceUnavailable)
	}

	movies, err := r.client.List(ctx)
	r.record(models.OpFetch, models.Movie{}, fmt.Sprintf("%d movies", len(movies)), err)
	if err != nil {
		return fmt.Errorf("failed to fetch movies: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	if len(movies) == 0 {
		return r.writePlain("🎬 No movies to display.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Movies to Watch (%d)", len(movies)))
	for _, m := range movies {
		status := "🎯 To Watch"
		if m.IsWatched {
			status = "✅ Watched"
		}
		r.writePlain("%4d  %-40s  %-13s  %-12s  Added %s\n",
			m.ID, m.Name, models.FormatDate(m.ReleaseDate), status, models.FormatDate(m.CreatedAt))
	}
	return nil
}

// MoviesAdd creates a movie from --name and --date.
func (r *Runner) MoviesAdd(ctx context.Context, cmd *cli.Command) error {
	if r.client == nil {
		return fmt.Errorf("%w: movie client not initialized", shared.ErrServiceUnavailable)
	}

	req := models.NewMovie(cmd.String("name"), cmd.String("date"))
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	r.logger.Debug("adding movie", "name", req.Name, "release_date", req.ReleaseDate)

	movie := models.Movie{Name: req.Name, ReleaseDate: req.ReleaseDate}
	resp, err := r.client.Create(ctx, req)
	if err != nil {
		r.record(models.OpCreate, movie, "", err)
		return fmt.Errorf("failed to add movie: %w", err)
	}
	r.record(models.OpCreate, movie, resp.Message, nil)

	if cmd.Bool("json") {
		return r.writeJSON(resp, false)
	}
	return r.writePlain("✓ %s\n", messageOr(resp.Message, "Movie added"))
}

// MoviesDelete removes a movie by ID.
func (r *Runner) MoviesDelete(ctx context.Context, cmd *cli.Command) error {
	if r.client == nil {
		return fmt.Errorf("%w: movie client not initialized", shared.ErrServiceUnavailable)
	}

	raw := cmd.StringArg("id")
	if raw == "" {
		return fmt.Errorf("%w: movie ID", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: movie ID must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}

	movie := models.Movie{ID: id}
	resp, err := r.client.Delete(ctx, id)
	if err != nil {
		r.record(models.OpDelete, movie, "", err)
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}
	r.record(models.OpDelete, movie, resp.Message, nil)

	if cmd.Bool("json") {
		return r.writeJSON(resp, false)
	}
	return r.writePlain("✓ %s\n", messageOr(resp.Message, "Movie deleted"))
}

// MoviesExport renders the collection to stdout or --output.
func (r *Runner) MoviesExport(ctx context.Context, cmd *cli.Command) error {
	if r.client == nil {
		return fmt.Errorf("%w: movie client not initialized", shared.ErrServiceUnavailable)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	movies, err := r.client.List(ctx)
	r.record(models.OpFetch, models.Movie{}, fmt.Sprintf("%d movies", len(movies)), err)
	if err != nil {
		return fmt.Errorf("failed to fetch movies: %w", err)
	}

	output := cmd.String("output")
	if output == "" {
		data, err := formatter.Export(format, movies)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := formatter.WriteExport(format, movies, output); err != nil {
		return err
	}
	r.logger.Info("export complete", "format", format, "movies", len(movies), "path", output)
	return r.writePlain("✓ Exported %d movies to %s\n", len(movies), output)
}

// MoviesImport creates movies from a CSV file using a rate-limited worker pool.
func (r *Runner) MoviesImport(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: import engine not initialized", shared.ErrServiceUnavailable)
	}

	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: CSV file path", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := formatter.ReadCSV(f)
	if err != nil {
		return err
	}

	rateLimit := cmd.Float("rate-limit")
	if rateLimit <= 0 {
		rateLimit = r.config.API.RateLimit
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := r.engine.BulkImport(ctx, progress, rows, tasks.BulkImportOpts{
		NumWorkers:   int(cmd.Int("workers")),
		RateLimit:    rateLimit,
		SkipExisting: cmd.Bool("skip-existing"),
		DryRun:       cmd.Bool("dry-run"),
	})
	close(progress)
	<-done

	if result != nil {
		for _, row := range result.Rows {
			movie := models.Movie{Name: row.Row.Request.Name, ReleaseDate: row.Row.Request.ReleaseDate}
			switch row.Status {
			case tasks.RowCreated:
				r.record(models.OpCreate, movie, row.Message, nil)
			case tasks.RowFailed:
				r.record(models.OpCreate, movie, "", row.Error)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(importSummary(result), true)
	}

	r.writePlainHeader("Import Summary")
	r.writePlain("Rows:    %d\n", result.TotalRows)
	r.writePlain("Created: %d\n", result.Created)
	r.writePlain("Invalid: %d\n", result.Invalid)
	r.writePlain("Skipped: %d\n", result.Skipped)
	r.writePlain("Failed:  %d\n", result.Failed)

	for _, row := range result.Rows {
		switch row.Status {
		case tasks.RowInvalid, tasks.RowFailed:
			r.writePlain("  ✗ line %d (%s): %v\n", row.Row.Line, row.Row.Request.Name, row.Error)
		case tasks.RowSkipped:
			r.writePlain("  - line %d (%s): %s\n", row.Row.Line, row.Row.Request.Name, row.Message)
		}
	}
	return nil
}

type importRowJSON struct {
	Line        int    `json:"line"`
	Name        string `json:"movie_name"`
	ReleaseDate string `json:"release_date"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

func importSummary(result *tasks.ImportResult) map[string]any {
	rows := make([]importRowJSON, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = importRowJSON{
			Line:        row.Row.Line,
			Name:        row.Row.Request.Name,
			ReleaseDate: row.Row.Request.ReleaseDate,
			Status:      string(row.Status),
			Message:     row.Message,
		}
		if row.Error != nil {
			rows[i].Error = row.Error.Error()
		}
	}
	return map[string]any{
		"total":   result.TotalRows,
		"created": result.Created,
		"invalid": result.Invalid,
		"skipped": result.Skipped,
		"failed":  result.Failed,
		"rows":    rows,
	}
}

func messageOr(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}

// moviesCommand handles non-interactive watchlist operations
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "List, add, delete, export and import movies",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List movies",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MoviesList,
			},
			{
				Name:  "add",
				Usage: "Add a movie",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Movie name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "date",
						Aliases:  []string{"d"},
						Usage:    "Release date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesAdd,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a movie by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesDelete,
			},
			{
				Name:  "export",
				Usage: "Export movies as json, csv, markdown or txt",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				},
				Action: r.MoviesExport,
			},
			{
				Name:  "import",
				Usage: "Import movies from a CSV file with name and release date columns",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "file",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers",
						Value: 3,
					},
					&cli.FloatFlag{
						Name:  "rate-limit",
						Usage: "Requests per second (default: api.rate_limit)",
					},
					&cli.BoolFlag{
						Name:  "skip-existing",
						Usage: "Skip rows already in the watchlist",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Validate rows without creating movies",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesImport,
			},
		},
	}
}
