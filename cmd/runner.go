package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/repositories"
	"github.com/desertthunder/watchlist/internal/services"
	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/desertthunder/watchlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	configSet  bool // Config injected through [RunnerOpts]
	client     services.MovieClient
	activity   *repositories.ActivityRepository
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.ImportEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config // Read from --config in Before when nil
	ConfigPath string         // Default for --config
	Client     services.MovieClient              // Built from the resolved base URL when nil
	Activity   *repositories.ActivityRepository // Opened from Config.Database on first use when nil
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	configSet := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		configSet:  configSet,
		client:     opts.Client,
		activity:   opts.Activity,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	if r.client != nil {
		r.engine = tasks.NewImportEngine(r.client, r.logger)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, moviesCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads --config, then resolves the backend base URL and builds the movie client unless
// one was injected.
//
// Precedence: --base-url, then WATCHLIST_API_URL, then api.base_url, then the default.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.loadConfig(cmd)

	if level := r.config.Log.Level; level != "" {
		shared.SetLogLevel(r.logger, shared.ParseLogLevel(level))
	}
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if r.client != nil {
		return ctx, nil
	}

	baseURL := r.config.ResolveBaseURL(cmd.String("base-url"))
	client := r.httpClient
	if client == http.DefaultClient && r.config.API.Timeout > 0 {
		client = &http.Client{Timeout: r.config.API.Timeout}
	}

	r.logger.Debug("resolved backend", "base_url", baseURL)
	r.client = services.NewMovieService(services.MovieServiceOpts{
		BaseURL:    baseURL,
		HTTPClient: client,
		RateLimit:  r.config.API.RateLimit,
		Logger:     r.logger,
	})
	r.engine = tasks.NewImportEngine(r.client, r.logger)
	return ctx, nil
}

// loadConfig reads the file named by --config unless a config was injected and the flag is unset.
// A missing file keeps the defaults.
func (r *Runner) loadConfig(cmd *cli.Command) {
	if r.configSet && !cmd.IsSet("config") {
		return
	}
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	config, err := shared.LoadConfig(r.configPath)
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	case err != nil:
		r.logger.Warn("failed to load config, using defaults", "path", r.configPath, "error", err)
	default:
		r.config = config
	}
}

// After releases the journal database.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

// Close closes the journal database if this runner opened it.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.activity = nil
	return err
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	if r.client != nil {
		r.engine = tasks.NewImportEngine(r.client, l)
	}
}

// activityRepo opens the journal on first use.
func (r *Runner) activityRepo() (*repositories.ActivityRepository, error) {
	if r.activity != nil {
		return r.activity, nil
	}

	db, err := shared.OpenJournal(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity journal: %w", err)
	}
	r.db = db
	r.activity = repositories.NewActivityRepository(db)
	return r.activity, nil
}

// journal returns a journal adapter, or nil when the database cannot be opened.
// Operations never fail because the journal is unavailable.
func (r *Runner) journal() *repositories.JournalAdapter {
	repo, err := r.activityRepo()
	if err != nil {
		r.logger.Warn("activity journal disabled", "error", err)
		return nil
	}
	return repositories.NewJournalAdapter(repo)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// record writes an operation outcome to the journal when one is available.
func (r *Runner) record(op models.Operation, movie models.Movie, message string, opErr error) {
	j := r.journal()
	if j == nil {
		return
	}
	if err := j.Record(op, movie, message, opErr); err != nil {
		r.logger.Warn("failed to record activity", "operation", op, "error", err)
	}
}
