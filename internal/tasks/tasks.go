// package tasks implements bulk operations against the movie backend.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/watchlist/internal/formatter"
	"github.com/desertthunder/watchlist/internal/services"
	"github.com/desertthunder/watchlist/internal/shared"
)

// RowStatus is the outcome of one import row.
type RowStatus string

const (
	RowCreated RowStatus = "created"
	RowInvalid RowStatus = "invalid"
	RowSkipped RowStatus = "skipped"
	RowFailed  RowStatus = "failed"
	RowValid   RowStatus = "valid" // Dry runs only
)

// RowResult reports what happened to one CSV row.
type RowResult struct {
	Row     formatter.ImportRow
	Status  RowStatus
	Message string // Backend message on success
	Error   error  // Validation or request error
}

// ImportResult summarizes a bulk import. Rows are ordered by CSV line.
type ImportResult struct {
	TotalRows int
	Created   int
	Invalid   int
	Skipped   int
	Failed    int
	Rows      []RowResult
}

// ImportEngine creates movies in bulk through a [services.MovieClient].
type ImportEngine struct {
	client services.MovieClient
	logger *log.Logger
}

// NewImportEngine creates a new ImportEngine. A nil logger discards output.
func NewImportEngine(client services.MovieClient, logger *log.Logger) *ImportEngine {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &ImportEngine{client: client, logger: shared.WithLogger(logger, "task", "import")}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ImportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
