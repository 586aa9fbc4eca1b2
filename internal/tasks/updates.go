package tasks

import (
	"fmt"

	"github.com/desertthunder/watchlist/internal/formatter"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ValidateRows Phase = iota
	FetchExisting
	CreateMovies
)

func (p Phase) String() string {
	switch p {
	case ValidateRows:
		return "validate_rows"
	case FetchExisting:
		return "fetch_existing"
	case CreateMovies:
		return "create_movies"
	default:
		return ""
	}
}

func validateUpdate(total, invalid int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateRows,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Validated %d rows (%d invalid)", total, invalid),
	}
}

func fetchExistingUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchExisting,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d existing movies", count),
	}
}

func createStartedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateMovies,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Creating %d movies...", total),
	}
}

func createCompletedUpdate(step, total int, row formatter.ImportRow) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, row.Request.Name),
		Data:    row,
	}
}

func createFailedUpdate(step, total int, row formatter.ImportRow, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, row.Request.Name, err),
		Data:    row,
	}
}
