package tracker

import (
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
)

// FetchErrorMessage is shown whenever loading the collection fails, whatever the cause.
const FetchErrorMessage = "Failed to fetch movies."

// OpError tags a failed operation with its kind. ID is set for delete failures.
type OpError struct {
	Op  models.Operation
	ID  int64
	Err error
}

func (e *OpError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s movie %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Notice is the latest user-facing operation outcome.
type Notice struct {
	Message string
	Err     *OpError
}

// Failed reports whether the notice describes an error that can be retried.
func (n Notice) Failed() bool { return n.Err != nil }
