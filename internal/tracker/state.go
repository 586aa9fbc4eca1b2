package tracker

import "github.com/desertthunder/watchlist/internal/models"

// ListState is the derived UI state of a [ListController].
type ListState struct {
	Movies  []models.Movie
	Loading bool
	Adding  bool
	Error   string
}

// EventKind enumerates the events accepted by [Reduce].
type EventKind int

const (
	FetchStart EventKind = iota
	FetchSuccess
	FetchError
	AddStart
	AddSuccess
	AddEnd
)

func (k EventKind) String() string {
	switch k {
	case FetchStart:
		return "fetch_start"
	case FetchSuccess:
		return "fetch_success"
	case FetchError:
		return "fetch_error"
	case AddStart:
		return "add_start"
	case AddSuccess:
		return "add_success"
	case AddEnd:
		return "add_end"
	default:
		return "unknown"
	}
}

// Event is a state transition. Movies is read by [FetchSuccess], Message by [FetchError].
type Event struct {
	Kind    EventKind
	Movies  []models.Movie
	Message string
}

// Reduce applies e to s and returns the next state. Unknown events leave s unchanged.
func Reduce(s ListState, e Event) ListState {
	switch e.Kind {
	case FetchStart:
		s.Loading = true
		s.Error = ""
	case FetchSuccess:
		s.Loading = false
		s.Movies = e.Movies
	case FetchError:
		s.Loading = false
		s.Error = e.Message
	case AddStart:
		s.Adding = true
	case AddSuccess, AddEnd:
		s.Adding = false
	}
	return s
}
