package tracker

import "github.com/desertthunder/watchlist/internal/models"

type fetchDoneMsg struct {
	seq      int
	movies   []models.Movie
	err      error
	afterAdd bool
}

type createDoneMsg struct {
	req  models.NewMovieRequest
	resp *models.MessageResponse
	err  error
}

type deleteDoneMsg struct {
	movie models.Movie
	resp  *models.MessageResponse
	err   error
}

// ToggleDoneMsg is delivered when an item's toggle delay elapses.
type ToggleDoneMsg struct {
	ID int64
}

// FormResetMsg is emitted after a successful add once the follow-up fetch has completed.
// Views holding their own input widgets should clear them when they receive it.
type FormResetMsg struct{}
