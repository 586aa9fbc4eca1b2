// Package tracker holds the state machines behind the watchlist.
//
// A [ListController] owns the movie collection and the add form. It issues fetch, create and
// delete requests through a [services.MovieClient] and folds their results into a [ListState]
// with the pure [Reduce] function. One [ItemController] per movie, keyed by movie ID, owns the
// local watched flag and the simulated toggle delay.
//
// Every operation returns a [tea.Cmd] that performs the I/O off the Update loop; the resulting
// message must be handed back to [ListController.Update]. All state mutation therefore happens on
// a single goroutine, the same way a bubbletea program applies messages.
package tracker
