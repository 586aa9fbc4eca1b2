package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/tracker"
)

const (
	watchedBadge = "✅ Watched"
	toWatchBadge = "🎯 To Watch"
)

var _ list.Item = movieItem{}

// movieItem wraps a [tracker.ItemController] snapshot to implement [list.Item].
type movieItem struct {
	movie      models.Movie
	watched    bool
	inProgress bool
	deleting   bool
}

func newMovieItem(c *tracker.ItemController) movieItem {
	return movieItem{
		movie:      c.Movie(),
		watched:    c.Watched(),
		inProgress: c.InProgress(),
		deleting:   c.Deleting(),
	}
}

func (i movieItem) FilterValue() string { return i.movie.Name }
func (i movieItem) Title() string       { return i.movie.Name }
func (i movieItem) Description() string {
	desc := fmt.Sprintf("Release date: %s • %s", models.FormatDate(i.movie.ReleaseDate), coloredBadge(i.watched))
	if i.movie.CreatedAt != "" {
		desc += " • 📘 Added: " + models.FormatDate(i.movie.CreatedAt)
	}
	switch {
	case i.deleting:
		desc += " • " + styles.warn.Render("deleting...")
	case i.inProgress:
		desc += " • " + styles.warn.Render("updating...")
	}
	return desc
}

func badge(watched bool) string {
	if watched {
		return watchedBadge
	}
	return toWatchBadge
}

func coloredBadge(watched bool) string {
	if watched {
		return styles.As(watchedBadge, watchedColor)
	}
	return styles.As(toWatchBadge, toWatchColor)
}
