package tracker

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/models"
)

func TestItemController(t *testing.T) {
	movie := models.Movie{ID: 7, Name: "Heat", ReleaseDate: "1995-12-15"}

	t.Run("Seeds Watched From Movie", func(t *testing.T) {
		item := NewItemController(context.Background(), models.Movie{ID: 1, IsWatched: true}, ItemOpts{})
		if !item.Watched() {
			t.Error("expected watched to be seeded from movie")
		}
		if item.delay != DefaultToggleDelay {
			t.Errorf("expected default delay, got %v", item.delay)
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		var gotID int64
		var gotWatched bool
		calls := 0

		item := NewItemController(context.Background(), movie, ItemOpts{
			Delay: 5 * time.Millisecond,
			OnToggle: func(id int64, watched bool) {
				calls++
				gotID, gotWatched = id, watched
			},
		})

		cmd := item.Toggle()
		if cmd == nil {
			t.Fatal("expected a command")
		}
		if !item.InProgress() {
			t.Error("expected in progress during delay")
		}
		if item.Watched() {
			t.Error("expected watched unchanged during delay")
		}

		msg, ok := cmd().(ToggleDoneMsg)
		if !ok {
			t.Fatal("expected ToggleDoneMsg")
		}
		item.Update(msg)

		if !item.Watched() || item.InProgress() {
			t.Errorf("expected watched=true inProgress=false, got %v %v", item.Watched(), item.InProgress())
		}
		if calls != 1 || gotID != 7 || !gotWatched {
			t.Errorf("expected callback (7, true) once, got (%d, %v) x%d", gotID, gotWatched, calls)
		}
	})

	t.Run("Toggle Ignored While In Progress", func(t *testing.T) {
		item := NewItemController(context.Background(), movie, ItemOpts{Delay: time.Hour})
		defer item.Close()

		if item.Toggle() == nil {
			t.Fatal("expected first toggle to start")
		}
		if item.Toggle() != nil {
			t.Error("expected second toggle to be ignored")
		}
	})

	t.Run("Toggle Abandoned On Close", func(t *testing.T) {
		called := false
		item := NewItemController(context.Background(), movie, ItemOpts{
			Delay:    time.Hour,
			OnToggle: func(int64, bool) { called = true },
		})

		cmd := item.Toggle()
		item.Close()

		if msg := cmd(); msg != nil {
			t.Errorf("expected no message after close, got %v", msg)
		}

		item.Update(ToggleDoneMsg{ID: movie.ID})
		if item.Watched() || called {
			t.Error("expected no state change after close")
		}
	})

	t.Run("Update Ignores Other IDs", func(t *testing.T) {
		item := NewItemController(context.Background(), movie, ItemOpts{Delay: time.Millisecond})
		item.Toggle()
		item.Update(ToggleDoneMsg{ID: 99})

		if item.Watched() || !item.InProgress() {
			t.Error("expected message for another item to be ignored")
		}
	})

	t.Run("Delete Guarded", func(t *testing.T) {
		calls := 0
		item := NewItemController(context.Background(), movie, ItemOpts{
			Remove: func(models.Movie) tea.Cmd {
				calls++
				return func() tea.Msg { return nil }
			},
		})

		if item.Delete() == nil {
			t.Fatal("expected delete command")
		}
		if item.Delete() != nil {
			t.Error("expected second delete to be ignored")
		}
		if calls != 1 || !item.Deleting() {
			t.Errorf("expected one delete in flight, got %d", calls)
		}

		item.deleteDone()
		if item.Delete() == nil {
			t.Error("expected delete to be allowed after completion")
		}
	})
}
