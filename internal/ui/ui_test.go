package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/tracker"
	tu "github.com/desertthunder/watchlist/internal/testing"
)

func newTestModel(t *testing.T, client *tu.MockMovieClient) *Model {
	t.Helper()
	controller := tracker.NewListController(context.Background(), tracker.ListOpts{
		Client:      client,
		ToggleDelay: time.Hour,
	})
	t.Cleanup(controller.Close)

	m := NewModel(controller)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// load runs an initial fetch through the model.
func load(m *Model) {
	m.Update(m.tracker.Fetch()())
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModel(t *testing.T) {
	t.Run("View", func(t *testing.T) {
		t.Run("Loading", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient(tu.SampleMovies(2)...))
			m.tracker.Fetch()

			if !strings.Contains(m.View(), "Loading movies...") {
				t.Errorf("expected loading indicator, got %s", m.View())
			}
		})

		t.Run("Movies", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient(tu.SampleMovies(2)...))
			load(m)

			view := m.View()
			for _, want := range []string{"Movie 1", "Movie 2", toWatchBadge} {
				if !strings.Contains(view, want) {
					t.Errorf("expected view to contain %q", want)
				}
			}
		})

		t.Run("Refetch Shows Loading Beside List", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient(tu.SampleMovies(2)...))
			load(m)
			m.tracker.Fetch()

			view := m.View()
			if !strings.Contains(view, "Movie 1") || !strings.Contains(view, "Loading movies...") {
				t.Errorf("expected list and loading indicator, got %s", view)
			}

			load(m)
			if strings.Contains(m.View(), "Loading movies...") {
				t.Error("expected loading indicator to clear")
			}
		})

		t.Run("Added Date", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient(tu.SampleMovies(1)...))
			load(m)

			if !strings.Contains(m.View(), "📘 Added: Jan 1, 2024") {
				t.Errorf("expected added date, got %s", m.View())
			}
		})

		t.Run("Empty", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient())
			load(m)

			if !strings.Contains(m.View(), "🎬 No movies to display.") {
				t.Errorf("expected empty state, got %s", m.View())
			}
		})

		t.Run("Fetch Error", func(t *testing.T) {
			client := tu.NewMockMovieClient()
			client.ListErr = errors.New("offline")
			m := newTestModel(t, client)
			load(m)

			if !strings.Contains(m.View(), tracker.FetchErrorMessage) {
				t.Errorf("expected fetch error, got %s", m.View())
			}
		})
	})

	t.Run("Form", func(t *testing.T) {
		t.Run("Empty Title", func(t *testing.T) {
			client := tu.NewMockMovieClient()
			m := newTestModel(t, client)

			m.Update(keyPress("a"))
			if m.view != FormView {
				t.Fatal("expected form view")
			}
			m.Update(keyPress("enter"))

			if !strings.Contains(m.View(), "Movie name is required!") {
				t.Errorf("expected title error in view, got %s", m.View())
			}
			if client.CreateCalls != 0 {
				t.Error("expected no request")
			}
		})

		t.Run("Submit", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient())

			m.Update(keyPress("a"))
			m.Update(keyPress("Heat"))
			m.Update(keyPress("tab"))
			m.Update(keyPress("1995-12-15"))
			m.Update(keyPress("enter"))

			form := m.tracker.Form()
			if form.Name != "Heat" || form.ReleaseDate != "1995-12-15" {
				t.Errorf("expected form values from inputs, got %+v", form)
			}
			if !m.tracker.State().Adding {
				t.Error("expected add in flight")
			}
			if !strings.Contains(m.View(), "Adding...") {
				t.Error("expected adding indicator")
			}

			m.Update(tracker.FormResetMsg{})
			if m.nameInput.Value() != "" || m.dateInput.Value() != "" {
				t.Error("expected inputs to be cleared")
			}
			if m.view != ListView {
				t.Error("expected list view after reset")
			}
		})

		t.Run("Escape", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient())
			m.Update(keyPress("a"))
			m.Update(keyPress("esc"))

			if m.view != ListView {
				t.Error("expected list view")
			}
		})
	})

	t.Run("Keys", func(t *testing.T) {
		t.Run("Quit", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient())
			_, cmd := m.Update(keyPress("q"))

			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
		})

		t.Run("Toggle", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient(tu.SampleMovies(1)...))
			load(m)

			m.Update(keyPress("w"))

			item, _ := m.tracker.Item(1)
			if !item.InProgress() {
				t.Error("expected toggle in progress")
			}
			if !strings.Contains(m.View(), "updating...") {
				t.Error("expected in-progress marker in view")
			}
		})

		t.Run("Delete", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient(tu.SampleMovies(1)...))
			load(m)

			m.Update(keyPress("d"))

			item, _ := m.tracker.Item(1)
			if !item.Deleting() {
				t.Error("expected delete in flight")
			}
		})
	})

	t.Run("Help", func(t *testing.T) {
		m := newTestModel(t, tu.NewMockMovieClient())
		if strings.Contains(m.View(), "↑/k") {
			t.Error("expected short help by default")
		}

		m.Update(keyPress("?"))
		if !strings.Contains(m.View(), "↑/k") {
			t.Errorf("expected full help, got %s", m.View())
		}
	})

	t.Run("Notice", func(t *testing.T) {
		t.Run("Expires", func(t *testing.T) {
			m := newTestModel(t, tu.NewMockMovieClient(tu.SampleMovies(2)...))
			load(m)

			m.Update(m.tracker.Delete(1)())
			if !strings.Contains(m.View(), "Movie deleted successfully") {
				t.Fatalf("expected notice, got %s", m.View())
			}

			m.Update(noticeExpiredMsg(m.noticeSeq - 1))
			if m.tracker.Notice().Message == "" {
				t.Error("expected stale expiry to be ignored")
			}

			m.Update(noticeExpiredMsg(m.noticeSeq))
			if strings.Contains(m.View(), "Movie deleted successfully") {
				t.Error("expected notice to be cleared")
			}
		})

		t.Run("Failure Offers Retry", func(t *testing.T) {
			client := tu.NewMockMovieClient(tu.SampleMovies(1)...)
			client.DeleteErr = errors.New("connection reset")
			m := newTestModel(t, client)
			load(m)

			m.Update(m.tracker.Delete(1)())
			if !strings.Contains(m.View(), "(r to retry)") {
				t.Errorf("expected retry hint, got %s", m.View())
			}

			m.Update(noticeExpiredMsg(m.noticeSeq))
			if !m.tracker.Notice().Failed() {
				t.Error("expected failure notice to persist")
			}
		})
	})

	t.Run("Badge", func(t *testing.T) {
		if badge(true) != "✅ Watched" || badge(false) != "🎯 To Watch" {
			t.Error("unexpected badges")
		}
		if !strings.Contains(coloredBadge(true), watchedBadge) || !strings.Contains(coloredBadge(false), toWatchBadge) {
			t.Error("expected colored badges to keep their text")
		}
	})

	t.Run("Item Description", func(t *testing.T) {
		item := movieItem{
			movie:      tu.SampleMovies(1)[0],
			inProgress: true,
		}
		desc := item.Description()
		for _, want := range []string{"Release date: Jan 1, 2000", toWatchBadge, "Added: Jan 1, 2024", "updating..."} {
			if !strings.Contains(desc, want) {
				t.Errorf("expected %q in %q", want, desc)
			}
		}

		item.movie.CreatedAt = ""
		if strings.Contains(item.Description(), "Added") {
			t.Error("expected no added date when the backend omits it")
		}
	})
}
