package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "activity")
		if err != nil {
			t.Fatalf("failed to get sequence: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for table without sequence")
	}
}

func TestActivityRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		repo := NewActivityRepository(setupTestDB(t))
		a := models.NewActivity(models.OpCreate, models.OutcomeOK, 0, "Heat", "Movie added")

		if err := repo.Create(a); err != nil {
			t.Fatalf("failed to create activity: %v", err)
		}

		if a.ID() == "" {
			t.Error("activity ID should be set after creation")
		}
		if a.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", a.Sequence())
		}
	})

	t.Run("Create Invalid", func(t *testing.T) {
		repo := NewActivityRepository(setupTestDB(t))
		a := models.NewActivity(models.Operation("bogus"), models.OutcomeOK, 0, "", "")

		if err := repo.Create(a); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewActivityRepository(setupTestDB(t))
		a := models.NewActivity(models.OpDelete, models.OutcomeFailed, 42, "Alien", "status 500")

		if err := repo.Create(a); err != nil {
			t.Fatalf("failed to create activity: %v", err)
		}

		got, err := repo.Get(a.ID())
		if err != nil {
			t.Fatalf("failed to get activity: %v", err)
		}

		if got.Operation() != models.OpDelete {
			t.Errorf("expected operation delete, got %s", got.Operation())
		}
		if got.MovieID() != 42 || got.MovieName() != "Alien" {
			t.Errorf("unexpected movie fields %d %q", got.MovieID(), got.MovieName())
		}
		if got.Outcome() != models.OutcomeFailed {
			t.Errorf("expected failed outcome, got %s", got.Outcome())
		}
		if !got.CreatedAt().Equal(a.CreatedAt()) {
			t.Errorf("expected created_at %v, got %v", a.CreatedAt(), got.CreatedAt())
		}
	})

	t.Run("Get Missing", func(t *testing.T) {
		repo := NewActivityRepository(setupTestDB(t))

		if _, err := repo.Get("nope"); !errors.Is(err, ErrActivityNotFound) {
			t.Errorf("expected ErrActivityNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewActivityRepository(setupTestDB(t))

		entries := []*models.Activity{
			models.NewActivity(models.OpFetch, models.OutcomeOK, 0, "", "3 movies"),
			models.NewActivity(models.OpCreate, models.OutcomeFailed, 0, "Heat", "status 400"),
			models.NewActivity(models.OpFetch, models.OutcomeFailed, 0, "", "connection refused"),
			models.NewActivity(models.OpToggle, models.OutcomeOK, 5, "Alien", "watched"),
		}
		for _, e := range entries {
			if err := repo.Create(e); err != nil {
				t.Fatalf("failed to create activity: %v", err)
			}
		}

		all, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(all) != 4 {
			t.Fatalf("expected 4 entries, got %d", len(all))
		}
		if all[0].Operation() != models.OpToggle {
			t.Errorf("expected newest first, got %s", all[0].Operation())
		}

		fetches, err := repo.List(map[string]any{"operation": models.OpFetch})
		if err != nil {
			t.Fatalf("failed to list fetches: %v", err)
		}
		if len(fetches) != 2 {
			t.Errorf("expected 2 fetch entries, got %d", len(fetches))
		}

		failed, err := repo.List(map[string]any{"outcome": "failed", "limit": 1})
		if err != nil {
			t.Fatalf("failed to list failures: %v", err)
		}
		if len(failed) != 1 || failed[0].Message() != "connection refused" {
			t.Errorf("expected latest failure only, got %v", failed)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewActivityRepository(setupTestDB(t))
		for i := 0; i < 2; i++ {
			if err := repo.Create(models.NewActivity(models.OpFetch, models.OutcomeOK, 0, "", "")); err != nil {
				t.Fatalf("failed to create activity: %v", err)
			}
		}

		n, err := repo.Clear()
		if err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 deleted, got %d", n)
		}
	})
}

func TestJournalAdapter(t *testing.T) {
	repo := NewActivityRepository(setupTestDB(t))
	journal := NewJournalAdapter(repo)
	movie := models.Movie{ID: 9, Name: "Heat"}

	if err := journal.Record(models.OpDelete, movie, "Movie deleted", nil); err != nil {
		t.Fatalf("failed to record success: %v", err)
	}
	if err := journal.Record(models.OpDelete, movie, "", errors.New("status 500")); err != nil {
		t.Fatalf("failed to record failure: %v", err)
	}

	entries, err := repo.List(nil)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Outcome() != models.OutcomeFailed || entries[0].Message() != "status 500" {
		t.Errorf("expected failure entry with error text, got %s %q", entries[0].Outcome(), entries[0].Message())
	}
	if entries[1].Outcome() != models.OutcomeOK || entries[1].MovieID() != 9 {
		t.Errorf("expected ok entry for movie 9, got %s %d", entries[1].Outcome(), entries[1].MovieID())
	}
}
