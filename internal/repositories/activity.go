package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

var _ models.Repository[*models.Activity] = (*ActivityRepository)(nil)

// ErrActivityNotFound is returned by [ActivityRepository.Get] for unknown IDs.
var ErrActivityNotFound = errors.New("activity not found")

const activityColumns = "id, sequence, operation, movie_id, movie_name, outcome, message, created_at"

// ActivityRepository implements models.Repository[*models.Activity] for the activity journal.
//
// Entries are append-only; there is no update path.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new ActivityRepository with the given database connection
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new [models.Activity] with a generated ID and sequence
func (r *ActivityRepository) Create(a *models.Activity) error {
	sequence, err := NextSequence(r.db, "activity")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	a.SetID(shared.GenerateID())
	a.SetSequence(sequence)

	if err := a.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var movieID sql.NullInt64
	if a.MovieID() != 0 {
		movieID = sql.NullInt64{Int64: a.MovieID(), Valid: true}
	}

	_, err = r.db.Exec(
		"INSERT INTO activity ("+activityColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		a.ID(),
		a.Sequence(),
		string(a.Operation()),
		movieID,
		a.MovieName(),
		string(a.Outcome()),
		a.Message(),
		a.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

// Get retrieves an entry by ID
func (r *ActivityRepository) Get(id string) (*models.Activity, error) {
	row := r.db.QueryRow("SELECT "+activityColumns+" FROM activity WHERE id = ?", id)

	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}
	return a, err
}

// List returns entries newest first.
//
// Supported criteria: "operation" (models.Operation or string), "outcome" (models.Outcome or string), "limit" (int).
func (r *ActivityRepository) List(criteria map[string]any) ([]*models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activity WHERE 1 = 1"
	args := []any{}

	if op := criterion(criteria, "operation"); op != "" {
		query += " AND operation = ?"
		args = append(args, op)
	}

	if outcome := criterion(criteria, "outcome"); outcome != "" {
		query += " AND outcome = ?"
		args = append(args, outcome)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var entries []*models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Clear removes every entry and returns the number deleted.
func (r *ActivityRepository) Clear() (int64, error) {
	result, err := r.db.Exec("DELETE FROM activity")
	if err != nil {
		return 0, fmt.Errorf("failed to clear activity: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

func criterion(criteria map[string]any, key string) string {
	switch v := criteria[key].(type) {
	case string:
		return v
	case models.Operation:
		return string(v)
	case models.Outcome:
		return string(v)
	default:
		return ""
	}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanActivity scans a [sql.Row] or [sql.Rows] into a [models.Activity]
func scanActivity(s scanner) (*models.Activity, error) {
	var (
		id        string
		sequence  int
		operation string
		movieID   sql.NullInt64
		movieName string
		outcome   string
		message   string
		createdAt time.Time
	)

	err := s.Scan(&id, &sequence, &operation, &movieID, &movieName, &outcome, &message, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity: %w", err)
	}

	return models.RestoreActivity(
		id,
		sequence,
		models.Operation(operation),
		movieID.Int64,
		movieName,
		models.Outcome(outcome),
		message,
		createdAt,
	), nil
}
