package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Outcome is the result of a recorded operation.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
)

// Activity is a journal entry describing one operation outcome.
//
// Movie fields are zero for operations that do not target a single movie (fetch).
type Activity struct {
	id        string
	sequence  int
	operation Operation
	movieID   int64
	movieName string
	outcome   Outcome
	message   string
	createdAt time.Time
}

// NewActivity creates an unsaved [Activity] stamped with the current time.
func NewActivity(op Operation, outcome Outcome, movieID int64, movieName, message string) *Activity {
	return &Activity{
		operation: op,
		outcome:   outcome,
		movieID:   movieID,
		movieName: movieName,
		message:   message,
		createdAt: time.Now().UTC(),
	}
}

// RestoreActivity rebuilds an [Activity] from stored columns.
func RestoreActivity(id string, sequence int, op Operation, movieID int64, movieName string, outcome Outcome, message string, createdAt time.Time) *Activity {
	return &Activity{
		id:        id,
		sequence:  sequence,
		operation: op,
		movieID:   movieID,
		movieName: movieName,
		outcome:   outcome,
		message:   message,
		createdAt: createdAt,
	}
}

func (a *Activity) ID() string           { return a.id }
func (a *Activity) Sequence() int        { return a.sequence }
func (a *Activity) Operation() Operation { return a.operation }
func (a *Activity) MovieID() int64       { return a.movieID }
func (a *Activity) MovieName() string    { return a.movieName }
func (a *Activity) Outcome() Outcome     { return a.outcome }
func (a *Activity) Message() string      { return a.message }
func (a *Activity) CreatedAt() time.Time { return a.createdAt }

func (a *Activity) SetID(id string)          { a.id = id }
func (a *Activity) SetSequence(sequence int) { a.sequence = sequence }

// Validate checks required fields before the entry is persisted.
func (a *Activity) Validate() error {
	if a.id == "" {
		return fmt.Errorf("activity id is required")
	}
	if !a.operation.Valid() {
		return fmt.Errorf("unknown operation %q", a.operation)
	}
	if a.outcome != OutcomeOK && a.outcome != OutcomeFailed {
		return fmt.Errorf("unknown outcome %q", a.outcome)
	}
	if a.createdAt.IsZero() {
		return fmt.Errorf("activity created_at is required")
	}
	return nil
}

// MarshalJSON exposes the entry for `history --json`.
func (a *Activity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Sequence  int       `json:"sequence"`
		Operation Operation `json:"operation"`
		MovieID   int64     `json:"movie_id,omitempty"`
		MovieName string    `json:"movie_name,omitempty"`
		Outcome   Outcome   `json:"outcome"`
		Message   string    `json:"message,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}{a.id, a.sequence, a.operation, a.movieID, a.movieName, a.outcome, a.message, a.createdAt})
}
