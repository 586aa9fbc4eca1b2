// package models defines the data model for the watchlist client
package models

import (
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Operation names a tracker operation kind.
type Operation string

const (
	OpFetch  Operation = "fetch"
	OpCreate Operation = "create"
	OpDelete Operation = "delete"
	OpToggle Operation = "toggle"
)

// Valid reports whether o is one of the known operations.
func (o Operation) Valid() bool {
	switch o {
	case OpFetch, OpCreate, OpDelete, OpToggle:
		return true
	default:
		return false
	}
}
