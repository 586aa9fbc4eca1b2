// package services defines interface MovieClient for the movies backend and its HTTP implementation
package services

import (
	"context"

	"github.com/desertthunder/watchlist/internal/models"
)

// MovieClient defines the operations the tracker needs from the movies backend.
type MovieClient interface {
	// List retrieves the full collection in backend order.
	List(ctx context.Context) ([]models.Movie, error)

	// Create adds a movie and returns the backend's confirmation message.
	Create(ctx context.Context, req models.NewMovieRequest) (*models.MessageResponse, error)

	// Delete removes a movie by ID and returns the backend's confirmation message.
	Delete(ctx context.Context, id int64) (*models.MessageResponse, error)
}
