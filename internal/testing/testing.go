// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
)

// MockMovieClient is an in-memory test double for [services.MovieClient].
//
// Set the *Err fields to force failures. Call counters are safe for concurrent use.
type MockMovieClient struct {
	mu     sync.Mutex
	movies []models.Movie
	nextID int64

	ListErr   error
	CreateErr error
	DeleteErr error

	ListCalls   int
	CreateCalls int
	DeleteCalls int
	Created     []models.NewMovieRequest
}

// NewMockMovieClient seeds the mock with movies; IDs continue after the highest seeded ID.
func NewMockMovieClient(movies ...models.Movie) *MockMovieClient {
	m := &MockMovieClient{movies: append([]models.Movie(nil), movies...)}
	for _, mv := range movies {
		if mv.ID > m.nextID {
			m.nextID = mv.ID
		}
	}
	return m
}

func (m *MockMovieClient) List(ctx context.Context) ([]models.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.Movie{}, m.movies...), nil
}

func (m *MockMovieClient) Create(ctx context.Context, req models.NewMovieRequest) (*models.MessageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	m.nextID++
	m.Created = append(m.Created, req)
	m.movies = append(m.movies, models.Movie{
		ID:          m.nextID,
		Name:        req.Name,
		ReleaseDate: req.ReleaseDate,
		IsWatched:   req.IsWatched,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	return &models.MessageResponse{Message: "Movie added successfully"}, nil
}

func (m *MockMovieClient) Delete(ctx context.Context, id int64) (*models.MessageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls++
	if m.DeleteErr != nil {
		return nil, m.DeleteErr
	}

	for i, mv := range m.movies {
		if mv.ID == id {
			m.movies = append(m.movies[:i], m.movies[i+1:]...)
			return &models.MessageResponse{Message: "Movie deleted successfully"}, nil
		}
	}
	return nil, fmt.Errorf("movie %d not found", id)
}

// Movies returns a snapshot of the stored collection.
func (m *MockMovieClient) Movies() []models.Movie {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Movie{}, m.movies...)
}

// SampleMovies returns n movies with sequential IDs starting at 1.
func SampleMovies(n int) []models.Movie {
	movies := make([]models.Movie, n)
	for i := range movies {
		movies[i] = models.Movie{
			ID:          int64(i + 1),
			Name:        fmt.Sprintf("Movie %d", i+1),
			ReleaseDate: fmt.Sprintf("20%02d-01-01", i),
			CreatedAt:   "2024-01-01T00:00:00Z",
		}
	}
	return movies
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
