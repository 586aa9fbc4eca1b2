// HTTP [MovieClient] implementation
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "http://localhost:8080"
	moviesPath     = "/api/movies"
)

var _ MovieClient = (*MovieService)(nil)

// MovieServiceOpts configures a [MovieService].
type MovieServiceOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration // Applied only when HTTPClient is nil
	RateLimit  float64       // Requests per second, 0 disables throttling
	Logger     *log.Logger
}

// MovieService implements [MovieClient] against the REST backend.
type MovieService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewMovieService creates a new movie service instance.
func NewMovieService(opts MovieServiceOpts) *MovieService {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := opts.HTTPClient
	if client == nil {
		if opts.Timeout > 0 {
			client = &http.Client{Timeout: opts.Timeout}
		} else {
			client = http.DefaultClient
		}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &MovieService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    limiter,
		logger:     shared.WithLogger(logger, "service", "movies"),
	}
}

// BaseURL returns the resolved backend origin.
func (s *MovieService) BaseURL() string {
	return s.baseURL
}

// List retrieves all movies.
//
// Calls GET /api/movies.
func (s *MovieService) List(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := s.doRequest(ctx, http.MethodGet, moviesPath, nil, &movies); err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// Create validates req and adds it to the collection.
//
// Calls POST /api/movies. Invalid requests are rejected before any network call.
func (s *MovieService) Create(ctx context.Context, req models.NewMovieRequest) (*models.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp models.MessageResponse
	if err := s.doRequest(ctx, http.MethodPost, moviesPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a movie by ID.
//
// Calls DELETE /api/movies/{id}.
func (s *MovieService) Delete(ctx context.Context, id int64) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	endpoint := moviesPath + "/" + strconv.FormatInt(id, 10)
	if err := s.doRequest(ctx, http.MethodDelete, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MovieService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", shared.ErrAPIRequest, err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.logger.Debug("request", "method", method, "path", endpoint, "request_id", requestID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, data)
	}

	if result == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDecodeResponse, err)
	}

	return nil
}

// statusError builds an error for a non-2xx response, preferring the backend's own message.
func statusError(code int, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}

	detail := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		for _, s := range []string{errResp.Error, errResp.Message, errResp.Detail} {
			if s != "" {
				detail = s
				break
			}
		}
	}

	base := shared.ErrAPIRequest
	if code == http.StatusNotFound {
		base = fmt.Errorf("%w: %w", shared.ErrAPIRequest, shared.ErrMovieNotFound)
	}

	if detail != "" {
		return fmt.Errorf("%w (status %d): %s", base, code, detail)
	}
	return fmt.Errorf("%w: status %d", base, code)
}

// IsNotFound reports whether err came from a 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, shared.ErrMovieNotFound)
}
