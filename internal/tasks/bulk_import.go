package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/desertthunder/watchlist/internal/formatter"
	"github.com/desertthunder/watchlist/internal/shared"
	"golang.org/x/time/rate"
)

// BulkImportOpts contains configuration for bulk movie imports.
type BulkImportOpts struct {
	NumWorkers   int     // Concurrent workers (default: 3, max: 10)
	RateLimit    float64 // Requests per second (default: 5)
	SkipExisting bool    // Fetch the collection first and skip rows matching name and release date
	DryRun       bool    // Validate and dedupe only
}

// BulkImport creates movies from rows concurrently with rate limiting and progress tracking.
//
// Invalid rows are never sent. A failed create is recorded on its row and does not stop the
// import; cancelling ctx does, and the partial result is returned with the context error.
func (e *ImportEngine) BulkImport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	rows []formatter.ImportRow,
	opts BulkImportOpts,
) (*ImportResult, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: movie client not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	result := &ImportResult{TotalRows: len(rows), Rows: make([]RowResult, 0, len(rows))}

	pending := make([]formatter.ImportRow, 0, len(rows))
	for _, row := range rows {
		if err := row.Request.Validate(); err != nil {
			result.add(RowResult{Row: row, Status: RowInvalid, Error: err})
			continue
		}
		pending = append(pending, row)
	}
	e.sendProgress(prog, validateUpdate(len(rows), result.Invalid))

	if opts.SkipExisting && len(pending) > 0 {
		existing, err := e.client.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch existing movies: %w", err)
		}

		seen := make(map[string]bool, len(existing))
		for _, m := range existing {
			seen[movieKey(m.Name, m.ReleaseDate)] = true
		}
		e.sendProgress(prog, fetchExistingUpdate(len(existing)))

		kept := pending[:0]
		for _, row := range pending {
			key := movieKey(row.Request.Name, row.Request.ReleaseDate)
			if seen[key] {
				result.add(RowResult{Row: row, Status: RowSkipped, Message: "already in watchlist"})
				continue
			}
			seen[key] = true
			kept = append(kept, row)
		}
		pending = kept
	}

	if opts.DryRun || len(pending) == 0 {
		for _, row := range pending {
			result.add(RowResult{Row: row, Status: RowValid})
		}
		result.sort()
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan formatter.ImportRow, len(pending))
	results := make(chan RowResult, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.importWorker(ctx, &wg, limiter, jobs, results)
	}

	e.sendProgress(prog, createStartedUpdate(len(pending)))
	for _, row := range pending {
		jobs <- row
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.add(res)

		if res.Status == RowCreated {
			e.sendProgress(prog, createCompletedUpdate(completed, len(pending), res.Row))
		} else {
			e.logger.Warn("import row failed", "line", res.Row.Line, "name", res.Row.Request.Name, "error", res.Error)
			e.sendProgress(prog, createFailedUpdate(completed, len(pending), res.Row, res.Error))
		}
	}

	result.sort()
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// importWorker creates movies from the jobs channel until it is drained or ctx is cancelled.
func (e *ImportEngine) importWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan formatter.ImportRow,
	results chan<- RowResult,
) {
	defer wg.Done()

	for row := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- RowResult{Row: row, Status: RowFailed, Error: err}
			continue
		}

		resp, err := e.client.Create(ctx, row.Request)
		if err != nil {
			results <- RowResult{Row: row, Status: RowFailed, Error: err}
			continue
		}

		res := RowResult{Row: row, Status: RowCreated}
		if resp != nil {
			res.Message = resp.Message
		}
		results <- res
	}
}

func (r *ImportResult) add(res RowResult) {
	switch res.Status {
	case RowCreated:
		r.Created++
	case RowInvalid:
		r.Invalid++
	case RowSkipped:
		r.Skipped++
	case RowFailed:
		r.Failed++
	}
	r.Rows = append(r.Rows, res)
}

func (r *ImportResult) sort() {
	sort.SliceStable(r.Rows, func(i, j int) bool { return r.Rows[i].Row.Line < r.Rows[j].Row.Line })
}

func movieKey(name, releaseDate string) string {
	date := releaseDate
	if len(date) > len("2006-01-02") {
		date = date[:len("2006-01-02")]
	}
	return strings.ToLower(strings.TrimSpace(name)) + "|" + date
}
