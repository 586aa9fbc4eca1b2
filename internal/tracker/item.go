package tracker

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/models"
)

// DefaultToggleDelay is the simulated latency of a watched toggle.
const DefaultToggleDelay = 2 * time.Second

// ToggleFunc is notified with the movie ID and its new watched flag after a toggle completes.
type ToggleFunc func(id int64, watched bool)

// ItemController owns the local watched state of one movie.
//
// The watched flag is seeded once from [models.Movie.IsWatched] and is never written back to the
// backend.
type ItemController struct {
	ctx    context.Context
	cancel context.CancelFunc

	movie      models.Movie
	watched    bool
	inProgress bool
	deleting   bool

	delay    time.Duration
	onToggle ToggleFunc
	remove   func(models.Movie) tea.Cmd
}

// ItemOpts configures an [ItemController].
type ItemOpts struct {
	Delay    time.Duration // Defaults to [DefaultToggleDelay] when zero
	OnToggle ToggleFunc
	Remove   func(models.Movie) tea.Cmd // Builds the delete request for this movie
}

// NewItemController creates a controller bound to a child of ctx.
func NewItemController(ctx context.Context, movie models.Movie, opts ItemOpts) *ItemController {
	if ctx == nil {
		ctx = context.Background()
	}
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultToggleDelay
	}

	itemCtx, cancel := context.WithCancel(ctx)
	return &ItemController{
		ctx:      itemCtx,
		cancel:   cancel,
		movie:    movie,
		watched:  movie.IsWatched,
		delay:    delay,
		onToggle: opts.OnToggle,
		remove:   opts.Remove,
	}
}

func (c *ItemController) ID() int64           { return c.movie.ID }
func (c *ItemController) Movie() models.Movie { return c.movie }
func (c *ItemController) Watched() bool       { return c.watched }
func (c *ItemController) InProgress() bool    { return c.inProgress }
func (c *ItemController) Deleting() bool      { return c.deleting }

// Toggle starts a watched toggle. It returns nil when a toggle is already pending.
//
// The returned command waits for the configured delay and yields a [ToggleDoneMsg], or nothing
// if the item is closed first.
func (c *ItemController) Toggle() tea.Cmd {
	if c.inProgress {
		return nil
	}
	c.inProgress = true

	ctx, id, delay := c.ctx, c.movie.ID, c.delay
	return func() tea.Msg {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return ToggleDoneMsg{ID: id}
		}
	}
}

// Update applies a completed toggle addressed to this item.
func (c *ItemController) Update(msg ToggleDoneMsg) {
	if msg.ID != c.movie.ID || !c.inProgress || c.ctx.Err() != nil {
		return
	}

	c.watched = !c.watched
	if c.onToggle != nil {
		c.onToggle(c.movie.ID, c.watched)
	}
	c.inProgress = false
}

// Delete requests removal of the movie. A second call while one is in flight returns nil.
func (c *ItemController) Delete() tea.Cmd {
	if c.deleting || c.remove == nil {
		return nil
	}
	c.deleting = true
	return c.remove(c.movie)
}

// Close abandons any pending toggle.
func (c *ItemController) Close() {
	c.cancel()
}

func (c *ItemController) deleteDone() {
	c.deleting = false
}

// refresh replaces the movie's display fields; the local watched flag is kept.
func (c *ItemController) refresh(movie models.Movie) {
	c.movie = movie
}
