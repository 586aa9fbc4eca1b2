package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/services"
	"github.com/desertthunder/watchlist/internal/shared"
)

// Journal records operation outcomes. Implementations must not block for long; they are called
// from the Update loop.
type Journal interface {
	Record(op models.Operation, movie models.Movie, message string, err error) error
}

// Form holds the add form inputs and their validation messages keyed by JSON field name.
type Form struct {
	Name        string
	ReleaseDate string
	Errors      models.FieldErrors
}

// IsZero reports whether the form is empty.
func (f Form) IsZero() bool {
	return f.Name == "" && f.ReleaseDate == "" && len(f.Errors) == 0
}

// ListOpts configures a [ListController].
type ListOpts struct {
	Client      services.MovieClient
	Logger      *log.Logger
	Journal     Journal // Optional
	ToggleDelay time.Duration
	OnToggle    ToggleFunc // Optional
}

// ListController owns the movie collection, the add form and one [ItemController] per movie.
type ListController struct {
	ctx     context.Context
	client  services.MovieClient
	logger  *log.Logger
	journal Journal

	state  ListState
	form   Form
	notice Notice
	items  map[int64]*ItemController

	toggleDelay time.Duration
	onToggle    ToggleFunc

	retry func() tea.Cmd

	// fetchSeq tags the latest fetch; older results are dropped.
	fetchSeq int
}

// NewListController creates a controller. Item contexts derive from ctx.
func NewListController(ctx context.Context, opts ListOpts) *ListController {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &ListController{
		ctx:         ctx,
		client:      opts.Client,
		logger:      shared.WithLogger(logger, "component", "tracker"),
		journal:     opts.Journal,
		items:       make(map[int64]*ItemController),
		toggleDelay: opts.ToggleDelay,
		onToggle:    opts.OnToggle,
	}
}

func (l *ListController) State() ListState { return l.state }
func (l *ListController) Form() Form       { return l.form }
func (l *ListController) Notice() Notice   { return l.notice }

// CanRetry reports whether [ListController.Retry] has a failed operation to re-issue.
func (l *ListController) CanRetry() bool { return l.retry != nil }

// Items returns the item controllers in collection order.
func (l *ListController) Items() []*ItemController {
	items := make([]*ItemController, 0, len(l.state.Movies))
	for _, m := range l.state.Movies {
		if item, ok := l.items[m.ID]; ok {
			items = append(items, item)
		}
	}
	return items
}

// Item returns the controller for id.
func (l *ListController) Item(id int64) (*ItemController, bool) {
	item, ok := l.items[id]
	return item, ok
}

// SetForm replaces the form inputs and clears stale validation messages.
func (l *ListController) SetForm(name, releaseDate string) {
	l.form = Form{Name: name, ReleaseDate: releaseDate}
}

// ClearNotice dismisses the current notice. A pending retry stays available.
func (l *ListController) ClearNotice() {
	l.notice = Notice{}
}

// ResetForm empties the form.
func (l *ListController) ResetForm() {
	l.form = Form{}
}

// Fetch loads the collection.
func (l *ListController) Fetch() tea.Cmd {
	return l.fetch(false)
}

func (l *ListController) fetch(afterAdd bool) tea.Cmd {
	l.state = Reduce(l.state, Event{Kind: FetchStart})
	l.fetchSeq++

	ctx, client, seq := l.ctx, l.client, l.fetchSeq
	return func() tea.Msg {
		movies, err := client.List(ctx)
		return fetchDoneMsg{seq: seq, movies: movies, err: err, afterAdd: afterAdd}
	}
}

// Submit validates the form and creates the movie.
//
// Invalid input sets [Form.Errors] and returns nil without a request. Submissions while an add is
// in flight are ignored.
func (l *ListController) Submit() tea.Cmd {
	if l.state.Adding {
		return nil
	}

	req := models.NewMovie(l.form.Name, l.form.ReleaseDate)
	if err := req.Validate(); err != nil {
		var fields models.FieldErrors
		if errors.As(err, &fields) {
			l.form.Errors = fields
		} else {
			l.form.Errors = models.FieldErrors{"form": err.Error()}
		}
		return nil
	}
	l.form.Errors = nil

	l.state = Reduce(l.state, Event{Kind: AddStart})

	ctx, client := l.ctx, l.client
	return func() tea.Msg {
		resp, err := client.Create(ctx, req)
		return createDoneMsg{req: req, resp: resp, err: err}
	}
}

// Delete removes the movie with id. Unknown IDs and items with a delete in flight return nil.
func (l *ListController) Delete(id int64) tea.Cmd {
	item, ok := l.items[id]
	if !ok {
		return nil
	}
	return item.Delete()
}

// Toggle starts a watched toggle on the movie with id.
func (l *ListController) Toggle(id int64) tea.Cmd {
	item, ok := l.items[id]
	if !ok {
		return nil
	}
	return item.Toggle()
}

// Retry re-issues the last failed operation, if any.
func (l *ListController) Retry() tea.Cmd {
	if l.retry == nil {
		return nil
	}
	retry := l.retry
	l.retry = nil
	return retry()
}

// Close cancels every item context.
func (l *ListController) Close() {
	for id, item := range l.items {
		item.Close()
		delete(l.items, id)
	}
}

// Update applies a completion message and returns any follow-up command.
func (l *ListController) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		return l.handleFetch(msg)
	case createDoneMsg:
		return l.handleCreate(msg)
	case deleteDoneMsg:
		return l.handleDelete(msg)
	case ToggleDoneMsg:
		if item, ok := l.items[msg.ID]; ok {
			item.Update(msg)
		}
	}
	return nil
}

func (l *ListController) handleFetch(msg fetchDoneMsg) tea.Cmd {
	switch {
	case msg.seq != l.fetchSeq:
		l.logger.Debug("dropping stale fetch result", "seq", msg.seq, "latest", l.fetchSeq)
	case msg.err != nil:
		l.logger.Error("failed to fetch movies", "error", msg.err)
		l.state = Reduce(l.state, Event{Kind: FetchError, Message: FetchErrorMessage})
		l.retry = l.Fetch
		l.record(models.OpFetch, models.Movie{}, "", msg.err)
	default:
		l.state = Reduce(l.state, Event{Kind: FetchSuccess, Movies: msg.movies})
		l.syncItems(msg.movies)
		l.record(models.OpFetch, models.Movie{}, fmt.Sprintf("%d movies", len(msg.movies)), nil)
	}

	if !msg.afterAdd {
		return nil
	}

	l.ResetForm()
	l.state = Reduce(l.state, Event{Kind: AddSuccess})
	return func() tea.Msg { return FormResetMsg{} }
}

func (l *ListController) handleCreate(msg createDoneMsg) tea.Cmd {
	movie := models.Movie{Name: msg.req.Name, ReleaseDate: msg.req.ReleaseDate}

	if msg.err != nil {
		l.logger.Error("failed to add movie", "name", msg.req.Name, "error", msg.err)
		l.state = Reduce(l.state, Event{Kind: AddEnd})
		l.fail(&OpError{Op: models.OpCreate, Err: msg.err}, l.Submit)
		l.record(models.OpCreate, movie, "", msg.err)
		return nil
	}

	message := ""
	if msg.resp != nil {
		message = msg.resp.Message
	}
	l.notice = Notice{Message: message}
	l.retry = nil
	l.record(models.OpCreate, movie, message, nil)
	return l.fetch(true)
}

func (l *ListController) handleDelete(msg deleteDoneMsg) tea.Cmd {
	id := msg.movie.ID
	if item, ok := l.items[id]; ok {
		item.deleteDone()
	}

	if msg.err != nil {
		l.logger.Error("failed to delete movie", "id", id, "error", msg.err)
		l.fail(&OpError{Op: models.OpDelete, ID: id, Err: msg.err}, func() tea.Cmd { return l.Delete(id) })
		l.record(models.OpDelete, msg.movie, "", msg.err)
		return nil
	}

	message := ""
	if msg.resp != nil {
		message = msg.resp.Message
	}
	l.notice = Notice{Message: message}
	l.retry = nil
	l.record(models.OpDelete, msg.movie, message, nil)
	return l.Fetch()
}

func (l *ListController) fail(err *OpError, retry func() tea.Cmd) {
	l.notice = Notice{Message: err.Error(), Err: err}
	l.retry = retry
}

// syncItems reuses controllers by movie ID and closes those no longer present.
func (l *ListController) syncItems(movies []models.Movie) {
	seen := make(map[int64]struct{}, len(movies))
	for _, m := range movies {
		seen[m.ID] = struct{}{}
		if item, ok := l.items[m.ID]; ok {
			item.refresh(m)
			continue
		}
		l.items[m.ID] = NewItemController(l.ctx, m, ItemOpts{
			Delay:    l.toggleDelay,
			OnToggle: l.toggled,
			Remove:   l.remove,
		})
	}

	for id, item := range l.items {
		if _, ok := seen[id]; !ok {
			item.Close()
			delete(l.items, id)
		}
	}
}

func (l *ListController) remove(movie models.Movie) tea.Cmd {
	ctx, client := l.ctx, l.client
	return func() tea.Msg {
		resp, err := client.Delete(ctx, movie.ID)
		return deleteDoneMsg{movie: movie, resp: resp, err: err}
	}
}

func (l *ListController) toggled(id int64, watched bool) {
	if item, ok := l.items[id]; ok {
		status := "to watch"
		if watched {
			status = "watched"
		}
		l.record(models.OpToggle, item.Movie(), status, nil)
	}
	if l.onToggle != nil {
		l.onToggle(id, watched)
	}
}

func (l *ListController) record(op models.Operation, movie models.Movie, message string, err error) {
	if l.journal == nil {
		return
	}
	if jerr := l.journal.Record(op, movie, message, err); jerr != nil {
		l.logger.Warn("failed to record activity", "operation", op, "error", jerr)
	}
}
