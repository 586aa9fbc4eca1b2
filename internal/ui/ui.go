package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/tracker"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	FormView
)

const (
	nameField = iota
	dateField
)

// NoticeTTL is how long a successful operation message stays on screen.
const NoticeTTL = 5 * time.Second

// Model represents the TUI application state.
type Model struct {
	view    ViewState
	tracker *tracker.ListController
	width   int
	height  int

	movies    list.Model
	nameInput textinput.Model
	dateInput textinput.Model
	focus     int

	spinner   spinner.Model
	notice    tracker.Notice
	noticeSeq int

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model driving controller.
func NewModel(controller *tracker.ListController) *Model {
	name := textinput.New()
	name.Placeholder = "Movie name"
	name.CharLimit = 200
	name.Prompt = "Name: "

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Prompt = "Release date: "

	movies := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	movies.Title = "🎬 Movies to Watch"
	movies.SetFilteringEnabled(false)
	movies.SetShowHelp(false)
	movies.SetStatusBarItemName("movie", "movies")

	return &Model{
		view:      ListView,
		tracker:   controller,
		movies:    movies,
		nameInput: name,
		dateInput: date,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init fetches the collection and starts the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tracker.Fetch(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.movies.SetSize(msg.Width-4, max(msg.Height-12, 4))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FormView:
			return m.handleFormKeys(msg)
		default:
			return m.handleListKeys(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tracker.FormResetMsg:
		m.nameInput.Reset()
		m.dateInput.Reset()
		m.setView(ListView)
		return m, nil

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateChildren(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder
	state := m.tracker.State()

	switch {
	case state.Loading && len(state.Movies) == 0:
		b.WriteString(styles.title.Render("🎬 Movies to Watch"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s Loading movies...\n", m.spinner.View())
	case len(state.Movies) == 0:
		b.WriteString(styles.title.Render("🎬 Movies to Watch"))
		b.WriteString("\n")
		b.WriteString("🎬 No movies to display.\n")
	default:
		b.WriteString(m.movies.View())
		b.WriteString("\n")
		if state.Loading {
			fmt.Fprintf(&b, "%s Loading movies...\n", m.spinner.View())
		}
	}

	if state.Error != "" {
		b.WriteString(styles.err.Render(state.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderForm())

	if line := m.renderNotice(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.tracker.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		return m, m.setView(FormView)
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if item, ok := m.selected(); ok {
			return m, m.apply(m.tracker.Toggle(item.movie.ID))
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.selected(); ok {
			return m, m.apply(m.tracker.Delete(item.movie.ID))
		}
		return m, nil
	case key.Matches(msg, m.keys.retry):
		if m.tracker.CanRetry() {
			return m, m.apply(m.tracker.Retry())
		}
		return m, m.apply(m.tracker.Fetch())
	}

	var cmd tea.Cmd
	m.movies, cmd = m.movies.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.tracker.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		return m, m.setView(ListView)
	case key.Matches(msg, m.keys.next):
		return m, m.focusField((m.focus + 1) % 2)
	case key.Matches(msg, m.keys.submit):
		m.tracker.SetForm(m.nameInput.Value(), m.dateInput.Value())
		cmd := m.tracker.Submit()
		if errs := m.tracker.Form().Errors; len(errs) > 0 {
			if _, ok := errs["movie_name"]; ok {
				return m, m.focusField(nameField)
			}
			return m, m.focusField(dateField)
		}
		return m, m.apply(cmd)
	}

	var cmd tea.Cmd
	if m.focus == nameField {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.dateInput, cmd = m.dateInput.Update(msg)
	}
	return m, cmd
}

// updateChildren hands msg to the controller, then to the widgets for their own timers.
func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.apply(m.tracker.Update(msg))}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	cmds = append(cmds, cmd)
	m.dateInput, cmd = m.dateInput.Update(msg)
	cmds = append(cmds, cmd)
	m.movies, cmd = m.movies.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgNoticeExpired:
		if seq, ok := msg.data.(int); ok && seq == m.noticeSeq && !m.tracker.Notice().Failed() {
			m.tracker.ClearNotice()
			m.notice = tracker.Notice{}
		}
	}
	return m, nil
}

// apply rebuilds the list from the controller after an operation and schedules notice expiry.
func (m *Model) apply(cmd tea.Cmd) tea.Cmd {
	cmds := []tea.Cmd{cmd, m.syncList()}

	if notice := m.tracker.Notice(); notice != m.notice {
		m.notice = notice
		m.noticeSeq++
		if notice.Message != "" && !notice.Failed() {
			seq := m.noticeSeq
			cmds = append(cmds, tea.Tick(NoticeTTL, func(time.Time) tea.Msg {
				return noticeExpiredMsg(seq)
			}))
		}
	}

	return tea.Batch(cmds...)
}

func (m *Model) syncList() tea.Cmd {
	controllers := m.tracker.Items()
	items := make([]list.Item, len(controllers))
	for i, c := range controllers {
		items[i] = newMovieItem(c)
	}
	return m.movies.SetItems(items)
}

func (m *Model) selected() (movieItem, bool) {
	item, ok := m.movies.SelectedItem().(movieItem)
	return item, ok
}

func (m *Model) setView(v ViewState) tea.Cmd {
	m.view = v
	if v == FormView {
		return m.focusField(m.focus)
	}
	m.nameInput.Blur()
	m.dateInput.Blur()
	return nil
}

func (m *Model) focusField(field int) tea.Cmd {
	m.focus = field
	if field == nameField {
		m.dateInput.Blur()
		return m.nameInput.Focus()
	}
	m.nameInput.Blur()
	return m.dateInput.Focus()
}

func (m *Model) renderForm() string {
	var b strings.Builder
	heading := styles.label.Render("Add a movie (press a)")
	if m.view == FormView {
		heading = styles.focused.Render("Add a movie")
	}
	b.WriteString(heading)
	b.WriteString("\n")

	form := m.tracker.Form()
	b.WriteString(m.nameInput.View())
	if msg, ok := form.Errors["movie_name"]; ok {
		b.WriteString("  " + styles.err.Render(msg))
	}
	b.WriteString("\n")
	b.WriteString(m.dateInput.View())
	if msg, ok := form.Errors["release_date"]; ok {
		b.WriteString("  " + styles.err.Render(msg))
	}

	if m.tracker.State().Adding {
		fmt.Fprintf(&b, "\n%s Adding...", m.spinner.View())
	}
	return b.String()
}

func (m *Model) renderNotice() string {
	notice := m.tracker.Notice()
	switch {
	case notice.Failed():
		return styles.err.Render(notice.Message) + " " + styles.help.Render("(r to retry)")
	case notice.Message != "":
		return styles.ok.Render(notice.Message)
	default:
		return ""
	}
}

func (m *Model) renderHelp() string {
	if m.view == FormView {
		return m.help.ShortHelpView(m.keys.formHelp())
	}
	return m.help.View(m.keys)
}
