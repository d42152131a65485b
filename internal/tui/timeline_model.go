package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/viewmim/archivectl/internal/logging"
	"github.com/viewmim/archivectl/internal/pagecursor"
	"github.com/viewmim/archivectl/internal/tui/detail"
	listview "github.com/viewmim/archivectl/internal/tui/list"
)

// Default terminal dimensions used until the first WindowSizeMsg.
const (
	defaultWidth  = 100
	defaultHeight = 24

	// chromeHeight is the number of rows used by the title, status bar and input line.
	chromeHeight = 5

	textInputCharLimit = 64
)

// Key bindings.
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyEnter     = "enter"
	keyEsc       = "esc"
	keyNext      = "n"
	keyRight     = "right"
	keyPrev      = "p"
	keyLeft      = "left"
	keyJump      = "g"
	keyFilter    = "f"
	keySort      = "s"
	keyReload    = "r"
	keyBackspace = "backspace"
)

// ViewState is the screen the timeline shows.
type ViewState int

// Timeline screens.
const (
	ViewStateList ViewState = iota
	ViewStateJumpInput
	ViewStateFilterInput
	ViewStateDetail
	ViewStateQuitting
)

// TimelineConfig wires a TimelineModel to its data.
type TimelineConfig[T any] struct {
	// Title is shown above the list.
	Title string

	// Cursor resolves page navigation. Required.
	Cursor *pagecursor.Cursor[T]

	// RenderRow renders one list row. Required.
	RenderRow listview.RenderFunc[T]

	// ItemID identifies an item for the detail pane. Required with Detail.
	ItemID func(T) int

	// Detail loads and renders the detail pane of an item. Optional.
	Detail detail.LoadFunc[int, string]

	// Decorate completes the items of a resolved page, after the cursor has
	// settled on it. Pages fetched while searching for the last page are
	// never decorated. Optional.
	Decorate func(ctx context.Context, items []T) ([]T, error)

	// FilterName is the query filter edited with 'f'. Empty disables filtering.
	FilterName string

	// NormalizeFilter canonicalizes a non-empty filter value before it is
	// applied. A rejected value leaves the query and the page untouched. Optional.
	NormalizeFilter func(string) (string, error)

	// Sorts are cycled with 's'.
	Sorts []string

	// StartPage is the first page shown; values above 1 resolve through JumpTo.
	StartPage int
}

// navOp names the cursor operation a load runs.
type navOp int

const (
	opLoad navOp = iota
	opNext
	opPrev
	opJump
	opReload
)

// pageLoadedMsg carries the result of a cursor operation.
type pageLoadedMsg[T any] struct {
	seq    uint64
	op     navOp
	target int
	page   pagecursor.Page[T]
	state  pagecursor.State
	err    error

	// decorateErr is set when the page resolved but Decorate failed; the
	// undecorated items are shown.
	decorateErr error
}

// TimelineModel is a paged, filterable list backed by a pagecursor.Cursor.
// Navigation runs as tea.Cmds; results superseded by a query change are dropped.
//
//nolint:recvcheck // Bubble Tea models use value receivers for Update/View.
type TimelineModel[T any] struct {
	ctx context.Context
	cfg TimelineConfig[T]

	state  ViewState
	list   *listview.Model[T]
	detail detail.Model[int, string]

	input   textinput.Model
	spinner spinner.Model

	// loadSeq identifies the newest issued load; older results are ignored.
	loadSeq uint64
	loading bool

	position pagecursor.State
	notice   string
	err      error

	width  int
	height int
}

// NewTimelineModel creates a timeline. The first page loads on Init.
func NewTimelineModel[T any](ctx context.Context, cfg TimelineConfig[T]) (TimelineModel[T], error) {
	if cfg.Cursor == nil {
		return TimelineModel[T]{}, errors.New("timeline cursor is required")
	}
	if cfg.RenderRow == nil {
		return TimelineModel[T]{}, errors.New("timeline row renderer is required")
	}
	if cfg.Detail != nil && cfg.ItemID == nil {
		return TimelineModel[T]{}, errors.New("timeline detail requires ItemID")
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorSpinner)

	m := TimelineModel[T]{
		ctx:      ctx,
		cfg:      cfg,
		state:    ViewStateList,
		list:     listview.New(defaultHeight-chromeHeight, cfg.RenderRow),
		input:    newTextInput(),
		spinner:  sp,
		position: cfg.Cursor.State(),
		loadSeq:  1,
		loading:  true,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if cfg.Detail != nil {
		m.detail = detail.New(cfg.Detail)
	}
	return m, nil
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = textInputCharLimit
	ti.Width = textInputCharLimit / 2 //nolint:mnd // Visible width is half the limit.
	return ti
}

// Init starts the first page load.
func (m TimelineModel[T]) Init() tea.Cmd {
	op, target := opLoad, 1
	if m.cfg.StartPage > 1 {
		op, target = opJump, m.cfg.StartPage
	}
	return tea.Batch(m.spinner.Tick, m.navigate(m.loadSeq, op, target))
}

// navigate returns a command running op on the cursor.
func (m TimelineModel[T]) navigate(seq uint64, op navOp, target int) tea.Cmd {
	ctx, cursor, decorate := m.ctx, m.cfg.Cursor, m.cfg.Decorate
	return func() tea.Msg {
		var (
			page pagecursor.Page[T]
			err  error
		)
		switch op {
		case opNext:
			page, err = cursor.Next(ctx)
		case opPrev:
			page, err = cursor.Prev(ctx)
		case opJump:
			page, err = cursor.JumpTo(ctx, target)
		case opReload:
			page, err = cursor.Reload(ctx)
		default:
			page, err = cursor.LoadPage(ctx, target)
		}
		msg := pageLoadedMsg[T]{seq: seq, op: op, target: target, page: page, state: cursor.State(), err: err}

		if err == nil && decorate != nil && !page.Empty() {
			items, decErr := decorate(ctx, page.Items)
			if decErr != nil {
				msg.decorateErr = decErr
			} else {
				msg.page.Items = items
			}
		}
		return msg
	}
}

// startLoad issues op and marks the model as loading.
func (m TimelineModel[T]) startLoad(op navOp, target int) (TimelineModel[T], tea.Cmd) {
	m.loadSeq++
	m.loading = true
	m.notice = ""
	m.err = nil
	return m, m.navigate(m.loadSeq, op, target)
}

// Update handles messages (Bubble Tea interface).
func (m TimelineModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetHeight(msg.Height - chromeHeight)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pageLoadedMsg[T]:
		return m.handlePageLoaded(msg), nil
	case detail.LoadedMsg[int, string]:
		m.detail = m.detail.Update(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	switch m.state {
	case ViewStateJumpInput:
		return m.handleJumpInput(msg)
	case ViewStateFilterInput:
		return m.handleFilterInput(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	default:
		return m, nil
	}
}

func (m TimelineModel[T]) handlePageLoaded(msg pageLoadedMsg[T]) TimelineModel[T] {
	log := logging.FromContext(m.ctx)

	if errors.Is(msg.err, pagecursor.ErrSuperseded) {
		log.Debug().Msg("dropping superseded page result")
		return m
	}
	if msg.seq != m.loadSeq {
		return m
	}

	m.loading = false
	m.position = msg.state

	switch {
	case errors.Is(msg.err, pagecursor.ErrNoNextPage):
		m.notice = "Already on the last page"
		return m
	case errors.Is(msg.err, pagecursor.ErrNoPrevPage):
		m.notice = "Already on the first page"
		return m
	case msg.err != nil:
		log.Warn().Err(msg.err).Msg("page load failed")
		m.err = msg.err
		return m
	}

	m.list.SetItems(msg.page.Items)
	if msg.decorateErr != nil {
		log.Warn().Err(msg.decorateErr).Int("page", msg.page.Number).Msg("page details failed to load")
		m.err = msg.decorateErr
	}
	switch {
	case msg.page.Empty():
		m.notice = "Nothing to show"
	case msg.op == opJump && msg.page.Number != msg.target:
		m.notice = fmt.Sprintf("Page %d does not exist, showing the last page (%d)", msg.target, msg.page.Number)
	}
	return m
}

func (m TimelineModel[T]) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyNext, keyRight:
		return m.startLoad(opNext, 0)
	case keyPrev, keyLeft:
		return m.startLoad(opPrev, 0)
	case keyReload:
		return m.startLoad(opReload, 0)
	case keyJump:
		m.state = ViewStateJumpInput
		m.input.Placeholder = "page number"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case keyFilter:
		if m.cfg.FilterName == "" {
			return m, nil
		}
		m.state = ViewStateFilterInput
		m.input.Placeholder = m.cfg.FilterName
		m.input.SetValue(m.cfg.Cursor.Query().Filter(m.cfg.FilterName))
		m.input.Focus()
		return m, textinput.Blink
	case keySort:
		return m.cycleSort()
	case keyEnter:
		return m.openDetail()
	default:
		m.list.Update(keyMsg)
		return m, nil
	}
}

func (m TimelineModel[T]) handleJumpInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.state = ViewStateList
			m.input.Blur()
			return m, nil
		case keyEnter:
			m.state = ViewStateList
			m.input.Blur()
			target, err := pagecursor.ParsePageNumber(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			return m.startLoad(opJump, target)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TimelineModel[T]) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.state = ViewStateList
			m.input.Blur()
			return m, nil
		case keyEnter:
			m.state = ViewStateList
			m.input.Blur()
			value := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if value != "" && m.cfg.NormalizeFilter != nil {
				normalized, err := m.cfg.NormalizeFilter(value)
				if err != nil {
					m.err = err
					return m, nil
				}
				value = normalized
			}
			return m.applyQuery(m.cfg.Cursor.Query().WithFilter(m.cfg.FilterName, value))
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyQuery switches the cursor to q and loads page 1 when the query changed.
func (m TimelineModel[T]) applyQuery(q pagecursor.Query) (tea.Model, tea.Cmd) {
	changed, err := m.cfg.Cursor.SetQuery(q)
	if err != nil {
		m.err = err
		return m, nil
	}
	if !changed {
		return m, nil
	}
	m.position = m.cfg.Cursor.State()
	return m.startLoad(opLoad, 1)
}

func (m TimelineModel[T]) cycleSort() (tea.Model, tea.Cmd) {
	if len(m.cfg.Sorts) < 2 { //nolint:mnd // Cycling needs two options.
		return m, nil
	}
	q := m.cfg.Cursor.Query()
	next := m.cfg.Sorts[0]
	if i := slices.Index(m.cfg.Sorts, q.Sort); i >= 0 {
		next = m.cfg.Sorts[(i+1)%len(m.cfg.Sorts)]
	}
	return m.applyQuery(q.WithSort(next))
}

func (m TimelineModel[T]) openDetail() (tea.Model, tea.Cmd) {
	if m.cfg.Detail == nil {
		return m, nil
	}
	item, ok := m.list.SelectedItem()
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Open(m.ctx, m.cfg.ItemID(item))
	m.state = ViewStateDetail
	return m, cmd
}

func (m TimelineModel[T]) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc, keyBackspace:
		m.detail = m.detail.Close()
		m.state = ViewStateList
		return m, nil
	case keyReload:
		if m.detail.State() == detail.StateError || m.detail.State() == detail.StateLoaded {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Retry(m.ctx)
			return m, cmd
		}
	}
	return m, nil
}

// State returns the screen being shown.
func (m TimelineModel[T]) State() ViewState {
	return m.state
}

// Position returns the cursor position as of the last applied result.
func (m TimelineModel[T]) Position() pagecursor.State {
	return m.position
}

// Items returns the items of the page on screen.
func (m TimelineModel[T]) Items() []T {
	return m.list.Items()
}

// Loading reports whether a navigation is pending.
func (m TimelineModel[T]) Loading() bool {
	return m.loading
}

// Err returns the last navigation error.
func (m TimelineModel[T]) Err() error {
	return m.err
}

// Notice returns the last informational message.
func (m TimelineModel[T]) Notice() string {
	return m.notice
}
