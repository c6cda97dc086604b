// Package console hosts the interactive terminal console: a Bubble Tea
// program wiring the session holder, the residence context, and one
// listing controller per browsable entity behind three screens (login,
// residence picker, entity browser).
package console

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/curanet/careadm/internal/guard"
	"github.com/curanet/careadm/internal/listing"
	"github.com/curanet/careadm/internal/residence"
	"github.com/curanet/careadm/internal/session"
	"github.com/curanet/careadm/pkg/config"
	"github.com/curanet/careadm/pkg/logger"
)

const screenBrowser guard.Screen = "browser"

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Params carries the dependencies of the console model.
type Params struct {
	Config    *config.Config
	Logger    *logger.Logger
	Session   *session.Holder
	Residence *residence.Context
	Backend   backend
	Theme     Theme
}

// Model is the Bubble Tea model of the console.
type Model struct {
	cfg       *config.Config
	logg      *logger.Logger
	session   *session.Holder
	residence *residence.Context
	backend   backend
	styles    Styles

	screen guard.Screen
	entity entityKind

	controllers map[entityKind]*listing.Controller[table.Row]

	// login screen
	email      textinput.Model
	password   textinput.Model
	loginFocus int
	loggingIn  bool

	// residence picker
	picker list.Model

	// browser screen
	table         table.Model
	rowIDs        []string
	search        textinput.Model
	searchFocused bool
	searchSeq     int
	debounce      *listing.Debouncer
	send          func(tea.Msg)
	filterLevel   *listing.Level
	filterPicker  list.Model

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the console model. All dependencies are required.
func New(params Params) (*Model, error) {
	if params.Config == nil {
		return nil, fmt.Errorf("console: config is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("console: logger is required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("console: session holder is required")
	}
	if params.Residence == nil {
		return nil, fmt.Errorf("console: residence context is required")
	}
	if params.Backend == nil {
		return nil, fmt.Errorf("console: backend is required")
	}

	styles := NewStyles(params.Theme)

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 120

	controllers := make(map[entityKind]*listing.Controller[table.Row], len(entityOrder))
	for _, kind := range entityOrder {
		opts := []listing.ControllerOption[table.Row]{
			listing.WithPageSize[table.Row](params.Config.Listing.PageSize),
		}
		if parent := kind.scopedParent(); parent != nil {
			opts = append(opts, listing.WithScopedParent[table.Row](*parent))
		}
		controllers[kind] = listing.NewController(opts...)
	}

	m := &Model{
		cfg:         params.Config,
		logg:        params.Logger,
		session:     params.Session,
		residence:   params.Residence,
		backend:     params.Backend,
		styles:      styles,
		entity:      entityResidents,
		controllers: controllers,
		email:       email,
		password:    password,
		search:      search,
		debounce:    listing.NewDebouncer(params.Config.Listing.SearchDebounce),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.rebuildTable()

	// The API client clears the session on a rejected token; the hook turns
	// that into an event so the loop reroutes even when the clearing did not
	// come through a key binding.
	params.Session.SetLogoutHook(func() { m.notify(sessionEndedMsg{}) })
	return m, nil
}

// SetNotifier registers the program's Send function so the search
// debouncer can deliver its quiet-period message into the event loop.
func (m *Model) SetNotifier(send func(tea.Msg)) {
	m.send = send
}

func (m *Model) notify(msg tea.Msg) {
	if m.send != nil {
		m.send(msg)
	}
}

// Init routes to the first screen. An authenticated session goes straight
// to profile reconciliation and residence loading; everything else lands
// on login.
func (m *Model) Init() tea.Cmd {
	m.screen = guard.Route(m.session, m.residence, screenBrowser)
	if m.screen == guard.ScreenLogin {
		return textinput.Blink
	}
	return tea.Batch(m.reconcileCmd(), m.loadResidencesCmd())
}

// controller returns the active entity's listing controller.
func (m *Model) controller() *listing.Controller[table.Row] {
	return m.controllers[m.entity]
}

func (m *Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cfg.API.Timeout)
}

// route re-evaluates the guard and swaps screens when it lands somewhere
// new. Entering the browser boots the active controller; entering the
// picker populates it from the visible residences.
func (m *Model) route() tea.Cmd {
	target := guard.Route(m.session, m.residence, screenBrowser)
	if target == m.screen {
		return nil
	}
	m.screen = target

	switch target {
	case guard.ScreenLogin:
		m.password.SetValue("")
		m.loginFocus = 0
		m.email.Focus()
		m.password.Blur()
		return textinput.Blink
	case guard.ScreenPicker:
		m.rebuildPicker()
		return nil
	default:
		return m.enterBrowser()
	}
}

// enterBrowser resets the active controller and fires its initial fetches:
// the residence options plus the first listing page.
func (m *Model) enterBrowser() tea.Cmd {
	ctrl := m.controller()
	ctrl.ResetAll()
	reqs := ctrl.Init()
	m.rowIDs = nil
	m.search.SetValue("")
	m.searchFocused = false
	m.rebuildTable()
	return m.runRequests(m.entity, reqs)
}

func (m *Model) rebuildTable() {
	columns := m.entity.columns(m.width - 6)
	height := m.height - 10
	if height < 5 {
		height = 5
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.controller().Rows()),
		table.WithHeight(height),
		table.WithFocused(!m.searchFocused),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.styles.Theme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(m.styles.Theme.Primary)
	s.Selected = s.Selected.
		Foreground(m.styles.Theme.Foreground).
		Background(m.styles.Theme.Border).
		Bold(false)
	t.SetStyles(s)
	m.table = t
}

func (m *Model) rebuildPicker() {
	items := make([]list.Item, 0, len(m.residence.Visible()))
	for _, r := range m.residence.Visible() {
		items = append(items, pickItem{id: r.ID, title: r.Name, desc: r.City})
	}
	m.picker = newPickList("Select a residence", items, m.width, m.height)
}

// openFilterPicker shows the option list of one filter level.
func (m *Model) openFilterPicker(level listing.Level) {
	concern := optionConcern(level)
	opts := m.controller().Options(concern)
	items := make([]list.Item, 0, len(opts)+1)
	items = append(items, pickItem{id: "", title: "(all)", desc: "clear this filter"})
	for _, opt := range opts {
		items = append(items, pickItem{id: opt.ID, title: opt.Name})
	}
	m.filterLevel = &level
	m.filterPicker = newPickList("Filter by "+level.String(), items, m.width, m.height)
}

func optionConcern(level listing.Level) listing.Concern {
	switch level {
	case listing.LevelResidence:
		return listing.ConcernResidences
	case listing.LevelFloor:
		return listing.ConcernFloors
	case listing.LevelRoom:
		return listing.ConcernRooms
	default:
		return listing.ConcernBeds
	}
}

func newPickList(title string, items []list.Item, width, height int) list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, width-4, height-8)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	return l
}

// pickItem is a list entry for the residence and filter pickers.
type pickItem struct {
	id    string
	title string
	desc  string
}

func (i pickItem) Title() string       { return i.title }
func (i pickItem) Description() string { return i.desc }
func (i pickItem) FilterValue() string { return i.title }

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}
