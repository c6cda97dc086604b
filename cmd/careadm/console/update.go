package console

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/curanet/careadm/internal/guard"
	"github.com/curanet/careadm/internal/listing"
	"github.com/curanet/careadm/pkg/enums"
	pkgerrors "github.com/curanet/careadm/pkg/errors"
)

// Update is the single event loop of the console. Every backend response
// arrives here as a tagged message and is reconciled through the owning
// controller, so out-of-order responses are discarded centrally.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		if m.screen == guard.ScreenPicker {
			m.picker.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.setStatus(errorText(msg.err), true)
			return m, nil
		}
		m.setStatus("signed in", false)
		return m, tea.Batch(m.reconcileCmd(), m.loadResidencesCmd())

	case profileMsg:
		// The profile and the residences load concurrently and either one
		// can land last carrying the fact the guard needs (the role here,
		// the visible list there), so both re-route. A failure re-routes
		// too, in case the reconcile cleared the session.
		if msg.err != nil {
			m.setStatus(errorText(msg.err), true)
		}
		return m, m.route()

	case residencesLoadedMsg:
		if msg.err != nil {
			m.setStatus(errorText(msg.err), true)
			if pkgerrors.IsCode(msg.err, pkgerrors.CodeUnauthorized) {
				return m, m.route()
			}
			return m, nil
		}
		if cmd := m.route(); cmd != nil || m.screen != screenBrowser {
			return m, cmd
		}
		// Already on the browser (session restored at startup): boot the
		// active controller now that the residence scope is known.
		return m, m.enterBrowser()

	case residenceSelectedMsg:
		if msg.err != nil {
			m.setStatus(errorText(msg.err), true)
			return m, nil
		}
		return m, m.route()

	case optionsMsg:
		ctrl := m.controllers[msg.kind]
		if msg.err != nil {
			ctrl.ApplyOptionsError(msg.concern, msg.gen)
			m.setStatus(errorText(msg.err), true)
			return m, m.maybeForceLogin(msg.err)
		}
		ctrl.ApplyOptions(msg.concern, msg.gen, msg.options)
		return m, nil

	case listingMsg:
		ctrl := m.controllers[msg.kind]
		if msg.err != nil {
			cleared := ctrl.ApplyListingError(msg.gen, msg.err)
			if cleared {
				m.setStatus("selection no longer exists, filter cleared", true)
			} else {
				m.setStatus(errorText(msg.err), true)
			}
			if msg.kind == m.entity {
				m.table.SetRows(ctrl.Rows())
				if cleared {
					m.rowIDs = nil
				}
			}
			return m, m.maybeForceLogin(msg.err)
		}
		applied := ctrl.ApplyListing(msg.gen, msg.rows, msg.total)
		if msg.kind == m.entity {
			m.table.SetRows(ctrl.Rows())
			if applied {
				m.rowIDs = msg.ids
			}
		}
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.setStatus(errorText(msg.err), true)
			return m, m.maybeForceLogin(msg.err)
		}
		m.setStatus("deleted", false)
		if msg.kind != m.entity {
			return m, nil
		}
		// Reload the current page so the table and the total reflect the
		// removal. The controller bumps the generation, so a slow earlier
		// fetch cannot resurrect the deleted row.
		ctrl := m.controller()
		return m, m.runRequests(m.entity, ctrl.SetPagination(ctrl.Page(), ctrl.Size()))

	case searchDebouncedMsg:
		if msg.seq != m.searchSeq || msg.kind != m.entity {
			return m, nil
		}
		reqs := m.controller().SetSearch(m.search.Value())
		return m, m.runRequests(m.entity, reqs)

	case sessionEndedMsg:
		m.setStatus("signed out", false)
		return m, m.route()
	}

	return m, m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case guard.ScreenLogin:
		return m.handleLoginKey(msg)
	case guard.ScreenPicker:
		return m.handlePickerKey(msg)
	default:
		return m.handleBrowserKey(msg)
	}
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.email.Focus()
			m.password.Blur()
		} else {
			m.password.Focus()
			m.email.Blur()
		}
		return m, textinput.Blink

	case tea.KeyEnter:
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.password.Focus()
			m.email.Blur()
			return m, textinput.Blink
		}
		if m.loggingIn {
			return m, nil
		}
		m.loggingIn = true
		m.setStatus("signing in...", false)
		return m, m.loginCmd(m.email.Value(), m.password.Value())
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter && !m.picker.SettingFilter() {
		item, ok := m.picker.SelectedItem().(pickItem)
		if !ok {
			return m, nil
		}
		return m, m.selectResidenceCmd(item.id)
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A filter picker overlays the table until a choice or escape.
	if m.filterLevel != nil {
		return m.handleFilterPickerKey(msg)
	}

	if m.searchFocused {
		switch msg.Type {
		case tea.KeyEsc:
			m.searchFocused = false
			m.search.Blur()
			m.table.Focus()
			return m, nil
		case tea.KeyEnter:
			m.searchFocused = false
			m.search.Blur()
			m.table.Focus()
			reqs := m.controller().SetSearch(m.search.Value())
			return m, m.runRequests(m.entity, reqs)
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.searchSeq++
		seq, kind := m.searchSeq, m.entity
		m.debounce.Trigger(func() {
			m.notify(searchDebouncedMsg{kind: kind, seq: seq})
		})
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searchFocused = true
		m.table.Blur()
		return m, m.search.Focus()

	case "tab":
		m.entity = nextEntity(m.entity)
		return m, m.enterBrowser()

	case "shift+tab":
		m.entity = prevEntity(m.entity)
		return m, m.enterBrowser()

	case "1", "2", "3", "4":
		level := listing.Level(int(msg.String()[0] - '1'))
		if level > m.entity.filterDepth() {
			return m, nil
		}
		if level > listing.LevelResidence && filterAt(m.controller().Filters(), level-1) == "" {
			m.setStatus("select the "+(level-1).String()+" filter first", true)
			return m, nil
		}
		m.openFilterPicker(level)
		return m, nil

	case "left", "h":
		if page := m.controller().Page(); page > 1 {
			reqs := m.controller().SetPagination(page-1, m.controller().Size())
			return m, m.runRequests(m.entity, reqs)
		}
		return m, nil

	case "right", "l":
		ctrl := m.controller()
		if ctrl.Page() < ctrl.TotalPages() {
			reqs := ctrl.SetPagination(ctrl.Page()+1, ctrl.Size())
			return m, m.runRequests(m.entity, reqs)
		}
		return m, nil

	case "s":
		dir := enums.SortAsc
		if m.controller().Filters().SortDir == enums.SortAsc {
			dir = enums.SortDesc
		}
		reqs := m.controller().SetSort("name", dir)
		return m, m.runRequests(m.entity, reqs)

	case "x":
		cursor := m.table.Cursor()
		if cursor < 0 || cursor >= len(m.rowIDs) {
			return m, nil
		}
		m.setStatus("deleting...", false)
		return m, m.deleteCmd(m.entity, m.rowIDs[cursor])

	case "r":
		return m, m.runRequests(m.entity, m.controller().Reset())

	case "p":
		m.screen = guard.ScreenPicker
		m.rebuildPicker()
		return m, nil

	case "ctrl+l":
		m.session.Logout()
		return m, func() tea.Msg { return sessionEndedMsg{} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleFilterPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc && !m.filterPicker.SettingFilter() {
		m.filterLevel = nil
		return m, nil
	}
	if msg.Type == tea.KeyEnter && !m.filterPicker.SettingFilter() {
		item, ok := m.filterPicker.SelectedItem().(pickItem)
		if !ok {
			return m, nil
		}
		level := *m.filterLevel
		m.filterLevel = nil

		var reqs []listing.Request
		switch level {
		case listing.LevelResidence:
			reqs = m.controller().SetResidence(item.id)
		case listing.LevelFloor:
			reqs = m.controller().SetFloor(item.id)
		case listing.LevelRoom:
			reqs = m.controller().SetRoom(item.id)
		default:
			reqs = m.controller().SetBed(item.id)
		}
		return m, m.runRequests(m.entity, reqs)
	}
	var cmd tea.Cmd
	m.filterPicker, cmd = m.filterPicker.Update(msg)
	return m, cmd
}

// updateFocused forwards non-key messages (blink ticks and the like) to
// whichever component is active.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.screen {
	case guard.ScreenLogin:
		if m.loginFocus == 0 {
			m.email, cmd = m.email.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
	case guard.ScreenPicker:
		m.picker, cmd = m.picker.Update(msg)
	default:
		if m.searchFocused {
			m.search, cmd = m.search.Update(msg)
		}
	}
	return cmd
}

// maybeForceLogin re-routes after a fetch failed with an auth rejection.
// The client's unauthorized hook has already cleared the session by the
// time the message lands here.
func (m *Model) maybeForceLogin(err error) tea.Cmd {
	if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		return m.route()
	}
	return nil
}

func nextEntity(e entityKind) entityKind {
	return entityOrder[(int(e)+1)%len(entityOrder)]
}

func prevEntity(e entityKind) entityKind {
	return entityOrder[(int(e)+len(entityOrder)-1)%len(entityOrder)]
}

func errorText(err error) string {
	if domainErr := pkgerrors.As(err); domainErr != nil {
		return domainErr.Message()
	}
	return err.Error()
}

func filterAt(f listing.Filters, level listing.Level) string {
	switch level {
	case listing.LevelResidence:
		return f.ResidenceID
	case listing.LevelFloor:
		return f.FloorID
	case listing.LevelRoom:
		return f.RoomID
	default:
		return f.BedID
	}
}
