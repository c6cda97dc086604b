package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/curanet/careadm/internal/guard"
	"github.com/curanet/careadm/internal/listing"
)

func (m *Model) View() string {
	var body string
	switch m.screen {
	case guard.ScreenLogin:
		body = m.viewLogin()
	case guard.ScreenPicker:
		body = m.viewPicker()
	default:
		body = m.viewBrowser()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), body, m.viewFooter())
}

func (m *Model) viewHeader() string {
	parts := []string{m.styles.Title.Render("careadm")}
	if user := m.session.CurrentUser(); user != nil {
		parts = append(parts, m.styles.Muted.Render(
			fmt.Sprintf("%s (%s)", fullName(user.FirstName, user.LastName), user.Role)))
	}
	if selected := m.residence.Selected(); selected != nil {
		parts = append(parts, m.styles.FilterOn.Render(selected.Name))
	}
	return m.styles.Header.Render(strings.Join(parts, "  "))
}

func (m *Model) viewFooter() string {
	var hints string
	switch m.screen {
	case guard.ScreenLogin:
		hints = "enter submit · tab switch field · ctrl+c quit"
	case guard.ScreenPicker:
		hints = "enter select · / filter · ctrl+c quit"
	default:
		if m.filterLevel != nil {
			hints = "enter apply · esc close"
		} else if m.searchFocused {
			hints = "enter apply · esc cancel"
		} else {
			hints = "tab entity · / search · 1-4 filters · ←/→ page · s sort · x delete · r reset · p residence · ctrl+l sign out · q quit"
		}
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = m.styles.Error.Render(m.status)
		} else {
			status = m.styles.Success.Render(m.status)
		}
	}
	return m.styles.Footer.Render(strings.TrimSpace(status + "  " + hints))
}

func (m *Model) viewLogin() string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Sign in"),
		"",
		m.styles.Label.Render("Email"),
		m.email.View(),
		"",
		m.styles.Label.Render("Password"),
		m.password.View(),
	)
	return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center,
		m.styles.Box.Render(form))
}

func (m *Model) viewPicker() string {
	return m.picker.View()
}

func (m *Model) viewBrowser() string {
	if m.filterLevel != nil {
		return m.filterPicker.View()
	}

	tabs := make([]string, 0, len(entityOrder))
	for _, kind := range entityOrder {
		label := kind.title()
		if kind == m.entity {
			tabs = append(tabs, m.styles.FilterOn.Render("["+label+"]"))
		} else {
			tabs = append(tabs, m.styles.Muted.Render(label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		" "+strings.Join(tabs, "  "),
		" "+m.viewFilterBar(),
		" "+m.search.View(),
		m.table.View(),
		" "+m.viewPageLine(),
	)
}

// viewFilterBar renders the cascade state: every applicable level with its
// selected option's name, or "all" when unset.
func (m *Model) viewFilterBar() string {
	ctrl := m.controller()
	depth := m.entity.filterDepth()
	parts := make([]string, 0, int(depth)+1)
	for level := listing.LevelResidence; level <= depth; level++ {
		id := filterAt(ctrl.Filters(), level)
		label := "all"
		if id != "" {
			label = id
			for _, opt := range ctrl.Options(optionConcern(level)) {
				if opt.ID == id {
					label = opt.Name
					break
				}
			}
		}
		key := fmt.Sprintf("%d", int(level)+1)
		rendered := m.styles.Label.Render(key+" "+level.String()+":") + " "
		if id != "" {
			rendered += m.styles.FilterOn.Render(label)
		} else {
			rendered += m.styles.Muted.Render(label)
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, "   ")
}

func (m *Model) viewPageLine() string {
	ctrl := m.controller()
	if ctrl.Loading(listing.ConcernListing) {
		return m.styles.Muted.Render("loading...")
	}
	total := ctrl.TotalPages()
	if total < 1 {
		total = 1
	}
	return m.styles.Muted.Render(
		fmt.Sprintf("page %d of %d · %d total", ctrl.Page(), total, ctrl.Total()))
}
