package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/curanet/careadm/pkg/enums"
)

// Theme holds the active color scheme. The preference is persisted in the
// keystore and survives restarts.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#e8eaed"),
		Primary:    lipgloss.Color("#64b5f6"),
		Accent:     lipgloss.Color("#81c784"),
		Muted:      lipgloss.Color("#6b7280"),
		Border:     lipgloss.Color("#374151"),
		IsDark:     true,
	}
}

func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#1f2937"),
		Primary:    lipgloss.Color("#1565c0"),
		Accent:     lipgloss.Color("#2e7d32"),
		Muted:      lipgloss.Color("#9ca3af"),
		Border:     lipgloss.Color("#d1d5db"),
		IsDark:     false,
	}
}

// ThemeFor maps the persisted preference to a scheme. Unset or unknown
// preferences fall back to dark.
func ThemeFor(pref enums.Theme) Theme {
	if pref == enums.ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

var (
	colorError   = lipgloss.Color("#e57373")
	colorSuccess = lipgloss.Color("#81c784")
)

// Styles holds the styled components derived from a Theme.
type Styles struct {
	Theme Theme

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	FilterOn lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Box      lipgloss.Style
}

func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Bold(true),

		FilterOn: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(colorSuccess),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
	}
}
