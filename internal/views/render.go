package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme        string
	Header       string
	Tabs         []string
	ActiveTab    string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

// Styles is the set of lipgloss styles for one theme.
type Styles struct {
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
	Footer    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Done      lipgloss.Style
}

var (
	darkStyles = Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8")),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#9b87f5")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9b87f5")),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8")),
	}
	lightStyles = Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("240")),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("#7e69ab")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7e69ab")),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("244")),
	}
)

// StylesFor returns the styles for theme, falling back to light.
func StylesFor(theme string) Styles {
	if theme == "dark" {
		return darkStyles
	}
	return lightStyles
}

func RenderApp(data AppData) string {
	st := StylesFor(data.Theme)
	left := st.Panel.Width(58).Render(data.LeftPane)
	panes := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := st.Panel.Width(48).Render(data.RightPane)
		panes = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	lines := []string{st.Header.Render(data.Header)}
	if len(data.Tabs) > 0 {
		tabs := make([]string, 0, len(data.Tabs))
		for _, tab := range data.Tabs {
			if tab == data.ActiveTab {
				tabs = append(tabs, st.ActiveTab.Render(tab))
			} else {
				tabs = append(tabs, st.Tab.Render(tab))
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	}
	lines = append(lines, panes)
	if data.StatusLine != "" {
		if data.StatusError {
			lines = append(lines, st.Error.Render(data.StatusLine))
		} else {
			lines = append(lines, st.Status.Render(data.StatusLine))
		}
	}
	if data.Notification != "" {
		lines = append(lines, st.Panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, st.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the glamour style matching theme. On a
// render failure the raw markdown is returned.
func RenderMarkdown(md, theme string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if theme == "dark" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
