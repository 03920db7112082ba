package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.Tasks.Adding && m.CurrentView == ViewTasks {
			return m.handleQuickAddKey(typed), nil
		}
		if m.Categories.Adding && m.CurrentView == ViewCategories {
			return m.handleCategoryInputKey(typed), nil
		}
		if m.Settings.ConfirmReset && m.CurrentView == ViewSettings {
			return m.handleResetConfirmKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.switchView(ViewTasks)
			return m, nil
		case m.Keys.Categories:
			m.switchView(ViewCategories)
			return m, nil
		case m.Keys.Statistics:
			m.switchView(ViewStatistics)
			return m, nil
		case m.Keys.Settings:
			m.switchView(ViewSettings)
			return m, nil
		case "tab":
			m.switchView(nextView(m.CurrentView))
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			m.persistUIState()
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewCategories:
			return m.handleCategoriesKey(typed), nil
		case ViewStatistics:
			return m.handleStatisticsKey(typed), nil
		case ViewSettings:
			return m.handleSettingsKey(typed), nil
		}
	case tea.WindowSizeMsg:
		if typed.Width > 0 {
			m.detailViewport.Width = max(30, typed.Width/2-8)
		}
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) switchView(v View) {
	m.CurrentView = v
	m.Settings.ConfirmReset = false
	m.syncSelection()
}

func nextView(v View) View {
	for i, candidate := range Views {
		if candidate == v {
			return Views[(i+1)%len(Views)]
		}
	}
	return ViewTasks
}

// afterMutation surfaces repository signals and re-clamps selection.
func (m *Model) afterMutation() {
	m.drainSignals()
	m.syncSelection()
}

// drainSignals turns pending repository signals into toasts. An error in the
// batch keeps the status bar even when a success signal follows it.
func (m *Model) drainSignals() {
	failed := false
	for _, sig := range m.signals.Drain() {
		body := sig.Message()
		if sig.IsError() || !failed {
			m.Status = StatusBar{Text: body, IsError: sig.IsError()}
			failed = failed || sig.IsError()
		}
		if sig.Err != nil {
			m.LastError = sig.Err
			m.log.Debug("repository signal", zap.String("message", body), zap.Error(sig.Err))
		}
		m.notify(sig.Title(), body, string(sig.Level))
	}
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
}

func (m Model) View() string {
	m.syncBubbleData()
	var status string
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}
	left, right := "", ""
	switch m.CurrentView {
	case ViewTasks:
		left = m.renderTasksView()
		right = m.renderTaskDetailPane()
	case ViewCategories:
		left = m.renderCategoriesView()
	case ViewStatistics:
		left = m.renderStatisticsView()
	case ViewSettings:
		left = m.renderSettingsView()
	}
	right = strings.TrimSpace(strings.Join([]string{right, m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n\n"))
	return m.renderApp(left, right, status)
}
