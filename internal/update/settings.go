package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/model"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Settings.Cursor > 0 {
			m.Settings.Cursor--
		}
	case "down", "j":
		if m.Settings.Cursor < settingCount-1 {
			m.Settings.Cursor++
		}
	case "t":
		m.toggleTheme()
	case "enter", " ":
		switch m.Settings.Cursor {
		case settingTheme:
			m.toggleTheme()
		case settingDefaultSort:
			s := m.repo.Settings()
			s.DefaultSort = s.DefaultSort.Next()
			m.updateSettings(s)
		case settingReset:
			m.Settings.ConfirmReset = true
			m.Status = StatusBar{Text: "confirm reset with y, cancel with n", IsError: false}
		}
	}
	return m
}

func (m Model) handleResetConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		m.Settings.ConfirmReset = false
		m.resetAllData()
	case "n", "N", "esc":
		m.Settings.ConfirmReset = false
		m.Status = StatusBar{Text: "reset cancelled", IsError: false}
	}
	return m
}

func (m *Model) toggleTheme() {
	s := m.repo.Settings()
	s.Theme = s.Theme.Toggle()
	m.updateSettings(s)
}

func (m *Model) resetAllData() {
	m.repo.ResetAllData(m.ctx)
	m.Tasks.Cursor = 0
	m.Categories.Cursor = 0
	m.afterMutation()
}

func (m *Model) updateSettings(s model.Settings) {
	if err := m.repo.UpdateSettings(m.ctx, s); err != nil {
		m.setError(err)
		return
	}
	m.afterMutation()
}
