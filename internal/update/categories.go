package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/model"
)

func (m Model) handleCategoriesKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Categories.Cursor > 0 {
			m.Categories.Cursor--
		}
		m.syncSelection()
	case "down", "j":
		m.Categories.Cursor++
		m.syncSelection()
	case "a", "i":
		m.Categories.Adding = true
		m.Categories.Input = ""
		m.categoryInput.Focus()
		m.Status = StatusBar{Text: "new category: name #color", IsError: false}
	case "d", "delete":
		if cat, ok := m.currentCategory(); ok {
			m.repo.DeleteCategory(m.ctx, cat.ID)
			m.afterMutation()
		}
	case "enter":
		if cat, ok := m.currentCategory(); ok {
			m.repo.SetFilters(model.FilterPatch{SetCategoryID: true, CategoryID: model.CategoryRef(cat.ID)})
			m.Tasks.Cursor = 0
			m.switchView(ViewTasks)
			m.Status = StatusBar{Text: fmt.Sprintf("showing tasks in %s", cat.Name), IsError: false}
		}
	}
	return m
}

func (m Model) handleCategoryInputKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Categories.Adding = false
		m.Categories.Input = ""
		m.categoryInput.Blur()
		return m
	case "enter":
		raw := strings.TrimSpace(m.categoryInput.Value())
		m.Categories.Adding = false
		m.Categories.Input = ""
		m.categoryInput.SetValue("")
		if raw == "" {
			return m
		}
		in := parseCategoryInput(raw)
		cat, err := m.repo.AddCategory(m.ctx, in)
		if err != nil {
			m.setError(err)
			return m
		}
		m.afterMutation()
		for i, c := range m.repo.Categories() {
			if c.ID == cat.ID {
				m.Categories.Cursor = i
			}
		}
		m.syncSelection()
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.categoryInput.SetValue(m.categoryInput.Value() + string(msg.Runes))
		m.Categories.Input = m.categoryInput.Value()
		return m
	}
	var cmd tea.Cmd
	m.categoryInput, cmd = m.categoryInput.Update(msg)
	_ = cmd
	m.Categories.Input = m.categoryInput.Value()
	return m
}

// parseCategoryInput splits "Home Projects #00ff00" into a name and a trailing color.
func parseCategoryInput(raw string) model.CategoryInput {
	fields := strings.Fields(raw)
	if n := len(fields); n > 1 && strings.HasPrefix(fields[n-1], "#") {
		return model.CategoryInput{Name: strings.Join(fields[:n-1], " "), Color: fields[n-1]}
	}
	return model.CategoryInput{Name: strings.Join(fields, " ")}
}
