package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/commands"
	"github.com/sandeepkv93/todolist/internal/model"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
		}
		m.syncSelection()
	case "down", "j":
		m.Tasks.Cursor++
		m.syncSelection()
	case "a", "i":
		m.Tasks.Adding = true
		m.Tasks.Input = ""
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "quick add: title !priority #category", IsError: false}
	case " ", "x":
		m.cycleSelectedStatus()
	case "p":
		m.cycleSelectedPriority()
	case "d", "delete":
		if task, ok := m.currentTask(); ok {
			m.repo.DeleteTask(m.ctx, task.ID)
			m.afterMutation()
		}
	case "s":
		m.repo.SetSortBy(m.repo.SortBy().Next())
		m.Status = StatusBar{Text: fmt.Sprintf("sorted by %s", m.repo.SortBy()), IsError: false}
		m.followTask(m.SelectedTaskID)
	case "f":
		m.cycleStatusFilter()
	case "c":
		m.repo.ClearFilters()
		m.Status = StatusBar{Text: "filters cleared", IsError: false}
		m.followTask(m.SelectedTaskID)
	}
	return m
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Tasks.Adding = false
		m.Tasks.Input = ""
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "quick add cancelled", IsError: false}
		return m
	case "enter":
		raw := strings.TrimSpace(m.quickAddInput.Value())
		m.Tasks.Adding = false
		m.Tasks.Input = ""
		m.quickAddInput.SetValue("")
		if raw == "" {
			return m
		}
		cmd, err := commands.Parse("add " + raw)
		if err != nil {
			m.setError(err)
			return m
		}
		if _, err := m.addTask(*cmd.Add); err != nil {
			m.setError(err)
		}
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
		m.Tasks.Input = m.quickAddInput.Value()
		return m
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	_ = cmd
	m.Tasks.Input = m.quickAddInput.Value()
	return m
}

// addTask creates a task from parsed quick-add arguments and selects it.
func (m *Model) addTask(a commands.AddArgs) (model.Task, error) {
	in := model.TaskInput{Title: a.Title, Priority: a.Priority}
	if a.Category != "" {
		cat, ok := m.repo.CategoryByName(a.Category)
		if !ok {
			return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category %q", a.Category)}
		}
		in.CategoryID = model.CategoryRef(cat.ID)
	}
	task, err := m.repo.AddTask(m.ctx, in)
	if err != nil {
		return model.Task{}, err
	}
	m.afterMutation()
	m.followTask(task.ID)
	return task, nil
}

func (m *Model) cycleSelectedStatus() {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	if _, err := m.repo.SetTaskStatus(m.ctx, task.ID, task.Status.Next()); err != nil {
		m.setError(err)
		return
	}
	m.afterMutation()
	m.followTask(task.ID)
}

func (m *Model) cycleSelectedPriority() {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	task.Priority = task.Priority.Next()
	if _, err := m.repo.UpdateTask(m.ctx, task); err != nil {
		m.setError(err)
		return
	}
	m.afterMutation()
	m.followTask(task.ID)
}

// cycleStatusFilter steps all -> not started -> in progress -> done -> all.
func (m *Model) cycleStatusFilter() {
	current := m.repo.Filters().Status
	var next *model.Status
	switch {
	case current == nil:
		s := model.Statuses[0]
		next = &s
	case *current != model.StatusDone:
		s := current.Next()
		next = &s
	}
	m.repo.SetFilters(model.FilterPatch{SetStatus: true, Status: next})
	label := "all"
	if next != nil {
		label = next.Label()
	}
	m.Status = StatusBar{Text: "status filter: " + label, IsError: false}
	m.syncSelection()
}
