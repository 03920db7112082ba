package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/views"
)

const timeLayout = "2006-01-02 15:04"

func (m Model) renderApp(left, right, status string) string {
	tabs := make([]string, 0, len(Views))
	for i, v := range Views {
		tabs = append(tabs, fmt.Sprintf("%d %s", i+1, v))
	}
	active := ""
	for i, v := range Views {
		if v == m.CurrentView {
			active = tabs[i]
		}
	}
	return views.RenderApp(views.AppData{
		Theme:        string(m.theme()),
		Header:       fmt.Sprintf("todolist | view: %s | selected: %s", m.CurrentView, m.SelectedTaskID),
		Tabs:         tabs,
		ActiveTab:    active,
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s-%s views | / palette | %s help | %s quit", m.Keys.Tasks, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) categoryNames() map[string]model.Category {
	out := make(map[string]model.Category)
	for _, c := range m.repo.Categories() {
		out[c.ID] = c
	}
	return out
}

func (m Model) renderTasksView() string {
	cats := m.categoryNames()
	tasks := m.repo.FilteredTasks()
	rows := make([]views.TaskRowData, 0, len(tasks))
	for _, t := range tasks {
		row := views.TaskRowData{
			ID:       t.ID,
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			Done:     t.Status == model.StatusDone,
		}
		if t.CategoryID != nil {
			if c, ok := cats[*t.CategoryID]; ok {
				row.Category = c.Name
				row.Color = c.Color
			}
		}
		rows = append(rows, row)
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Theme:      string(m.theme()),
		QuickAdd:   m.quickAddInput.View(),
		Adding:     m.Tasks.Adding,
		Rows:       rows,
		SelectedID: m.SelectedTaskID,
		SortBy:     string(m.repo.SortBy()),
		Filters:    m.filterLabels(),
		Total:      len(m.repo.Tasks()),
	})
}

// filterLabels renders the active filters as field:value tokens.
func (m Model) filterLabels() []string {
	f := m.repo.Filters()
	var out []string
	if f.Status != nil {
		out = append(out, "status:"+string(*f.Status))
	}
	if f.Priority != nil {
		out = append(out, "priority:"+string(*f.Priority))
	}
	if f.CategoryID != nil {
		name := *f.CategoryID
		if c, ok := m.repo.Category(name); ok {
			name = c.Name
		}
		out = append(out, "category:"+name)
	}
	if f.SearchTerm != "" {
		out = append(out, fmt.Sprintf("search:%q", f.SearchTerm))
	}
	return out
}

func (m Model) taskDetailContent() string {
	task, ok := m.currentTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	data := views.TaskDetailData{
		Theme:       string(m.theme()),
		Title:       task.Title,
		Status:      task.Status.Label(),
		Priority:    task.Priority.Label(),
		Created:     task.CreatedAt.In(time.Local).Format(timeLayout),
		Updated:     task.UpdatedAt.In(time.Local).Format(timeLayout),
		Description: task.Description,
	}
	if task.CategoryID != nil {
		if c, ok := m.repo.Category(*task.CategoryID); ok {
			data.Category = c.Name
		}
	}
	return views.RenderTaskDetail(data)
}

func (m Model) renderTaskDetailPane() string {
	return m.detailViewport.View()
}

func (m Model) renderCategoriesView() string {
	stats := m.repo.Statistics()
	cats := m.repo.Categories()
	rows := make([]views.CategoryRowData, 0, len(cats))
	for _, c := range cats {
		done := 0
		for _, t := range m.repo.TasksInCategory(c.ID) {
			if t.Status == model.StatusDone {
				done++
			}
		}
		rows = append(rows, views.CategoryRowData{
			ID:        c.ID,
			Name:      c.Name,
			Color:     c.Color,
			TaskCount: stats.ByCategory[c.ID],
			DoneCount: done,
		})
	}
	panel := views.RenderCategoriesPanel(views.CategoriesPanelData{
		Theme:      string(m.theme()),
		Rows:       rows,
		SelectedID: m.SelectedCategoryID,
		Input:      m.categoryInput.View(),
		Adding:     m.Categories.Adding,
	})
	return panel + "\n\n" + m.categoryTable.View()
}

func (m Model) renderSettingsView() string {
	s := m.repo.Settings()
	driver, path, _ := strings.Cut(m.storageLabel, " ")
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Theme:         string(s.Theme),
		DefaultSort:   string(s.DefaultSort),
		Cursor:        m.Settings.Cursor,
		ConfirmReset:  m.Settings.ConfirmReset,
		StorageDriver: driver,
		StoragePath:   path,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
