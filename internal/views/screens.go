package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskRowData struct {
	ID       string
	Title    string
	Status   string
	Priority string
	Category string
	Color    string
	Done     bool
}

type TasksPanelData struct {
	Theme      string
	QuickAdd   string
	Adding     bool
	Rows       []TaskRowData
	SelectedID string
	SortBy     string
	Filters    []string
	Total      int
}

type TaskDetailData struct {
	Theme       string
	Title       string
	Status      string
	Priority    string
	Category    string
	Created     string
	Updated     string
	Description string
}

type CategoryRowData struct {
	ID        string
	Name      string
	Color     string
	TaskCount int
	DoneCount int
}

type CategoriesPanelData struct {
	Theme      string
	Rows       []CategoryRowData
	SelectedID string
	Input      string
	Adding     bool
}

type CountData struct {
	Label string
	Count int
	Color string
}

type StatisticsPanelData struct {
	Total          int
	CompletionRate int
	InProgressRate int
	CompletionBar  string
	ByStatus       []CountData
	ByPriority     []CountData
	ByCategory     []CountData
}

type SettingsPanelData struct {
	Theme         string
	DefaultSort   string
	Cursor        int
	ConfirmReset  bool
	StorageDriver string
	StoragePath   string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTasksPanel(data TasksPanelData) string {
	st := StylesFor(data.Theme)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks: %d shown of %d | sort: %s\n", len(data.Rows), data.Total, data.SortBy))
	if len(data.Filters) > 0 {
		b.WriteString("filters: " + strings.Join(data.Filters, " ") + "\n")
	}
	if data.Adding {
		b.WriteString(data.QuickAdd + "\n")
	}
	b.WriteString("actions: [a]add [space]status [p]priority [d]delete [s]sort [f]filter\n")
	if len(data.Rows) == 0 {
		b.WriteString(st.Muted.Render("(no tasks)"))
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(st, row, row.ID == data.SelectedID) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderTaskRow(st Styles, row TaskRowData, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	title := row.Title
	switch {
	case row.Done:
		title = st.Done.Render(title)
	case selected:
		title = st.Selected.Render(title)
	}
	line := fmt.Sprintf("%s %s %s %s", cursor, statusBadge(row.Status), priorityBadge(row.Priority), title)
	if row.Category != "" {
		line += " " + CategoryChip(row.Category, row.Color)
	}
	return line
}

func statusBadge(status string) string {
	switch status {
	case "done":
		return "[x]"
	case "in-progress":
		return "[~]"
	default:
		return "[ ]"
	}
}

func priorityBadge(priority string) string {
	switch priority {
	case "high":
		return "[RED]"
	case "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}

// CategoryChip renders a category name in its color.
func CategoryChip(name, color string) string {
	if strings.TrimSpace(color) == "" {
		return "#" + name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("#" + name)
}

func RenderTaskDetail(data TaskDetailData) string {
	if strings.TrimSpace(data.Title) == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("status: %s | priority: %s\n", data.Status, data.Priority))
	if data.Category != "" {
		b.WriteString(fmt.Sprintf("category: %s\n", data.Category))
	}
	b.WriteString(fmt.Sprintf("created: %s\nupdated: %s\n", data.Created, data.Updated))
	desc := data.Description
	if strings.TrimSpace(desc) == "" {
		desc = "_No description_"
	}
	b.WriteString("\n" + RenderMarkdown(desc, data.Theme))
	return strings.TrimSpace(b.String())
}

func RenderCategoriesPanel(data CategoriesPanelData) string {
	st := StylesFor(data.Theme)
	var b strings.Builder
	b.WriteString("categories:\n")
	if data.Adding {
		b.WriteString(data.Input + "\n")
	}
	b.WriteString("actions: [a]add [d]delete [enter]filter tasks\n")
	if len(data.Rows) == 0 {
		b.WriteString(st.Muted.Render("(no categories)"))
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %d task(s), %d done\n", cursor, CategoryChip(row.Name, row.Color), row.TaskCount, row.DoneCount))
	}
	return strings.TrimSpace(b.String())
}

func RenderStatisticsPanel(data StatisticsPanelData) string {
	var b strings.Builder
	b.WriteString("statistics:\n")
	b.WriteString(fmt.Sprintf("total tasks: %d\n", data.Total))
	b.WriteString(fmt.Sprintf("completion: %d%% %s\n", data.CompletionRate, data.CompletionBar))
	b.WriteString(fmt.Sprintf("in progress: %d%%\n", data.InProgressRate))
	renderCounts(&b, "by status", data.ByStatus)
	renderCounts(&b, "by priority", data.ByPriority)
	renderCounts(&b, "by category", data.ByCategory)
	return strings.TrimSpace(b.String())
}

func renderCounts(b *strings.Builder, title string, counts []CountData) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(counts) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, c := range counts {
		label := c.Label
		if c.Color != "" {
			label = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(label)
		}
		b.WriteString(fmt.Sprintf("  %-14s %d\n", label, c.Count))
	}
}

func RenderSettingsPanel(data SettingsPanelData) string {
	rows := []string{
		fmt.Sprintf("theme: %s", data.Theme),
		fmt.Sprintf("default sort: %s", data.DefaultSort),
		"reset all data",
	}
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("actions: [j/k]move [enter]change\n")
	for i, row := range rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, row))
	}
	if data.ConfirmReset {
		b.WriteString("\nreset: delete every task and restore default categories? [y/n]\n")
	}
	if data.StorageDriver != "" {
		b.WriteString(fmt.Sprintf("\nstorage: %s %s\n", data.StorageDriver, data.StoragePath))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
