package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/todolist/internal/model"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (want %s, %s or %s)", format, formatTable, formatJSON, formatYAML)
	}
}

func renderTaskTable(tasks []model.Task, cats []model.Category) string {
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		cat := "-"
		if t.CategoryID != nil {
			if name, ok := names[*t.CategoryID]; ok {
				cat = name
			}
		}
		rows = append(rows, []string{
			shortID(t.ID),
			t.Title,
			t.Status.Label(),
			t.Priority.Label(),
			cat,
			t.UpdatedAt.In(time.Local).Format("2006-01-02 15:04"),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "STATUS", "PRIORITY", "CATEGORY", "UPDATED").
		Rows(rows...).
		String()
}

func renderCategoryTable(cats []model.Category, counts map[string]int) string {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{c.ID, c.Name, c.Color, fmt.Sprintf("%d", counts[c.ID])})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "COLOR", "TASKS").
		Rows(rows...).
		String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
