package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/views"
)

func (m Model) handleStatisticsKey(tea.KeyMsg) Model {
	return m
}

func (m Model) renderStatisticsView() string {
	stats := m.repo.Statistics()
	data := views.StatisticsPanelData{
		Total:          stats.Total,
		CompletionRate: stats.CompletionRate(),
		InProgressRate: stats.InProgressRate(),
		CompletionBar:  m.completionBar.ViewAs(float64(stats.CompletionRate()) / 100),
	}
	for _, s := range model.Statuses {
		data.ByStatus = append(data.ByStatus, views.CountData{Label: s.Label(), Count: stats.ByStatus[s]})
	}
	for _, p := range model.Priorities {
		data.ByPriority = append(data.ByPriority, views.CountData{Label: p.Label(), Count: stats.ByPriority[p]})
	}
	for _, c := range m.repo.Categories() {
		if n := stats.ByCategory[c.ID]; n > 0 {
			data.ByCategory = append(data.ByCategory, views.CountData{Label: c.Name, Count: n, Color: c.Color})
		}
	}
	return views.RenderStatisticsPanel(data)
}
