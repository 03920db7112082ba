package query

import "github.com/sandeepkv93/todolist/internal/model"

// GenerateStatistics counts tasks by status, priority and category in a single pass.
func GenerateStatistics(tasks []model.Task) model.Statistics {
	st := model.Statistics{
		Total:      len(tasks),
		ByStatus:   make(map[model.Status]int, len(model.Statuses)),
		ByPriority: make(map[model.Priority]int, len(model.Priorities)),
		ByCategory: make(map[string]int),
	}
	for _, s := range model.Statuses {
		st.ByStatus[s] = 0
	}
	for _, p := range model.Priorities {
		st.ByPriority[p] = 0
	}
	for _, task := range tasks {
		st.ByStatus[task.Status]++
		st.ByPriority[task.Priority]++
		if task.CategoryID != nil && *task.CategoryID != "" {
			st.ByCategory[*task.CategoryID]++
		}
	}
	return st
}
