// Package query derives the displayed task list and statistics from a task collection.
// Every function is pure and never mutates its input.
package query

import (
	"slices"
	"strings"

	"github.com/sandeepkv93/todolist/internal/model"
)

// FilterAndSort keeps tasks matching every set filter, then sorts the result by sortBy.
func FilterAndSort(tasks []model.Task, filters model.FilterOptions, sortBy model.SortOption) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	search := strings.ToLower(filters.SearchTerm)
	for _, task := range tasks {
		if matches(task, filters, search) {
			out = append(out, task.Clone())
		}
	}
	sortInPlace(out, sortBy)
	return out
}

func matches(task model.Task, f model.FilterOptions, search string) bool {
	if f.Status != nil && task.Status != *f.Status {
		return false
	}
	if f.Priority != nil && task.Priority != *f.Priority {
		return false
	}
	if f.CategoryID != nil && *f.CategoryID != "" && !task.InCategory(*f.CategoryID) {
		return false
	}
	if search != "" &&
		!strings.Contains(strings.ToLower(task.Title), search) &&
		!strings.Contains(strings.ToLower(task.Description), search) {
		return false
	}
	return true
}

// SortTasks returns a sorted copy. An unknown sort option keeps the input order.
func SortTasks(tasks []model.Task, sortBy model.SortOption) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	sortInPlace(out, sortBy)
	return out
}

func sortInPlace(tasks []model.Task, sortBy model.SortOption) {
	switch sortBy {
	case model.SortByDate:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case model.SortByPriority:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	case model.SortByStatus:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return a.Status.Rank() - b.Status.Rank()
		})
	}
}
