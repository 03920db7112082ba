package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/repository"
)

var (
	addDescription string
	addPriority    string
	addStatus      string
	addCategory    string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task to the top of the list. Status defaults to not-started and
priority to medium. --category takes a category name or id.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		in := model.TaskInput{
			Title:       strings.Join(args, " "),
			Description: addDescription,
		}
		if addStatus != "" {
			if in.Status, err = model.ParseStatus(addStatus); err != nil {
				return err
			}
		}
		if addPriority != "" {
			if in.Priority, err = model.ParsePriority(addPriority); err != nil {
				return err
			}
		}
		if addCategory != "" {
			cat, ok := s.repo.CategoryByName(addCategory)
			if !ok {
				return fmt.Errorf("unknown category %q", addCategory)
			}
			in.CategoryID = model.CategoryRef(cat.ID)
		}

		task, err := s.repo.AddTask(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}
		if err := s.flush(cmd.OutOrStdout()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  id: %s\n", task.ID)
		return nil
	},
}

var (
	listStatus   string
	listPriority string
	listCategory string
	listSearch   string
	listSort     string
	listFormat   string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks after filtering and sorting them the way the UI does.
Filters combine; a task must match all of them. --search matches the title
or description, ignoring case.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		patch, err := listPatch(s.repo)
		if err != nil {
			return err
		}
		s.repo.SetFilters(patch)
		if listSort != "" {
			by, err := model.ParseSortOption(listSort)
			if err != nil {
				return err
			}
			s.repo.SetSortBy(by)
		}
		tasks := s.repo.FilteredTasks()
		if listFormat == formatTable {
			fmt.Fprintln(cmd.OutOrStdout(), renderTaskTable(tasks, s.repo.Categories()))
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d tasks\n", len(tasks), len(s.repo.Tasks()))
			return nil
		}
		return writeStructured(cmd.OutOrStdout(), listFormat, tasks)
	},
}

func listPatch(repo *repository.Repository) (model.FilterPatch, error) {
	var patch model.FilterPatch
	if listStatus != "" {
		st, err := model.ParseStatus(listStatus)
		if err != nil {
			return patch, err
		}
		patch.SetStatus, patch.Status = true, &st
	}
	if listPriority != "" {
		p, err := model.ParsePriority(listPriority)
		if err != nil {
			return patch, err
		}
		patch.SetPriority, patch.Priority = true, &p
	}
	if listCategory != "" {
		cat, ok := repo.CategoryByName(listCategory)
		if !ok {
			return patch, fmt.Errorf("unknown category %q", listCategory)
		}
		patch.SetCategoryID, patch.CategoryID = true, model.CategoryRef(cat.ID)
	}
	if listSearch != "" {
		patch.SetSearchTerm, patch.SearchTerm = true, listSearch
	}
	return patch, nil
}

var (
	updateTitle       string
	updateDescription string
	updateStatus      string
	updatePriority    string
	updateCategory    string
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task",
	Long: `Update the given fields of a task. The id may be shortened to any unique
prefix. Only flags that are given change the task, so --description ""
clears the description. Pass --category none to move the task out of its
category.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		task, err := findTask(s.repo, args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("title") {
			task.Title = updateTitle
		}
		if flags.Changed("description") {
			task.Description = updateDescription
		}
		if flags.Changed("status") {
			if task.Status, err = model.ParseStatus(updateStatus); err != nil {
				return err
			}
		}
		if flags.Changed("priority") {
			if task.Priority, err = model.ParsePriority(updatePriority); err != nil {
				return err
			}
		}
		if flags.Changed("category") {
			if strings.EqualFold(updateCategory, "none") || updateCategory == "" {
				task.CategoryID = nil
			} else {
				cat, ok := s.repo.CategoryByName(updateCategory)
				if !ok {
					return fmt.Errorf("unknown category %q", updateCategory)
				}
				task.CategoryID = model.CategoryRef(cat.ID)
			}
		}

		if _, err := s.repo.UpdateTask(cmd.Context(), task); err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
		return s.flush(cmd.OutOrStdout())
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		task, err := findTask(s.repo, args[0])
		if err != nil {
			return err
		}
		if _, err := s.repo.SetTaskStatus(cmd.Context(), task.ID, model.StatusDone); err != nil {
			return fmt.Errorf("completing task: %w", err)
		}
		return s.flush(cmd.OutOrStdout())
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <task-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		task, err := findTask(s.repo, args[0])
		if err != nil {
			return err
		}
		s.repo.DeleteTask(cmd.Context(), task.ID)
		return s.flush(cmd.OutOrStdout())
	},
}

// findTask resolves an exact id or a unique id prefix.
func findTask(repo *repository.Repository, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if t, ok := repo.Task(ref); ok {
		return t, nil
	}
	var matches []model.Task
	for _, t := range repo.Tasks() {
		if ref != "" && strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("task %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority: low, medium, high")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "Status: not-started, in-progress, done")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category name or id")

	listCmd.Flags().StringVar(&listStatus, "status", "", "Only tasks with this status")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "Only tasks with this priority")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only tasks in this category")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only tasks whose title or description contains the term")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort by date, priority or status (default from settings)")
	listCmd.Flags().StringVarP(&listFormat, "format", "o", formatTable, "Output format: table, json, yaml")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "New status")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority")
	updateCmd.Flags().StringVarP(&updateCategory, "category", "c", "", "New category name or id, or none")

	rootCmd.AddCommand(addCmd, listCmd, updateCmd, doneCmd, deleteCmd)
}
