package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todolist/internal/model"
)

var categoryColor string

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories", "cat"},
	Short:   "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their task counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Fprintln(cmd.OutOrStdout(), renderCategoryTable(s.repo.Categories(), s.repo.Statistics().ByCategory))
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		cat, err := s.repo.AddCategory(cmd.Context(), model.CategoryInput{
			Name:  strings.Join(args, " "),
			Color: categoryColor,
		})
		if err != nil {
			return fmt.Errorf("adding category: %w", err)
		}
		if err := s.flush(cmd.OutOrStdout()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  id: %s\n", cat.ID)
		return nil
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a category, optionally recoloring it",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		cat, ok := s.repo.CategoryByName(args[0])
		if !ok {
			return fmt.Errorf("unknown category %q", args[0])
		}
		cat.Name = strings.Join(args[1:], " ")
		if categoryColor != "" {
			cat.Color = categoryColor
		}
		if _, err := s.repo.UpdateCategory(cmd.Context(), cat); err != nil {
			return fmt.Errorf("updating category: %w", err)
		}
		return s.flush(cmd.OutOrStdout())
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a category; its tasks become uncategorized",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		name := strings.Join(args, " ")
		cat, ok := s.repo.CategoryByName(name)
		if !ok {
			return fmt.Errorf("unknown category %q", name)
		}
		detached := len(s.repo.TasksInCategory(cat.ID))
		s.repo.DeleteCategory(cmd.Context(), cat.ID)
		if err := s.flush(cmd.OutOrStdout()); err != nil {
			return err
		}
		if detached > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d task(s) moved out of the category\n", detached)
		}
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "Hex color, e.g. #33C3F0")
	categoryRenameCmd.Flags().StringVar(&categoryColor, "color", "", "New hex color")
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRenameCmd, categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)
}
