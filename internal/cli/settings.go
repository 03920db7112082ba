package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/store"
)

var (
	settingsTheme       string
	settingsDefaultSort string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Without flags, print the current settings. With --theme or
--default-sort, update them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		current := s.repo.Settings()
		if settingsTheme == "" && settingsDefaultSort == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "theme:        %s\ndefault sort: %s\nstorage:      %s %s\n",
				current.Theme, current.DefaultSort, s.cfg.Storage.Driver, s.cfg.Storage.Path)
			return nil
		}
		if settingsTheme != "" {
			if current.Theme, err = model.ParseTheme(settingsTheme); err != nil {
				return err
			}
		}
		if settingsDefaultSort != "" {
			if current.DefaultSort, err = model.ParseSortOption(settingsDefaultSort); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateSettings(cmd.Context(), current); err != nil {
			return fmt.Errorf("updating settings: %w", err)
		}
		return s.flush(cmd.OutOrStdout())
	},
}

var resetConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every task and restore default categories and settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirm {
			return fmt.Errorf("reset deletes every task; rerun with --confirm")
		}
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		// A load failure is expected to be the reason for a reset.
		_ = s.flush(io.Discard)
		s.repo.ResetAllData(cmd.Context())
		return s.flush(cmd.OutOrStdout())
	},
}

var statsFormat string

type statsReport struct {
	Total          int                    `json:"total" yaml:"total"`
	CompletionRate int                    `json:"completionRate" yaml:"completionRate"`
	InProgressRate int                    `json:"inProgressRate" yaml:"inProgressRate"`
	ByStatus       map[model.Status]int   `json:"byStatus" yaml:"byStatus"`
	ByPriority     map[model.Priority]int `json:"byPriority" yaml:"byPriority"`
	ByCategory     map[string]int         `json:"byCategory" yaml:"byCategory"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		st := s.repo.Statistics()
		names := make(map[string]string)
		for _, c := range s.repo.Categories() {
			names[c.ID] = c.Name
		}
		report := statsReport{
			Total:          st.Total,
			CompletionRate: st.CompletionRate(),
			InProgressRate: st.InProgressRate(),
			ByStatus:       st.ByStatus,
			ByPriority:     st.ByPriority,
			ByCategory:     make(map[string]int, len(st.ByCategory)),
		}
		for id, n := range st.ByCategory {
			label := id
			if name, ok := names[id]; ok {
				label = name
			}
			report.ByCategory[label] = n
		}
		if statsFormat != formatTable {
			return writeStructured(cmd.OutOrStdout(), statsFormat, report)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Total tasks: %d\n", report.Total)
		fmt.Fprintf(w, "Completion:  %d%%\n", report.CompletionRate)
		fmt.Fprintf(w, "In progress: %d%%\n", report.InProgressRate)
		fmt.Fprintln(w, "By status:")
		for _, status := range model.Statuses {
			fmt.Fprintf(w, "  %-12s %d\n", status.Label(), st.ByStatus[status])
		}
		fmt.Fprintln(w, "By priority:")
		for _, p := range model.Priorities {
			fmt.Fprintf(w, "  %-12s %d\n", p.Label(), st.ByPriority[p])
		}
		if len(st.ByCategory) > 0 {
			fmt.Fprintln(w, "By category:")
			for _, c := range s.repo.Categories() {
				if n := st.ByCategory[c.ID]; n > 0 {
					fmt.Fprintf(w, "  %-12s %d\n", c.Name, n)
				}
			}
		}
		return nil
	},
}

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole store",
	Long: `Write the store to stdout or --output. The json format is the same
versioned document the store persists; yaml is a readable dump.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		w := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()
			w = f
		}
		snapshot := s.repo.Snapshot()
		switch exportFormat {
		case formatJSON:
			raw, err := store.Encode(snapshot)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(raw))
			return err
		default:
			return writeStructured(w, exportFormat, snapshot)
		}
	},
}

func init() {
	settingsCmd.Flags().StringVar(&settingsTheme, "theme", "", "Theme: light or dark")
	settingsCmd.Flags().StringVar(&settingsDefaultSort, "default-sort", "", "Default sort: date, priority or status")
	resetCmd.Flags().BoolVar(&resetConfirm, "confirm", false, "Confirm deleting all data")
	statsCmd.Flags().StringVarP(&statsFormat, "format", "o", formatTable, "Output format: table, json, yaml")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "o", formatJSON, "Output format: json or yaml")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(settingsCmd, resetCmd, statsCmd, exportCmd)
}
