package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todolist/internal/update"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var configFile string

var rootCmd = &cobra.Command{
	Use:   "todolist",
	Short: "todolist - a local task tracker",
	Long: `todolist keeps tasks, categories and settings in a local store.

Run without a subcommand to open the terminal UI. The subcommands work on the
same store, so scripts and the UI always agree.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "todolist %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default .todolist.yaml in . or $HOME)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runTUI(ctx context.Context) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if s.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModel(ctx, s.repo, update.Options{
		Signals:              s.signals,
		Notifier:             notifier,
		DesktopNotifications: s.cfg.DesktopNotifications,
		Logger:               s.log,
		StorageLabel:         s.cfg.Storage.Driver + " " + s.cfg.Storage.Path,
		StatePath:            s.cfg.UI.StateFile,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
