// Package app contains the Cobra command tree for tenkhours.
package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tenkhours/internal/config"
	"tenkhours/internal/output"
	"tenkhours/internal/store"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
	flagDB      string
)

var rootCmd = &cobra.Command{
	Use:   "tenkhours",
	Short: "Track practice time and measure progress toward long-term goals",
	Long: `tenkhours logs practice sessions against named activities, rolls them
up into calendar summaries, and computes weekly velocity, momentum,
streaks and milestone pacing for long-term hour goals.

Run 'tenkhours insights' for the full progress report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Color off when asked, or when stdout is not a terminal.
		if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
			output.SetNoColor(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("tenkhours", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  activity  Manage activities")
		fmt.Println("  goal      Manage long-term hour goals")
		fmt.Println("  log       Log and manage practice sessions")
		fmt.Println("  summary   Aggregate logged time by day, week, month or year")
		fmt.Println("  insights  Weekly velocity, momentum, streaks and pacing")
		fmt.Println("  awards    Check and list goal milestone awards")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/tenkhours/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file path (default: ~/.config/tenkhours/tenkhours.db)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}

// openStore opens the configured database.
func openStore() (*store.DB, error) {
	path := flagDB
	if path == "" {
		path = config.DBPath()
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}
