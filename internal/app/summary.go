package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tenkhours/internal/analytics"
	"tenkhours/internal/output"
)

var summaryFlagBy string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate logged time by day, week, month or year",
	Long: `Roll logged sessions up into calendar buckets. Weeks follow the
ISO-8601 calendar, so a late-December session can land in week 53 of
the prior ISO year and an early-January one in week 1 of the next.

Examples:
  tenkhours summary            # by week
  tenkhours summary --by day
  tenkhours summary --by month
  tenkhours summary --by year`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFlagBy, "by", "week", "Bucket granularity: day, week, month, year")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	g := analytics.Granularity(summaryFlagBy)
	switch g {
	case analytics.ByDay, analytics.ByWeek, analytics.ByMonth, analytics.ByYear:
	default:
		return fmt.Errorf("invalid granularity %q: use day, week, month or year", summaryFlagBy)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.ListSessions()
	if err != nil {
		return err
	}
	activities, err := db.ListActivities()
	if err != nil {
		return err
	}

	summary := analytics.Summarize(sessions, activities, g)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Println(output.Section(fmt.Sprintf("Summary by %s", g)))
	fmt.Println()

	if summary.TotalSessions == 0 {
		fmt.Println(" Nothing logged yet.")
		return nil
	}

	tbl := output.NewTable("Period", "Hours", "Sessions")
	for _, b := range summary.Buckets {
		tbl.AddRow(
			b.Key,
			fmt.Sprintf("%.1f", float64(b.Minutes)/60.0),
			fmt.Sprintf("%d", b.Sessions),
		)
	}
	tbl.Print()

	fmt.Printf("\n %s across %s\n",
		output.StyleBold.Render(fmt.Sprintf("%.1f hours", float64(summary.TotalMinutes)/60.0)),
		output.StyleBold.Render(fmt.Sprintf("%d sessions", summary.TotalSessions)))

	if summary.Orphans > 0 {
		fmt.Printf(" %s\n", output.StyleWarning.Render(
			fmt.Sprintf("%d sessions excluded: they reference deleted activities", summary.Orphans)))
	}
	return nil
}
