package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tenkhours/internal/analytics"
	"tenkhours/internal/output"
)

var awardsCmd = &cobra.Command{
	Use:   "awards <goal-id>",
	Short: "Check and list goal milestone awards",
	Long: `Check a goal's progress against the 25/50/75/100 percent milestones.
Newly crossed milestones are recorded; each is awarded once.

Examples:
  tenkhours awards <goal-id>`,
	Args: cobra.ExactArgs(1),
	RunE: runAwards,
}

func init() {
	rootCmd.AddCommand(awardsCmd)
}

func runAwards(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := db.GetGoal(args[0])
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("goal %q not found", args[0])
	}

	sessions, err := db.ListSessions()
	if err != nil {
		return err
	}
	existing, err := db.ListAwards(g.ID)
	if err != nil {
		return err
	}

	status := analytics.AwardProgress(*g, sessions, existing, time.Now().UTC())

	// Persist freshly crossed milestones before rendering.
	for _, a := range status.NewAwards {
		if err := db.RecordAward(a); err != nil {
			return err
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	fmt.Println(output.Section(fmt.Sprintf("Awards: %s", g.Name)))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Progress"),
		output.PercentBar(status.ProgressPercent, 20))

	for _, a := range status.NewAwards {
		fmt.Printf(" %s %s\n", output.StyleSuccess.Render("NEW"), a.Message)
	}

	if status.NextMilestone > 0 {
		fmt.Printf(" %s %d%% (%.1f%% of the way there)\n",
			output.StyleLabel.Render("Next milestone"),
			status.NextMilestone, status.ProgressToNext)
	} else {
		fmt.Printf(" %s\n", output.StyleSuccess.Render("All milestones reached."))
	}

	if len(existing) > 0 {
		fmt.Println()
		tbl := output.NewTable("Milestone", "Awarded", "Message")
		for _, a := range existing {
			tbl.AddRow(
				fmt.Sprintf("%d%%", a.Percentage),
				time.UnixMilli(a.AwardedAt).UTC().Format("2006-01-02"),
				a.Message,
			)
		}
		tbl.Print()
	}
	return nil
}
