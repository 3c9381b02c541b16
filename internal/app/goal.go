package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tenkhours/internal/output"
	"tenkhours/internal/timelog"
)

var (
	goalFlagHours      float64
	goalFlagActivities []string
	goalFlagTargetDate string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage long-term hour goals",
	Long: `Goals are hour targets spanning one or more activities, optionally
with a calendar deadline.

Examples:
  tenkhours goal add "Master guitar" --hours 10000 --activities guitar
  tenkhours goal add "Ship album" --hours 500 --activities guitar,mixing --by 2027-06-01
  tenkhours goal list
  tenkhours goal delete <id>`,
}

var goalAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all goals with progress",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

var goalEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a goal's target, activities or deadline",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalEdit,
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal and its awards",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDelete,
}

func init() {
	for _, c := range []*cobra.Command{goalAddCmd, goalEditCmd} {
		c.Flags().Float64Var(&goalFlagHours, "hours", 0, "Target hours")
		c.Flags().StringSliceVar(&goalFlagActivities, "activities", nil, "Linked activity ids (comma separated)")
		c.Flags().StringVar(&goalFlagTargetDate, "by", "", "Target date (YYYY-MM-DD)")
	}
	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalEditCmd, goalDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}

// parseTargetDate parses a YYYY-MM-DD deadline into epoch millis.
func parseTargetDate(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("invalid target date %q, expected YYYY-MM-DD", s)
	}
	return t.UTC().UnixMilli(), nil
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	if goalFlagHours <= 0 {
		return fmt.Errorf("--hours must be positive")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	// Reject unknown activity references up front.
	for _, id := range goalFlagActivities {
		a, err := db.GetActivity(id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("activity %q not found", id)
		}
	}

	targetDate, err := parseTargetDate(goalFlagTargetDate)
	if err != nil {
		return err
	}

	g := timelog.Goal{
		ID:           uuid.NewString(),
		Name:         args[0],
		TargetHours:  goalFlagHours,
		ActivityIDs:  goalFlagActivities,
		CreatedAtMs:  time.Now().UnixMilli(),
		TargetDateMs: targetDate,
	}
	if err := db.CreateGoal(g); err != nil {
		return err
	}

	fmt.Printf(" Created goal %s (%s): %.0f hours\n", output.StyleBold.Render(g.Name), g.ID, g.TargetHours)
	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := db.ListGoals()
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(goals)
	}

	if len(goals) == 0 {
		fmt.Println(" No goals yet. Create one with 'tenkhours goal add'.")
		return nil
	}

	sessions, err := db.ListSessions()
	if err != nil {
		return err
	}

	tbl := output.NewTable("ID", "Name", "Target", "Progress", "Deadline")
	for _, g := range goals {
		matched := timelog.FilterByActivities(sessions, g.ActivityIDs)
		minutes := 0
		for _, s := range matched {
			minutes += s.DurationMinutes
		}
		hours := float64(minutes) / 60.0

		deadline := "-"
		if td := g.TargetDate(); td != nil {
			deadline = td.Format("2006-01-02")
		}

		percent := 0.0
		if g.TargetHours > 0 {
			percent = hours / g.TargetHours * 100
		}

		tbl.AddRow(
			g.ID,
			g.Name,
			fmt.Sprintf("%.0fh", g.TargetHours),
			fmt.Sprintf("%.1fh (%.1f%%)", hours, percent),
			deadline,
		)
	}
	tbl.Print()
	return nil
}

func runGoalEdit(cmd *cobra.Command, args []string) error {
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

	if cmd.Flags().Changed("hours") {
		if goalFlagHours <= 0 {
			return fmt.Errorf("--hours must be positive")
		}
		g.TargetHours = goalFlagHours
	}
	if cmd.Flags().Changed("activities") {
		for _, id := range goalFlagActivities {
			a, err := db.GetActivity(id)
			if err != nil {
				return err
			}
			if a == nil {
				return fmt.Errorf("activity %q not found", id)
			}
		}
		g.ActivityIDs = goalFlagActivities
	}
	if cmd.Flags().Changed("by") {
		targetDate, err := parseTargetDate(goalFlagTargetDate)
		if err != nil {
			return err
		}
		g.TargetDateMs = targetDate
	}

	if err := db.UpdateGoal(*g); err != nil {
		return err
	}

	fmt.Printf(" Updated goal %s\n", output.StyleBold.Render(g.Name))
	return nil
}

func runGoalDelete(cmd *cobra.Command, args []string) error {
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

	if err := db.DeleteGoal(g.ID); err != nil {
		return err
	}

	fmt.Printf(" Deleted goal %s\n", g.Name)
	return nil
}
