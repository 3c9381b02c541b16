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

var activityFlagColor string

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage activities",
	Long: `Activities are the named pursuits sessions are logged against.

Examples:
  tenkhours activity add "Guitar" --color "#ff8800"
  tenkhours activity list
  tenkhours activity rename <id> "Classical Guitar"
  tenkhours activity delete <id>`,
}

var activityAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new activity",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivityAdd,
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all activities with accumulated time",
	Args:  cobra.NoArgs,
	RunE:  runActivityList,
}

var activityRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename an activity",
	Args:  cobra.ExactArgs(2),
	RunE:  runActivityRename,
}

var activityDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an activity",
	Long: `Delete an activity. Sessions referencing only this activity become
orphans: they stay in the log but are excluded from summaries and
insights, with the exclusion count surfaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runActivityDelete,
}

func init() {
	activityAddCmd.Flags().StringVar(&activityFlagColor, "color", "", "Display color (hex, e.g. #ff8800)")
	activityCmd.AddCommand(activityAddCmd, activityListCmd, activityRenameCmd, activityDeleteCmd)
	rootCmd.AddCommand(activityCmd)
}

func runActivityAdd(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	a := timelog.Activity{
		ID:          uuid.NewString(),
		Name:        args[0],
		Color:       activityFlagColor,
		CreatedAtMs: time.Now().UnixMilli(),
	}
	if err := db.CreateActivity(a); err != nil {
		return err
	}

	fmt.Printf(" Created activity %s (%s)\n", output.StyleBold.Render(a.Name), a.ID)
	return nil
}

func runActivityList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	activities, err := db.ListActivities()
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(activities)
	}

	if len(activities) == 0 {
		fmt.Println(" No activities yet. Create one with 'tenkhours activity add'.")
		return nil
	}

	tbl := output.NewTable("ID", "Name", "Total Hours", "Created")
	for _, a := range activities {
		created := time.UnixMilli(a.CreatedAtMs).UTC().Format("2006-01-02")
		hours := fmt.Sprintf("%.1f", float64(a.TotalMinutes)/60.0)
		tbl.AddRow(a.ID, a.Name, hours, created)
	}
	tbl.Print()
	return nil
}

func runActivityRename(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := db.GetActivity(args[0])
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("activity %q not found", args[0])
	}

	a.Name = args[1]
	if err := db.UpdateActivity(*a); err != nil {
		return err
	}

	fmt.Printf(" Renamed activity to %s\n", output.StyleBold.Render(a.Name))
	return nil
}

func runActivityDelete(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := db.GetActivity(args[0])
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("activity %q not found", args[0])
	}

	if err := db.DeleteActivity(a.ID); err != nil {
		return err
	}

	fmt.Printf(" Deleted activity %s. Sessions referencing it are now excluded from analytics.\n", a.Name)
	return nil
}
