package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tenkhours/internal/output"
	"tenkhours/internal/timelog"
)

var (
	logFlagAt       string
	logFlagDuration string
	logFlagDays     int
	logFlagActivity string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log and manage practice sessions",
	Long: `Log a practice session against one or more activities. The first
activity listed is the primary one and receives the time credit.

Examples:
  tenkhours log add guitar 45m
  tenkhours log add guitar,theory 1h30m --at "2026-08-27 19:00"
  tenkhours log list --days 14
  tenkhours log edit <id> --duration 1h
  tenkhours log delete <id>`,
}

var logAddCmd = &cobra.Command{
	Use:   "add <activity-ids> <duration>",
	Short: "Log a session",
	Args:  cobra.ExactArgs(2),
	RunE:  runLogAdd,
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Args:  cobra.NoArgs,
	RunE:  runLogList,
}

var logEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a session's duration, activities or time",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogEdit,
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogDelete,
}

func init() {
	logAddCmd.Flags().StringVar(&logFlagAt, "at", "", "Session time (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\", default: now)")
	logListCmd.Flags().IntVar(&logFlagDays, "days", 30, "Number of days to look back")
	logEditCmd.Flags().StringVar(&logFlagDuration, "duration", "", "New duration (e.g. 45m, 1h30m)")
	logEditCmd.Flags().StringVar(&logFlagActivity, "activities", "", "New activity ids (comma separated)")
	logEditCmd.Flags().StringVar(&logFlagAt, "at", "", "New session time (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	logCmd.AddCommand(logAddCmd, logListCmd, logEditCmd, logDeleteCmd)
	rootCmd.AddCommand(logCmd)
}

// parseSessionTime accepts a date or a date with time, both in UTC.
func parseSessionTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"", s)
}

// parseDurationMinutes parses a Go duration string into whole minutes.
func parseDurationMinutes(s string) (int, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q, expected e.g. 45m or 1h30m", s)
	}
	minutes := int(d.Minutes())
	if minutes <= 0 {
		return 0, fmt.Errorf("duration must be at least one minute")
	}
	return minutes, nil
}

// splitIDs splits a comma separated id list, dropping empty entries.
func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

func runLogAdd(cmd *cobra.Command, args []string) error {
	activityIDs := splitIDs(args[0])
	if len(activityIDs) == 0 {
		return fmt.Errorf("at least one activity id is required")
	}
	minutes, err := parseDurationMinutes(args[1])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, id := range activityIDs {
		a, err := db.GetActivity(id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("activity %q not found", id)
		}
	}

	at := time.Now().UTC()
	if logFlagAt != "" {
		at, err = parseSessionTime(logFlagAt)
		if err != nil {
			return err
		}
	}

	s := timelog.Session{
		ID:              uuid.NewString(),
		ActivityIDs:     activityIDs,
		DurationMinutes: minutes,
		TimestampMs:     at.UnixMilli(),
	}
	if err := db.CreateSession(s); err != nil {
		return err
	}

	fmt.Printf(" Logged %s against %s (%s)\n",
		output.StyleBold.Render(fmt.Sprintf("%dm", minutes)),
		activityIDs[0], s.ID)
	return nil
}

func runLogList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.ListSessions()
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -logFlagDays)
	var recent []timelog.Session
	for _, s := range sessions {
		if !s.Time().Before(cutoff) {
			recent = append(recent, s)
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recent)
	}

	if len(recent) == 0 {
		fmt.Printf(" No sessions in the last %d days.\n", logFlagDays)
		return nil
	}

	tbl := output.NewTable("ID", "Date", "Activities", "Duration")
	for _, s := range recent {
		tbl.AddRow(
			s.ID,
			s.Time().Format("2006-01-02 15:04"),
			strings.Join(s.ActivityIDs, ", "),
			fmt.Sprintf("%dm", s.DurationMinutes),
		)
	}
	tbl.Print()
	return nil
}

func runLogEdit(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.GetSession(args[0])
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("session %q not found", args[0])
	}

	if cmd.Flags().Changed("duration") {
		minutes, err := parseDurationMinutes(logFlagDuration)
		if err != nil {
			return err
		}
		s.DurationMinutes = minutes
	}
	if cmd.Flags().Changed("activities") {
		ids := splitIDs(logFlagActivity)
		if len(ids) == 0 {
			return fmt.Errorf("at least one activity id is required")
		}
		for _, id := range ids {
			a, err := db.GetActivity(id)
			if err != nil {
				return err
			}
			if a == nil {
				return fmt.Errorf("activity %q not found", id)
			}
		}
		s.ActivityIDs = ids
		s.ActivityID = ""
	}
	if cmd.Flags().Changed("at") {
		at, err := parseSessionTime(logFlagAt)
		if err != nil {
			return err
		}
		s.TimestampMs = at.UnixMilli()
	}

	if err := db.UpdateSession(*s); err != nil {
		return err
	}

	fmt.Printf(" Updated session %s\n", s.ID)
	return nil
}

func runLogDelete(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteSession(args[0]); err != nil {
		return err
	}

	fmt.Printf(" Deleted session %s\n", args[0])
	return nil
}
