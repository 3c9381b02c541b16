package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tenkhours/internal/analytics"
	"tenkhours/internal/config"
	"tenkhours/internal/output"
	"tenkhours/internal/timelog"
)

var (
	insightsFlagWeeks      int
	insightsFlagFull       bool
	insightsFlagTargetDate string
)

var insightsCmd = &cobra.Command{
	Use:   "insights [goal-id]",
	Short: "Weekly velocity, momentum, streaks and pacing",
	Long: `Compute the full analytics snapshot for one goal, or for every goal
when no id is given: the zero-filled weekly hours series, the fitted
trend line, the 0-100 momentum score, consecutive-week streaks,
session quality and milestone pacing.

Examples:
  tenkhours insights                     # all goals
  tenkhours insights <goal-id>
  tenkhours insights --weeks 12
  tenkhours insights --full                # series over all history
  tenkhours insights <goal-id> --by 2027-06-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().IntVar(&insightsFlagWeeks, "weeks", 0, "Display window in weeks (0 = configured default)")
	insightsCmd.Flags().BoolVar(&insightsFlagFull, "full", false, "Span the display window over the full history")
	insightsCmd.Flags().StringVar(&insightsFlagTargetDate, "by", "", "Pacing deadline override (YYYY-MM-DD)")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	opts := cfg.ReportOptions()
	if insightsFlagWeeks > 0 {
		opts.WindowWeeks = insightsFlagWeeks
	}
	if insightsFlagFull {
		opts.WindowWeeks = analytics.FullHistory
	}

	var dateOverride *time.Time
	if insightsFlagTargetDate != "" {
		ms, err := parseTargetDate(insightsFlagTargetDate)
		if err != nil {
			return err
		}
		t := time.UnixMilli(ms).UTC()
		dateOverride = &t
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

	var goals []timelog.Goal
	if len(args) == 1 {
		g, err := db.GetGoal(args[0])
		if err != nil {
			return err
		}
		if g == nil {
			return fmt.Errorf("goal %q not found", args[0])
		}
		goals = []timelog.Goal{*g}
	} else {
		goals, err = db.ListGoals()
		if err != nil {
			return err
		}
	}

	if len(goals) == 0 {
		fmt.Println(" No goals yet. Create one with 'tenkhours goal add'.")
		return nil
	}

	now := time.Now().UTC()

	// Reports are pure functions over the shared session slice, so the
	// per-goal computation fans out cleanly.
	reports := make([]analytics.Report, len(goals))
	var eg errgroup.Group
	for i, g := range goals {
		i, g := i, g
		eg.Go(func() error {
			r := analytics.BuildReport(g, sessions, opts, now)
			if dateOverride != nil {
				r.Pacing = analytics.ComputePacingWith(g, sessions, dateOverride, now, opts.PacingTolerance)
			}
			reports[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		renderReport(r)
	}
	return nil
}

func renderReport(r analytics.Report) {
	fmt.Println(output.Section(r.GoalName))
	fmt.Println()

	if len(r.Weekly) == 0 {
		fmt.Println(" No matching sessions logged yet.")
		return
	}

	// Weekly hours series as a sparkline spanning the display window.
	hours := make([]float64, len(r.Weekly))
	for i, w := range r.Weekly {
		hours[i] = w.Hours
	}
	fmt.Printf(" %s %s  %s\n",
		output.StyleLabel.Render("Weekly hours"),
		output.Sparkline(hours),
		output.StyleMuted.Render(fmt.Sprintf("%s to %s", r.Weekly[0].Week, r.Weekly[len(r.Weekly)-1].Week)))

	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Trend"),
		trendLabel(r.Momentum.Trend),
		output.TrendArrow(r.Slope, true))

	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Momentum"),
		output.ScoreBar(float64(r.Momentum.Score), 20),
		output.TrendArrowPercent(r.Momentum.ChangePercent, true))

	fmt.Printf(" %s avg %.1fh/wk, stddev %.2f\n",
		output.StyleLabel.Render("Factors"),
		r.Momentum.Factors.RollingAverageHours,
		r.Momentum.Factors.StandardDeviation)

	streak := fmt.Sprintf("%d weeks (longest %d, min %d sessions/wk)",
		r.Streak.Current, r.Streak.Longest, r.Streak.MinimumSessions)
	if r.Streak.LastMissWeek != "" {
		streak += output.StyleMuted.Render(fmt.Sprintf("  broken %s", r.Streak.LastMissWeek))
	}
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Streak"), streak)

	if r.Quality.AverageSessionMinutes > 0 {
		fmt.Printf(" %s %.0fm avg session, best week %s (%.1fh)\n",
			output.StyleLabel.Render("Quality"),
			r.Quality.AverageSessionMinutes,
			r.Quality.BestWeek.Week,
			r.Quality.BestWeek.Hours)
		for _, u := range r.Quality.UnusualSessions {
			fmt.Printf(" %s %s session of %dm on %s\n",
				output.StyleLabel.Render(""),
				u.Type, u.DurationMinutes, u.Date)
		}
	}

	renderPacing(r.Pacing)
	fmt.Println()
}

func trendLabel(t analytics.Trend) string {
	switch t {
	case analytics.TrendRising:
		return output.StyleSuccess.Render(string(t))
	case analytics.TrendDeclining:
		return output.StyleError.Render(string(t))
	default:
		return output.StyleMuted.Render(string(t))
	}
}

func renderPacing(p analytics.MilestonePacing) {
	if p.TargetDate == nil {
		fmt.Printf(" %s no deadline, currently %.1fh/wk\n",
			output.StyleLabel.Render("Pacing"), p.CurrentWeeklyHours)
		return
	}

	status := output.StyleSuccess.Render("on track")
	if !p.OnTrack {
		status = output.StyleError.Render(fmt.Sprintf("behind by %.1fh/wk", p.GapHours))
	}
	fmt.Printf(" %s need %.1fh/wk by %s, doing %.1fh/wk: %s\n",
		output.StyleLabel.Render("Pacing"),
		p.RequiredWeeklyHours,
		p.TargetDate.Format("2006-01-02"),
		p.CurrentWeeklyHours,
		status)
}
