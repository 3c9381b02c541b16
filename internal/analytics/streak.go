package analytics

// DefaultMinSessionsPerWeek is the qualifying threshold for a streak week.
const DefaultMinSessionsPerWeek = 2

// Streak captures consistency over a weekly series: the run of qualifying
// weeks ending at the most recent sample, the longest run anywhere in the
// series, and the week that broke the current run.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`

	// LastMissWeek is the most recent non-qualifying week, set only when a
	// miss bounds the current streak. Empty when every week qualifies.
	LastMissWeek string `json:"last_miss_week,omitempty"`

	MinimumSessions int `json:"minimum_sessions"`
}

// ComputeStreak scans a chronological weekly series for runs of weeks with
// at least minSessions sessions. The longest run is independent of where the
// series ends; the current run counts backward from the most recent week and
// stops at the first miss, without skipping through to older runs.
func ComputeStreak(series []WeeklySample, minSessions int) Streak {
	if minSessions <= 0 {
		minSessions = DefaultMinSessionsPerWeek
	}
	streak := Streak{MinimumSessions: minSessions}
	if len(series) == 0 {
		return streak
	}

	run := 0
	for _, s := range series {
		if s.Sessions >= minSessions {
			run++
			if run > streak.Longest {
				streak.Longest = run
			}
		} else {
			run = 0
		}
	}

	for i := len(series) - 1; i >= 0; i-- {
		if series[i].Sessions >= minSessions {
			streak.Current++
			continue
		}
		streak.LastMissWeek = series[i].Week
		break
	}

	return streak
}
