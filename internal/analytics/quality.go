package analytics

import (
	"math"
	"sort"

	"tenkhours/internal/timelog"
)

// Focus-day thresholds: a day counts as focused with either enough sessions
// or enough cumulative minutes.
const (
	FocusDayMinSessions = 2
	FocusDayMinMinutes  = 60
)

// Outlier ratios against the average session length.
const (
	OutlierLongRatio  = 2.0
	OutlierShortRatio = 0.5
)

// maxUnusualSessions caps the outlier list at the most recent few.
const maxUnusualSessions = 5

// QualityConfig holds the session-quality thresholds.
type QualityConfig struct {
	FocusDayMinSessions int     `mapstructure:"focus_day_min_sessions"`
	FocusDayMinMinutes  int     `mapstructure:"focus_day_min_minutes"`
	OutlierLongRatio    float64 `mapstructure:"outlier_long_ratio"`
	OutlierShortRatio   float64 `mapstructure:"outlier_short_ratio"`
}

// DefaultQualityConfig holds the standard thresholds.
var DefaultQualityConfig = QualityConfig{
	FocusDayMinSessions: FocusDayMinSessions,
	FocusDayMinMinutes:  FocusDayMinMinutes,
	OutlierLongRatio:    OutlierLongRatio,
	OutlierShortRatio:   OutlierShortRatio,
}

// UnusualSession is a session whose duration deviates strongly from the
// average: at least 2x ("long") or at most 0.5x ("short").
type UnusualSession struct {
	Type            string `json:"type"` // "long" or "short"
	DurationMinutes int    `json:"duration_minutes"`
	Date            string `json:"date"` // YYYY-MM-DD
}

// SessionQuality summarizes how the matching sessions were spent: typical
// length, focused vs scattered days, the best week, and duration outliers.
type SessionQuality struct {
	AverageSessionMinutes float64          `json:"average_session_minutes"`
	FocusDayAverage       float64          `json:"focus_day_average"`
	NonFocusDayAverage    float64          `json:"non_focus_day_average"`
	BestWeek              WeeklySample     `json:"best_week"`
	UnusualSessions       []UnusualSession `json:"unusual_sessions,omitempty"`
}

// AnalyzeSessionQuality computes session-quality stats with the standard
// thresholds.
func AnalyzeSessionQuality(sessions []timelog.Session, activityIDs []string, series []WeeklySample) SessionQuality {
	return AnalyzeSessionQualityWith(sessions, activityIDs, series, DefaultQualityConfig)
}

// AnalyzeSessionQualityWith computes session-quality stats for the sessions
// counting toward the given activities, restricted to the span of the
// weekly series when one is supplied. With no matching sessions every
// figure is zero; nothing here ever divides by an empty set.
func AnalyzeSessionQualityWith(sessions []timelog.Session, activityIDs []string, series []WeeklySample, cfg QualityConfig) SessionQuality {
	if cfg.OutlierLongRatio <= 0 {
		cfg = DefaultQualityConfig
	}
	matched := timelog.FilterByActivities(sessions, activityIDs)

	if len(series) > 0 {
		windowStart := series[0].WeekStart.UnixMilli()
		windowEnd := series[len(series)-1].WeekStart.AddDate(0, 0, 7).UnixMilli()
		var inWindow []timelog.Session
		for _, s := range matched {
			if s.TimestampMs >= windowStart && s.TimestampMs < windowEnd {
				inWindow = append(inWindow, s)
			}
		}
		matched = inWindow
	}

	quality := SessionQuality{}
	if len(series) > 0 {
		quality.BestWeek = series[0]
		for _, s := range series[1:] {
			if s.Hours > quality.BestWeek.Hours {
				quality.BestWeek = s
			}
		}
	}
	if len(matched) == 0 {
		return quality
	}

	totalMinutes := 0
	for _, s := range matched {
		totalMinutes += s.DurationMinutes
	}
	average := float64(totalMinutes) / float64(len(matched))
	quality.AverageSessionMinutes = math.Round(average)

	// Partition days into focus days and the rest.
	type dayTotal struct {
		minutes  int
		sessions int
	}
	days := make(map[string]*dayTotal)
	for _, s := range matched {
		key := s.Time().Format("2006-01-02")
		d, ok := days[key]
		if !ok {
			d = &dayTotal{}
			days[key] = d
		}
		d.minutes += s.DurationMinutes
		d.sessions++
	}

	var focusSum, focusDays, otherSum, otherDays int
	for _, d := range days {
		if d.sessions >= cfg.FocusDayMinSessions || d.minutes >= cfg.FocusDayMinMinutes {
			focusSum += d.minutes
			focusDays++
		} else {
			otherSum += d.minutes
			otherDays++
		}
	}
	if focusDays > 0 {
		quality.FocusDayAverage = math.Round(float64(focusSum) / float64(focusDays))
	}
	if otherDays > 0 {
		quality.NonFocusDayAverage = math.Round(float64(otherSum) / float64(otherDays))
	}

	// Outliers, newest first, capped.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].TimestampMs > matched[j].TimestampMs
	})
	for _, s := range matched {
		if len(quality.UnusualSessions) == maxUnusualSessions {
			break
		}
		ratio := float64(s.DurationMinutes) / average
		if ratio < cfg.OutlierLongRatio && ratio > cfg.OutlierShortRatio {
			continue
		}
		kind := "short"
		if ratio >= cfg.OutlierLongRatio {
			kind = "long"
		}
		quality.UnusualSessions = append(quality.UnusualSessions, UnusualSession{
			Type:            kind,
			DurationMinutes: s.DurationMinutes,
			Date:            s.Time().Format("2006-01-02"),
		})
	}

	return quality
}
