package analytics

import "math"

// Trend labels the direction of recent velocity change.
type Trend string

const (
	TrendRising    Trend = "rising"
	TrendFlat      Trend = "flat"
	TrendDeclining Trend = "declining"
)

// MomentumFactors exposes the inputs blended into a momentum score.
type MomentumFactors struct {
	RollingAverageHours float64 `json:"rolling_average_hours"`
	StandardDeviation   float64 `json:"standard_deviation"`
	RecentGrowthPercent float64 `json:"recent_growth_percent"`
}

// MomentumScore is the composite 0-100 heuristic blending recent volume,
// consistency and growth. Recomputed per request, never persisted.
type MomentumScore struct {
	Score         int             `json:"score"`
	Trend         Trend           `json:"trend"`
	ChangePercent float64         `json:"change_percent"`
	Factors       MomentumFactors `json:"factors"`
}

// MomentumConfig holds the heuristic scoring constants. The values carry no
// stated derivation; they are kept configurable rather than re-derived.
type MomentumConfig struct {
	// VolumeNormHours maps weekly hours onto the 0-100 volume score:
	// VolumeNormHours per week scores 100.
	VolumeNormHours float64 `mapstructure:"volume_norm_hours"`

	// Full-regime blend weights (4+ samples).
	VolumeWeight      float64 `mapstructure:"volume_weight"`
	ConsistencyWeight float64 `mapstructure:"consistency_weight"`
	GrowthWeight      float64 `mapstructure:"growth_weight"`

	// Sparse-regime blend weights (1-3 samples). Consistency is suppressed
	// entirely: a population stddev over so few samples reads as perfect
	// consistency and misleads.
	SparseVolumeWeight float64 `mapstructure:"sparse_volume_weight"`
	SparseGrowthWeight float64 `mapstructure:"sparse_growth_weight"`
}

// DefaultMomentumConfig holds the standard scoring constants.
var DefaultMomentumConfig = MomentumConfig{
	VolumeNormHours:    20,
	VolumeWeight:       0.4,
	ConsistencyWeight:  0.3,
	GrowthWeight:       0.3,
	SparseVolumeWeight: 0.7,
	SparseGrowthWeight: 0.3,
}

// Slope fits hours against sample index 0..n-1 by ordinary least squares and
// returns the fitted hours-per-week rate, rounded to one decimal. Series
// shorter than 2 samples have no defined slope and return 0.
//
// Both the recent display window and full-history series go through this
// same formula so the two trend readings stay consistent.
func Slope(series []WeeklySample) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}

	fn := float64(n)
	sumX := fn * (fn - 1) / 2
	sumXX := fn * (fn - 1) * (2*fn - 1) / 6
	var sumY, sumXY float64
	for i, s := range series {
		sumY += s.Hours
		sumXY += s.Hours * float64(i)
	}

	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	return round1(slope)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// mean returns the average hours of the samples.
func mean(series []WeeklySample) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, s := range series {
		sum += s.Hours
	}
	return sum / float64(len(series))
}

// Momentum scores the series with the default constants.
func Momentum(series []WeeklySample) MomentumScore {
	return MomentumWith(series, DefaultMomentumConfig)
}

// MomentumWith computes the momentum score under the given constants.
//
// Two regimes, selected on sample count: with fewer than 4 weeks the score
// blends volume and week-over-week growth only; with 4 or more it blends
// volume, consistency (population stddev of the last 4 weeks) and growth of
// the last 4 weeks against the prior 4. The score is always in [0, 100].
func MomentumWith(series []WeeklySample, cfg MomentumConfig) MomentumScore {
	if len(series) == 0 {
		return MomentumScore{Trend: TrendFlat}
	}
	// An all-zero window carries no momentum. Without this guard the
	// formula would award consistency points for perfectly consistent
	// inactivity.
	zero := true
	for _, s := range series {
		if s.Hours != 0 {
			zero = false
			break
		}
	}
	if zero {
		return MomentumScore{Trend: TrendFlat}
	}
	if len(series) < 4 {
		return sparseMomentum(series, cfg)
	}
	return fullMomentum(series, cfg)
}

// sparseMomentum handles 1-3 samples: volume dominates, growth is the
// week-over-week change of the last two samples, consistency is suppressed.
func sparseMomentum(series []WeeklySample, cfg MomentumConfig) MomentumScore {
	rolling := mean(series)
	volumeScore := math.Min(100, rolling/cfg.VolumeNormHours*100)

	var growth float64
	if len(series) >= 2 {
		current := series[len(series)-1].Hours
		previous := series[len(series)-2].Hours
		switch {
		case previous > 0:
			growth = (current - previous) / previous * 100
		case current > 0:
			// From nothing to something counts as +100%.
			growth = 100
		}
	}
	growthScore := clamp(50+growth*0.5, 0, 100)

	score := math.Round(volumeScore*cfg.SparseVolumeWeight + growthScore*cfg.SparseGrowthWeight)

	trend := TrendFlat
	if growth > 10 {
		trend = TrendRising
	} else if growth < -10 {
		trend = TrendDeclining
	}

	return MomentumScore{
		Score:         int(clamp(score, 0, 100)),
		Trend:         trend,
		ChangePercent: round1(growth),
		Factors: MomentumFactors{
			RollingAverageHours: round1(rolling),
			StandardDeviation:   0,
			RecentGrowthPercent: round1(growth),
		},
	}
}

// fullMomentum handles 4+ samples: last 4 weeks vs the prior 4.
func fullMomentum(series []WeeklySample, cfg MomentumConfig) MomentumScore {
	recent := series[len(series)-4:]
	var previous []WeeklySample
	if len(series) >= 5 {
		start := len(series) - 8
		if start < 0 {
			start = 0
		}
		previous = series[start : len(series)-4]
	}

	rolling := mean(recent)
	volumeScore := math.Min(100, rolling/cfg.VolumeNormHours*100)

	var variance float64
	for _, s := range recent {
		variance += (s.Hours - rolling) * (s.Hours - rolling)
	}
	variance /= float64(len(recent))
	stddev := math.Sqrt(variance)
	consistencyScore := clamp(100-stddev*5, 0, 100)

	var recentSum, previousSum float64
	for _, s := range recent {
		recentSum += s.Hours
	}
	for _, s := range previous {
		previousSum += s.Hours
	}

	var growth float64
	if len(previous) > 0 {
		switch {
		case previousSum > 0:
			growth = (recentSum - previousSum) / previousSum * 100
		case recentSum > 0:
			growth = 100
		}
	}
	growthScore := clamp(50+growth*2, 0, 100)

	score := math.Round(volumeScore*cfg.VolumeWeight +
		consistencyScore*cfg.ConsistencyWeight +
		growthScore*cfg.GrowthWeight)

	trend := TrendFlat
	if growth > 5 {
		trend = TrendRising
	} else if growth < -5 {
		trend = TrendDeclining
	}

	return MomentumScore{
		Score:         int(clamp(score, 0, 100)),
		Trend:         trend,
		ChangePercent: round1(growth),
		Factors: MomentumFactors{
			RollingAverageHours: round1(rolling),
			StandardDeviation:   round1(stddev),
			RecentGrowthPercent: round1(growth),
		},
	}
}
