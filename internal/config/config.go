package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"tenkhours/internal/analytics"
)

// Config is the top-level tenkhours configuration.
type Config struct {
	Insights Insights                 `mapstructure:"insights"`
	Momentum analytics.MomentumConfig `mapstructure:"momentum"`
	Quality  analytics.QualityConfig  `mapstructure:"quality"`
	Pacing   Pacing                   `mapstructure:"pacing"`
	Output   Output                   `mapstructure:"output"`
}

// Pacing defines the milestone pacing parameters.
type Pacing struct {
	// Tolerance is the fraction of the required pace that still counts
	// as on track.
	Tolerance float64 `mapstructure:"tolerance"`
}

// Insights defines the default parameters for insight reports.
type Insights struct {
	WindowWeeks        int `mapstructure:"window_weeks"`
	MinSessionsPerWeek int `mapstructure:"min_sessions_per_week"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// ReportOptions converts the configuration into analytics report options.
func (c *Config) ReportOptions() analytics.ReportOptions {
	return analytics.ReportOptions{
		WindowWeeks:        c.Insights.WindowWeeks,
		MinSessionsPerWeek: c.Insights.MinSessionsPerWeek,
		Momentum:           c.Momentum,
		Quality:            c.Quality,
		PacingTolerance:    c.Pacing.Tolerance,
	}
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("insights.window_weeks", DefaultInsights.WindowWeeks)
	v.SetDefault("insights.min_sessions_per_week", DefaultInsights.MinSessionsPerWeek)
	v.SetDefault("momentum.volume_norm_hours", analytics.DefaultMomentumConfig.VolumeNormHours)
	v.SetDefault("momentum.volume_weight", analytics.DefaultMomentumConfig.VolumeWeight)
	v.SetDefault("momentum.consistency_weight", analytics.DefaultMomentumConfig.ConsistencyWeight)
	v.SetDefault("momentum.growth_weight", analytics.DefaultMomentumConfig.GrowthWeight)
	v.SetDefault("momentum.sparse_volume_weight", analytics.DefaultMomentumConfig.SparseVolumeWeight)
	v.SetDefault("momentum.sparse_growth_weight", analytics.DefaultMomentumConfig.SparseGrowthWeight)
	v.SetDefault("quality.focus_day_min_sessions", analytics.DefaultQualityConfig.FocusDayMinSessions)
	v.SetDefault("quality.focus_day_min_minutes", analytics.DefaultQualityConfig.FocusDayMinMinutes)
	v.SetDefault("quality.outlier_long_ratio", analytics.DefaultQualityConfig.OutlierLongRatio)
	v.SetDefault("quality.outlier_short_ratio", analytics.DefaultQualityConfig.OutlierShortRatio)
	v.SetDefault("pacing.tolerance", analytics.PacingTolerance)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
