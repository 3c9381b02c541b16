// Package config provides configuration loading and defaults for tenkhours.
package config

import "tenkhours/internal/analytics"

// DefaultConfigDir is the default location for tenkhours configuration.
const DefaultConfigDir = "~/.config/tenkhours"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "tenkhours.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultInsights holds the default insight report parameters.
var DefaultInsights = Insights{
	WindowWeeks:        analytics.DefaultWindowWeeks,
	MinSessionsPerWeek: analytics.DefaultMinSessionsPerWeek,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
