package config

import "github.com/hashicorp/go-hclog"

// JSON reports whether log lines are written as JSON objects.
func (l Logger) JSON() bool {
	return l.JSONFormat != nil && *l.JSONFormat
}

// CallerLocation reports whether log lines carry the file and line of the caller.
func (l Logger) CallerLocation() bool {
	return l.IncludeLocation != nil && *l.IncludeLocation
}

// HclogLevel returns the configured level, or hclog.NoLevel when it is unset or unknown.
func (l Logger) HclogLevel() hclog.Level {
	if l.Level == "" {
		return hclog.NoLevel
	}
	return hclog.LevelFromString(l.Level)
}

func valueOr[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}
