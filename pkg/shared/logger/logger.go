package logger

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/sarifclean/pkg/shared/config"
)

const logLevelEnv = "SARIFCLEAN_LOG_LEVEL"

// NewLogger creates a stderr logger named name, configured from the logger directive of cfg.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	return newLogger(cfg, name, os.Stderr)
}

func newLogger(cfg *config.Config, name string, output io.Writer) hclog.Logger {
	var settings config.Logger
	if cfg != nil {
		settings = cfg.Logger
	}

	level, envLevel := determineLogLevel(settings)
	lg := hclog.New(&hclog.LoggerOptions{
		Name:            name,
		DisableTime:     true,
		JSONFormat:      settings.JSON(),
		IncludeLocation: settings.CallerLocation(),
		Output:          output,
		Level:           level,
	})
	if envLevel != "" && hclog.LevelFromString(envLevel) == hclog.NoLevel {
		lg.Warn("unrecognized log level, using info", "env", logLevelEnv, "level", envLevel)
	}
	return lg
}

// determineLogLevel picks SARIFCLEAN_LOG_LEVEL over the configured level and falls back to INFO.
// It also returns the raw environment value so the caller can report an unknown one.
func determineLogLevel(settings config.Logger) (hclog.Level, string) {
	envLevel := os.Getenv(logLevelEnv)
	for _, level := range []hclog.Level{hclog.LevelFromString(envLevel), settings.HclogLevel()} {
		if level != hclog.NoLevel {
			return level, envLevel
		}
	}
	return hclog.Info, envLevel
}
