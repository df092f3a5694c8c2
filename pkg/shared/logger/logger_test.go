package logger

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/sarifclean/pkg/shared/config"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		settings config.Logger
		level    hclog.Level
	}{
		{name: "defaults to info", level: hclog.Info},
		{name: "config level", settings: config.Logger{Level: "debug"}, level: hclog.Debug},
		{name: "config level is case insensitive", settings: config.Logger{Level: "WARN"}, level: hclog.Warn},
		{name: "env wins over config", env: "trace", settings: config.Logger{Level: "error"}, level: hclog.Trace},
		{name: "unknown env falls back to config", env: "verbose", settings: config.Logger{Level: "error"}, level: hclog.Error},
		{name: "unknown level falls back to info", env: "verbose", level: hclog.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(logLevelEnv, tt.env)
			level, envLevel := determineLogLevel(tt.settings)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.env, envLevel)
		})
	}
}

func TestNewLoggerWarnsOnUnknownEnvLevel(t *testing.T) {
	t.Setenv(logLevelEnv, "verbose")

	var buf bytes.Buffer
	lg := newLogger(nil, "sarifclean", &buf)

	assert.True(t, lg.IsInfo())
	assert.Contains(t, buf.String(), "unrecognized log level")
	assert.Contains(t, buf.String(), "level=verbose")
}

func TestNewLoggerJSONFormat(t *testing.T) {
	t.Setenv(logLevelEnv, "")
	jsonFormat := true
	cfg := &config.Config{Logger: config.Logger{Level: "info", JSONFormat: &jsonFormat}}

	var buf bytes.Buffer
	lg := newLogger(cfg, "sarifclean", &buf)
	lg.Info("normalized", "results", 3)
	lg.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `"@message":"normalized"`)
	assert.Contains(t, out, `"@module":"sarifclean"`)
	assert.Contains(t, out, `"results":3`)
	assert.NotContains(t, out, "hidden")
}
