package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const maxIndent = 8

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateNormalizerConfig(&cfg.Normalizer); err != nil {
		return fmt.Errorf("YAML global config: normalizer directive is invalid: %w", err)
	}
	if err := ValidateOutputConfig(&cfg.Output); err != nil {
		return fmt.Errorf("YAML global config: output directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks that the log level is one hclog knows.
func ValidateLoggerConfig(l *Logger) error {
	if l == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	if l.Level != "" && l.HclogLevel() == hclog.NoLevel {
		return fmt.Errorf("unknown log level %q", l.Level)
	}
	return nil
}

// ValidateNormalizerConfig checks the denylist entries and the schema URI.
func ValidateNormalizerConfig(n *Normalizer) error {
	if n == nil {
		return fmt.Errorf("normalizer configuration is nil")
	}

	for _, list := range [][]string{n.Denylist, n.ExtraDenylist} {
		for i, key := range list {
			if strings.TrimSpace(key) == "" {
				return fmt.Errorf("denylist entry %d is empty", i)
			}
		}
	}

	if n.SchemaURI != "" {
		if err := validateSchemaURI(n.SchemaURI); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOutputConfig checks the output formatting settings.
func ValidateOutputConfig(o *Output) error {
	if o == nil {
		return fmt.Errorf("output configuration is nil")
	}
	if o.Indent != nil && (*o.Indent < 0 || *o.Indent > maxIndent) {
		return fmt.Errorf("indent must be between 0 and %d: %d", maxIndent, *o.Indent)
	}
	return nil
}

// validateSchemaURI requires an absolute http(s) URL.
func validateSchemaURI(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid schema_uri: %w", err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("schema_uri must be an absolute http(s) URL: %q", raw)
	}
	return nil
}
