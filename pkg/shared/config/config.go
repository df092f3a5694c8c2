package config

import (
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/sarifclean/pkg/shared/files"
)

const (
	// DefaultConfigFile is looked up in the working directory when no config path is given.
	DefaultConfigFile = "sarifclean.yml"
	// DefaultIndent is the number of spaces used when writing the output document.
	DefaultIndent = 2

	configEnvVar = "SARIFCLEAN_CONFIG"
)

type Config struct {
	Logger     Logger     `yaml:"logger"`
	Normalizer Normalizer `yaml:"normalizer"`
	Output     Output     `yaml:"output"`
}

type Logger struct {
	Level           string `yaml:"level"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Normalizer holds the rewrite rules that can be tuned without a rebuild.
type Normalizer struct {
	Denylist      []string `yaml:"denylist"`       // replaces the built-in list when set
	ExtraDenylist []string `yaml:"extra_denylist"` // appended to the effective list
	SchemaURI     string   `yaml:"schema_uri"`
}

type Output struct {
	Indent *int `yaml:"indent"`
}

// ValidateConfigPath checks that path points to a file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil && err != io.EOF {
		return err
	}

	return nil
}

// NewConfig reads the configuration from configPath.
func NewConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfig resolves the config path (flag, then SARIFCLEAN_CONFIG, then the default file)
// and loads it. A missing default file yields an empty config.
func LoadConfig(cfgPath string) (*Config, error) {
	explicit := true
	if cfgPath == "" {
		cfgPath = os.Getenv(configEnvVar)
	}
	if cfgPath == "" {
		cfgPath = DefaultConfigFile
		explicit = false
	}

	expanded, err := files.ExpandPath(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %q: %w", cfgPath, err)
	}

	if _, err := os.Stat(expanded); os.IsNotExist(err) && !explicit {
		return &Config{}, nil
	}

	cfg, err := NewConfig(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", expanded, err)
	}
	return cfg, nil
}

// EffectiveDenylist returns the denylist the normalizer should apply.
func EffectiveDenylist(cfg *Config, defaults []string) []string {
	base := defaults
	if cfg != nil && len(cfg.Normalizer.Denylist) > 0 {
		base = cfg.Normalizer.Denylist
	}

	keys := make([]string, 0, len(base))
	keys = append(keys, base...)
	if cfg != nil {
		keys = append(keys, cfg.Normalizer.ExtraDenylist...)
	}
	return keys
}

// GetSchemaURI returns the configured schema URI or defaultURI when none is set.
func GetSchemaURI(cfg *Config, defaultURI string) string {
	if cfg == nil {
		return defaultURI
	}
	return valueOr(cfg.Normalizer.SchemaURI, defaultURI)
}

// GetIndent returns the configured output indent or the default one.
func GetIndent(cfg *Config) int {
	if cfg == nil || cfg.Output.Indent == nil {
		return DefaultIndent
	}
	return *cfg.Output.Indent
}
