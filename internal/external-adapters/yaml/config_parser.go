// Package yaml provides YAML-based configuration parsing.
package yaml

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verhound/verhound/internal/domain/entities"
)

// yamlConfig represents the raw YAML structure. Pointer fields distinguish
// "absent, use the default" from an explicit zero value.
type yamlConfig struct {
	RestrictedUser        *string           `yaml:"restricted_user"`
	AttemptTimeoutSeconds int               `yaml:"attempt_timeout_seconds"`
	ProbeFlags            []string          `yaml:"probe_flags"`
	AliasSuffixes         []string          `yaml:"alias_suffixes"`
	PassEnv               []string          `yaml:"pass_env"`
	SetEnv                map[string]string `yaml:"set_env"`
	UniquenessLimit       int               `yaml:"uniqueness_limit"`
}

// ConfigParser parses YAML configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML config file into a Config entity
func (p *ConfigParser) ParseFile(filePath string) (*entities.Config, error) {
	//nolint:gosec // G304: filePath is an operator-chosen config location
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return p.Parse(data)
}

// Parse parses YAML bytes into a Config entity, overlaying the compiled-in
// defaults with whatever the file sets.
func (p *ConfigParser) Parse(data []byte) (*entities.Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := entities.DefaultConfig()
	if raw.RestrictedUser != nil {
		cfg.RestrictedUser = *raw.RestrictedUser
	}
	if raw.AttemptTimeoutSeconds > 0 {
		cfg.AttemptTimeout = time.Duration(raw.AttemptTimeoutSeconds) * time.Second
	}
	if len(raw.ProbeFlags) > 0 {
		cfg.ProbeFlags = raw.ProbeFlags
	}
	if len(raw.AliasSuffixes) > 0 {
		cfg.AliasSuffixes = raw.AliasSuffixes
	}
	if len(raw.PassEnv) > 0 {
		cfg.PassEnv = raw.PassEnv
	}
	if len(raw.SetEnv) > 0 {
		cfg.SetEnv = raw.SetEnv
	}
	if raw.UniquenessLimit > 0 {
		cfg.UniquenessLimit = raw.UniquenessLimit
	}
	return cfg, nil
}

// Load returns the effective configuration: the first config file found at
// $VERHOUND_CONFIG, the XDG user location or /etc/verhound/config.yaml, or
// the compiled-in defaults when no file exists. A file that exists but does
// not parse is an error.
func Load() (*entities.Config, error) {
	parser := NewConfigParser()
	for _, path := range candidatePaths() {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return parser.ParseFile(path)
	}
	return entities.DefaultConfig(), nil
}

// candidatePaths lists config locations in priority order.
func candidatePaths() []string {
	paths := []string{os.Getenv("VERHOUND_CONFIG")}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "verhound", "config.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "verhound", "config.yaml"))
	}
	return append(paths, "/etc/verhound/config.yaml")
}
