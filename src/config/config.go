package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default config file names, tried in order when no path is given.
var defaultConfigFiles = []string{".dockertags.yml", ".dockertags.yaml", ".dockertags.toml"}

// Config is the top-level dockertags configuration.
type Config struct {
	Scan    ScanConfig    `yaml:"scan" toml:"scan"`
	Resolve ResolveConfig `yaml:"resolve" toml:"resolve"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// Load reads configuration from a YAML or TOML file.
// If path is empty, it tries the default files in each of dirs in order,
// or in the working directory when no dirs are given.
// Returns defaults if no file exists.
func Load(path string, dirs ...string) (*Config, error) {
	if path == "" {
		path = find(dirs)
		if path == "" {
			return defaults(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// find returns the first default config file present in dirs.
func find(dirs []string) string {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		for _, name := range defaultConfigFiles {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate
			}
		}
	}
	return ""
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Validate rejects option values that no component understands.
func (c *Config) Validate() error {
	switch c.Resolve.TagPolicy {
	case TagPolicyLexical, TagPolicySemver:
	default:
		return fmt.Errorf("resolve.tag_policy: unknown policy %q (valid: %s, %s)",
			c.Resolve.TagPolicy, TagPolicyLexical, TagPolicySemver)
	}
	if c.Resolve.Timeout < 0 {
		return fmt.Errorf("resolve.timeout: must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (valid: console, json)", c.Log.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Scan:    DefaultScanConfig(),
		Resolve: DefaultResolveConfig(),
		Log:     DefaultLogConfig(),
	}
}
