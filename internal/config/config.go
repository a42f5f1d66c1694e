package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the tunable settings of the checker. Zero values are
// backfilled from defaults, so a partial YAML file is valid.
type Config struct {
	// MatchDepthLimit bounds recursive constructor specialization in the
	// exhaustiveness checker (see DefaultMatchDepthLimit).
	MatchDepthLimit int `yaml:"match_depth_limit"`
	// GuardAllowList is the set of functions callable from match guards.
	GuardAllowList []string `yaml:"guard_allow_list"`
	// MaxErrors stops diagnostic collection after this many hard errors.
	// Zero means unlimited.
	MaxErrors int `yaml:"max_errors"`
}

// Default returns the checker configuration used when no file is given.
func Default() *Config {
	return &Config{
		MatchDepthLimit: DefaultMatchDepthLimit,
		GuardAllowList:  append([]string(nil), DefaultGuardAllowList...),
	}
}

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes and merges them over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	def := Default()
	if cfg.MatchDepthLimit <= 0 {
		cfg.MatchDepthLimit = def.MatchDepthLimit
	}
	if len(cfg.GuardAllowList) == 0 {
		cfg.GuardAllowList = def.GuardAllowList
	}
	return cfg, nil
}

// GuardAllowed reports whether a function name may be called from a guard.
func (c *Config) GuardAllowed(name string) bool {
	for _, n := range c.GuardAllowList {
		if n == name {
			return true
		}
	}
	return false
}
