// Package config loads the sidecar's YAML configuration: socket and
// logging settings, every tuning knob of the decision engine, and the
// initial strategy assignment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/swarmlogic/swarm-core/rules"
)

type Config struct {
	Socket   string `yaml:"socket"`
	LogLevel string `yaml:"log_level"`

	Tuning rules.Tuning `yaml:"tuning"`
	// EvaluatorTimeoutMS overrides Tuning.EvaluatorTimeout; YAML carries
	// it as plain milliseconds.
	EvaluatorTimeoutMS int `yaml:"evaluator_timeout_ms"`

	Assignment AssignmentConfig `yaml:"assignment"`
}

// AssignmentConfig is the file form of a strategy assignment. Mode is
// "global" or "per_row"; strategies are named ("direct", "predictive",
// "random", "trap", "barrier_avoid") or numbered 1-5.
type AssignmentConfig struct {
	Mode     string         `yaml:"mode"`
	Strategy string         `yaml:"strategy"` // global mode
	Rows     map[int]string `yaml:"rows"`     // per_row mode
}

// Default returns the configuration the sidecar runs with when no file
// is given: classic geometry, row-based strategies, /tmp socket.
func Default() Config {
	return Config{
		Socket:   "/tmp/swarm.sock",
		LogLevel: "info",
		Tuning:   rules.DefaultTuning(),
	}
}

// Load reads and validates a YAML config file. Fields missing from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.EvaluatorTimeoutMS > 0 {
		cfg.Tuning.EvaluatorTimeout = time.Duration(cfg.EvaluatorTimeoutMS) * time.Millisecond
	}
	cfg.Tuning.Validate()
	if _, err := cfg.ResolveAssignment(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveAssignment converts the file form into a rules.Assignment.
// An empty mode returns nil: keep the engine's default row-based mapping.
func (c Config) ResolveAssignment() (*rules.Assignment, error) {
	switch c.Assignment.Mode {
	case "":
		return nil, nil
	case "global":
		s, err := rules.ParseStrategy(c.Assignment.Strategy)
		if err != nil {
			return nil, fmt.Errorf("assignment: %w", err)
		}
		a := rules.GlobalAssignment(s)
		return &a, nil
	case "per_row":
		if len(c.Assignment.Rows) == 0 {
			return nil, fmt.Errorf("assignment: per_row mode needs a rows map")
		}
		m := make(map[int]rules.Strategy, len(c.Assignment.Rows))
		for row, name := range c.Assignment.Rows {
			s, err := rules.ParseStrategy(name)
			if err != nil {
				return nil, fmt.Errorf("assignment row %d: %w", row, err)
			}
			m[row] = s
		}
		a := rules.PerRowAssignment(m)
		return &a, nil
	default:
		return nil, fmt.Errorf("assignment: unknown mode %q", c.Assignment.Mode)
	}
}
