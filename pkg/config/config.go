// Package config loads faultflow settings from YAML with FAULTFLOW_*
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/faultflow/pkg/logging"
	"github.com/dd0wney/faultflow/pkg/metrics"
	"github.com/dd0wney/faultflow/pkg/model"
	"github.com/dd0wney/faultflow/pkg/validation"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FAULTFLOW_"

// Default configuration values
const (
	DefaultLogLevel       = "info"
	DefaultTopologyPolicy = "ancestor"
)

var (
	logLevels        = []string{"debug", "info", "warn", "warning", "error"}
	topologyPolicies = []string{"ancestor", "connected"}
)

var metricNamespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config holds the settings that shape model construction.
type Config struct {
	LogLevel              string        `yaml:"log_level"`
	StrictConditionInputs bool          `yaml:"strict_condition_inputs"`
	TopologyPolicy        string        `yaml:"topology_policy"`
	Metrics               MetricsConfig `yaml:"metrics"`
}

// MetricsConfig controls Prometheus instrumentation of builds.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	c.LogLevel = validation.DefaultOr(strings.ToLower(strings.TrimSpace(c.LogLevel)), DefaultLogLevel)
	c.TopologyPolicy = validation.DefaultOr(strings.ToLower(strings.TrimSpace(c.TopologyPolicy)), DefaultTopologyPolicy)
	c.Metrics.Namespace = validation.DefaultOr(c.Metrics.Namespace, metrics.DefaultNamespace)
}

// Load reads path, applies environment overrides and validates the result.
// An empty path loads defaults plus the environment.
func Load(path string) (*Config, error) {
	if path == "" {
		return finish(&Config{}, os.LookupEnv)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Read(f, os.LookupEnv)
}

// Read decodes YAML from r. Unknown keys are rejected. lookup resolves
// environment overrides; pass nil to ignore the environment.
func Read(r io.Reader, lookup func(string) (string, bool)) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := &Config{}
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return finish(c, lookup)
}

func finish(c *Config, lookup func(string) (string, bool)) (*Config, error) {
	if lookup != nil {
		if err := c.ApplyEnv(lookup); err != nil {
			return nil, err
		}
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyEnv overrides fields from FAULTFLOW_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	cv := validation.NewConfigValidator("env")

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "TOPOLOGY_POLICY"); ok {
		c.TopologyPolicy = v
	}
	if v, ok := lookup(EnvPrefix + "METRICS_NAMESPACE"); ok {
		c.Metrics.Namespace = v
	}
	parseBool := func(name string, dst *bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		cv.Custom(EnvPrefix+name, func() error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid boolean %q", v)
			}
			*dst = b
			return nil
		})
	}
	parseBool("STRICT_CONDITION_INPUTS", &c.StrictConditionInputs)
	parseBool("METRICS_ENABLED", &c.Metrics.Enabled)

	return cv.Validate()
}

// Validate checks every field and reports all problems at once. Empty
// enum fields are left to applyDefaults.
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("Config")
	cv.When(c.LogLevel != "", func(cv *validation.ConfigValidator) {
		cv.OneOf("LogLevel", c.LogLevel, logLevels)
	})
	cv.When(c.TopologyPolicy != "", func(cv *validation.ConfigValidator) {
		cv.OneOf("TopologyPolicy", c.TopologyPolicy, topologyPolicies)
	})
	cv.When(c.Metrics.Enabled, func(cv *validation.ConfigValidator) {
		cv.Required("Metrics.Namespace", c.Metrics.Namespace)
		cv.When(strings.TrimSpace(c.Metrics.Namespace) != "", func(cv *validation.ConfigValidator) {
			cv.Custom("Metrics.Namespace", func() error {
				if !metricNamespacePattern.MatchString(c.Metrics.Namespace) {
					return fmt.Errorf("%q is not a valid metric namespace", c.Metrics.Namespace)
				}
				return nil
			})
		})
	})
	return cv.Validate()
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Policy returns the parsed topology policy.
func (c *Config) Policy() model.TopologyPolicy {
	p, err := model.ParseTopologyPolicy(c.TopologyPolicy)
	if err != nil {
		return model.PolicyAncestor
	}
	return p
}
