package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/faultflow/pkg/logging"
	"github.com/dd0wney/faultflow/pkg/model"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.LogLevel != "info" || c.TopologyPolicy != "ancestor" || c.Metrics.Namespace != "faultflow" {
		t.Errorf("Default() = %+v", c)
	}
	if c.StrictConditionInputs || c.Metrics.Enabled {
		t.Error("booleans should default to false")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if c.Level() != logging.InfoLevel || c.Policy() != model.PolicyAncestor {
		t.Errorf("Level() = %v, Policy() = %v", c.Level(), c.Policy())
	}
}

func TestRead(t *testing.T) {
	yml := `
log_level: DEBUG
strict_condition_inputs: true
topology_policy: connected
metrics:
  enabled: true
  namespace: tcu_model
`
	c, err := Read(strings.NewReader(yml), nil)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if c.LogLevel != "debug" || !c.StrictConditionInputs || c.Policy() != model.PolicyConnected {
		t.Errorf("config = %+v", c)
	}
	if !c.Metrics.Enabled || c.Metrics.Namespace != "tcu_model" {
		t.Errorf("metrics = %+v", c.Metrics)
	}
}

func TestRead_Empty(t *testing.T) {
	c, err := Read(strings.NewReader("  \n"), nil)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if c.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q", c.LogLevel)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		yml  string
		want string
	}{
		{"unknown key", "colour: blue\n", "parse config"},
		{"bad yaml", "log_level: [\n", "parse config"},
		{"bad level", "log_level: loud\n", "LogLevel"},
		{"bad policy", "topology_policy: sideways\n", "TopologyPolicy"},
		{"bad namespace", "metrics:\n  enabled: true\n  namespace: 9lives\n", "Metrics.Namespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.yml), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_CollectsEveryField(t *testing.T) {
	c := &Config{
		LogLevel:       "loud",
		TopologyPolicy: "sideways",
		Metrics:        MetricsConfig{Enabled: true, Namespace: "  "},
	}
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"3 errors", "Config.LogLevel", "Config.TopologyPolicy", "Config.Metrics.Namespace"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}

	if err := (&Config{LogLevel: "WARN", TopologyPolicy: "Connected"}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want case-insensitive match", err)
	}
	if err := (&Config{}).Validate(); err != nil {
		t.Errorf("Validate() of empty config = %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	c, err := Read(strings.NewReader("log_level: warn\n"), env(map[string]string{
		"FAULTFLOW_LOG_LEVEL":               "error",
		"FAULTFLOW_STRICT_CONDITION_INPUTS": "true",
		"FAULTFLOW_TOPOLOGY_POLICY":         "Connected",
		"FAULTFLOW_METRICS_ENABLED":         "1",
		"FAULTFLOW_METRICS_NAMESPACE":       "plant",
	}))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if c.LogLevel != "error" || !c.StrictConditionInputs || c.TopologyPolicy != "connected" {
		t.Errorf("config = %+v", c)
	}
	if !c.Metrics.Enabled || c.Metrics.Namespace != "plant" {
		t.Errorf("metrics = %+v", c.Metrics)
	}
}

func TestApplyEnv_BadBooleans(t *testing.T) {
	c := &Config{}
	err := c.ApplyEnv(env(map[string]string{
		"FAULTFLOW_STRICT_CONDITION_INPUTS": "maybe",
		"FAULTFLOW_METRICS_ENABLED":         "sometimes",
	}))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"STRICT_CONDITION_INPUTS", "METRICS_ENABLED"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faultflow.yaml")
	if err := os.WriteFile(path, []byte("topology_policy: connected\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FAULTFLOW_LOG_LEVEL", "debug")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Policy() != model.PolicyConnected || c.Level() != logging.DebugLevel {
		t.Errorf("config = %+v", c)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	c, err = Load("")
	if err != nil || c.Level() != logging.DebugLevel {
		t.Errorf("Load(\"\") = %+v, %v", c, err)
	}
}
