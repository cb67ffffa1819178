// Package metrics exposes Prometheus instrumentation for model builds:
// build outcomes and durations, model size, validation findings and
// condition compilation.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name unless overridden.
const DefaultNamespace = "faultflow"

// Registry holds all metrics for the application
type Registry struct {
	// Build Metrics
	BuildsTotal   *prometheus.CounterVec
	BuildDuration prometheus.Histogram
	ModelEntities *prometheus.GaugeVec

	// Validation Metrics
	ValidationDuration prometheus.Histogram
	ViolationsTotal    *prometheus.CounterVec

	// Condition Metrics
	ConditionCompilesTotal *prometheus.CounterVec

	namespace string
	registry  *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	return NewRegistryWithNamespace(DefaultNamespace)
}

// NewRegistryWithNamespace is NewRegistry with a custom metric prefix.
func NewRegistryWithNamespace(namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	r := &Registry{
		namespace: namespace,
		registry:  prometheus.NewRegistry(),
	}

	r.initBuildMetrics()
	r.initValidationMetrics()

	return r
}

// PrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Namespace returns the metric name prefix.
func (r *Registry) Namespace() string { return r.namespace }

var (
	byNamespace   = map[string]*Registry{}
	byNamespaceMu sync.Mutex
)

// ForNamespace returns a process-wide registry for namespace, creating it on
// first use. The default namespace maps to DefaultRegistry.
func ForNamespace(namespace string) *Registry {
	if namespace == "" || namespace == DefaultNamespace {
		return DefaultRegistry()
	}
	byNamespaceMu.Lock()
	defer byNamespaceMu.Unlock()
	r, ok := byNamespace[namespace]
	if !ok {
		r = NewRegistryWithNamespace(namespace)
		byNamespace[namespace] = r
	}
	return r
}
