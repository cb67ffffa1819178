package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"
)

// LimitConfig defines limits for query results
type LimitConfig struct {
	DefaultLimit int // Default limit when no limit specified
	MaxLimit     int // Maximum allowed limit
}

// DefaultLimitConfig returns limits generous enough for any hand-written model.
func DefaultLimitConfig() *LimitConfig {
	return &LimitConfig{DefaultLimit: 1000, MaxLimit: 10000}
}

// ValidateLimitConfig validates the limit configuration
func ValidateLimitConfig(config *LimitConfig) error {
	if config == nil {
		return fmt.Errorf("nil limit config")
	}
	if config.MaxLimit <= 0 {
		return fmt.Errorf("max limit must be greater than 0, got %d", config.MaxLimit)
	}
	if config.DefaultLimit > config.MaxLimit {
		return fmt.Errorf("default limit (%d) cannot exceed max limit (%d)", config.DefaultLimit, config.MaxLimit)
	}
	if config.DefaultLimit <= 0 {
		return fmt.Errorf("default limit must be greater than 0, got %d", config.DefaultLimit)
	}
	return nil
}

// applyLimit applies default and max limit constraints to a limit value
func applyLimit(requestedLimit int, config *LimitConfig) int {
	if requestedLimit < 0 {
		return config.DefaultLimit
	}
	if requestedLimit > config.MaxLimit {
		return config.MaxLimit
	}
	return requestedLimit
}

// limitArgs adds the limit argument to extra.
func limitArgs(extra ...graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: -1},
	}
	for _, e := range extra {
		for k, v := range e {
			args[k] = v
		}
	}
	return args
}

func limited[T any](items []T, p graphql.ResolveParams, config *LimitConfig) []T {
	requested, ok := p.Args["limit"].(int)
	if !ok {
		requested = -1
	}
	n := applyLimit(requested, config)
	if n < len(items) {
		return items[:n]
	}
	return items
}
