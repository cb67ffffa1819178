package graphql

import (
	"context"
	"strings"
	"testing"
)

func TestValidateQueryDepth(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		maxDepth int
		wantErr  bool
	}{
		{"flat", `{ components { name } }`, 2, false},
		{"nested within limit", `{ system { topLevel { children { name } } } }`, 4, false},
		{"nested over limit", `{ system { topLevel { children { children { name } } } } }`, 4, true},
		{"introspection ignored", `{ __schema { types { name } } }`, 1, false},
		{
			"fragment counted",
			`query { system { ...Top } } fragment Top on System { topLevel { children { name } } }`,
			3, true,
		},
		{"invalid query", `{ system {`, 5, true},
		{"non-positive limit", `{ components { name } }`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQueryDepth(tt.query, tt.maxDepth)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQueryDepth() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteWithDepthLimit(t *testing.T) {
	schema, err := GenerateSchema(setupSnapshot(t))
	if err != nil {
		t.Fatal(err)
	}

	deep := `{ system { topLevel { children { children { name } } } } }`
	result := ExecuteWithDepthLimit(context.Background(), schema, deep, 3, nil)
	if !result.HasErrors() {
		t.Fatal("expected depth error")
	}
	if !strings.Contains(result.Errors[0].Message, "exceeds maximum allowed depth") {
		t.Errorf("error = %q", result.Errors[0].Message)
	}

	result = ExecuteWithDepthLimit(context.Background(), schema, deep, DefaultMaxDepth, nil)
	if result.HasErrors() {
		t.Fatalf("query failed: %v", result.Errors)
	}
}
