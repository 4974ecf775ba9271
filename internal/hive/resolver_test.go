package hive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

func TestLookupField(t *testing.T) {
	rule := &rules.Rule{
		Name: "test-rule",
		Options: map[string]interface{}{
			"environment": "production",
			"owner":       nil,
		},
	}

	tests := []struct {
		name      string
		match     models.Match
		fieldName string
		def       interface{}
		expected  interface{}
	}{
		{
			name:      "match hit",
			match:     models.Match{"src_ip": "10.0.1.5"},
			fieldName: "src_ip",
			def:       "",
			expected:  "10.0.1.5",
		},
		{
			name: "nested dotted path",
			match: models.Match{
				"actor": map[string]interface{}{
					"user": map[string]interface{}{"name": "alice"},
				},
			},
			fieldName: "actor.user.name",
			def:       nil,
			expected:  "alice",
		},
		{
			name:      "flat key containing dots wins",
			match:     models.Match{"actor.user.name": "bob"},
			fieldName: "actor.user.name",
			def:       nil,
			expected:  "bob",
		},
		{
			name: "jq-style leading dot",
			match: models.Match{
				"host": map[string]interface{}{"name": "srv1"},
			},
			fieldName: ".host.name",
			def:       nil,
			expected:  "srv1",
		},
		{
			name:      "absent from match, present in rule options",
			match:     models.Match{"src_ip": "10.0.1.5"},
			fieldName: "environment",
			def:       "",
			expected:  "production",
		},
		{
			name:      "explicit null in match falls through to rule options",
			match:     models.Match{"environment": nil},
			fieldName: "environment",
			def:       "",
			expected:  "production",
		},
		{
			name:      "absent everywhere returns default",
			match:     models.Match{},
			fieldName: "no_such_field",
			def:       "fallback",
			expected:  "fallback",
		},
		{
			name:      "explicit null rule option is returned as-is",
			match:     models.Match{},
			fieldName: "owner",
			def:       "fallback",
			expected:  nil,
		},
		{
			name:      "path through non-map value returns default",
			match:     models.Match{"actor": "not-a-map"},
			fieldName: "actor.user.name",
			def:       "fallback",
			expected:  "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LookupField(tt.match, rule, tt.fieldName, tt.def))
		})
	}
}

func TestLookupField_NilRule(t *testing.T) {
	assert.Equal(t, "def", LookupField(models.Match{}, nil, "field", "def"))
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"int", 42, "42"},
		{"whole float", 80.0, "80"},
		{"fractional float", 1.5, "1.5"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stringify(tt.value))
		})
	}
}
