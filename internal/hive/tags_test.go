package hive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

func TestCollectTags(t *testing.T) {
	rule := &rules.Rule{Name: "test-rule"}

	tests := []struct {
		name     string
		specs    []string
		match    models.Match
		expected map[string]struct{}
	}{
		{
			name:     "scalar value",
			specs:    []string{"src_ip"},
			match:    models.Match{"src_ip": "10.0.1.5"},
			expected: map[string]struct{}{"10.0.1.5": {}},
		},
		{
			name:  "list value expands per element",
			specs: []string{"mitre_tactics"},
			match: models.Match{
				"mitre_tactics": []interface{}{"TA0001", "TA0002"},
			},
			expected: map[string]struct{}{"TA0001": {}, "TA0002": {}},
		},
		{
			name:     "unresolvable spec degrades to its own text",
			specs:    []string{"static-tag"},
			match:    models.Match{},
			expected: map[string]struct{}{"static-tag": {}},
		},
		{
			name:     "numeric values stringified",
			specs:    []string{"dst_port"},
			match:    models.Match{"dst_port": float64(443)},
			expected: map[string]struct{}{"443": {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := map[string]struct{}{}
			CollectTags(tt.specs, rule, tt.match, set)
			assert.Equal(t, tt.expected, set)
		})
	}
}

func TestCollectTags_DedupAcrossMatches(t *testing.T) {
	rule := &rules.Rule{Name: "test-rule"}
	specs := []string{"src_ip", "static-tag"}

	set := map[string]struct{}{}
	CollectTags(specs, rule, models.Match{"src_ip": "10.0.1.5"}, set)
	CollectTags(specs, rule, models.Match{"src_ip": "10.0.1.5"}, set)
	CollectTags(specs, rule, models.Match{"src_ip": "10.0.9.9"}, set)

	assert.Equal(t, map[string]struct{}{
		"10.0.1.5":   {},
		"10.0.9.9":   {},
		"static-tag": {},
	}, set)
}
