package hive

import (
	"fmt"
	"strings"

	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

// DefaultMissingValue is substituted for template arguments that cannot be
// resolved, unless the rule overrides it per field.
const DefaultMissingValue = "<MISSING VALUE>"

// SubstituteArgs performs positional argument substitution for one templated
// payload field (description, title, type or source). The rule's alert
// config may carry "<fieldKey>_args", a list of field specs resolved against
// the match, and "<fieldKey>_missing_value", the fallback marker. A resolved
// nil gets one more chance as a rule top-level option named by the original
// spec before degrading to the marker. Without an args list the template is
// returned unchanged. Never fails.
func SubstituteArgs(fieldKey, template string, rule *rules.Rule, match models.Match) string {
	missing := DefaultMissingValue
	if override, ok := rule.AlertConfig[fieldKey+"_missing_value"].(string); ok {
		missing = override
	}

	rawArgs, ok := rule.AlertConfig[fieldKey+"_args"]
	if !ok {
		return template
	}
	specs := toStringSlice(rawArgs)

	values := make([]interface{}, len(specs))
	for i, spec := range specs {
		values[i] = LookupField(match, rule, spec, missing)
	}

	for i, value := range values {
		if value != nil {
			continue
		}
		if fallback, ok := rule.Options[specs[i]]; ok && fallback != nil && stringify(fallback) != "" {
			values[i] = fallback
		}
	}

	for i, value := range values {
		if value == nil {
			values[i] = missing
		}
	}

	return formatPositional(template, values)
}

// formatPositional replaces ordinal placeholders {0}, {1}, ... with the
// stringified values. Placeholders beyond the argument list are left as-is.
func formatPositional(template string, values []interface{}) string {
	out := template
	for i, value := range values {
		out = strings.ReplaceAll(out, fmt.Sprintf("{%d}", i), stringify(value))
	}
	return out
}

// toStringSlice normalizes a decoded YAML/JSON list into strings. Scalars
// become a single-element slice; nil and unsupported shapes become empty.
func toStringSlice(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, stringify(item))
		}
		return out
	case string:
		return []string{v}
	default:
		return []string{}
	}
}
