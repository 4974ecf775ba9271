// Package hive builds TheHive-compatible alert payloads from matched events
// and rule configuration, and delivers them to a case-management API.
package hive

import (
	"fmt"

	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

// LookupField resolves a field: the match first (dot-notation paths reach
// nested maps), then the rule's top-level options, then def. An explicit
// null stored in the match counts as not found and falls through to the
// rule options. Pure function of its inputs.
func LookupField(match models.Match, rule *rules.Rule, fieldName string, def interface{}) interface{} {
	if value := lookupPath(match, fieldName); value != nil {
		return value
	}
	if rule != nil && rule.Options != nil {
		if value, ok := rule.Options[fieldName]; ok {
			return value
		}
	}
	return def
}

// lookupPath retrieves a value from a nested map using a dot-notation path.
// A flat key containing dots wins over nested traversal, and a leading dot
// (jq-style ".actor.user.name") is tolerated.
func lookupPath(fields map[string]interface{}, fieldPath string) interface{} {
	if fields == nil {
		return nil
	}

	if value, ok := fields[fieldPath]; ok && value != nil {
		return value
	}

	if len(fieldPath) > 0 && fieldPath[0] == '.' {
		fieldPath = fieldPath[1:]
	}

	parts := splitFieldPath(fieldPath)
	current := fields
	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		next, ok := current[part].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}

	return nil
}

// splitFieldPath splits a dot-notation field path into parts.
func splitFieldPath(path string) []string {
	result := []string{}
	current := ""
	for _, ch := range path {
		if ch == '.' {
			if current != "" {
				result = append(result, current)
				current = ""
			}
		} else {
			current += string(ch)
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}

// stringify renders a resolved value for artifact data, tags and template
// arguments. nil renders empty so absent values skip cleanly.
func stringify(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
