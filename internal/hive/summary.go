package hive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

// DefaultTitle seeds the payload title before alert-config overrides apply.
func DefaultTitle(rule *rules.Rule, matches []models.Match) string {
	return rule.Name
}

// DefaultBody renders a batch summary used as the seed description: the rule
// name followed by each match's fields as sorted "key: value" lines, one
// block per match.
func DefaultBody(rule *rules.Rule, matches []models.Match) string {
	var b strings.Builder
	for i, match := range matches {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(rule.Name)
		b.WriteString("\n\n")

		keys := make([]string, 0, len(match))
		for key := range match {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "%s: %v\n", key, match[key])
		}
	}
	return b.String()
}
