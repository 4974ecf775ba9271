package hive

import (
	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

// CollectTags resolves each tag spec against one match and accumulates the
// stringified results into set. A spec that resolves nowhere degrades to its
// own literal text; list values contribute every element individually.
// Callers invoke this once per match with a shared set, so duplicates across
// the batch collapse.
func CollectTags(specs []string, rule *rules.Rule, match models.Match, set map[string]struct{}) {
	for _, spec := range specs {
		value := LookupField(match, rule, spec, spec)
		switch v := value.(type) {
		case []interface{}:
			for _, item := range v {
				set[stringify(item)] = struct{}{}
			}
		case []string:
			for _, item := range v {
				set[item] = struct{}{}
			}
		default:
			set[stringify(value)] = struct{}{}
		}
	}
}
