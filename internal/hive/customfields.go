package hive

import (
	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

// BuildCustomFields converts custom-field declarations into the ordered,
// typed field map keyed by field name. String values are field references
// resolved against the match; unresolvable references and unsupported value
// kinds are skipped without advancing the position counter, so emitted
// orders stay contiguous from 0. Invoked with the first match of the batch
// only; custom fields are not aggregated across matches.
func BuildCustomFields(decls []rules.CustomFieldDecl, rule *rules.Rule, match models.Match) map[string]models.CustomField {
	fields := map[string]models.CustomField{}
	position := 0

	for _, decl := range decls {
		switch decl.Value.Kind {
		case rules.ValueString:
			value := LookupField(match, rule, decl.Value.Str, nil)
			if value == nil {
				continue
			}
			fields[decl.Name] = models.CustomField{"order": position, decl.Type: value}
			position++
		case rules.ValueNumber:
			fields[decl.Name] = models.CustomField{"order": position, decl.Type: decl.Value.Number()}
			position++
		default:
			// Unsupported value kinds are dropped silently.
			continue
		}
	}

	return fields
}
