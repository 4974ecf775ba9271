package hive

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

// templatedFields are substituted in this fixed order; each substitution is
// followed by removal of its _args override so it never reaches the API.
var templatedFields = []string{"description", "title", "type", "source"}

// Assembler builds alert payloads. The clock and reference generator are
// injectable for tests; production assemblers use time.Now and random UUIDs.
type Assembler struct {
	now    func() time.Time
	newRef func() string
}

// NewAssembler creates a production assembler.
func NewAssembler() *Assembler {
	return &Assembler{
		now:    time.Now,
		newRef: uuid.NewString,
	}
}

// Assemble produces the alert payload for a match batch.
//
// Defaults are seeded first, then the rule's alert config is shallow-merged
// over them. Artifacts and tags aggregate over every match in the batch (tag
// specs come from the post-merge tags value); custom fields and template
// substitution use only the first match. That asymmetry is contractual:
// titles and descriptions describe the batch, not individual events.
func (a *Assembler) Assemble(rule *rules.Rule, matches []models.Match) models.Payload {
	payload := models.Payload{
		"artifacts":    []models.Artifact{},
		"customFields": map[string]models.CustomField{},
		"date":         a.now().UnixMilli(),
		"description":  DefaultBody(rule, matches),
		"sourceRef":    a.newRef(),
		"tags":         []string{},
		"title":        DefaultTitle(rule, matches),
	}

	// Override semantics: any alert-config key replaces the default.
	for key, value := range rule.AlertConfig {
		payload[key] = value
	}

	tagSpecs := toStringSlice(payload["tags"])
	tagSet := map[string]struct{}{}
	artifacts := []models.Artifact{}
	for _, match := range matches {
		artifacts = append(artifacts, ExtractObservables(rule, match)...)
		CollectTags(tagSpecs, rule, match, tagSet)
	}

	payload["artifacts"] = artifacts
	payload["tags"] = sortedTags(tagSet)

	if len(matches) > 0 {
		first := matches[0]
		payload["customFields"] = BuildCustomFields(rule.CustomFields, rule, first)

		for _, field := range templatedFields {
			if template, ok := payload[field].(string); ok {
				payload[field] = SubstituteArgs(field, template, rule, first)
			}
			delete(payload, field+"_args")
		}
	}

	return payload
}

// sortedTags converts the tag set to a sorted slice. Tag order carries no
// meaning; sorting keeps payloads reproducible.
func sortedTags(set map[string]struct{}) []string {
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
