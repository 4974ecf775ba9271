package hive

import (
	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

// Artifact defaults when a mapping entry carries no overrides.
const defaultTLP = 2

// ExtractObservables converts the rule's observable mappings plus one match
// into evidence artifacts. Entries whose resolved data stringifies to empty
// emit nothing, as do entries that declared no observable type. Called once
// per match; callers concatenate results across the batch without dedup.
func ExtractObservables(rule *rules.Rule, match models.Match) []models.Artifact {
	artifacts := []models.Artifact{}
	for _, mapping := range rule.ObservableMapping {
		if mapping.DataType == "" {
			continue
		}

		data := stringify(LookupField(match, rule, mapping.Field, ""))
		if len(data) == 0 {
			continue
		}

		artifact := models.Artifact{
			DataType: mapping.DataType,
			Data:     data,
			TLP:      defaultTLP,
			Tags:     []string{},
			Message:  nil,
		}
		if mapping.TLP != nil {
			artifact.TLP = *mapping.TLP
		}
		if mapping.Message != nil {
			artifact.Message = mapping.Message
		}
		if mapping.Tags != nil {
			artifact.Tags = mapping.Tags
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts
}
