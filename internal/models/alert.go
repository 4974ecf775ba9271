// Package models provides data models for the hivebridge service.
package models

// Match is one monitored occurrence reported by the upstream rule-evaluation
// service. Field paths may be flat ("src_ip") or nested maps addressed with
// dot notation ("actor.user.name").
type Match map[string]interface{}

// Artifact is one piece of evidence attached to an alert.
type Artifact struct {
	DataType string   `json:"dataType"`
	Data     string   `json:"data"`
	TLP      int      `json:"tlp"`
	Tags     []string `json:"tags"`
	Message  *string  `json:"message"`
}

// CustomField is a typed, ordered supplementary alert attribute. It marshals
// as {"order": N, "<type>": value} where the value key is the declared type
// name (string, number, date, ...), so it stays a map.
type CustomField map[string]interface{}

// Payload is the alert object delivered to the case-management API. The keys
// hivebridge always sets are title, description, date (epoch millis),
// sourceRef, tags, artifacts and customFields; rule overrides may contribute
// arbitrary additional keys, so the payload stays a map with typed accessors.
type Payload map[string]interface{}

// SourceRef returns the alert's unique source reference.
func (p Payload) SourceRef() string {
	ref, _ := p["sourceRef"].(string)
	return ref
}

// Title returns the alert title.
func (p Payload) Title() string {
	title, _ := p["title"].(string)
	return title
}

// Artifacts returns the alert's evidence artifacts.
func (p Payload) Artifacts() []Artifact {
	artifacts, _ := p["artifacts"].([]Artifact)
	return artifacts
}

// Tags returns the alert's tag list.
func (p Payload) Tags() []string {
	tags, _ := p["tags"].([]string)
	return tags
}
