// Package rules provides typed notification rule configuration loaded from
// YAML rule files.
package rules

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ConnectionConfig holds settings for one case-management API endpoint.
// Host carries the scheme ("https://hive.internal"); Port of 0 means the
// host already includes any port.
type ConnectionConfig struct {
	Host      string        `yaml:"host" mapstructure:"host"`
	Port      int           `yaml:"port" mapstructure:"port"`
	APIKey    string        `yaml:"apikey" mapstructure:"apikey"`
	ProxyURL  string        `yaml:"proxy_url" mapstructure:"proxy_url"`
	VerifyTLS bool          `yaml:"verify_tls" mapstructure:"verify_tls"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ObservableMapping declares one evidence observable: the first key in the
// YAML mapping that is not tlp, message or tags names the observable data
// type, and its value is the event field to resolve. Any further non-aux
// keys in the same entry are ignored; an entry may also carry only aux keys,
// in which case it produces nothing.
type ObservableMapping struct {
	DataType string
	Field    string
	TLP      *int
	Message  *string
	Tags     []string
}

// UnmarshalYAML decodes a mapping entry, keeping only the first primary
// key/value pair in document order.
func (m *ObservableMapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("observable mapping must be a mapping, got %s", node.Tag)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch key {
		case "tlp":
			var tlp int
			if err := value.Decode(&tlp); err != nil {
				return fmt.Errorf("invalid tlp: %w", err)
			}
			m.TLP = &tlp
		case "message":
			var msg string
			if err := value.Decode(&msg); err != nil {
				return fmt.Errorf("invalid message: %w", err)
			}
			m.Message = &msg
		case "tags":
			if err := value.Decode(&m.Tags); err != nil {
				return fmt.Errorf("invalid tags: %w", err)
			}
		default:
			// An entry declares exactly one observable; later primary keys
			// are ignored.
			if m.DataType != "" {
				continue
			}
			m.DataType = key
			if err := value.Decode(&m.Field); err != nil {
				return fmt.Errorf("invalid field for %s: %w", key, err)
			}
		}
	}

	return nil
}

// CustomFieldDecl declares one custom field. Value is either a numeric
// literal or the name of an event field to resolve.
type CustomFieldDecl struct {
	Name  string     `yaml:"name"`
	Type  string     `yaml:"type"`
	Value FieldValue `yaml:"value"`
}

// Rule is one notification rule: static option defaults, alert-config
// overrides, observable mappings, custom field declarations and an optional
// connection override.
type Rule struct {
	Name              string                 `yaml:"name"`
	Realert           time.Duration          `yaml:"realert"`
	Options           map[string]interface{} `yaml:"options"`
	AlertConfig       map[string]interface{} `yaml:"alert_config"`
	ObservableMapping []ObservableMapping    `yaml:"observable_data_mapping"`
	CustomFields      []CustomFieldDecl      `yaml:"custom_fields"`
	Connection        *ConnectionConfig      `yaml:"connection"`
}

// Validate checks the rule for configuration errors that would otherwise
// surface only at alert time.
func (r *Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule name is required")
	}
	for i, m := range r.ObservableMapping {
		if m.TLP != nil && (*m.TLP < 0 || *m.TLP > 3) {
			return fmt.Errorf("observable_data_mapping[%d]: tlp must be 0-3, got %d", i, *m.TLP)
		}
	}
	return nil
}
