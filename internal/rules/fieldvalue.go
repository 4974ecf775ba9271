package rules

import (
	"math"

	"gopkg.in/yaml.v3"
)

// ValueKind tags the decoded kind of a custom-field declaration value.
type ValueKind int

const (
	// ValueInvalid marks value kinds the alerter does not support (lists,
	// maps, booleans, null). Declarations carrying one are silently skipped.
	ValueInvalid ValueKind = iota
	// ValueString marks a field-name reference to resolve from the event.
	ValueString
	// ValueNumber marks a numeric literal used as-is.
	ValueNumber
)

// FieldValue is the tagged variant for custom-field declaration values,
// resolved once at rule-loading time so the field typer never inspects
// runtime types.
type FieldValue struct {
	Kind ValueKind
	Str  string
	num  float64
}

// StringValue constructs a field-name reference value.
func StringValue(s string) FieldValue {
	return FieldValue{Kind: ValueString, Str: s}
}

// NumberValue constructs a numeric literal value.
func NumberValue(n float64) FieldValue {
	return FieldValue{Kind: ValueNumber, num: n}
}

// Number returns the literal as an int when it is integral, else a float64.
// Keeps JSON output free of spurious decimal points for whole numbers.
func (v FieldValue) Number() interface{} {
	if v.num == math.Trunc(v.num) && !math.IsInf(v.num, 0) {
		return int(v.num)
	}
	return v.num
}

// UnmarshalYAML decodes a scalar into the matching variant. Unsupported
// kinds decode to ValueInvalid without error; the skip happens downstream.
func (v *FieldValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		v.Kind = ValueInvalid
		return nil
	}

	var n float64
	if err := node.Decode(&n); err == nil && node.Tag != "!!bool" && node.Tag != "!!null" {
		v.Kind = ValueNumber
		v.num = n
		return nil
	}

	var s string
	if err := node.Decode(&s); err == nil && node.Tag == "!!str" {
		v.Kind = ValueString
		v.Str = s
		return nil
	}

	v.Kind = ValueInvalid
	return nil
}
