package credentials

import "strings"

// FieldViolation describes a single rejected field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Violations collects every rejected field of an aggregate check.
type Violations []FieldViolation

// Empty reports whether no rule was violated.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// Fields returns the names of the rejected fields in check order.
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, item := range v {
		fields = append(fields, item.Field)
	}
	return fields
}

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, item := range v {
		parts = append(parts, item.Field+": "+item.Reason)
	}
	return strings.Join(parts, "; ")
}

func (v *Violations) add(field string, outcome Outcome) {
	if outcome.OK {
		return
	}
	*v = append(*v, FieldViolation{Field: field, Reason: outcome.Reason})
}
