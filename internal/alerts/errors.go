package alerts

import "fmt"

// ValidationError is a schema-level error in a rules file, such as an
// unsupported version or an empty rule list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// RuleError is an error in an individual rule, such as a missing field or
// a pattern that does not compile.
type RuleError struct {
	Index   int    // 0-based index of the rule in the file
	ID      string // rule ID (may be empty if the id field is missing)
	Field   string
	Message string
	Cause   error
}

func (e *RuleError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("rule %q: %s: %s", e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("rule[%d]: %s: %s", e.Index, e.Field, e.Message)
}

func (e *RuleError) Unwrap() error {
	return e.Cause
}
