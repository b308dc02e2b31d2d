package domain

// ValidationResult reports the outcome of a business-rule check as data.
// Expected validation failures are carried in Errors, in the order the rules
// were evaluated; they are never raised as control-flow errors.
type ValidationResult struct {
	Errors []string
}

// IsValid reports whether no rule failed.
func (r ValidationResult) IsValid() bool { return len(r.Errors) == 0 }

// Valid returns a passing ValidationResult.
func Valid() ValidationResult { return ValidationResult{} }

// Invalid returns a failing ValidationResult carrying the given messages.
func Invalid(msgs ...string) ValidationResult {
	return ValidationResult{Errors: msgs}
}

// Add appends a failure message, preserving evaluation order.
func (r *ValidationResult) Add(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Merge appends all failures from other onto r.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
}
