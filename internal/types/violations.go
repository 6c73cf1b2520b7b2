// Package types provides type definitions for structured data used throughout the profile-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Severity levels for violations
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Violation represents a single data-quality finding on a profile
type Violation struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Field    string `json:"field"`
	Details  string `json:"details"`
}

// Violations represents a collection of findings
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation has error severity
func (v *Violations) HasErrors() bool {
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}
