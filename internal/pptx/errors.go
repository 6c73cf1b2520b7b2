package pptx

import "fmt"

// PackageError represents a malformed or unreadable presentation package
type PackageError struct {
	Path    string
	Message string
	Cause   error
}

func (e *PackageError) Error() string {
	where := e.Path
	if where == "" {
		where = "(memory)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("presentation %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("presentation %s: %s", where, e.Message)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}
