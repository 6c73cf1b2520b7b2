package validation

import "fmt"

// Error is returned by Enforce when a profile fails its checks
type Error struct {
	Message string
	Count   int
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation error: %s (%d violation(s))", e.Message, e.Count)
}
