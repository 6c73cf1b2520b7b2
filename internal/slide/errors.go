package slide

import "fmt"

// TemplateError represents a template that cannot hold the requested content
type TemplateError struct {
	Shape   string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: shape %q: %s: %v", e.Shape, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: shape %q: %s", e.Shape, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
