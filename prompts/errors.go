package prompts

import (
	"errors"
	"fmt"
)

// ErrorType classifies a TemplateError.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeDuplicate
	ErrorTypeSerialization
	ErrorTypeInvalidInput
)

// TemplateError is returned by the fallible surfaces of this package, such
// as the template manager and builder. Rendering itself never returns an
// error; unresolved placeholders are preserved in the output instead.
type TemplateError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *TemplateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.TypeString(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.TypeString(), e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

func (e *TemplateError) TypeString() string {
	switch e.Type {
	case ErrorTypeValidation:
		return "validation error"
	case ErrorTypeNotFound:
		return "not found"
	case ErrorTypeDuplicate:
		return "duplicate"
	case ErrorTypeSerialization:
		return "serialization error"
	case ErrorTypeInvalidInput:
		return "invalid input"
	default:
		return "unknown error"
	}
}

// NewTemplateError creates a new TemplateError.
func NewTemplateError(errType ErrorType, message string, err error) *TemplateError {
	return &TemplateError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

var errFunctionPanic = errors.New("template function panicked")
