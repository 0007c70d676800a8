package types

import (
	"errors"
	"fmt"
)

const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION"
	CodeConfirmFailed = "CONFIRM_FAILED"
	CodeInternal      = "INTERNAL"
)

// CodedError is a typed error used for stable API mapping.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *CodedError) Unwrap() error { return e.Cause }

// NewError builds a *CodedError.
func NewError(code, msg string, cause error) error {
	return &CodedError{Code: code, Message: msg, Cause: cause}
}

// NotFound is shorthand for a NOT_FOUND coded error.
func NotFound(format string, args ...any) error {
	return &CodedError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation is shorthand for a VALIDATION coded error.
func Validation(format string, args ...any) error {
	return &CodedError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// HasCode reports whether err wraps a CodedError with the given code.
func HasCode(err error, code string) bool {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}
