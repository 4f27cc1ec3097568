package errors

import "fmt"

// ErrorCode represents a zdesk error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// DeskError represents a structured error with code, status, and details.
// Store mutators never raise these; they exist for the CLI, MCP, and web
// surfaces, which report invalid arguments and missing records to callers.
type DeskError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *DeskError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *DeskError {
	return &DeskError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a record that cannot be found.
func NewNotFound(identifier string) *DeskError {
	return &DeskError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *DeskError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &DeskError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a DeskError with the given code.
func Is(err error, code ErrorCode) bool {
	if dErr, ok := err.(*DeskError); ok {
		return dErr.Code == code
	}
	return false
}
