package level

import "fmt"

// Validation error codes.
const (
	CodeMissingID      = "missing_id"
	CodeBadSize        = "bad_size"
	CodeBadPattern     = "bad_pattern"
	CodeBadLine        = "bad_line"
	CodeUnknownPattern = "unknown_pattern"
	CodeBadRotation    = "bad_rotation"
	CodeOutOfBounds    = "out_of_bounds"
)

// ValidationError describes one problem with a level or brush definition.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
