package unitfile

import (
	"errors"
	"fmt"
)

// InvalidValueError reports a mapping value that is neither a scalar string
// nor a list of strings.
type InvalidValueError struct {
	Section string // The section the value belongs to
	Key     string // The directive key
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s/%s: must be a string or a list of strings", e.Section, e.Key)
}

// ParseError reports a line of unit file text that violates the format.
type ParseError struct {
	Line   int    // 1-based line number of the offending line
	Text   string // The raw line content
	Reason string // What the line violated
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed unit file line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// WriteError reports a failure to persist a document to disk.
type WriteError struct {
	Path  string // The target path
	Cause error  // The underlying I/O error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write unit file %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports a unit file that was expected on disk but is absent.
type NotFoundError struct {
	Path string // The path that was looked up
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unit file not found: %s", e.Path)
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsParseError checks if an error is a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsInvalidValue checks if an error is an InvalidValueError.
func IsInvalidValue(err error) bool {
	var invalid *InvalidValueError
	return errors.As(err, &invalid)
}
