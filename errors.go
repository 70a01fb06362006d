package csvsniff

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error messages and error creation functions for consistency
var (
	// ErrFileNotFound indicates file not found
	ErrFileNotFound = errors.New("csvsniff: file not found")

	// ErrNotRegularFile indicates that the path names a directory or a device
	ErrNotRegularFile = errors.New("csvsniff: not a regular file")

	// ErrPermissionDenied indicates permission denied
	ErrPermissionDenied = errors.New("csvsniff: permission denied")

	// ErrEmptyFile indicates that the file has no content to sample
	ErrEmptyFile = errors.New("csvsniff: empty file")

	// ErrSkipLinesExceeded indicates that the file ended before the lines to skip
	ErrSkipLinesExceeded = errors.New("csvsniff: file has fewer lines than the lines to skip")

	// ErrInvalidOption indicates an option value that cannot be used
	ErrInvalidOption = errors.New("csvsniff: invalid option")

	// ErrEncodingDetection indicates that the encoding detector could not name an encoding
	ErrEncodingDetection = errors.New("csvsniff: encoding detection failed")

	// ErrSniff indicates that no dialect could be deduced from the sample
	ErrSniff = errors.New("csvsniff: could not sniff dialect")

	// ErrContextCancelled indicates context was cancelled
	ErrContextCancelled = errors.New("csvsniff: context cancelled")
)

// DecodeError reports text that could not be decoded under the chosen encoding.
type DecodeError struct {
	// Path is the resolved path of the file being read.
	Path string
	// Encoding is the label the file was decoded with.
	Encoding string
	Err      error
}

// Error returns the error message.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("csvsniff: cannot decode %s as %s: %v", e.Path, e.Encoding, e.Err)
}

// Unwrap returns the underlying decoding error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	parts := []string{fmt.Sprintf("csvsniff: %s failed", ec.Operation)}

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}
	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}
	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return errors.New(context)
}
