package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrNULByte is returned when a line contains a NUL character.
	ErrNULByte = errors.New("csvsniff/parser: line contains NUL")
	// ErrUnexpectedEOF is returned by a strict reader when input ends inside a quoted field.
	ErrUnexpectedEOF = errors.New("csvsniff/parser: unexpected end of data")
	// ErrStrictQuote is returned by a strict reader when a closing quote is not
	// followed by a delimiter or the end of the record.
	ErrStrictQuote = errors.New("csvsniff/parser: delimiter expected after quote character")
	// ErrNewlineInField is returned when a line break is followed by more data
	// on the same line outside a quoted field.
	ErrNewlineInField = errors.New("csvsniff/parser: new-line character seen in unquoted field")
)

// ParseError reports where tokenizing failed.
type ParseError struct {
	// Line is the 1-based physical line number.
	Line int
	// Column is the 1-based character position within the line.
	Column int
	Err    error
}

// Error formats the parse error with its location.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
