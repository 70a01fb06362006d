// Package model provides the domain model for csvsniff
package model

import "errors"

// ErrInvalidDialect is returned when a dialect cannot drive the tokenizer
var ErrInvalidDialect = errors.New("invalid dialect")
