package model

import (
	"fmt"
	"strings"
)

// Quoting controls how the quote character is treated while tokenizing.
type Quoting int

const (
	// QuoteMinimal recognises quoted fields wherever the quote character opens a field
	QuoteMinimal Quoting = iota
	// QuoteAll behaves like QuoteMinimal when reading
	QuoteAll
	// QuoteNonNumeric behaves like QuoteMinimal when reading; values stay strings
	QuoteNonNumeric
	// QuoteNone disables quote processing entirely
	QuoteNone
)

// String returns the quoting mode name
func (q Quoting) String() string {
	switch q {
	case QuoteMinimal:
		return "minimal"
	case QuoteAll:
		return "all"
	case QuoteNonNumeric:
		return "nonnumeric"
	case QuoteNone:
		return "none"
	default:
		return fmt.Sprintf("Quoting(%d)", int(q))
	}
}

// Dialect describes how a line of delimited text splits into fields.
// A Dialect is a plain value: two dialects are the same when every field matches.
type Dialect struct {
	// Delimiter separates fields.
	Delimiter rune
	// QuoteChar opens and closes quoted fields. Ignored when Quoting is QuoteNone.
	QuoteChar rune
	// DoubleQuote reports whether a doubled QuoteChar inside a quoted field
	// stands for one literal quote. When false, EscapeChar is the only way to
	// embed a quote.
	DoubleQuote bool
	// EscapeChar makes the next character literal. Zero means no escape character.
	EscapeChar rune
	// SkipInitialSpace drops spaces that directly follow a delimiter.
	SkipInitialSpace bool
	// LineTerminator is the record separator used by writers. Readers accept
	// "\n", "\r\n" and "\r" regardless.
	LineTerminator string
	// Quoting selects the quoting mode.
	Quoting Quoting
	// Strict turns malformed quoting into parse errors instead of best-effort fields.
	Strict bool
}

// Excel returns the dialect of comma separated files exported by Excel.
func Excel() Dialect {
	return Dialect{
		Delimiter:      ',',
		QuoteChar:      '"',
		DoubleQuote:    true,
		LineTerminator: "\r\n",
		Quoting:        QuoteMinimal,
	}
}

// ExcelTab returns the dialect of tab separated files exported by Excel.
func ExcelTab() Dialect {
	d := Excel()
	d.Delimiter = '\t'
	return d
}

// Unix returns the dialect of files produced by typical Unix tools:
// "\n" line endings and every field quoted.
func Unix() Dialect {
	d := Excel()
	d.LineTerminator = "\n"
	d.Quoting = QuoteAll
	return d
}

// Equal compares two dialects field by field.
func (d Dialect) Equal(other Dialect) bool {
	return d.Delimiter == other.Delimiter &&
		d.QuoteChar == other.QuoteChar &&
		d.DoubleQuote == other.DoubleQuote &&
		d.EscapeChar == other.EscapeChar &&
		d.SkipInitialSpace == other.SkipInitialSpace &&
		d.LineTerminator == other.LineTerminator &&
		d.Quoting == other.Quoting &&
		d.Strict == other.Strict
}

// Validate reports whether the dialect is usable by the tokenizer.
func (d Dialect) Validate() error {
	switch {
	case d.Delimiter == 0:
		return fmt.Errorf("%w: delimiter must be set", ErrInvalidDialect)
	case isLineBreak(d.Delimiter):
		return fmt.Errorf("%w: delimiter cannot be a line break", ErrInvalidDialect)
	case d.Quoting < QuoteMinimal || d.Quoting > QuoteNone:
		return fmt.Errorf("%w: unknown quoting mode %d", ErrInvalidDialect, int(d.Quoting))
	case d.Quoting != QuoteNone && d.QuoteChar == 0:
		return fmt.Errorf("%w: quote character must be set unless quoting is none", ErrInvalidDialect)
	case d.QuoteChar != 0 && d.QuoteChar == d.Delimiter:
		return fmt.Errorf("%w: quote character and delimiter are both %q", ErrInvalidDialect, d.Delimiter)
	case isLineBreak(d.QuoteChar):
		return fmt.Errorf("%w: quote character cannot be a line break", ErrInvalidDialect)
	case d.EscapeChar != 0 && (d.EscapeChar == d.Delimiter || d.EscapeChar == d.QuoteChar):
		return fmt.Errorf("%w: escape character %q collides with delimiter or quote character", ErrInvalidDialect, d.EscapeChar)
	case isLineBreak(d.EscapeChar):
		return fmt.Errorf("%w: escape character cannot be a line break", ErrInvalidDialect)
	case d.LineTerminator == "":
		return fmt.Errorf("%w: line terminator must be set", ErrInvalidDialect)
	}
	return nil
}

// String returns a readable description of the dialect
func (d Dialect) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "delimiter=%s quotechar=%s doublequote=%t",
		runeString(d.Delimiter), runeString(d.QuoteChar), d.DoubleQuote)
	fmt.Fprintf(&b, " escapechar=%s skipinitialspace=%t lineterminator=%q quoting=%s strict=%t",
		runeString(d.EscapeChar), d.SkipInitialSpace, d.LineTerminator, d.Quoting, d.Strict)
	return b.String()
}

func runeString(r rune) string {
	if r == 0 {
		return "none"
	}
	return fmt.Sprintf("%q", r)
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}
