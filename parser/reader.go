package parser

import (
	"errors"
	"io"
	"strings"

	"github.com/nao1215/csvsniff/domain/model"
)

type state int

const (
	startRecord state = iota
	startField
	escapedChar
	inField
	inQuotedField
	escapeInQuotedField
	quoteInQuotedField
	eatCRNL
	afterEscapedCRNL
)

// eol marks the end of a physical line.
const eol rune = -1

// Reader reads records from a LineSource under a dialect.
type Reader struct {
	src     LineSource
	dialect model.Dialect

	state  state
	fields []string
	field  strings.Builder
	// fieldStarted is set once the current field received a character.
	fieldStarted bool

	line    int
	invalid error
}

// NewReader returns a Reader that tokenizes src under d.
// An invalid dialect is reported by the first call to Read.
func NewReader(src LineSource, d model.Dialect) *Reader {
	return &Reader{
		src:     src,
		dialect: d,
		invalid: d.Validate(),
	}
}

// Dialect returns the dialect the reader tokenizes with.
func (r *Reader) Dialect() model.Dialect {
	return r.dialect
}

// Line returns the number of physical lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next record. A blank line yields an empty, non-nil record.
// io.EOF is returned when the input is exhausted.
func (r *Reader) Read() ([]string, error) {
	if r.invalid != nil {
		return nil, r.invalid
	}

	r.fields = make([]string, 0, 16)
	r.resetField()
	r.state = startRecord

	for {
		line, err := r.src.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}
			if r.fieldStarted || r.state == inQuotedField {
				if r.dialect.Strict {
					return nil, &ParseError{Line: r.line, Column: 0, Err: ErrUnexpectedEOF}
				}
				r.saveField()
				return r.fields, nil
			}
			return nil, io.EOF
		}
		r.line++

		column := 0
		for _, c := range line {
			column++
			if c == 0 {
				return nil, &ParseError{Line: r.line, Column: column, Err: ErrNULByte}
			}
			if err := r.process(c); err != nil {
				return nil, &ParseError{Line: r.line, Column: column, Err: err}
			}
		}
		if err := r.process(eol); err != nil {
			return nil, &ParseError{Line: r.line, Column: column + 1, Err: err}
		}

		if r.state == startRecord {
			return r.fields, nil
		}
	}
}

func (r *Reader) isQuote(c rune) bool {
	return r.dialect.Quoting != model.QuoteNone && c == r.dialect.QuoteChar
}

func (r *Reader) isEscape(c rune) bool {
	return r.dialect.EscapeChar != 0 && c == r.dialect.EscapeChar
}

func (r *Reader) addChar(c rune) {
	r.field.WriteRune(c)
	r.fieldStarted = true
}

func (r *Reader) saveField() {
	r.fields = append(r.fields, r.field.String())
	r.resetField()
}

func (r *Reader) resetField() {
	r.field.Reset()
	r.fieldStarted = false
}

// endField closes the current field on a line break or the end of a line.
func (r *Reader) endField(c rune) {
	r.saveField()
	if c == eol {
		r.state = startRecord
		return
	}
	r.state = eatCRNL
}

func isNewline(c rune) bool {
	return c == '\n' || c == '\r'
}

func (r *Reader) process(c rune) error {
	switch r.state {
	case startRecord:
		if c == eol {
			// blank line
			return nil
		}
		if isNewline(c) {
			r.state = eatCRNL
			return nil
		}
		r.state = startField
		return r.process(c)

	case startField:
		switch {
		case isNewline(c) || c == eol:
			r.endField(c)
		case r.isQuote(c):
			r.state = inQuotedField
		case r.isEscape(c):
			r.state = escapedChar
		case c == ' ' && r.dialect.SkipInitialSpace:
		case c == r.dialect.Delimiter:
			r.saveField()
		default:
			r.addChar(c)
			r.state = inField
		}

	case escapedChar:
		if isNewline(c) {
			r.addChar(c)
			r.state = afterEscapedCRNL
			return nil
		}
		if c == eol {
			c = '\n'
		}
		r.addChar(c)
		r.state = inField

	case afterEscapedCRNL:
		if c == eol {
			return nil
		}
		r.state = inField
		return r.process(c)

	case inField:
		switch {
		case isNewline(c) || c == eol:
			r.endField(c)
		case r.isEscape(c):
			r.state = escapedChar
		case c == r.dialect.Delimiter:
			r.saveField()
			r.state = startField
		default:
			r.addChar(c)
		}

	case inQuotedField:
		switch {
		case c == eol:
		case r.isEscape(c):
			r.state = escapeInQuotedField
		case r.isQuote(c):
			if r.dialect.DoubleQuote {
				r.state = quoteInQuotedField
			} else {
				r.state = inField
			}
		default:
			r.addChar(c)
		}

	case escapeInQuotedField:
		if c == eol {
			c = '\n'
		}
		r.addChar(c)
		r.state = inQuotedField

	case quoteInQuotedField:
		switch {
		case r.isQuote(c):
			r.addChar(c)
			r.state = inQuotedField
		case c == r.dialect.Delimiter:
			r.saveField()
			r.state = startField
		case isNewline(c) || c == eol:
			r.endField(c)
		case !r.dialect.Strict:
			r.addChar(c)
			r.state = inField
		default:
			return ErrStrictQuote
		}

	case eatCRNL:
		switch {
		case isNewline(c):
		case c == eol:
			r.state = startRecord
		default:
			return ErrNewlineInField
		}
	}
	return nil
}
