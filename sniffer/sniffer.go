package sniffer

import (
	"errors"
	"fmt"

	"github.com/nao1215/csvsniff/domain/model"
)

// ErrCouldNotDetermineDelimiter is returned when neither pass finds a delimiter.
var ErrCouldNotDetermineDelimiter = errors.New("csvsniff/sniffer: could not determine delimiter")

// preferred breaks ties between equally consistent delimiter candidates.
var preferred = []rune{',', '\t', ';', ' ', ':'}

// Sniffer deduces dialects. The zero value is ready to use.
type Sniffer struct{}

// New returns a Sniffer.
func New() *Sniffer {
	return &Sniffer{}
}

// Sniff implements the dialect sniffing used by csvsniff.Read.
func (*Sniffer) Sniff(sample, delimiters string) (model.Dialect, error) {
	return Sniff(sample, delimiters)
}

// Sniff returns the dialect sample is most likely written in.
//
// delimiters restricts the candidate delimiters; an empty string allows any
// character. The result always uses minimal quoting and a "\r\n" line
// terminator, and falls back to '"' when no quote character was seen.
func Sniff(sample, delimiters string) (model.Dialect, error) {
	guess := guessQuoteAndDelimiter(sample, delimiters)
	if guess.delimiter == 0 {
		guess.delimiter, guess.skipInitialSpace = guessDelimiter(sample, delimiters)
	}
	if guess.delimiter == 0 {
		return model.Dialect{}, ErrCouldNotDetermineDelimiter
	}
	if guess.quote == 0 {
		guess.quote = '"'
	}

	d := model.Dialect{
		Delimiter:        guess.delimiter,
		QuoteChar:        guess.quote,
		DoubleQuote:      guess.doubleQuote,
		SkipInitialSpace: guess.skipInitialSpace,
		LineTerminator:   "\r\n",
		Quoting:          model.QuoteMinimal,
	}
	if err := d.Validate(); err != nil {
		return model.Dialect{}, fmt.Errorf("%w: %w", ErrCouldNotDetermineDelimiter, err)
	}
	return d, nil
}

// guess is what a sniffing pass learned about the sample.
type guess struct {
	quote            rune
	doubleQuote      bool
	delimiter        rune
	skipInitialSpace bool
}

// allowed reports whether c may be a delimiter under the caller's restriction.
func allowed(c rune, delimiters string) bool {
	if delimiters == "" {
		return true
	}
	for _, d := range delimiters {
		if d == c {
			return true
		}
	}
	return false
}

// runeCounter counts runes and remembers the order they were first seen in.
type runeCounter struct {
	order  []rune
	counts map[rune]int
}

func newRuneCounter() *runeCounter {
	return &runeCounter{counts: make(map[rune]int)}
}

func (c *runeCounter) add(r rune) {
	if _, ok := c.counts[r]; !ok {
		c.order = append(c.order, r)
	}
	c.counts[r]++
}

func (c *runeCounter) len() int {
	return len(c.order)
}

// max returns the most frequent rune; ties go to the one seen first.
func (c *runeCounter) max() rune {
	var best rune
	bestCount := -1
	for _, r := range c.order {
		if c.counts[r] > bestCount {
			best, bestCount = r, c.counts[r]
		}
	}
	return best
}
