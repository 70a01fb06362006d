package sniffer

import (
	"fmt"
	"regexp"
	"unicode"
)

// shape is one of the surroundings a quoted field is searched in.
type shape int

const (
	// delimQuoteDelim matches `,"x",`.
	delimQuoteDelim shape = iota
	// lineQuoteDelim matches `"x",` at the start of a line.
	lineQuoteDelim
	// delimQuoteLine matches `,"x"` at the end of a line.
	delimQuoteLine
	// lineQuoteLine matches `"x"` filling a whole line.
	lineQuoteLine
)

var shapes = []shape{delimQuoteDelim, lineQuoteDelim, delimQuoteLine, lineQuoteLine}

func (s shape) leadingDelim() bool {
	return s == delimQuoteDelim || s == delimQuoteLine
}

func (s shape) hasDelim() bool {
	return s != lineQuoteLine
}

// quoted is one quoted field found in the sample.
type quoted struct {
	quote rune
	delim rune
	space bool
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isDelimCandidate reports whether r can surround a quoted field as a delimiter.
func isDelimCandidate(r rune) bool {
	return r != '\n' && !isWord(r) && !isQuote(r)
}

// findQuoted returns every non-overlapping quoted field of shape s, scanning
// left to right. The closing quote is the nearest one, possibly on a later
// line, that is followed by what s requires.
func findQuoted(data []rune, s shape) []quoted {
	var found []quoted
	for i := 0; i < len(data); {
		q, end, ok := matchQuoted(data, i, s)
		if !ok {
			i++
			continue
		}
		found = append(found, q)
		i = end
	}
	return found
}

func matchQuoted(data []rune, i int, s shape) (quoted, int, bool) {
	var m quoted
	n := len(data)
	p := i

	if s.leadingDelim() {
		if !isDelimCandidate(data[p]) {
			return m, 0, false
		}
		m.delim = data[p]
		p++
		if p < n && data[p] == ' ' {
			m.space = true
			p++
		}
	} else {
		atLineStart := i == 0 || data[i-1] == '\n'
		switch {
		case atLineStart && isQuote(data[p]):
		case data[p] == '\n':
			p++
		default:
			return m, 0, false
		}
	}
	if p >= n || !isQuote(data[p]) {
		return m, 0, false
	}
	m.quote = data[p]

	for j := p + 1; j < n; j++ {
		if data[j] != m.quote {
			continue
		}
		next := j + 1
		switch s {
		case delimQuoteDelim:
			if next < n && data[next] == m.delim {
				return m, next + 1, true
			}
		case lineQuoteDelim:
			if next < n && isDelimCandidate(data[next]) {
				m.delim = data[next]
				end := next + 1
				if end < n && data[end] == ' ' {
					m.space = true
					end++
				}
				return m, end, true
			}
		case delimQuoteLine, lineQuoteLine:
			if next == n || data[next] == '\n' {
				return m, next, true
			}
		}
	}
	return m, 0, false
}

// guessQuoteAndDelimiter inspects quoted fields. The first shape with any
// match decides; the quote and delimiter are the most frequent ones seen.
// A zero delimiter means the pass could not tell.
func guessQuoteAndDelimiter(sample, delimiters string) guess {
	data := []rune(sample)

	var (
		found []quoted
		s     shape
	)
	for _, s = range shapes {
		if found = findQuoted(data, s); len(found) > 0 {
			break
		}
	}
	if len(found) == 0 {
		return guess{}
	}

	quotes := newRuneCounter()
	delims := newRuneCounter()
	spaces := 0
	for _, q := range found {
		quotes.add(q.quote)
		if !s.hasDelim() {
			continue
		}
		if allowed(q.delim, delimiters) {
			delims.add(q.delim)
		}
		if q.space {
			spaces++
		}
	}

	g := guess{quote: quotes.max()}
	if delims.len() > 0 {
		g.delimiter = delims.max()
		g.skipInitialSpace = delims.counts[g.delimiter] == spaces
		if g.delimiter == '\n' {
			g.delimiter = 0
		}
	}
	g.doubleQuote = hasDoubledQuote(sample, g.delimiter, g.quote)
	return g
}

// nonWord matches what \W matches for Unicode text.
const nonWord = `[^\p{L}\p{N}_]`

// hasDoubledQuote reports whether a field delimited by delim contains three
// quote characters, the signature of a quote escaped by doubling it.
func hasDoubledQuote(sample string, delim, quote rune) bool {
	d, notDelim := "", `\n`
	if delim != 0 {
		d = regexp.QuoteMeta(string(delim))
		notDelim = d + `\n`
	}
	q := regexp.QuoteMeta(string(quote))

	expr := fmt.Sprintf(`(?m)((%[1]s)|^)%[2]s*%[3]s[^%[4]s]*%[3]s[^%[4]s]*%[3]s%[2]s*((%[1]s)|$)`,
		d, nonWord, q, notDelim)
	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return re.MatchString(sample)
}
