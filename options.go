package csvsniff

import (
	"fmt"
	"log/slog"

	"github.com/nao1215/csvsniff/charset"
	"github.com/nao1215/csvsniff/domain/model"
)

// DefaultSampleLines is the number of lines sampled when no other count is given.
const DefaultSampleLines = 100

// Sniffer deduces the dialect of a decoded text sample.
// delimiters restricts the candidate delimiters; empty allows any character.
type Sniffer interface {
	Sniff(sample, delimiters string) (model.Dialect, error)
}

// Options configures how Read samples, decodes and tokenizes a file.
//
// Example:
//
//	options := NewOptions().
//		WithSkipLines(6).
//		WithEncoding("utf-8")
//
//	result, err := Read("places.csv", options)
type Options struct {
	// Encoding forces the text encoding. Empty means detect it.
	Encoding string
	// Dialect forces the dialect. Nil means sniff it.
	Dialect *model.Dialect
	// FieldNames replaces the header row. Nil means the first non-blank
	// record after the skipped lines is the header.
	FieldNames []string
	// SkipLines is the number of physical lines ignored at the top of the file.
	SkipLines int
	// SampleLines is the number of lines the dialect is sniffed from; it also
	// scales the byte sample used for encoding detection.
	SampleLines int
	// Delimiters restricts the delimiters the sniffer may pick.
	Delimiters string
	// Detector guesses the encoding. Nil means charset.NewDetector().
	Detector charset.Detector
	// Sniffer deduces the dialect. Nil means sniffer.New().
	Sniffer Sniffer
	// Logger receives debug and error records. Nil discards them.
	Logger *slog.Logger
}

// NewOptions creates default options: detect the encoding, sniff the dialect
// from DefaultSampleLines lines, skip nothing and take field names from the header.
//
// Modify with:
//   - WithSkipLines(): Ignore a prologue before the header
//   - WithEncoding(): Force the text encoding
//   - WithDialect(): Force the dialect
//   - WithFieldNames(): Treat every record as data under the given names
//   - WithSampleLines(): Change the sample size
func NewOptions() Options {
	return Options{
		SampleLines: DefaultSampleLines,
	}
}

// WithSkipLines sets the number of leading lines to ignore.
func (o Options) WithSkipLines(n int) Options {
	o.SkipLines = n
	return o
}

// WithEncoding forces the encoding label, for example "utf-8", "utf-8-sig",
// "utf-16" or "windows-1252". The label is used as given.
func (o Options) WithEncoding(encoding string) Options {
	o.Encoding = encoding
	return o
}

// WithDialect forces the dialect instead of sniffing it.
func (o Options) WithDialect(d model.Dialect) Options {
	o.Dialect = &d
	return o
}

// WithFieldNames sets the field names. Every record, including the first,
// becomes a data row.
func (o Options) WithFieldNames(names ...string) Options {
	o.FieldNames = append([]string(nil), names...)
	return o
}

// WithSampleLines sets the number of lines sampled for sniffing.
func (o Options) WithSampleLines(n int) Options {
	o.SampleLines = n
	return o
}

// WithDelimiters restricts the characters the sniffer may choose as delimiter.
func (o Options) WithDelimiters(delimiters string) Options {
	o.Delimiters = delimiters
	return o
}

// WithDetector replaces the encoding detector.
func (o Options) WithDetector(d charset.Detector) Options {
	o.Detector = d
	return o
}

// WithSniffer replaces the dialect sniffer.
func (o Options) WithSniffer(s Sniffer) Options {
	o.Sniffer = s
	return o
}

// WithLogger sets the logger.
func (o Options) WithLogger(logger *slog.Logger) Options {
	o.Logger = logger
	return o
}

// validate checks the values that cannot be acted on. A zero SampleLines is
// replaced by DefaultSampleLines.
func (o Options) validate() (Options, error) {
	if o.SkipLines < 0 {
		return o, fmt.Errorf("%w: skip lines must not be negative: %d", ErrInvalidOption, o.SkipLines)
	}
	if o.SampleLines < 0 {
		return o, fmt.Errorf("%w: sample lines must not be negative: %d", ErrInvalidOption, o.SampleLines)
	}
	if o.SampleLines == 0 {
		o.SampleLines = DefaultSampleLines
	}
	if o.FieldNames != nil && len(o.FieldNames) == 0 {
		return o, fmt.Errorf("%w: field names must not be empty", ErrInvalidOption)
	}
	if o.Dialect != nil {
		if err := o.Dialect.Validate(); err != nil {
			return o, err
		}
	}
	return o, nil
}
