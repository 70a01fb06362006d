// Package charset guesses and decodes the character encoding of raw text.
//
// Detection is statistical: a Detector looks at a byte sample and names the
// most likely encoding. Decoding is strict: a byte sequence that is invalid in
// the chosen encoding is an error, never a replacement character.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/saintfish/chardet"
)

// Well known encoding labels.
const (
	// UTF8 is plain UTF-8
	UTF8 = "utf-8"
	// UTF8BOM is UTF-8 whose leading byte-order mark is stripped while decoding
	UTF8BOM = "utf-8-sig"
	// ASCII is 7-bit US-ASCII
	ASCII = "ascii"
)

// bomUTF8 is the UTF-8 encoded byte-order mark.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// ErrNoGuess is returned when a detector cannot name any encoding for a sample.
var ErrNoGuess = errors.New("csvsniff/charset: no encoding guess")

// Detector names the most likely encoding of a raw byte sample.
type Detector interface {
	Detect(sample []byte) (string, error)
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(sample []byte) (string, error)

// Detect calls f(sample).
func (f DetectorFunc) Detect(sample []byte) (string, error) {
	return f(sample)
}

// chardetDetector classifies samples by byte frequency.
type chardetDetector struct{}

// NewDetector returns the default byte-frequency detector.
//
// A sample made only of 7-bit bytes is reported as "ascii". Anything else is
// handed to the chardet text detector and the most confident guess that
// NewDecoder can decode is returned as a lower-case label such as "utf-8",
// "iso-8859-1" or "utf-16le". Guesses without a decoder, such as the EBCDIC
// "ibm420" and "ibm424", are passed over.
func NewDetector() Detector {
	return chardetDetector{}
}

// Detect implements Detector.
func (chardetDetector) Detect(sample []byte) (string, error) {
	if len(sample) == 0 {
		return "", ErrNoGuess
	}
	if isASCII(sample) {
		return ASCII, nil
	}

	results, err := chardet.NewTextDetector().DetectAll(sample)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoGuess, err)
	}
	return firstDecodable(results)
}

// firstDecodable returns the first result, in order of confidence, that
// names an encoding NewDecoder supports.
func firstDecodable(results []chardet.Result) (string, error) {
	var skipped []string
	for _, result := range results {
		if result.Charset == "" {
			continue
		}
		name, err := Lookup(result.Charset)
		if err != nil {
			skipped = append(skipped, Normalize(result.Charset))
			continue
		}
		return name, nil
	}
	if len(skipped) > 0 {
		return "", fmt.Errorf("%w: no decoder for %s: %w", ErrNoGuess, strings.Join(skipped, ", "), ErrUnknownEncoding)
	}
	return "", ErrNoGuess
}

// HasUTF8BOM reports whether b starts with the UTF-8 byte-order mark.
func HasUTF8BOM(b []byte) bool {
	return bytes.HasPrefix(b, bomUTF8)
}

// Normalize returns the canonical spelling of an encoding label:
// lower case with surrounding space removed and a few detector-specific
// spellings mapped to their registered names.
func Normalize(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "utf8":
		return UTF8
	case "utf_8_sig", "utf8-sig", "utf-8-bom":
		return UTF8BOM
	case "us-ascii", "us_ascii":
		return ASCII
	case "gb-18030":
		return "gb18030"
	case "ibm420_ltr", "ibm420_rtl":
		return "ibm420"
	case "ibm424_ltr", "ibm424_rtl":
		return "ibm424"
	default:
		return label
	}
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
