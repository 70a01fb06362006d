package charset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

var (
	// ErrUnknownEncoding is returned for a label no decoder is registered for.
	ErrUnknownEncoding = errors.New("csvsniff/charset: unknown encoding")
	// ErrInvalidSequence is returned when input is not valid in the chosen encoding.
	ErrInvalidSequence = errors.New("csvsniff/charset: invalid byte sequence")
)

// NewDecoder returns a transformer that converts text in the named encoding
// to UTF-8. The transformer fails with ErrInvalidSequence on input the
// encoding cannot represent.
//
// Besides every name known to the IANA and WHATWG registries it accepts
// "utf-8-sig" (UTF-8 with an optional leading BOM that is dropped) and
// "ascii" (bytes above 0x7F are rejected). UTF-16 and UTF-32 labels honour a
// leading BOM.
func NewDecoder(label string) (transform.Transformer, error) {
	switch name := Normalize(label); name {
	case ASCII:
		return validator{asciiOnly: true}, nil
	case UTF8:
		return validator{}, nil
	case UTF8BOM:
		return transform.Chain(&bomStripper{}, validator{}), nil
	case "utf-16", "utf-16le":
		return strict(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case "utf-16be":
		return strict(unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	case "utf-32", "utf-32le":
		return strict(utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)), nil
	case "utf-32be":
		return strict(utf32.UTF32(utf32.BigEndian, utf32.UseBOM)), nil
	default:
		enc, err := lookup(name)
		if err != nil {
			return nil, err
		}
		return strict(enc), nil
	}
}

// NewReader wraps r so that reads return UTF-8 text decoded from label.
func NewReader(r io.Reader, label string) (io.Reader, error) {
	dec, err := NewDecoder(label)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, dec), nil
}

// Lookup returns the canonical form of label, or ErrUnknownEncoding when
// NewDecoder cannot handle it.
func Lookup(label string) (string, error) {
	name := Normalize(label)
	if _, err := NewDecoder(name); err != nil {
		return "", err
	}
	return name, nil
}

func lookup(name string) (encoding.Encoding, error) {
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// strict chains enc's decoder with a check that rejects the replacement
// characters the decoder emits for undecodable input.
func strict(enc encoding.Encoding) transform.Transformer {
	return transform.Chain(enc.NewDecoder(), validator{rejectReplacement: true})
}

// validator copies UTF-8 text and fails on anything that is not valid UTF-8.
type validator struct {
	asciiOnly bool
	// rejectReplacement treats U+FFFD as invalid. Decoders use it to mark
	// bytes they could not convert.
	rejectReplacement bool
}

func (validator) Reset() {}

func (v validator) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}
		if v.asciiOnly {
			return nDst, nSrc, ErrInvalidSequence
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError {
			if size == 1 {
				if !atEOF && !utf8.FullRune(src[nSrc:]) {
					return nDst, nSrc, transform.ErrShortSrc
				}
				return nDst, nSrc, ErrInvalidSequence
			}
			if v.rejectReplacement {
				return nDst, nSrc, ErrInvalidSequence
			}
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		copy(dst[nDst:], src[nSrc:nSrc+size])
		nDst += size
		nSrc += size
	}
	return nDst, nSrc, nil
}

// bomStripper drops a UTF-8 byte-order mark at the very start of the input.
type bomStripper struct {
	checked bool
}

func (s *bomStripper) Reset() {
	s.checked = false
}

func (s *bomStripper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if !s.checked {
		if len(src) < len(bomUTF8) && !atEOF && bytes.HasPrefix(bomUTF8, src) {
			return 0, 0, transform.ErrShortSrc
		}
		if bytes.HasPrefix(src, bomUTF8) {
			nSrc = len(bomUTF8)
		}
		s.checked = true
	}
	n := copy(dst, src[nSrc:])
	nDst = n
	nSrc += n
	if nSrc < len(src) {
		err = transform.ErrShortDst
	}
	return nDst, nSrc, err
}
