package parser

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineSource yields lines of decoded text. Each line carries its terminator,
// except possibly the last one. io.EOF signals the end of input.
type LineSource interface {
	ReadLine() (string, error)
}

// LineReader splits text into lines with universal newline handling.
type LineReader struct {
	r     *bufio.Reader
	lines int
}

// NewLineReader returns a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &LineReader{r: br}
}

// ReadLine returns the next line. "\r\n" and a lone "\r" are reported as "\n".
func (lr *LineReader) ReadLine() (string, error) {
	var b strings.Builder
	for {
		c, err := lr.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				lr.lines++
				return b.String(), nil
			}
			return "", err
		}

		switch c {
		case '\n':
			b.WriteByte('\n')
			lr.lines++
			return b.String(), nil
		case '\r':
			if next, err := lr.r.Peek(1); err == nil && next[0] == '\n' {
				_, _ = lr.r.Discard(1)
			}
			b.WriteByte('\n')
			lr.lines++
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
}

// Skip discards n lines. It returns io.ErrUnexpectedEOF when the input ends first.
func (lr *LineReader) Skip(n int) error {
	for i := 0; i < n; i++ {
		if _, err := lr.ReadLine(); err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// Lines returns how many lines have been read so far.
func (lr *LineReader) Lines() int {
	return lr.lines
}
