package csvsniff

import (
	"fmt"

	"github.com/nao1215/csvsniff/charset"
)

// resolveEncoding returns the forced encoding, or detects one from a byte
// sample whose size tracks the number of lines that will be sniffed.
func (r *fileReader) resolveEncoding() (string, error) {
	if r.opts.Encoding != "" {
		return r.opts.Encoding, nil
	}

	lines, size, err := r.src.measure()
	if err != nil {
		return "", err
	}
	if size == 0 {
		return "", NewErrorContext("detect encoding", r.src.path).Error(ErrEmptyFile)
	}

	sample, err := r.src.head(sampleSize(lines, size, r.opts.SampleLines))
	if err != nil {
		return "", err
	}

	if charset.HasUTF8BOM(sample) {
		r.logger.Debug("detected encoding", "encoding", charset.UTF8BOM, "reason", "byte order mark")
		return charset.UTF8BOM, nil
	}

	encoding, err := r.detector.Detect(sample)
	if err == nil && encoding == "" {
		err = charset.ErrNoGuess
	}
	if err != nil {
		return "", NewErrorContext("detect encoding", r.src.path).
			WithDetails(fmt.Sprintf("sample bytes: %d", len(sample))).
			Error(fmt.Errorf("%w: %w", ErrEncodingDetection, err))
	}
	r.logger.Debug("detected encoding", "encoding", encoding, "sample_bytes", len(sample))
	return encoding, nil
}

// sampleSize is the average line length, rounded up, times the lines to
// sample, capped at the content size.
func sampleSize(lines, size int64, sampleLines int) int64 {
	if lines == 0 {
		return size
	}
	bytesPerLine := (size + lines - 1) / lines
	return min(bytesPerLine*int64(sampleLines), size)
}
