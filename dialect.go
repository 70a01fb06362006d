package csvsniff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nao1215/csvsniff/domain/model"
	"github.com/nao1215/csvsniff/sniffer"
)

// resolveDialect returns the forced dialect, or sniffs one from the lines
// after the skipped prologue. The text is closed afterwards so that the
// materializer starts again from the first byte.
func (r *fileReader) resolveDialect(encoding string) (model.Dialect, error) {
	if r.opts.Dialect != nil {
		return *r.opts.Dialect, nil
	}

	sample, err := r.sample(encoding)
	if err != nil {
		return model.Dialect{}, err
	}

	d, err := r.sniffer.Sniff(sample, r.opts.Delimiters)
	if err != nil {
		return model.Dialect{}, NewErrorContext("sniff dialect", r.src.path).
			WithDetails(fmt.Sprintf("sample lines: %d", r.opts.SampleLines)).
			Error(fmt.Errorf("%w: %w", ErrSniff, err))
	}
	r.logSniffed(sample, d)
	return d, nil
}

// logSniffed records the sniffed dialect and whether the sampled first
// record looks like a header. The first record is read as the header either
// way; the guess only helps diagnose files that lack one.
func (r *fileReader) logSniffed(sample string, d model.Dialect) {
	if !r.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{"dialect", d.String()}
	if r.opts.FieldNames == nil {
		hasHeader, err := sniffer.HasHeader(sample, d)
		if err == nil {
			attrs = append(attrs, "has_header", hasHeader)
		}
	}
	r.logger.Debug("sniffed dialect", attrs...)
}

// sample returns up to SampleLines decoded lines following the skipped ones.
func (r *fileReader) sample(encoding string) (string, error) {
	text, err := r.openText(encoding)
	if err != nil {
		return "", err
	}
	defer text.Close()

	if err := r.skipLines(text, "sniff dialect", encoding); err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 0; i < r.opts.SampleLines; i++ {
		line, err := text.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", r.readError("sniff dialect", encoding, err)
		}
		b.WriteString(line)
	}
	return b.String(), nil
}
