package csvsniff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/csvsniff/charset"
	"github.com/nao1215/csvsniff/domain/model"
	"github.com/nao1215/csvsniff/parser"
	"github.com/nao1215/csvsniff/sniffer"
)

type (
	// Result is the outcome of Read: the data rows plus the encoding and
	// dialect they were read with.
	Result = model.Result
	// Row is one data row keyed by field name.
	Row = model.Row
	// Dialect describes how a line of delimited text splits into fields.
	Dialect = model.Dialect
	// Header is an ordered list of field names.
	Header = model.Header
)

// Read reads the delimited text file at path.
//
// Unless forced through options, the character encoding is detected from a
// byte sample and the dialect is sniffed from a line sample. The whole file
// is then decoded and tokenized under that single encoding and dialect.
//
// Read returns a nil Result and a nil error when the file holds no data row,
// for example when it has only a header. At most one Options value may be given.
//
// Example:
//
//	result, err := csvsniff.Read("pets.csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result == nil {
//		return // header only
//	}
//	for _, row := range result.Rows {
//		name, _ := row.Get("name")
//		fmt.Println(name)
//	}
func Read(path string, options ...Options) (*Result, error) {
	return ReadContext(context.Background(), path, options...)
}

// ReadContext is like Read but stops with ErrContextCancelled once ctx is done.
func ReadContext(ctx context.Context, path string, options ...Options) (*Result, error) {
	r, encoding, dialect, err := prepare(ctx, path, options)
	if err != nil {
		return nil, err
	}

	rows, err := r.materialize(ctx, encoding, dialect)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("read file", "rows", len(rows))
	return model.NewResult(rows, encoding, dialect), nil
}

// ReadHeader returns the field names Read would key rows by, together with
// the encoding and dialect it would use. Unlike Read it answers for a file
// that has a header but no data row. The header is nil when nothing follows
// the skipped lines.
func ReadHeader(ctx context.Context, path string, options ...Options) (model.Header, string, model.Dialect, error) {
	r, encoding, dialect, err := prepare(ctx, path, options)
	if err != nil {
		return nil, "", model.Dialect{}, err
	}
	header, err := r.header(encoding, dialect)
	if err != nil {
		return nil, "", model.Dialect{}, err
	}
	return header, encoding, dialect, nil
}

// prepare validates the options, resolves the source and settles the
// encoding and dialect.
func prepare(ctx context.Context, path string, options []Options) (*fileReader, string, model.Dialect, error) {
	opts := NewOptions()
	switch len(options) {
	case 0:
	case 1:
		opts = options[0]
	default:
		return nil, "", model.Dialect{}, fmt.Errorf("%w: at most one Options value is accepted, got %d", ErrInvalidOption, len(options))
	}

	opts, err := opts.validate()
	if err != nil {
		return nil, "", model.Dialect{}, err
	}

	src, err := resolveSource(path)
	if err != nil {
		return nil, "", model.Dialect{}, err
	}

	r := newFileReader(src, opts)
	encoding, err := r.resolveEncoding()
	if err != nil {
		return nil, "", model.Dialect{}, err
	}
	if err := checkContext(ctx); err != nil {
		return nil, "", model.Dialect{}, err
	}

	dialect, err := r.resolveDialect(encoding)
	if err != nil {
		return nil, "", model.Dialect{}, err
	}
	return r, encoding, dialect, nil
}

// fileReader carries everything one Read call needs.
type fileReader struct {
	src      *source
	opts     Options
	detector charset.Detector
	sniffer  Sniffer
	logger   *slog.Logger
}

func newFileReader(src *source, opts Options) *fileReader {
	r := &fileReader{
		src:      src,
		opts:     opts,
		detector: opts.Detector,
		sniffer:  opts.Sniffer,
		logger:   opts.Logger,
	}
	if r.detector == nil {
		r.detector = charset.NewDetector()
	}
	if r.sniffer == nil {
		r.sniffer = sniffer.New()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	r.logger = r.logger.With("component", "csvsniff", "file", src.path)
	return r
}

// textReader is the decoded content of the source split into lines.
type textReader struct {
	*parser.LineReader
	io.Closer
}

// openText opens the source from the start and decodes it under encoding.
func (r *fileReader) openText(encoding string) (*textReader, error) {
	rc, err := r.src.open()
	if err != nil {
		return nil, err
	}
	text, err := charset.NewReader(rc, encoding)
	if err != nil {
		_ = rc.Close()
		return nil, r.decodeError(encoding, err)
	}
	return &textReader{LineReader: parser.NewLineReader(text), Closer: rc}, nil
}

// decodeError logs a decoding failure and wraps it with the file and encoding.
func (r *fileReader) decodeError(encoding string, err error) error {
	r.logger.Error("cannot decode file", "encoding", encoding, "error", err)
	return &DecodeError{Path: r.src.path, Encoding: encoding, Err: err}
}

// readError turns an error met while reading decoded text into the error Read returns.
func (r *fileReader) readError(operation, encoding string, err error) error {
	if errors.Is(err, charset.ErrInvalidSequence) || errors.Is(err, charset.ErrUnknownEncoding) {
		return r.decodeError(encoding, err)
	}
	return NewErrorContext(operation, r.src.path).Error(err)
}

// skipLines discards the configured prologue.
func (r *fileReader) skipLines(text *textReader, operation, encoding string) error {
	err := text.Skip(r.opts.SkipLines)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return NewErrorContext(operation, r.src.path).
			WithDetails(fmt.Sprintf("skip lines: %d, lines read: %d", r.opts.SkipLines, text.Lines())).
			Error(ErrSkipLinesExceeded)
	}
	if err != nil {
		return r.readError(operation, encoding, err)
	}
	return nil
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrContextCancelled, err)
	}
	return nil
}
