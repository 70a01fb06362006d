package csvsniff

import (
	"context"
	"errors"
	"io"

	"github.com/nao1215/csvsniff/domain/model"
	"github.com/nao1215/csvsniff/parser"
)

// contextCheckInterval is how many records are read between context checks.
const contextCheckInterval = 1000

// materialize tokenizes the whole file under encoding and dialect and builds
// the data rows. Without forced field names the first non-blank record after
// the skipped lines is the header. Blank records never become rows.
func (r *fileReader) materialize(ctx context.Context, encoding string, d model.Dialect) ([]model.Row, error) {
	text, err := r.openText(encoding)
	if err != nil {
		return nil, err
	}
	defer text.Close()

	if err := r.skipLines(text, "read rows", encoding); err != nil {
		return nil, err
	}

	records := parser.NewReader(text.LineReader, d)
	names := r.opts.FieldNames

	var rows []model.Row
	for n := 0; ; n++ {
		if n%contextCheckInterval == 0 {
			if err := checkContext(ctx); err != nil {
				return nil, err
			}
		}

		record, err := records.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, r.readError("read rows", encoding, err)
		}
		if len(record) == 0 {
			continue
		}
		if names == nil {
			names = record
			continue
		}
		rows = append(rows, model.NewRow(names, record, ""))
	}
	return rows, nil
}

// header returns the forced field names or the first non-blank record after
// the skipped lines, with repeated names removed.
func (r *fileReader) header(encoding string, d model.Dialect) (model.Header, error) {
	if r.opts.FieldNames != nil {
		return model.NewHeader(r.opts.FieldNames).Unique(), nil
	}

	text, err := r.openText(encoding)
	if err != nil {
		return nil, err
	}
	defer text.Close()

	if err := r.skipLines(text, "read header", encoding); err != nil {
		return nil, err
	}

	records := parser.NewReader(text.LineReader, d)
	for {
		record, err := records.Read()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, r.readError("read header", encoding, err)
		}
		if len(record) > 0 {
			return model.NewHeader(record).Unique(), nil
		}
	}
}
