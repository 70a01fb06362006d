// Package columnar converts csvsniff results into Apache Arrow records and
// Parquet files.
//
// Column types follow the same inference the SQL driver uses: INTEGER columns
// become int64, REAL columns float64, and everything else, dates included,
// stays utf8. A blank cell in a numeric column is null.
package columnar

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/nao1215/csvsniff/domain/model"
)

// Schema metadata keys
const (
	MetadataEncoding = "csvsniff.encoding"
	MetadataDialect  = "csvsniff.dialect"
)

// ErrNoRows is returned for a nil Result.
var ErrNoRows = errors.New("columnar: result has no rows")

// Schema returns the Arrow schema for result. The encoding and dialect the
// file was read with are kept as schema metadata.
func Schema(result *model.Result) (*arrow.Schema, error) {
	if result == nil {
		return nil, ErrNoRows
	}
	table := model.NewTableFromResult("", result, nil)
	return schemaFor(table, result), nil
}

func schemaFor(table *model.Table, result *model.Result) *arrow.Schema {
	info := table.ColumnInfo()
	fields := make([]arrow.Field, len(info))
	for i, col := range info {
		fields[i] = arrow.Field{Name: col.Name, Type: arrowType(col.Type), Nullable: true}
	}
	metadata := arrow.NewMetadata(
		[]string{MetadataEncoding, MetadataDialect},
		[]string{result.Encoding, result.Dialect.String()},
	)
	return arrow.NewSchema(fields, &metadata)
}

func arrowType(ct model.ColumnType) arrow.DataType {
	switch ct {
	case model.ColumnTypeInteger:
		return arrow.PrimitiveTypes.Int64
	case model.ColumnTypeReal:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// NewRecord builds one Arrow record holding every row of result.
// The caller must Release the record.
func NewRecord(mem memory.Allocator, result *model.Result) (arrow.Record, error) {
	if result == nil {
		return nil, ErrNoRows
	}
	table := model.NewTableFromResult("", result, nil)
	schema := schemaFor(table, result)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for _, record := range table.Records() {
		for i, value := range record {
			if err := appendValue(b.Field(i), value); err != nil {
				return nil, fmt.Errorf("column %q: %w", schema.Field(i).Name, err)
			}
		}
	}
	return b.NewRecord(), nil
}

func appendValue(b array.Builder, value string) error {
	switch b := b.(type) {
	case *array.Int64Builder:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			b.AppendNull()
			return nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return err
		}
		b.Append(n)
	case *array.Float64Builder:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			b.AppendNull()
			return nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return err
		}
		b.Append(f)
	case *array.StringBuilder:
		b.Append(value)
	default:
		return fmt.Errorf("unsupported builder %T", b)
	}
	return nil
}

// WriteParquet writes result to w as a Parquet file with one row group.
func WriteParquet(w io.Writer, result *model.Result) error {
	record, err := NewRecord(memory.NewGoAllocator(), result)
	if err != nil {
		return err
	}
	defer record.Release()

	fw, err := pqarrow.NewFileWriter(record.Schema(), w, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := fw.Write(record); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to write parquet data: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
