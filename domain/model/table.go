package model

// Table is a Result laid out for loading into a database: a name, the field
// names, one record per row and the inferred type of every column.
type Table struct {
	name       string
	header     Header
	records    [][]string
	columnInfo []ColumnInfo
}

// NewTable creates a Table and infers its column types from records.
func NewTable(name string, header Header, records [][]string) *Table {
	return &Table{
		name:       name,
		header:     header,
		records:    records,
		columnInfo: InferColumnsInfo(header, records),
	}
}

// NewTableFromResult creates a Table named name from a Result.
// A nil Result yields a table with header and no records.
func NewTableFromResult(name string, result *Result, header Header) *Table {
	if result != nil {
		header = result.Header()
	}
	return NewTable(name, header, result.Records())
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Records return table records.
func (t *Table) Records() [][]string {
	return t.records
}

// ColumnInfo returns column information with inferred types
func (t *Table) ColumnInfo() []ColumnInfo {
	return t.columnInfo
}
