package model

// Result is the outcome of reading one delimited text file.
type Result struct {
	// Rows holds the data rows in file order.
	Rows []Row
	// FieldNames are the unique field names of the first row.
	FieldNames []string
	// Encoding is the label the file was decoded with.
	Encoding string
	// Dialect is the dialect the rows were tokenized with.
	Dialect Dialect
}

// NewResult packages rows read under encoding and dialect.
// It returns nil when rows is empty: with no data row the field names would be
// ambiguous, so there is no meaningful result to return.
func NewResult(rows []Row, encoding string, dialect Dialect) *Result {
	if len(rows) == 0 {
		return nil
	}
	return &Result{
		Rows:       rows,
		FieldNames: rows[0].Names(),
		Encoding:   encoding,
		Dialect:    dialect,
	}
}

// Len returns the number of data rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Header returns the field names as a Header.
func (r *Result) Header() Header {
	if r == nil {
		return nil
	}
	return NewHeader(append([]string(nil), r.FieldNames...))
}

// Records returns each row's values ordered by FieldNames.
func (r *Result) Records() [][]string {
	if r == nil {
		return nil
	}
	records := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		record := make([]string, len(r.FieldNames))
		for j, name := range r.FieldNames {
			record[j], _ = row.Get(name)
		}
		records[i] = record
	}
	return records
}
