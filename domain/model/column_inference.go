package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ColumnType is the storage type inferred for a field
type ColumnType int

const (
	// ColumnTypeText represents TEXT column type
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
	// ColumnTypeReal represents REAL column type
	ColumnTypeReal
	// ColumnTypeDatetime represents datetime stored as TEXT in ISO8601 format
	ColumnTypeDatetime
)

// String returns the SQL column type string
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeInteger:
		return "INTEGER"
	case ColumnTypeReal:
		return "REAL"
	default:
		// SQLite stores datetime as TEXT
		return "TEXT"
	}
}

// ColumnInfo represents column information with name and inferred type
type ColumnInfo struct {
	Name string
	Type ColumnType
}

var datetimeLayouts = []struct {
	pattern *regexp.Regexp
	layouts []string
}{
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339Nano},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{time.DateOnly},
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		[]string{"1/2/2006"},
	},
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		[]string{"2.1.2006"},
	},
}

func isDatetime(value string) bool {
	for _, dl := range datetimeLayouts {
		if !dl.pattern.MatchString(value) {
			continue
		}
		for _, layout := range dl.layouts {
			if _, err := time.Parse(layout, value); err == nil {
				return true
			}
		}
	}
	return false
}

// InferColumnType infers the column type from a slice of field values.
// Blank values do not vote. Any text value makes the whole column TEXT.
func InferColumnType(values []string) ColumnType {
	var hasDatetime, hasReal, hasInteger bool

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if isDatetime(value) {
			hasDatetime = true
			continue
		}
		if _, err := strconv.ParseInt(value, 10, 64); err == nil {
			hasInteger = true
			continue
		}
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			hasReal = true
			continue
		}
		return ColumnTypeText
	}

	switch {
	case hasDatetime && (hasReal || hasInteger):
		return ColumnTypeText
	case hasDatetime:
		return ColumnTypeDatetime
	case hasReal:
		return ColumnTypeReal
	case hasInteger:
		return ColumnTypeInteger
	default:
		return ColumnTypeText
	}
}

// InferColumnsInfo infers column information from a header and records laid
// out in header order.
func InferColumnsInfo(header Header, records [][]string) []ColumnInfo {
	if len(header) == 0 {
		return nil
	}

	columns := make([]ColumnInfo, len(header))
	for i, name := range header {
		values := make([]string, 0, len(records))
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		columns[i] = ColumnInfo{Name: name, Type: InferColumnType(values)}
	}
	return columns
}
