package driver

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/csvsniff"
	"github.com/nao1215/csvsniff/domain/model"
)

// loadFile reads one file and stores it as a table.
func (c *Connector) loadFile(ctx context.Context, conn driver.Conn, f inputFile) error {
	ec := csvsniff.NewErrorContext("load table", f.path).WithTable(f.table)
	opts := c.config.options().WithLogger(c.logger)

	result, err := csvsniff.ReadContext(ctx, f.path, opts)
	if err != nil {
		return err
	}

	var header model.Header
	if result == nil {
		// No data rows: the header alone still defines the table.
		header, _, _, err = csvsniff.ReadHeader(ctx, f.path, opts)
		if err != nil {
			return err
		}
		if len(header) == 0 {
			return ec.Error(ErrNoColumns)
		}
	}

	table := model.NewTableFromResult(f.table, result, header)
	if err := loadTable(ctx, conn, table); err != nil {
		return ec.Error(err)
	}

	c.logger.Debug("loaded table", "table", f.table, "file", f.path, "rows", len(table.Records()))
	return nil
}

// loadTable creates the table and inserts its records in one transaction.
func loadTable(ctx context.Context, conn driver.Conn, table *model.Table) error {
	columns, err := columnNames(table.Header())
	if err != nil {
		return err
	}

	if err := execContext(ctx, conn, buildCreateTableQuery(table.Name(), columns, table.ColumnInfo()), nil); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	if len(table.Records()) == 0 {
		return nil
	}

	if err := insertRecords(ctx, conn, table, len(columns)); err != nil {
		return fmt.Errorf("failed to insert records: %w", err)
	}
	return nil
}

func insertRecords(ctx context.Context, conn driver.Conn, table *model.Table, columnCount int) error {
	beginner, ok := conn.(driver.ConnBeginTx)
	if !ok {
		return ErrBeginTxNotSupported
	}
	preparer, ok := conn.(driver.ConnPrepareContext)
	if !ok {
		return ErrPrepareContextNotSupported
	}

	tx, err := beginner.BeginTx(ctx, driver.TxOptions{})
	if err != nil {
		return err
	}

	stmt, err := preparer.PrepareContext(ctx, buildInsertQuery(table.Name(), columnCount))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	info := table.ColumnInfo()
	for _, record := range table.Records() {
		if err := execStatement(ctx, stmt, recordValues(record, info)); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// columnNames turns field names into column names. A blank name becomes
// column_N, and names equal apart from case are rejected because SQLite
// compares identifiers case-insensitively.
func columnNames(header model.Header) ([]string, error) {
	if err := ValidateColumnCount(len(header)); err != nil {
		return nil, err
	}

	names := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumnName, name)
		}
		seen[key] = struct{}{}
		names[i] = name
	}
	return names, nil
}

// quoteIdentifier quotes an SQL identifier, doubling embedded quotes.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// buildCreateTableQuery constructs a CREATE TABLE query
func buildCreateTableQuery(table string, columns []string, info []model.ColumnInfo) string {
	defs := make([]string, len(columns))
	for i, name := range columns {
		defs[i] = fmt.Sprintf("%s %s", quoteIdentifier(name), info[i].Type.String())
	}
	return fmt.Sprintf(`CREATE TABLE %s (%s)`, quoteIdentifier(table), strings.Join(defs, ", "))
}

// buildInsertQuery constructs an INSERT query with one placeholder per column
func buildInsertQuery(table string, columnCount int) string {
	return fmt.Sprintf(`INSERT INTO %s VALUES (%s)`,
		quoteIdentifier(table),
		strings.TrimSuffix(strings.Repeat("?, ", columnCount), ", "))
}

// recordValues converts a record to driver values. Numeric columns store
// numbers, and a blank numeric cell is NULL.
func recordValues(record []string, info []model.ColumnInfo) []driver.NamedValue {
	args := make([]driver.NamedValue, len(info))
	for i, col := range info {
		var value string
		if i < len(record) {
			value = record[i]
		}
		args[i] = driver.NamedValue{Ordinal: i + 1, Value: convertValue(value, col.Type)}
	}
	return args
}

func convertValue(value string, ct model.ColumnType) driver.Value {
	trimmed := strings.TrimSpace(value)
	switch ct {
	case model.ColumnTypeInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case model.ColumnTypeReal:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	default:
		return value
	}
	if trimmed == "" {
		return nil
	}
	return value
}

// execContext prepares and executes a statement on conn.
func execContext(ctx context.Context, conn driver.Conn, query string, args []driver.NamedValue) error {
	preparer, ok := conn.(driver.ConnPrepareContext)
	if !ok {
		return ErrPrepareContextNotSupported
	}
	stmt, err := preparer.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	return execStatement(ctx, stmt, args)
}

func execStatement(ctx context.Context, stmt driver.Stmt, args []driver.NamedValue) error {
	stmtExecCtx, ok := stmt.(driver.StmtExecContext)
	if !ok {
		return ErrStmtExecContextNotSupported
	}
	_, err := stmtExecCtx.ExecContext(ctx, args)
	return err
}
