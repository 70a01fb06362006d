package driver

import "errors"

// Predefined errors
var (
	// ErrNoPathsProvided is returned when the DSN names no path
	ErrNoPathsProvided = errors.New("csvsniff driver: no paths provided")

	// ErrInvalidDSN is returned when the DSN query cannot be parsed
	ErrInvalidDSN = errors.New("csvsniff driver: invalid DSN")

	// ErrNoFilesLoaded is returned when no files were loaded
	ErrNoFilesLoaded = errors.New("csvsniff driver: no files were loaded")

	// ErrNoColumns is returned when a file has neither a header nor data
	ErrNoColumns = errors.New("csvsniff driver: no columns")

	// ErrStmtExecContextNotSupported is returned when statement does not support ExecContext
	ErrStmtExecContextNotSupported = errors.New("csvsniff driver: statement does not support ExecContext")

	// ErrBeginTxNotSupported is returned when underlying connection does not support BeginTx
	ErrBeginTxNotSupported = errors.New("csvsniff driver: underlying connection does not support BeginTx")

	// ErrPrepareContextNotSupported is returned when underlying connection does not support PrepareContext
	ErrPrepareContextNotSupported = errors.New("csvsniff driver: underlying connection does not support PrepareContext")

	// ErrDuplicateColumnName is returned when two field names differ only in case
	ErrDuplicateColumnName = errors.New("csvsniff driver: duplicate column name")

	// ErrDuplicateTableName is returned when multiple files would create the same table name
	ErrDuplicateTableName = errors.New("csvsniff driver: duplicate table name")
)
