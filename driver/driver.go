package driver

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/csvsniff"
	"modernc.org/sqlite"
)

// Driver implements database/sql/driver.Driver interface for delimited text files.
type Driver struct{}

// Connector implements database/sql/driver.Connector interface.
// Every Connect loads the configured files into a fresh in-memory database.
type Connector struct {
	driver *Driver
	config *Config
	logger *slog.Logger
}

// Connection implements database/sql/driver.Conn interface.
// It wraps an underlying SQLite connection that contains loaded file data.
type Connection struct {
	conn driver.Conn // Underlying SQLite connection with loaded file data
}

// Transaction implements database/sql/driver.Tx interface.
// It wraps an underlying SQLite transaction for atomic operations.
type Transaction struct {
	tx driver.Tx // Underlying SQLite transaction
}

// NewDriver creates a new csvsniff SQL driver
func NewDriver() *Driver {
	return &Driver{}
}

// NewConnector creates a Connector for use with sql.OpenDB.
// A nil logger discards every record.
func NewConnector(config *Config, logger *slog.Logger) *Connector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Connector{
		driver: NewDriver(),
		config: config,
		logger: logger.With("component", "csvsniff/driver"),
	}
}

// Open implements driver.Driver interface
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	connector, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return connector.Connect(context.Background())
}

// OpenConnector implements driver.DriverContext interface
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	config, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	connector := NewConnector(config, nil)
	connector.driver = d
	return connector, nil
}

// Connect implements driver.Connector interface
func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	sqliteDriver := &sqlite.Driver{}
	conn, err := sqliteDriver.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}

	if err := c.load(ctx, conn); err != nil {
		_ = conn.Close() // Ignore close error since we're already returning an error
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	return &Connection{conn: conn}, nil
}

// Driver implements driver.Connector interface
func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// inputFile is a file scheduled for loading.
type inputFile struct {
	path  string
	table string
	// fromDirectory marks files found by listing a directory. Their failures
	// are logged and skipped.
	fromDirectory bool
}

// load reads every collected file into conn.
func (c *Connector) load(ctx context.Context, conn driver.Conn) error {
	files, err := c.collectFiles()
	if err != nil {
		return err
	}

	loaded := 0
	for _, f := range files {
		if err := c.loadFile(ctx, conn, f); err != nil {
			if !f.fromDirectory || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("failed to load file %s: %w", f.path, err)
			}
			c.logger.Warn("skipping file", "file", f.path, "error", err)
			continue
		}
		loaded++
	}

	if loaded == 0 {
		return ErrNoFilesLoaded
	}
	return nil
}

// collectFiles expands directories and checks that table names are unique.
func (c *Connector) collectFiles() ([]inputFile, error) {
	if len(c.config.Paths) == 0 {
		return nil, ErrNoPathsProvided
	}

	var files []inputFile
	tables := make(map[string]int) // table name -> index into files
	for _, path := range c.config.Paths {
		found, err := c.collectPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			i, exists := tables[f.table]
			if !exists {
				tables[f.table] = len(files)
				files = append(files, f)
				continue
			}
			preferred, err := resolveTableNameConflict(files[i], f)
			if err != nil {
				return nil, err
			}
			files[i] = preferred
		}
	}
	return files, nil
}

// collectPath lists the loadable files of one DSN path.
func (c *Connector) collectPath(path string) ([]inputFile, error) {
	if err := ValidatePath(path); err != nil {
		return nil, fmt.Errorf("%w: %q", err, path)
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", csvsniff.ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		return []inputFile{{path: path, table: TableFromFilePath(path)}}, nil
	}
	return c.collectDirectory(path)
}

// collectDirectory lists the supported files directly inside dirPath.
func (c *Connector) collectDirectory(dirPath string) ([]inputFile, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []inputFile
	for _, entry := range entries {
		if entry.IsDir() || !IsValidFileName(entry.Name()) || !IsSupportedFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dirPath, entry.Name())
		files = append(files, inputFile{path: path, table: TableFromFilePath(path), fromDirectory: true})
	}

	if err := ValidateFileCount(len(files)); err != nil {
		return nil, fmt.Errorf("%w: %s", err, dirPath)
	}
	return files, nil
}

// resolveTableNameConflict picks between two files that map to the same
// table. Only copies of one file found in the same directory, one of them
// compressed, are tolerated; the uncompressed copy wins.
func resolveTableNameConflict(existing, current inputFile) (inputFile, error) {
	sameDir := filepath.Clean(filepath.Dir(existing.path)) == filepath.Clean(filepath.Dir(current.path))
	sameFile := csvsniff.RemoveCompressionExtension(filepath.Base(existing.path)) ==
		csvsniff.RemoveCompressionExtension(filepath.Base(current.path))
	if !existing.fromDirectory || !current.fromDirectory || !sameDir || !sameFile {
		return inputFile{}, fmt.Errorf("%w: table '%s' from files '%s' and '%s'",
			ErrDuplicateTableName, existing.table, existing.path, current.path)
	}

	if csvsniff.DetectCompressionType(current.path) == csvsniff.CompressionNone {
		return current, nil
	}
	return existing, nil
}

// Close implements driver.Conn interface
func (conn *Connection) Close() error {
	if conn.conn != nil {
		return conn.conn.Close()
	}
	return nil
}

// Begin implements driver.Conn interface (deprecated, use BeginTx instead)
func (conn *Connection) Begin() (driver.Tx, error) {
	return conn.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx implements driver.ConnBeginTx interface
func (conn *Connection) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if connBeginTx, ok := conn.conn.(driver.ConnBeginTx); ok {
		tx, err := connBeginTx.BeginTx(ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Transaction{tx: tx}, nil
	}
	return nil, ErrBeginTxNotSupported
}

// Commit implements driver.Tx interface
func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

// Rollback implements driver.Tx interface
func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

// Prepare implements driver.Conn interface (deprecated, use PrepareContext instead)
func (conn *Connection) Prepare(query string) (driver.Stmt, error) {
	return conn.PrepareContext(context.Background(), query)
}

// PrepareContext implements driver.ConnPrepareContext interface
func (conn *Connection) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	if connPrepareCtx, ok := conn.conn.(driver.ConnPrepareContext); ok {
		return connPrepareCtx.PrepareContext(ctx, query)
	}
	return nil, ErrPrepareContextNotSupported
}

// supportedExtensions are the file types a directory listing picks up.
var supportedExtensions = []string{".csv", ".tsv", ".txt"}

// IsSupportedFile reports whether fileName, with any compression extension
// removed, ends in .csv, .tsv or .txt.
func IsSupportedFile(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(csvsniff.RemoveCompressionExtension(fileName)))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// TableFromFilePath derives a table name from a file path by removing the
// compression extension and then the file type extension.
func TableFromFilePath(filePath string) string {
	fileName := csvsniff.RemoveCompressionExtension(filepath.Base(filePath))
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
