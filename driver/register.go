package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// DriverName is the name the driver is registered under
const DriverName = "csvsniff"

func init() {
	sql.Register(DriverName, NewDriver())
}

// Open loads the given files and directories into an in-memory database.
//
// Each file becomes a table named after it, without extensions:
// "pets.csv.gz" becomes table "pets". Directories contribute every .csv, .tsv
// and .txt file directly inside them, compressed or not.
//
// Example usage:
//
//	db, err := driver.Open("testdata/pets_excel.csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.Query(`SELECT name, weight FROM pets_excel WHERE weight > 10`)
func Open(paths ...string) (*sql.DB, error) {
	return OpenContext(context.Background(), paths...)
}

// OpenContext is like Open but loads the files under ctx.
func OpenContext(ctx context.Context, paths ...string) (*sql.DB, error) {
	return OpenConfig(ctx, &Config{Paths: paths}, nil)
}

// OpenConfig opens a database for config and loads it once before returning,
// so that unreadable files are reported here rather than on first query.
// The pool is limited to one connection because every connection holds its
// own copy of the data.
func OpenConfig(ctx context.Context, config *Config, logger *slog.Logger) (*sql.DB, error) {
	if config == nil || len(config.Paths) == 0 {
		return nil, ErrNoPathsProvided
	}

	db := sql.OpenDB(NewConnector(config, logger))
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
		return nil, err
	}
	return db, nil
}
