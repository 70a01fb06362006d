package driver

import (
	"errors"
	"strings"
)

// MaxFilesPerDirectory defines the maximum number of files allowed per directory
const MaxFilesPerDirectory = 1000

// MaxColumnCount defines the maximum number of columns allowed in a table.
// SQLite refuses more than 2000 by default.
const MaxColumnCount = 2000

var (
	// ErrTooManyFiles is returned when a directory contains too many files
	ErrTooManyFiles = errors.New("too many files in directory")

	// ErrTooManyColumns is returned when a file has too many columns
	ErrTooManyColumns = errors.New("too many columns")

	// ErrInvalidPath is returned when a path is empty or contains a NUL byte
	ErrInvalidPath = errors.New("invalid path")
)

// ValidatePath rejects paths that no file system can resolve.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}
	if strings.Contains(path, "\x00") {
		return ErrInvalidPath
	}
	return nil
}

// ValidateColumnCount checks if the number of columns is within acceptable limits
func ValidateColumnCount(columnCount int) error {
	if columnCount > MaxColumnCount {
		return ErrTooManyColumns
	}
	return nil
}

// ValidateFileCount checks if the number of files is within acceptable limits
func ValidateFileCount(fileCount int) error {
	if fileCount > MaxFilesPerDirectory {
		return ErrTooManyFiles
	}
	return nil
}

// IsValidFileName reports whether a directory entry should be considered.
// Hidden files are skipped.
func IsValidFileName(fileName string) bool {
	if fileName == "" || strings.HasPrefix(fileName, ".") {
		return false
	}
	return !strings.Contains(fileName, "\x00")
}
