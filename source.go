package csvsniff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// source is a file resolved to its real location.
type source struct {
	path        string
	compression CompressionType
}

// resolveSource makes path absolute, follows symlinks and checks that the
// result is a regular file.
func resolveSource(path string) (*source, error) {
	ec := NewErrorContext("resolve path", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ec.Error(err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, ec.Error(classifyPathError(err))
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, ec.Error(classifyPathError(err))
	}
	if !info.Mode().IsRegular() {
		return nil, ec.Error(ErrNotRegularFile)
	}

	return &source{
		path:        resolved,
		compression: DetectCompressionType(resolved),
	}, nil
}

func classifyPathError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// open returns the decompressed content from its first byte. Each call starts
// over, which is how readers rewind.
func (s *source) open() (io.ReadCloser, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, NewErrorContext("open", s.path).Error(classifyPathError(err))
	}

	reader, cleanup, err := newDecompressor(file, s.compression)
	if err != nil {
		_ = file.Close()
		return nil, NewErrorContext("open", s.path).Error(err)
	}
	return &sourceReader{Reader: reader, cleanup: cleanup, file: file}, nil
}

// sourceReader closes the decompressor before the file beneath it.
type sourceReader struct {
	io.Reader
	cleanup func() error
	file    *os.File
}

func (r *sourceReader) Close() error {
	cleanupErr := r.cleanup()
	if closeErr := r.file.Close(); closeErr != nil && cleanupErr == nil {
		cleanupErr = closeErr
	}
	return cleanupErr
}

// measure counts the bytes and lines of the decompressed content. A final
// line without a line feed counts as a line.
func (s *source) measure() (lines, size int64, err error) {
	rc, err := s.open()
	if err != nil {
		return 0, 0, err
	}
	defer rc.Close()

	buf := make([]byte, 64*1024)
	var last byte
	for {
		n, readErr := rc.Read(buf)
		if n > 0 {
			size += int64(n)
			lines += int64(bytes.Count(buf[:n], []byte{'\n'}))
			last = buf[n-1]
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return 0, 0, NewErrorContext("measure", s.path).Error(readErr)
		}
	}
	if size > 0 && last != '\n' {
		lines++
	}
	return lines, size, nil
}

// head returns up to n bytes from the start of the decompressed content.
func (s *source) head(n int64) ([]byte, error) {
	rc, err := s.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	sample, err := io.ReadAll(io.LimitReader(rc, n))
	if err != nil {
		return nil, NewErrorContext("sample", s.path).Error(err)
	}
	return sample, nil
}
