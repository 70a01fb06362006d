package driver

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nao1215/csvsniff"
)

// DSN query keys
const (
	dsnSkip       = "skip"
	dsnSample     = "sample"
	dsnEncoding   = "encoding"
	dsnDelimiters = "delimiters"
)

// Config is a parsed DSN.
type Config struct {
	// Paths are files or directories, each loaded as one or more tables.
	Paths []string
	// SkipLines is applied to every file.
	SkipLines int
	// SampleLines is the sniffing sample size. Zero means the csvsniff default.
	SampleLines int
	// Encoding forces the text encoding of every file.
	Encoding string
	// Delimiters restricts the delimiters the sniffer may pick.
	Delimiters string
}

// ParseDSN parses "path[;path...][?key=value&...]". The query starts at the
// last '?', so a path must not contain one when a query follows.
func ParseDSN(dsn string) (*Config, error) {
	pathPart, query := dsn, ""
	if i := strings.LastIndex(dsn, "?"); i >= 0 {
		pathPart, query = dsn[:i], dsn[i+1:]
	}

	cfg := &Config{}
	for _, path := range strings.Split(pathPart, ";") {
		if path = strings.TrimSpace(path); path != "" {
			cfg.Paths = append(cfg.Paths, path)
		}
	}
	if len(cfg.Paths) == 0 {
		return nil, ErrNoPathsProvided
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDSN, err)
	}
	for key := range values {
		switch key {
		case dsnSkip:
			if cfg.SkipLines, err = parseCount(values, key); err != nil {
				return nil, err
			}
		case dsnSample:
			if cfg.SampleLines, err = parseCount(values, key); err != nil {
				return nil, err
			}
		case dsnEncoding:
			cfg.Encoding = values.Get(key)
		case dsnDelimiters:
			cfg.Delimiters = values.Get(key)
		default:
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidDSN, key)
		}
	}
	return cfg, nil
}

func parseCount(values url.Values, key string) (int, error) {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer: %q", ErrInvalidDSN, key, values.Get(key))
	}
	return n, nil
}

// FormatDSN returns the DSN that ParseDSN turns back into c.
func (c *Config) FormatDSN() string {
	dsn := strings.Join(c.Paths, ";")

	values := url.Values{}
	if c.SkipLines != 0 {
		values.Set(dsnSkip, strconv.Itoa(c.SkipLines))
	}
	if c.SampleLines != 0 {
		values.Set(dsnSample, strconv.Itoa(c.SampleLines))
	}
	if c.Encoding != "" {
		values.Set(dsnEncoding, c.Encoding)
	}
	if c.Delimiters != "" {
		values.Set(dsnDelimiters, c.Delimiters)
	}
	if len(values) > 0 {
		dsn += "?" + values.Encode()
	}
	return dsn
}

// options converts c into read options for a single file.
func (c *Config) options() csvsniff.Options {
	return csvsniff.NewOptions().
		WithSkipLines(c.SkipLines).
		WithSampleLines(c.SampleLines).
		WithEncoding(c.Encoding).
		WithDelimiters(c.Delimiters)
}
