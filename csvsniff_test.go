package csvsniff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/csvsniff/charset"
	"github.com/nao1215/csvsniff/domain/model"
	"github.com/nao1215/csvsniff/sniffer"
)

var petFields = []string{"pet_id", "species", "name", "nicknames", "behaviors", "weight"}

// writeFile writes content to name inside a fresh temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// recordingDetector remembers the samples it was asked about.
type recordingDetector struct {
	label   string
	samples [][]byte
}

func (d *recordingDetector) Detect(sample []byte) (string, error) {
	d.samples = append(d.samples, append([]byte(nil), sample...))
	return d.label, nil
}

// failingSniffer fails the test when it is consulted.
type failingSniffer struct {
	t *testing.T
}

func (s failingSniffer) Sniff(string, string) (model.Dialect, error) {
	s.t.Error("sniffer must not be called")
	return model.Dialect{}, errors.New("unexpected call")
}

func failingDetector(t *testing.T) charset.Detector {
	return charset.DetectorFunc(func([]byte) (string, error) {
		t.Error("detector must not be called")
		return "", errors.New("unexpected call")
	})
}

func TestRead_Pets(t *testing.T) {
	t.Parallel()

	singleQuote := model.Excel()
	singleQuote.QuoteChar = '\''
	singleQuote.DoubleQuote = false

	colon := model.Excel()
	colon.Delimiter = ':'
	colon.DoubleQuote = false

	tests := []struct {
		file     string
		encoding string
		dialect  model.Dialect
		lastName string
	}{
		{file: "pets_excel.csv", encoding: "ascii", dialect: model.Excel(), lastName: "_____"},
		{file: "pets_excel_tabs.txt", encoding: "ascii", dialect: model.ExcelTab(), lastName: "_____"},
		{file: "pets_utf8_bom.csv", encoding: "utf-8-sig", dialect: model.Excel(), lastName: "Ἀθηνᾶ"},
		{file: "pets_utf8_squote.csv", encoding: "utf-8", dialect: singleQuote, lastName: "Ἀθηνᾶ"},
		{file: "pets_utf8_colon.csv", encoding: "utf-8", dialect: colon, lastName: "Ἀθηνᾶ"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			result, err := Read(filepath.Join("testdata", tt.file))
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, tt.encoding, result.Encoding)
			assert.True(t, tt.dialect.Equal(result.Dialect), "got %s, want %s", result.Dialect, tt.dialect)
			assert.Equal(t, petFields, result.FieldNames)
			require.Equal(t, 5, result.Len())

			row := result.Rows[2]
			assert.Equal(t, map[string]string{
				"pet_id":    "3",
				"species":   "cat",
				"name":      "Garfunkle",
				"nicknames": "The Great Orange One",
				"behaviors": "friendly, talkative, not fit for indoor life",
				"weight":    "8",
			}, row.Map())

			behaviors, _ := row.Get("behaviors")
			assert.Len(t, strings.Split(behaviors, ","), 3)

			name, ok := result.Rows[4].Get("name")
			assert.True(t, ok)
			assert.Equal(t, tt.lastName, name)
		})
	}
}

func TestRead_DoubledQuotes(t *testing.T) {
	t.Parallel()

	result, err := Read(filepath.Join("testdata", "pets_excel.csv"))
	require.NoError(t, err)

	nicknames, _ := result.Rows[0].Get("nicknames")
	assert.Equal(t, `Sir "Barks" a Lot`, nicknames)
	nicknames, _ = result.Rows[3].Get("nicknames")
	assert.Empty(t, nicknames)
}

func TestRead_IDNameScenario(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "people.csv", "id,name\n1,Ann\n2,Bo\n")

	result, err := Read(path)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, []string{"id", "name"}, result.FieldNames)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, map[string]string{"id": "1", "name": "Ann"}, result.Rows[0].Map())
	assert.Equal(t, map[string]string{"id": "2", "name": "Bo"}, result.Rows[1].Map())
	assert.Equal(t, ',', result.Dialect.Delimiter)
	assert.Equal(t, "ascii", result.Encoding)
}

func TestRead_Prologue(t *testing.T) {
	t.Parallel()

	result, err := Read(filepath.Join("testdata", "places_prologue.csv"), NewOptions().WithSkipLines(6))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, model.Excel().Equal(result.Dialect), "got %s", result.Dialect)
	assert.Equal(t, []string{"id", "name", "lat", "lon"}, result.FieldNames)
	assert.Equal(t, [][]string{
		{"1", "Boston", "42.36", "-71.06"},
		{"2", "Salem, MA", "42.52", "-70.90"},
		{"3", `Springfield "Spr"`, "42.10", "-72.59"},
	}, result.Records())
}

func TestRead_SkipLinesMatchesRemovedPreamble(t *testing.T) {
	t.Parallel()

	body := "code;label\r\nA1;\"first; entry\"\r\nB2;second\r\nC3;third\r\n"
	preamble := "exported by tool\r\nversion 3\r\n\r\n"

	withPreamble := writeFile(t, "with.csv", preamble+body)
	without := writeFile(t, "without.csv", body)

	got, err := Read(withPreamble, NewOptions().WithSkipLines(3))
	require.NoError(t, err)
	want, err := Read(without)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, want)

	assert.Equal(t, want.FieldNames, got.FieldNames)
	assert.Equal(t, want.Records(), got.Records())
	assert.Equal(t, want.Encoding, got.Encoding)
	assert.True(t, want.Dialect.Equal(got.Dialect))
	assert.Equal(t, ';', got.Dialect.Delimiter)
}

func TestRead_HeaderOnly(t *testing.T) {
	t.Parallel()

	result, err := Read(filepath.Join("testdata", "header_only.csv"))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestRead_BlankAndRaggedRows(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "ragged.csv", "\nid,name\n\n1\n2,Bo,extra\n\n")

	result, err := Read(path, NewOptions().WithDialect(model.Excel()))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, []string{"id", "name"}, result.FieldNames)
	require.Len(t, result.Rows, 2)

	name, ok := result.Rows[0].Get("name")
	assert.True(t, ok)
	assert.Empty(t, name)
	assert.Empty(t, result.Rows[0].Extra)
	assert.Equal(t, []string{"extra"}, result.Rows[1].Extra)
}

func TestRead_FieldNamesOverride(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "people.csv", "id,name\n1,Ann\n2,Bo\n")

	result, err := Read(path, NewOptions().WithFieldNames("key", "value"))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, []string{"key", "value"}, result.FieldNames)
	assert.Equal(t, [][]string{{"id", "name"}, {"1", "Ann"}, {"2", "Bo"}}, result.Records())
}

func TestRead_ExplicitOverridesBypassCollaborators(t *testing.T) {
	t.Parallel()

	path := filepath.Join("testdata", "pets_excel.csv")

	auto, err := Read(path)
	require.NoError(t, err)

	options := NewOptions().
		WithEncoding("ascii").
		WithDialect(model.Excel()).
		WithDetector(failingDetector(t)).
		WithSniffer(failingSniffer{t: t})

	forced, err := Read(path, options)
	require.NoError(t, err)
	require.NotNil(t, forced)

	assert.Equal(t, auto.Records(), forced.Records())
	assert.Equal(t, auto.FieldNames, forced.FieldNames)
	assert.Equal(t, "ascii", forced.Encoding)
	assert.True(t, model.Excel().Equal(forced.Dialect))
}

func TestRead_ExplicitEncodingOnly(t *testing.T) {
	t.Parallel()

	result, err := Read(filepath.Join("testdata", "pets_utf8_colon.csv"),
		NewOptions().WithEncoding("UTF-8").WithDetector(failingDetector(t)))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "UTF-8", result.Encoding)
	assert.Equal(t, ':', result.Dialect.Delimiter)
}

func TestRead_BOMTakesPrecedence(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "bom.csv", "\xEF\xBB\xBFid,name\n1,Ann\n")
	detector := &recordingDetector{label: "windows-1252"}

	result, err := Read(path, NewOptions().WithDetector(detector))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, charset.UTF8BOM, result.Encoding)
	assert.Empty(t, detector.samples)
	assert.Equal(t, []string{"id", "name"}, result.FieldNames)
}

func TestRead_SampleScaling(t *testing.T) {
	t.Parallel()

	short := strings.Repeat("aaaa,bbbb\n", 10)
	long := strings.Repeat("aaaaaaaaa,bbbbbbbbb\n", 10)

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "ten byte lines", content: short, want: 30},
		{name: "twenty byte lines", content: long, want: 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			detector := &recordingDetector{label: "ascii"}
			path := writeFile(t, "sample.csv", tt.content)

			result, err := Read(path, NewOptions().
				WithSkipLines(2).
				WithSampleLines(3).
				WithDetector(detector))
			require.NoError(t, err)
			require.NotNil(t, result)

			require.Len(t, detector.samples, 1)
			assert.Len(t, detector.samples[0], tt.want)
			assert.Equal(t, "ascii", result.Encoding)
			assert.Equal(t, 7, result.Len())
		})
	}
}

func TestSampleSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		lines, size int64
		sampleLines int
		want        int64
	}{
		{name: "whole file when sample covers it", lines: 3, size: 30, sampleLines: 100, want: 30},
		{name: "rounds bytes per line up", lines: 3, size: 31, sampleLines: 2, want: 22},
		{name: "sample lines alone size the sample", lines: 100, size: 1000, sampleLines: 10, want: 100},
		{name: "no line feed at all", lines: 0, size: 12, sampleLines: 1, want: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sampleSize(tt.lines, tt.size, tt.sampleLines))
		})
	}
}

// writeDelimited renders records under d, quoting fields that need it.
func writeDelimited(records [][]string, d model.Dialect, quoteAll bool) string {
	var b strings.Builder
	quote := string(d.QuoteChar)
	for _, record := range records {
		for i, field := range record {
			if i > 0 {
				b.WriteRune(d.Delimiter)
			}
			needsQuote := quoteAll || strings.ContainsAny(field, string(d.Delimiter)+quote+"\r\n")
			if !needsQuote {
				b.WriteString(field)
				continue
			}
			b.WriteString(quote + strings.ReplaceAll(field, quote, quote+quote) + quote)
		}
		b.WriteString(d.LineTerminator)
	}
	return b.String()
}

func TestRead_RoundTrip(t *testing.T) {
	t.Parallel()

	header := []string{"id", "label", "note"}
	tricky := [][]string{
		{"1", "plain", "text"},
		{"2", "with, comma", "tab\there"},
		{"3", `say "hi"`, "it's"},
		{"4", "colon: yes", "semi; colon"},
		{"5", "multi\nline", "pipe | bar"},
		{"6", "", "trailing"},
	}

	semicolon := model.Excel()
	semicolon.Delimiter = ';'
	semicolon.QuoteChar = '\''

	pipe := model.Unix()
	pipe.Delimiter = '|'

	colon := model.Excel()
	colon.Delimiter = ':'

	for _, d := range []model.Dialect{model.Excel(), model.ExcelTab(), semicolon, pipe, colon} {
		t.Run("forced "+d.String(), func(t *testing.T) {
			t.Parallel()

			records := append([][]string{header}, tricky...)
			path := writeFile(t, "roundtrip.csv", writeDelimited(records, d, false))

			result, err := Read(path, NewOptions().WithDialect(d))
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, header, result.FieldNames)
			assert.Equal(t, tricky, result.Records())
			assert.True(t, d.Equal(result.Dialect))
		})
	}

	sniffable := []struct {
		name      string
		delimiter rune
		quote     rune
		quoteAll  bool
	}{
		{name: "comma unquoted", delimiter: ',', quote: '"'},
		{name: "comma double quoted", delimiter: ',', quote: '"', quoteAll: true},
		{name: "comma single quoted", delimiter: ',', quote: '\'', quoteAll: true},
		{name: "tab unquoted", delimiter: '\t', quote: '"'},
		{name: "tab double quoted", delimiter: '\t', quote: '"', quoteAll: true},
		{name: "colon unquoted", delimiter: ':', quote: '"'},
		{name: "colon single quoted", delimiter: ':', quote: '\'', quoteAll: true},
	}
	for _, tt := range sniffable {
		t.Run("sniffed "+tt.name, func(t *testing.T) {
			t.Parallel()

			d := model.Excel()
			d.Delimiter = tt.delimiter
			d.QuoteChar = tt.quote

			records := [][]string{{"id", "name", "score"}}
			for i := 1; i <= 25; i++ {
				records = append(records, []string{fmt.Sprint(i), fmt.Sprintf("item%d", i*7), fmt.Sprint(i * 13)})
			}
			path := writeFile(t, "sniffed.csv", writeDelimited(records, d, tt.quoteAll))

			result, err := Read(path)
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, records[0], result.FieldNames)
			assert.Equal(t, records[1:], result.Records())
			assert.Equal(t, tt.delimiter, result.Dialect.Delimiter)
			if tt.quoteAll {
				assert.Equal(t, tt.quote, result.Dialect.QuoteChar)
			}
		})
	}
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	t.Run("file not found", func(t *testing.T) {
		t.Parallel()

		_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := Read(t.TempDir())
		assert.ErrorIs(t, err, ErrNotRegularFile)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		_, err := Read(writeFile(t, "empty.csv", ""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("skip beyond end while sniffing", func(t *testing.T) {
		t.Parallel()

		_, err := Read(writeFile(t, "short.csv", "id,name\n1,Ann\n"), NewOptions().WithSkipLines(5))
		assert.ErrorIs(t, err, ErrSkipLinesExceeded)
	})

	t.Run("skip beyond end with forced dialect", func(t *testing.T) {
		t.Parallel()

		_, err := Read(writeFile(t, "short.csv", "id,name\n1,Ann\n"),
			NewOptions().WithSkipLines(3).WithDialect(model.Excel()))
		assert.ErrorIs(t, err, ErrSkipLinesExceeded)
	})

	t.Run("no delimiter", func(t *testing.T) {
		t.Parallel()

		_, err := Read(writeFile(t, "words.txt", "abc\ndefgh\n"))
		assert.ErrorIs(t, err, ErrSniff)
		assert.ErrorIs(t, err, sniffer.ErrCouldNotDetermineDelimiter)
	})

	t.Run("detector failure", func(t *testing.T) {
		t.Parallel()

		detector := charset.DetectorFunc(func([]byte) (string, error) {
			return "", charset.ErrNoGuess
		})
		_, err := Read(writeFile(t, "data.csv", "id,name\n1,Ann\n"), NewOptions().WithDetector(detector))
		assert.ErrorIs(t, err, ErrEncodingDetection)
		assert.ErrorIs(t, err, charset.ErrNoGuess)
	})

	t.Run("negative skip lines", func(t *testing.T) {
		t.Parallel()

		_, err := Read(filepath.Join("testdata", "pets_excel.csv"), NewOptions().WithSkipLines(-1))
		assert.ErrorIs(t, err, ErrInvalidOption)
	})

	t.Run("negative sample lines", func(t *testing.T) {
		t.Parallel()

		_, err := Read(filepath.Join("testdata", "pets_excel.csv"), NewOptions().WithSampleLines(-1))
		assert.ErrorIs(t, err, ErrInvalidOption)
	})

	t.Run("more than one options value", func(t *testing.T) {
		t.Parallel()

		_, err := Read(filepath.Join("testdata", "pets_excel.csv"), NewOptions(), NewOptions())
		assert.ErrorIs(t, err, ErrInvalidOption)
	})

	t.Run("invalid dialect", func(t *testing.T) {
		t.Parallel()

		d := model.Excel()
		d.QuoteChar = ','
		_, err := Read(filepath.Join("testdata", "pets_excel.csv"), NewOptions().WithDialect(d))
		assert.ErrorIs(t, err, model.ErrInvalidDialect)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ReadContext(ctx, filepath.Join("testdata", "pets_excel.csv"))
		assert.ErrorIs(t, err, ErrContextCancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRead_DecodeError(t *testing.T) {
	t.Parallel()

	t.Run("invalid byte after the sample", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		content := "id,name\n1,Ann\n2,Bo\n3,Jos\xE9\n"
		path := writeFile(t, "latin1.csv", content)

		_, err := Read(path, NewOptions().
			WithEncoding("utf-8").
			WithSampleLines(2).
			WithLogger(logger))
		require.Error(t, err)

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "utf-8", decodeErr.Encoding)
		assert.Equal(t, "latin1.csv", filepath.Base(decodeErr.Path))
		assert.ErrorIs(t, err, charset.ErrInvalidSequence)

		logged := buf.String()
		assert.Contains(t, logged, "cannot decode file")
		assert.Contains(t, logged, "encoding=utf-8")
		assert.Contains(t, logged, "component=csvsniff")
		assert.Contains(t, logged, "latin1.csv")
	})

	t.Run("invalid byte inside the sample", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "latin1.csv", "id,name\n1,Jos\xE9\n")
		_, err := Read(path, NewOptions().WithEncoding("ascii"))

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "ascii", decodeErr.Encoding)
	})

	t.Run("unknown encoding", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "data.csv", "id,name\n1,Ann\n")
		_, err := Read(path, NewOptions().WithEncoding("klingon"))

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.ErrorIs(t, err, charset.ErrUnknownEncoding)
	})

	t.Run("latin1 file read as latin1", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "latin1.csv", "id,name\n1,Jos\xE9\n")
		result, err := Read(path, NewOptions().WithEncoding("iso-8859-1"))
		require.NoError(t, err)
		require.NotNil(t, result)

		name, _ := result.Rows[0].Get("name")
		assert.Equal(t, "José", name)
	})
}

func TestRead_Symlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "target.csv")
	require.NoError(t, os.WriteFile(target, []byte("id,name\n1,Ann\n"), 0o600))
	link := filepath.Join(dir, "link.csv")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	result, err := Read(link)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, []string{"id", "name"}, result.FieldNames)
}

func TestRead_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Read(filepath.Join("testdata", "pets_excel.csv"), NewOptions().WithLogger(logger))
	require.NoError(t, err)

	logged := buf.String()
	assert.Contains(t, logged, "detected encoding")
	assert.Contains(t, logged, "encoding=ascii")
	assert.Contains(t, logged, "sniffed dialect")
	assert.Contains(t, logged, "has_header=true")
	assert.Contains(t, logged, "rows=5")
}

func TestRead_LoggingHeaderGuess(t *testing.T) {
	t.Parallel()

	t.Run("numeric first record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		path := writeFile(t, "numbers.csv", "1,2\n3,4\n5,6\n")

		result, err := Read(path, NewOptions().WithLogger(logger))
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Contains(t, buf.String(), "has_header=false")
		assert.Equal(t, []string{"1", "2"}, result.FieldNames, "the first record is still the header")
	})

	t.Run("forced field names skip the guess", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		path := writeFile(t, "numbers.csv", "1,2\n3,4\n")

		_, err := Read(path, NewOptions().WithLogger(logger).WithFieldNames("a", "b"))
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "sniffed dialect")
		assert.NotContains(t, buf.String(), "has_header")
	})
}

func TestReadHeader(t *testing.T) {
	t.Parallel()

	t.Run("header only file", func(t *testing.T) {
		t.Parallel()

		header, encoding, d, err := ReadHeader(context.Background(), filepath.Join("testdata", "header_only.csv"))
		require.NoError(t, err)
		assert.Equal(t, Header{"id", "name"}, header)
		assert.Equal(t, "ascii", encoding)
		assert.Equal(t, ',', d.Delimiter)
	})

	t.Run("after a prologue", func(t *testing.T) {
		t.Parallel()

		header, _, _, err := ReadHeader(context.Background(),
			filepath.Join("testdata", "places_prologue.csv"), NewOptions().WithSkipLines(6))
		require.NoError(t, err)
		assert.Equal(t, Header{"id", "name", "lat", "lon"}, header)
	})

	t.Run("repeated names", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "dup.csv", "a,b,a\n1,2,3\n")
		header, _, _, err := ReadHeader(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, Header{"a", "b"}, header)
	})

	t.Run("forced field names", func(t *testing.T) {
		t.Parallel()

		header, _, _, err := ReadHeader(context.Background(), filepath.Join("testdata", "header_only.csv"),
			NewOptions().WithFieldNames("x", "y").WithDialect(model.Excel()))
		require.NoError(t, err)
		assert.Equal(t, Header{"x", "y"}, header)
	})

	t.Run("only blank lines after the skipped ones", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "blank.csv", "id,name\n\n\n")
		header, _, _, err := ReadHeader(context.Background(), path,
			NewOptions().WithSkipLines(1).WithDialect(model.Excel()))
		require.NoError(t, err)
		assert.Nil(t, header)
	})
}
