// Package csvsniff reads delimited text files whose character encoding and
// dialect are not known in advance.
//
// Read works in three steps:
//
//   - The encoding is guessed from a byte sample. A UTF-8 byte-order mark
//     always wins and yields "utf-8-sig"; otherwise a byte-frequency detector
//     names the encoding.
//   - The dialect (delimiter, quote character, quote doubling and whitespace
//     handling) is sniffed from a sample of decoded lines.
//   - The file is decoded and tokenized under that encoding and dialect, and
//     each record after the header becomes a Row keyed by field name.
//
// Every step can be overridden through Options, and the detector and sniffer
// can be replaced.
//
// # Basic Usage
//
//	result, err := csvsniff.Read("pets.csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Encoding, result.FieldNames)
//
// # Skipping a Prologue
//
// Some exports put a few lines of commentary above the header. Skip them so
// that neither the sniffer nor the header sees them:
//
//	result, err := csvsniff.Read("places.csv", csvsniff.NewOptions().WithSkipLines(6))
//
// # Compressed Files
//
// Files ending in .gz, .bz2, .xz or .zst are decompressed transparently
// before detection and parsing.
//
// # Errors
//
// Failures are reported with sentinel errors that can be tested with
// errors.Is: ErrFileNotFound, ErrEmptyFile, ErrSkipLinesExceeded,
// ErrEncodingDetection, ErrSniff and others. Text that is invalid in the
// chosen encoding yields a *DecodeError naming the file and the encoding.
package csvsniff
