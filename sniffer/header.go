package sniffer

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/csvsniff/domain/model"
	"github.com/nao1215/csvsniff/parser"
)

// maxHeaderRows is the number of rows after the first that HasHeader inspects.
const maxHeaderRows = 21

// columnKind is what the values of one column have in common: either they
// all parse as numbers, or they all have the same length.
type columnKind struct {
	numeric bool
	length  int
}

func kindOf(value string) columnKind {
	if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return columnKind{numeric: true}
	}
	return columnKind{length: len([]rune(value))}
}

// HasHeader guesses whether the first row of sample is a header.
//
// Each column of the following rows is classified as numeric or as having a
// fixed length; columns without a consistent kind are ignored. The first row
// is a header when more of its cells break their column's kind than fit it.
func HasHeader(sample string, d model.Dialect) (bool, error) {
	r := parser.NewReader(parser.NewLineReader(strings.NewReader(sample)), d)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	kinds := make(map[int]columnKind, len(header))
	undecided := make(map[int]bool, len(header))
	for i := range header {
		undecided[i] = true
	}

	for checked := 0; checked < maxHeaderRows; checked++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false, err
		}
		if len(row) != len(header) {
			continue
		}
		for col := range undecided {
			kind := kindOf(row[col])
			prev, ok := kinds[col]
			switch {
			case !ok:
				kinds[col] = kind
			case prev != kind:
				delete(kinds, col)
				delete(undecided, col)
			}
		}
	}

	votes := 0
	for col := range undecided {
		kind, ok := kinds[col]
		switch {
		case !ok:
			votes++
		case kind.numeric && kindOf(header[col]).numeric:
			votes--
		case !kind.numeric && len([]rune(header[col])) == kind.length:
			votes--
		default:
			votes++
		}
	}
	return votes > 0, nil
}
