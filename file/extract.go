package file

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/logger"
)

var (
	// ErrMalformedExtract means the source parsed but has no tabular shape (zero columns or ragged rows).
	ErrMalformedExtract = errors.New("malformed extract")
	// ErrExtractUnreadable means the source could not be read at all.
	ErrExtractUnreadable = errors.New("extract unreadable")
)

// Extract is a row-oriented table read from one artifact.
// Columns are domain variables plus optional identifier columns (e.g. PID, MRN)
// which callers strip off with TakeColumn before reshaping.
type Extract struct {
	Columns []string
	Rows    [][]interface{}
}

func (e *Extract) NumRows() int {
	return len(e.Rows)
}

func (e *Extract) NumColumns() int {
	return len(e.Columns)
}

// TakeColumn removes the named column from the extract and returns its values in row order.
// Column name matching is exact. It returns found == false and leaves the extract
// untouched when the column does not exist.
func (e *Extract) TakeColumn(log logger.Logger, name string) (values []string, found bool) {
	idx := -1
	for i, c := range e.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	values = make([]string, 0, len(e.Rows))
	for i, row := range e.Rows {
		values = append(values, helper.GetStringFromInterfaceUseUtcTime(log, row[idx]))
		e.Rows[i] = append(row[:idx:idx], row[idx+1:]...)
	}
	e.Columns = append(e.Columns[:idx:idx], e.Columns[idx+1:]...)
	return values, true
}

// ReadExtractCsv decodes a CSV stream into an Extract.
// The first record is the header. A ragged or empty file fails with ErrMalformedExtract.
func ReadExtractCsv(log logger.Logger, r io.Reader) (*Extract, error) {
	c := csv.NewReader(r)
	header, err := c.Read()
	if err == io.EOF { // if the file is empty...
		return nil, errors.Wrap(ErrMalformedExtract, "no header row")
	}
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedExtract, "reading header: %v", err)
	}
	if len(header) == 0 || (len(header) == 1 && header[0] == "") { // if there are no columns...
		return nil, errors.Wrap(ErrMalformedExtract, "zero columns")
	}
	e := &Extract{Columns: header}
	for {
		rec, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil { // csv.Reader enforces a rectangular shape for us.
			return nil, errors.Wrapf(ErrMalformedExtract, "reading row %v: %v", len(e.Rows)+2, err)
		}
		row := make([]interface{}, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		e.Rows = append(e.Rows, row)
	}
	log.Debug("read extract with ", e.NumColumns(), " columns and ", e.NumRows(), " rows")
	return e, nil
}
