package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// maxExactID is the largest identifier a float64 spelling can carry exactly.
const maxExactID = 1 << 53

var (
	// ErrInvalidID is returned for identifiers that are not non-negative integers.
	ErrInvalidID = errors.New("dataset: invalid point id")

	// ErrInvalidValue is returned for coordinates that are not numbers.
	ErrInvalidValue = errors.New("dataset: invalid coordinate")
)

// ParseError locates a malformed cell.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Table is one decoded input: an identifier column and a fixed number of
// coordinate columns per row.
type Table struct {
	IDs  []uint64
	Rows [][]float64

	// Width is the number of coordinate columns (0 for an empty table).
	Width int
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.IDs) }

// ReadTable decodes a headerless comma-separated table.
// Every row must have the same number of columns.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true

	t := &Table{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		id, err := ParseID(record[0])
		if err != nil {
			return nil, &ParseError{Line: line, Column: 1, Err: err}
		}

		row := make([]float64, len(record)-1)
		for j, cell := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &ParseError{Line: line, Column: j + 2, Err: fmt.Errorf("%w: %q", ErrInvalidValue, cell)}
			}
			row[j] = v
		}

		t.IDs = append(t.IDs, id)
		t.Rows = append(t.Rows, row)
		t.Width = len(row)
	}
}

// ParseID parses an identifier cell. Integral float spellings such as
// "3.0" are accepted.
func ParseID(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseUint(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > maxExactID {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return uint64(f), nil
}
