// Package table reads small comma separated lookup tables such as the
// scenery and glider lists.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNoMatch = errors.New("no matching row")

type Table struct {
	name string
	rows [][]string
}

// Read parses a table. Lines starting with '#' are comments and rows may have
// different lengths.
func Read(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse table %s: %w", name, err)
	}
	return &Table{name: name, rows: rows}, nil
}

// Row returns the first row whose column equals match.
func (t *Table) Row(match string, column int, caseInsensitive bool) ([]string, error) {
	for _, row := range t.rows {
		if column >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[column])
		if v == match || (caseInsensitive && strings.EqualFold(v, match)) {
			return row, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in column %d of %s", ErrNoMatch, match, column, t.name)
}

func (t *Table) Len() int {
	return len(t.rows)
}
