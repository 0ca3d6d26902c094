package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// Table holds a parsed CSV payload: one header row plus data rows.
// Rows may have fewer fields than the header when the source pads
// trailing columns inconsistently.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable parses an entire CSV stream into a Table. The first row is the
// header. An empty payload or a payload without a header row is an error.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: empty payload")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		rows = append(rows, record)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// Column returns the index of the named header column, or -1 when absent.
// Matching is case-insensitive.
func (t *Table) Column(name string) int {
	for i, col := range t.Header {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is shorter than
// the header.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
