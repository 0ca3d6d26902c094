package dataset

import (
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// colChange is the derived column appended to the preview table.
const colChange = "CHANGE"

// Preview is a render-ready slice of the raw table: first N rows, fully-empty
// columns dropped, numeric cells rounded to 2 decimals, missing values shown
// as empty strings.
type Preview struct {
	Columns []string
	Rows    [][]string
}

// BuildPreview assembles the preview for the first n rows of the dataset,
// including the derived change column.
func BuildPreview(d *Dataset, n int) Preview {
	if n > d.Len() {
		n = d.Len()
	}
	if n <= 0 {
		return Preview{}
	}

	header := make([]string, 0, len(d.Header)+1)
	header = append(header, d.Header...)
	header = append(header, colChange)

	records := make([][]string, 0, n+1)
	records = append(records, header)
	for i := 0; i < n; i++ {
		row := make([]string, len(header))
		for j := range d.Header {
			if j < len(d.Raw[i]) {
				row[j] = d.Raw[i][j]
			}
		}
		// gota detects "NaN" as a float cell, keeping the column numeric
		// even when the first observations have no change yet.
		if c := d.Observations[i].Change; c != nil {
			row[len(header)-1] = strconv.FormatFloat(*c, 'f', -1, 64)
		} else {
			row[len(header)-1] = "NaN"
		}
		records = append(records, row)
	}

	// Drop columns that are completely empty in the previewed rows.
	var keep []string
	for j, name := range header {
		empty := true
		for _, row := range records[1:] {
			if row[j] != "" && row[j] != "NaN" {
				empty = false
				break
			}
		}
		if !empty {
			keep = append(keep, name)
		}
	}
	if len(keep) == 0 {
		return Preview{}
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
	).Select(keep)

	return renderFrame(df)
}

// renderFrame formats a dataframe into display cells: numeric columns rounded
// to 2 decimals, NaN rendered as empty string.
func renderFrame(df dataframe.DataFrame) Preview {
	names := df.Names()
	types := df.Types()

	cols := make([][]string, len(names))
	for j, name := range names {
		col := df.Col(name)
		switch types[j] {
		case series.Float:
			vals := col.Float()
			cells := make([]string, len(vals))
			for i, v := range vals {
				if math.IsNaN(v) {
					cells[i] = ""
					continue
				}
				cells[i] = strconv.FormatFloat(v, 'f', 2, 64)
			}
			cols[j] = cells
		default:
			cells := col.Records()
			for i, c := range cells {
				if c == "NaN" {
					cells[i] = ""
				}
			}
			cols[j] = cells
		}
	}

	p := Preview{Columns: names}
	for i := 0; i < df.Nrow(); i++ {
		row := make([]string, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}
