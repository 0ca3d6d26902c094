package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewFixture() *Dataset {
	d := sampleDataset()
	d.Header = []string{"TIME_PERIOD", "BORROWERS_CTY", "OBS_VALUE", "NOTES"}
	d.Raw = [][]string{
		{"2020-Q1", "AT", "5.049", ""},
		{"2020-Q1", "BE", "3", ""},
		{"2020-Q2", "AT", "6.5", ""},
	}
	change := 1.5
	d.Observations[2].Change = &change
	return d
}

func TestBuildPreviewDropsEmptyColumns(t *testing.T) {
	p := BuildPreview(previewFixture(), 10)

	assert.NotContains(t, p.Columns, "NOTES")
	assert.Contains(t, p.Columns, "TIME_PERIOD")
	assert.Contains(t, p.Columns, "CHANGE")
}

func TestBuildPreviewRoundsNumerics(t *testing.T) {
	p := BuildPreview(previewFixture(), 10)

	col := -1
	for j, name := range p.Columns {
		if name == "OBS_VALUE" {
			col = j
		}
	}
	require.GreaterOrEqual(t, col, 0)

	assert.Equal(t, "5.05", p.Rows[0][col])
	assert.Equal(t, "3.00", p.Rows[1][col])
}

func TestBuildPreviewMissingChangeRenderedEmpty(t *testing.T) {
	p := BuildPreview(previewFixture(), 10)

	col := len(p.Columns) - 1
	assert.Equal(t, "CHANGE", p.Columns[col])
	assert.Equal(t, "", p.Rows[0][col])
	assert.Equal(t, "", p.Rows[1][col])
	assert.Equal(t, "1.50", p.Rows[2][col])
}

func TestBuildPreviewLimitsRows(t *testing.T) {
	p := BuildPreview(previewFixture(), 2)
	assert.Len(t, p.Rows, 2)
}

func TestBuildPreviewEmptyDataset(t *testing.T) {
	d := &Dataset{Group: "EU", Header: []string{"A"}}
	p := BuildPreview(d, 10)
	assert.Empty(t, p.Rows)
	assert.Empty(t, p.Columns)
}
