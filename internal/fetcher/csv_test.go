package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	csv := "TIME_PERIOD,BORROWERS_CTY,OBS_VALUE\n2020-Q1,AT,5.0\n2020-Q2,AT,6.5\n"

	tbl, err := ReadTable(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"TIME_PERIOD", "BORROWERS_CTY", "OBS_VALUE"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"2020-Q1", "AT", "5.0"}, tbl.Rows[0])
}

func TestReadTableEmptyPayload(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty payload")
}

func TestReadTableHeaderOnly(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader("A,B,C\n"))
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
}

func TestReadTableVariableFields(t *testing.T) {
	csv := "A,B,C\n1,2\n3,4,5,6\n"

	tbl, err := ReadTable(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Len(t, tbl.Rows[0], 2)
	assert.Len(t, tbl.Rows[1], 4)
}

func TestReadTableTrimsHeader(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader(" A , B \n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, tbl.Header)
}

func TestColumnLookup(t *testing.T) {
	tbl := &Table{Header: []string{"TIME_PERIOD", "BORROWERS_CTY", "OBS_VALUE"}}

	assert.Equal(t, 0, tbl.Column("TIME_PERIOD"))
	assert.Equal(t, 1, tbl.Column("borrowers_cty"))
	assert.Equal(t, -1, tbl.Column("MISSING"))
}

func TestCellShortRow(t *testing.T) {
	tbl := &Table{Header: []string{"A", "B", "C"}}
	row := []string{"1"}

	assert.Equal(t, "1", tbl.Cell(row, 0))
	assert.Equal(t, "", tbl.Cell(row, 2))
	assert.Equal(t, "", tbl.Cell(row, -1))
}
