package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *Dataset {
	q1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	q2 := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	return &Dataset{
		Group:  "EU",
		Header: []string{"TIME_PERIOD", "BORROWERS_CTY", "OBS_VALUE"},
		Raw: [][]string{
			{"2020-Q1", "AT", "5.0"},
			{"2020-Q1", "BE", "3.0"},
			{"2020-Q2", "AT", "6.5"},
		},
		Observations: []Observation{
			{Period: q1, Country: "AT", Value: 5.0},
			{Period: q1, Country: "BE", Value: 3.0},
			{Period: q2, Country: "AT", Value: 6.5},
		},
	}
}

func TestFilterAllReturnsDatasetUnchanged(t *testing.T) {
	d := sampleDataset()
	got := d.Filter(CountryAll)

	assert.Same(t, d, got)
}

func TestFilterByCountry(t *testing.T) {
	d := sampleDataset()
	got := d.Filter("AT")

	require.Equal(t, 2, got.Len())
	for _, obs := range got.Observations {
		assert.Equal(t, "AT", obs.Country)
	}
	// Relative order preserved.
	assert.InDelta(t, 5.0, got.Observations[0].Value, 1e-9)
	assert.InDelta(t, 6.5, got.Observations[1].Value, 1e-9)
	// Raw rows stay parallel to observations.
	require.Len(t, got.Raw, 2)
	assert.Equal(t, "2020-Q2", got.Raw[1][0])
}

func TestFilterIdempotent(t *testing.T) {
	d := sampleDataset()
	once := d.Filter("BE")
	twice := once.Filter("BE")

	assert.Equal(t, once.Observations, twice.Observations)
}

func TestFilterNoMatchIsEmptyNotError(t *testing.T) {
	d := sampleDataset()
	got := d.Filter("ZZ")

	assert.Equal(t, 0, got.Len())
	assert.Empty(t, got.Countries())
}

func TestCountriesSorted(t *testing.T) {
	d := sampleDataset()
	assert.Equal(t, []string{"AT", "BE"}, d.Countries())
}

func TestValues(t *testing.T) {
	d := sampleDataset()
	assert.Equal(t, []float64{5.0, 3.0, 6.5}, d.Values())
}
