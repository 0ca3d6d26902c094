// Package dataset holds the normalized credit-to-GDP gap observations and
// the filtering pipeline behind every dashboard view.
package dataset

import (
	"sort"
	"time"

	"github.com/rotisserie/eris"
)

// CountryAll is the sentinel country key meaning "no filter".
const CountryAll = "all"

// ErrSourceUnavailable marks a payload that could not be fetched or parsed
// as tabular data at all. Individual malformed rows are dropped silently and
// never produce this error.
var ErrSourceUnavailable = eris.New("source unavailable")

// Observation is one (period, country, value) data point. Change carries the
// difference to the previous observation of the same country in order of
// appearance; it is nil for the first observation of each country.
type Observation struct {
	Period  time.Time
	Country string
	Value   float64
	Change  *float64
}

// Dataset is an ordered collection of observations for one country group.
// Raw keeps the surviving source rows (parallel to Observations) so the
// preview view can show every upstream column, not just the typed ones.
type Dataset struct {
	Group        string
	Header       []string
	Raw          [][]string
	Observations []Observation
}

// Len returns the number of retained observations.
func (d *Dataset) Len() int {
	return len(d.Observations)
}

// Filter returns the observations matching the given country key. The
// sentinel CountryAll returns the dataset unchanged. An empty result is a
// valid, renderable state, not an error.
func (d *Dataset) Filter(country string) *Dataset {
	if country == CountryAll {
		return d
	}

	out := &Dataset{Group: d.Group, Header: d.Header}
	for i, obs := range d.Observations {
		if obs.Country != country {
			continue
		}
		out.Observations = append(out.Observations, obs)
		out.Raw = append(out.Raw, d.Raw[i])
	}
	return out
}

// Countries returns the distinct country codes in alphabetical order.
func (d *Dataset) Countries() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, obs := range d.Observations {
		if _, ok := seen[obs.Country]; ok {
			continue
		}
		seen[obs.Country] = struct{}{}
		out = append(out, obs.Country)
	}
	sort.Strings(out)
	return out
}

// Values returns the observed values in dataset order.
func (d *Dataset) Values() []float64 {
	out := make([]float64, 0, len(d.Observations))
	for _, obs := range d.Observations {
		out = append(out, obs.Value)
	}
	return out
}

// Changes returns the defined per-country changes in dataset order. First
// observations per country contribute nothing.
func (d *Dataset) Changes() []float64 {
	var out []float64
	for _, obs := range d.Observations {
		if obs.Change != nil {
			out = append(out, *obs.Change)
		}
	}
	return out
}
