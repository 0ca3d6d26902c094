package dataset

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/macroview/creditgap/internal/fetcher"
)

// Source column names of the BIS credit gap dataflow.
const (
	colPeriod  = "TIME_PERIOD"
	colCountry = "BORROWERS_CTY"
	colValue   = "OBS_VALUE"
)

// Normalize turns a raw CSV table into a Dataset. Rows whose period label or
// value cannot be parsed are dropped, never retained with nulls. Insertion
// order of surviving rows is preserved. A table missing any of the required
// columns fails with ErrSourceUnavailable.
func Normalize(tbl *fetcher.Table, group string) (*Dataset, error) {
	periodIdx := tbl.Column(colPeriod)
	countryIdx := tbl.Column(colCountry)
	valueIdx := tbl.Column(colValue)
	if periodIdx < 0 || countryIdx < 0 || valueIdx < 0 {
		return nil, eris.Wrapf(ErrSourceUnavailable,
			"normalize group %s: payload missing required columns", group)
	}

	d := &Dataset{Group: group, Header: tbl.Header}
	for _, row := range tbl.Rows {
		period, err := ParsePeriod(tbl.Cell(row, periodIdx))
		if err != nil {
			continue
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(tbl.Cell(row, valueIdx)), 64)
		if err != nil {
			continue
		}

		d.Observations = append(d.Observations, Observation{
			Period:  period,
			Country: strings.TrimSpace(tbl.Cell(row, countryIdx)),
			Value:   value,
		})
		d.Raw = append(d.Raw, row)
	}

	computeChanges(d)

	zap.L().Debug("normalized dataset",
		zap.String("group", group),
		zap.Int("rows_in", len(tbl.Rows)),
		zap.Int("rows_kept", d.Len()),
	)

	return d, nil
}

// computeChanges fills Observation.Change with the first difference of the
// value against the previous observation of the same country, in order of
// appearance. The source is only sorted by period within each country when
// upstream emits it that way; the difference deliberately follows row order,
// not chronology.
func computeChanges(d *Dataset) {
	last := make(map[string]float64)
	for i := range d.Observations {
		obs := &d.Observations[i]
		if prev, ok := last[obs.Country]; ok {
			change := obs.Value - prev
			obs.Change = &change
		}
		last[obs.Country] = obs.Value
	}
}
