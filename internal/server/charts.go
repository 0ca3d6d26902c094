package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"

	"github.com/macroview/creditgap/internal/dataset"
	"github.com/macroview/creditgap/internal/stats"
)

const (
	chartWidth  = 1200
	chartHeight = 700
)

// handleTimeSeriesChart renders the value-over-period line chart as PNG, one
// series per country in the selection.
func (s *Server) handleTimeSeriesChart(w http.ResponseWriter, r *http.Request) {
	group, country := s.selection(r)

	d, err := s.loadDataset(r.Context(), group)
	if err != nil {
		http.Error(w, "dataset unavailable", http.StatusBadGateway)
		return
	}

	filtered := d.Filter(country)
	series := timeSeriesByCountry(filtered)
	if len(series) == 0 {
		http.Error(w, "no data for selection", http.StatusNotFound)
		return
	}

	graph := chart.Chart{
		Title:  "Credit-to-GDP Gap Time Series",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:           "Year",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006"),
		},
		YAxis: chart.YAxis{
			Name: "Credit-to-GDP Gap",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	w.Header().Set("Content-Type", "image/png")
	if err := graph.Render(chart.PNG, w); err != nil {
		zap.L().Error("time series chart render failed", zap.Error(err))
	}
}

// timeSeriesByCountry builds one line series per country, each sorted by
// period so the time axis is stable regardless of source row order.
func timeSeriesByCountry(d *dataset.Dataset) []chart.Series {
	byCountry := make(map[string][]dataset.Observation)
	for _, obs := range d.Observations {
		byCountry[obs.Country] = append(byCountry[obs.Country], obs)
	}

	var out []chart.Series
	for i, country := range d.Countries() {
		points := byCountry[country]
		sort.SliceStable(points, func(a, b int) bool {
			return points[a].Period.Before(points[b].Period)
		})

		xs := make([]time.Time, 0, len(points))
		ys := make([]float64, 0, len(points))
		for _, obs := range points {
			xs = append(xs, obs.Period)
			ys = append(ys, obs.Value)
		}
		// go-chart needs at least two points per series.
		if len(xs) == 1 {
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
		}

		out = append(out, chart.TimeSeries{
			Name:    country,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2.0,
			},
		})
	}
	return out
}

// handleHistogramChart renders the distribution of per-country changes as a
// PNG bar chart.
func (s *Server) handleHistogramChart(w http.ResponseWriter, r *http.Request) {
	group, country := s.selection(r)

	d, err := s.loadDataset(r.Context(), group)
	if err != nil {
		http.Error(w, "dataset unavailable", http.StatusBadGateway)
		return
	}

	changes := d.Filter(country).Changes()
	bins := stats.Histogram(changes, s.histogramBins())
	if len(bins) == 0 {
		http.Error(w, "no data for selection", http.StatusNotFound)
		return
	}

	title := "Histogram of Changes in Credit-to-GDP Gap"
	if country != dataset.CountryAll {
		title = fmt.Sprintf("%s (%s)", title, country)
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth(len(bins)),
		BarSpacing: 2,
		Bars:       histogramBars(bins),
	}

	w.Header().Set("Content-Type", "image/png")
	if err := graph.Render(chart.PNG, w); err != nil {
		zap.L().Error("histogram chart render failed", zap.Error(err))
	}
}

// histogramBars converts bins to chart values, labeling roughly every eighth
// bar with its midpoint to keep the axis readable at 50 or 120 bins.
func histogramBars(bins []stats.Bin) []chart.Value {
	step := len(bins) / 8
	if step < 1 {
		step = 1
	}

	bars := make([]chart.Value, 0, len(bins))
	for i, b := range bins {
		label := ""
		if i%step == 0 {
			label = fmt.Sprintf("%.2f", (b.Lo+b.Hi)/2)
		}
		bars = append(bars, chart.Value{Label: label, Value: float64(b.Count)})
	}
	return bars
}

func barWidth(nbins int) int {
	w := (chartWidth - 100) / nbins
	if w < 3 {
		w = 3
	}
	return w
}
