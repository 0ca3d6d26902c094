package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/macroview/creditgap/internal/dataset"
	"github.com/macroview/creditgap/internal/stats"
)

// pageData is the shared template payload for every dashboard page.
type pageData struct {
	Title   string
	Group   string
	Country string
	Path    string
	Pinned  bool

	// GroupQuery is "?group=K" for nav links, empty in pinned mode.
	GroupQuery string

	Groups    []string
	Countries []string

	Preview  dataset.Preview
	Stats    []stats.Row
	ChartURL string
	HasData  bool
	Message  string
}

// selection resolves the (group, country) pair for a request. In pinned mode
// the group query parameter has no effect.
func (s *Server) selection(r *http.Request) (group, country string) {
	group = s.pinned
	if group == "" {
		group = r.URL.Query().Get("group")
	}
	if group == "" {
		group = s.cfg.Dashboard.DefaultGroup
	}

	country = r.URL.Query().Get("country")
	if country == "" {
		country = dataset.CountryAll
	}
	return group, country
}

func (s *Server) page(title, path string, r *http.Request) pageData {
	group, country := s.selection(r)

	p := pageData{
		Title:   title,
		Group:   group,
		Country: country,
		Path:    path,
		Pinned:  s.pinned != "",
	}
	if !p.Pinned {
		p.GroupQuery = "?group=" + url.QueryEscape(group)
	}
	return p
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleIndex shows the group selection page, or goes straight to the
// preview when the server is pinned to one group.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.pinned != "" {
		http.Redirect(w, r, "/preview", http.StatusFound)
		return
	}

	p := s.page("Select Data Group", "/", r)
	p.Groups = s.groups.Names()
	s.render(w, http.StatusOK, "select", p)
}

// handleSelect validates the chosen group and redirects to the preview with
// the selection carried in the query string.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	if _, err := s.groups.Get(group); err != nil {
		s.renderError(w, r, http.StatusNotFound, "Unknown data group.")
		return
	}
	http.Redirect(w, r, "/preview?group="+url.QueryEscape(group), http.StatusSeeOther)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	p := s.page("Dataset Preview", "/preview", r)

	d, err := s.loadDataset(r.Context(), p.Group)
	if err != nil {
		s.renderLoadError(w, r, err)
		return
	}

	p.Preview = dataset.BuildPreview(d, s.cfg.Dashboard.PreviewRows)
	s.render(w, http.StatusOK, "preview", p)
}

func (s *Server) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	p := s.page("Time Series", "/time-series", r)

	d, err := s.loadDataset(r.Context(), p.Group)
	if err != nil {
		s.renderLoadError(w, r, err)
		return
	}

	filtered := d.Filter(p.Country)
	p.Countries = d.Countries()
	p.HasData = filtered.Len() > 0
	p.ChartURL = s.chartURL("/charts/time-series.png", p)
	s.render(w, http.StatusOK, "timeseries", p)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	p := s.page("Statistics", "/statistics", r)

	d, err := s.loadDataset(r.Context(), p.Group)
	if err != nil {
		s.renderLoadError(w, r, err)
		return
	}

	filtered := d.Filter(p.Country)
	p.Countries = d.Countries()
	p.Stats = stats.Describe(filtered.Values()).Rows()
	s.render(w, http.StatusOK, "statistics", p)
}

func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	p := s.page("Histogram", "/histogram", r)

	d, err := s.loadDataset(r.Context(), p.Group)
	if err != nil {
		s.renderLoadError(w, r, err)
		return
	}

	filtered := d.Filter(p.Country)
	p.Countries = d.Countries()
	p.HasData = len(filtered.Changes()) > 0
	p.ChartURL = s.chartURL("/charts/histogram.png", p)
	s.render(w, http.StatusOK, "histogram", p)
}

// chartURL builds the image URL carrying the current selection.
func (s *Server) chartURL(path string, p pageData) string {
	q := url.Values{}
	if !p.Pinned {
		q.Set("group", p.Group)
	}
	q.Set("country", p.Country)
	return path + "?" + q.Encode()
}

// renderLoadError maps dataset loading failures to a page-level error: an
// unknown group is a 404, an unreachable or unparseable source a 502.
func (s *Server) renderLoadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, dataset.ErrSourceUnavailable) {
		s.renderError(w, r, http.StatusBadGateway,
			"The statistics source could not be reached or returned an unreadable payload. Try again later.")
		return
	}
	s.renderError(w, r, http.StatusNotFound, "Unknown data group.")
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	p := s.page("Error", r.URL.Path, r)
	p.Message = msg
	s.render(w, status, "error", p)
}
