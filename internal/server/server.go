// Package server serves the dashboard pages and chart images.
package server

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/macroview/creditgap/internal/cache"
	"github.com/macroview/creditgap/internal/config"
	"github.com/macroview/creditgap/internal/dataset"
	"github.com/macroview/creditgap/internal/fetcher"
	"github.com/macroview/creditgap/pkg/bis"
	"github.com/macroview/creditgap/web"
)

// GroupFetcher abstracts the BIS client so handler tests can stub upstream.
type GroupFetcher interface {
	FetchGroup(ctx context.Context, g bis.Group) (*fetcher.Table, error)
}

// Server holds the dashboard state: group registry, upstream client, and the
// per-group dataset cache. Selection (group, country) is carried in query
// parameters, never in process-global state, so concurrent users cannot
// interfere with each other.
type Server struct {
	cfg      *config.Config
	groups   *bis.Registry
	client   GroupFetcher
	datasets *cache.Cache[*dataset.Dataset]
	tmpl     *template.Template

	// pinned, when non-empty, locks the server to a single group: the
	// selection page disappears and group query parameters are ignored.
	pinned string
}

// New creates a dashboard server. pinned may be empty (switchable groups) or
// the name of the one group to serve.
func New(cfg *config.Config, groups *bis.Registry, client GroupFetcher, pinned string) (*Server, error) {
	if pinned != "" {
		if _, err := groups.Get(pinned); err != nil {
			return nil, err
		}
	}

	tmpl, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, eris.Wrap(err, "server: parse templates")
	}

	// A pinned server loads its one dataset up front and keeps it for the
	// process lifetime; only switchable mode refreshes on TTL expiry.
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	if pinned != "" {
		ttl = 0
	}

	return &Server{
		cfg:      cfg,
		groups:   groups,
		client:   client,
		datasets: cache.New[*dataset.Dataset](ttl),
		tmpl:     tmpl,
		pinned:   pinned,
	}, nil
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/select", s.handleSelect)
	r.Get("/preview", s.handlePreview)
	r.Get("/time-series", s.handleTimeSeries)
	r.Get("/statistics", s.handleStatistics)
	r.Get("/histogram", s.handleHistogram)
	r.Get("/charts/time-series.png", s.handleTimeSeriesChart)
	r.Get("/charts/histogram.png", s.handleHistogramChart)
	r.Handle("/static/*", http.FileServerFS(web.StaticFS))

	return r
}

// WarmUp prefetches datasets so the first page render does not block on the
// upstream. In pinned mode the single dataset is mandatory; otherwise
// failures are logged and pages retry on demand.
func (s *Server) WarmUp(ctx context.Context) error {
	if s.pinned != "" {
		_, err := s.loadDataset(ctx, s.pinned)
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, name := range s.groups.Names() {
		g.Go(func() error {
			if _, err := s.loadDataset(ctx, name); err != nil {
				zap.L().Warn("warm-up fetch failed",
					zap.String("group", name),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	return g.Wait()
}

// loadDataset returns the normalized dataset for a group, fetching and
// normalizing on cache miss.
func (s *Server) loadDataset(ctx context.Context, groupName string) (*dataset.Dataset, error) {
	g, err := s.groups.Get(groupName)
	if err != nil {
		return nil, err
	}

	if d, ok := s.datasets.Get(g.Name); ok {
		return d, nil
	}

	tbl, err := s.client.FetchGroup(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dataset.ErrSourceUnavailable, err)
	}

	d, err := dataset.Normalize(tbl, g.Name)
	if err != nil {
		return nil, err
	}

	s.datasets.Set(g.Name, d)
	return d, nil
}

// histogramBins resolves the configured bin count: an explicit setting wins,
// otherwise 120 for a pinned group and 50 when groups are switchable.
func (s *Server) histogramBins() int {
	if s.cfg.Dashboard.HistogramBins > 0 {
		return s.cfg.Dashboard.HistogramBins
	}
	if s.pinned != "" {
		return 120
	}
	return 50
}

// render executes a page template into a buffer first so a template error
// never produces a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		zap.L().Error("template render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
