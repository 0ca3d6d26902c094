package bis

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/macroview/creditgap/internal/fetcher"
)

// Downloader abstracts the HTTP transport so tests can stub the upstream.
type Downloader interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Client fetches credit-to-GDP gap data from the BIS dataflow API.
type Client struct {
	downloader Downloader
	baseURL    string
}

// NewClient creates a BIS client for the given dataflow base URL.
func NewClient(d Downloader, baseURL string) *Client {
	return &Client{downloader: d, baseURL: baseURL}
}

// FetchGroup downloads and parses the CSV table for a group.
func (c *Client) FetchGroup(ctx context.Context, g Group) (*fetcher.Table, error) {
	url := g.QueryURL(c.baseURL)
	log := zap.L().With(zap.String("group", g.Name))
	log.Info("fetching group data", zap.String("url", url))

	body, err := c.downloader.Download(ctx, url)
	if err != nil {
		return nil, eris.Wrapf(err, "bis: fetch group %s", g.Name)
	}
	defer body.Close() //nolint:errcheck

	tbl, err := fetcher.ReadTable(body)
	if err != nil {
		return nil, eris.Wrapf(err, "bis: parse group %s", g.Name)
	}

	log.Info("group data fetched", zap.Int("rows", len(tbl.Rows)))
	return tbl, nil
}
