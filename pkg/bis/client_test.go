package bis

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDownloader returns a canned body or error and records the requested URL.
type stubDownloader struct {
	body string
	err  error
	url  string
}

func (s *stubDownloader) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	s.url = url
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func TestFetchGroup(t *testing.T) {
	stub := &stubDownloader{body: "TIME_PERIOD,BORROWERS_CTY,OBS_VALUE\n2020-Q1,AT,5.0\n"}
	c := NewClient(stub, "https://stats.bis.org/base")

	g := Group{Name: "EU", Countries: []string{"AT", "BE"}, Suffix: "...C"}
	tbl, err := c.FetchGroup(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, "https://stats.bis.org/base/.AT+BE...C?format=csv", stub.url)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "AT", tbl.Rows[0][1])
}

func TestFetchGroupDownloadError(t *testing.T) {
	stub := &stubDownloader{err: eris.New("connection refused")}
	c := NewClient(stub, "https://stats.bis.org/base")

	_, err := c.FetchGroup(context.Background(), Group{Name: "G8", Countries: []string{"US"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch group G8")
}

func TestFetchGroupEmptyPayload(t *testing.T) {
	stub := &stubDownloader{body: ""}
	c := NewClient(stub, "https://stats.bis.org/base")

	_, err := c.FetchGroup(context.Background(), Group{Name: "G8", Countries: []string{"US"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse group G8")
}
