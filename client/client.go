package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
	"github.com/totegamma/tptech/schemas"
)

const (
	defaultTimeout = 3 * time.Second
	maxBodySize    = 4 << 20
)

var ErrDocumentTooLarge = errors.New("document too large")

type cachedDocument struct {
	etag string
	body []byte
}

// Client fetches content documents from a remote origin that serves the
// same <locale>/<name>.json layout as the content directory.
// Bodies are kept with their ETag and revalidated with If-None-Match.
type Client struct {
	client    *http.Client
	cache     *cache.Cache
	userAgent string
	origin    string
	maxBody   int64
}

func New(origin string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:    &httpClient,
		cache:     cache.New(cache.NoExpiration, 0),
		userAgent: "tptech-content/1.0",
		origin:    strings.TrimSuffix(origin, "/"),
		maxBody:   maxBodySize,
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

func (c *Client) Fetch(ctx context.Context, locale tptech.Locale, d tptech.ContentDomain) ([]byte, error) {
	path, err := schemas.DocumentPath(locale, d)
	if err != nil {
		return nil, domain.NotFoundError{Resource: "content " + string(locale) + "/" + string(d)}
	}

	url := c.origin + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	var cached cachedDocument
	if x, found := c.cache.Get(path); found {
		cached = x.(cachedDocument)
		req.Header.Set("If-None-Match", cached.etag)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotModified:
		if cached.body != nil {
			slog.Debug("origin document not modified", slog.String("path", path))
			return cached.body, nil
		}
		return nil, fmt.Errorf("origin returned 304 for uncached %s", path)
	case http.StatusNotFound:
		return nil, domain.NotFoundError{Resource: "content " + path}
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%s exceeds %d bytes: %w", path, c.maxBody, ErrDocumentTooLarge)
	}

	if etag := resp.Header.Get("ETag"); etag != "" {
		c.cache.Set(path, cachedDocument{etag: etag, body: body}, cache.NoExpiration)
	} else {
		c.cache.Delete(path)
	}

	return body, nil
}
