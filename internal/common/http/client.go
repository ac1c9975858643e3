package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the outbound HTTP client shared by the search adapter and the
// page fetcher. Every request is bounded by the client timeout and by the
// caller's context.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

type Option func(*Client)

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTransport swaps the round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.Do(req.WithContext(ctx))
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d", e.URL, e.StatusCode)
}

// stripQuery keeps credentials passed as query parameters out of errors.
func stripQuery(u *url.URL) string {
	cp := *u
	cp.RawQuery = ""
	cp.User = nil
	return cp.String()
}

// Get issues a GET and returns at most maxBytes of the body. Non-2xx
// statuses are returned as *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = stripQuery(req.URL)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: stripQuery(req.URL)}
	}

	var reader io.Reader = resp.Body
	if maxBytes > 0 {
		reader = io.LimitReader(resp.Body, maxBytes)
	}
	return io.ReadAll(reader)
}
