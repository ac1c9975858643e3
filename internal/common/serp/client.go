// Package serp wraps the SerpAPI Google search endpoint.
package serp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	commonhttp "github.com/janhavi-28/SEO-Agent/internal/common/http"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/metrics"
)

const (
	DefaultBaseURL    = "https://serpapi.com/search.json"
	DefaultEngine     = "google"
	DefaultNumResults = 5

	maxResponseBytes = 4 << 20
)

// Result is one organic search hit. The typed fields are the ones the
// workers read; a decoded result marshals back as the full SerpAPI entry.
type Result struct {
	Position      int    `json:"position,omitempty"`
	Title         string `json:"title"`
	Link          string `json:"link"`
	DisplayedLink string `json:"displayed_link,omitempty"`
	Snippet       string `json:"snippet"`
	Source        string `json:"source,omitempty"`
	Date          string `json:"date,omitempty"`

	raw json.RawMessage
}

type plainResult Result

func (r *Result) UnmarshalJSON(data []byte) error {
	var p plainResult
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Result(p)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (r Result) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return json.Marshal(plainResult(r))
}

type Config struct {
	BaseURL    string
	APIKey     string
	Engine     string
	NumResults int
	Timeout    time.Duration
}

// Client queries SerpAPI. A client without an API key is valid: its searches
// return no results and make no network call.
type Client struct {
	config *Config
	http   *commonhttp.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Engine == "" {
		config.Engine = DefaultEngine
	}
	if config.NumResults <= 0 {
		config.NumResults = DefaultNumResults
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	return &Client{
		config: config,
		http:   commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{"component": "serp"}),
	}
}

// Enabled reports whether a search credential is configured.
func (c *Client) Enabled() bool {
	return c.config.APIKey != ""
}

// Search returns up to n organic results for query; n <= 0 uses the
// configured default. Without a credential it returns an empty slice and a
// nil error.
func (c *Client) Search(ctx context.Context, query string, n int) ([]Result, error) {
	if n <= 0 {
		n = c.config.NumResults
	}
	if !c.Enabled() {
		metrics.WebSearchRequests.WithLabelValues(metrics.OutcomeSkipped).Inc()
		c.logger.Debug("search skipped, no api key configured", nil)
		return []Result{}, nil
	}

	ctx, span := otel.Tracer("github.com/janhavi-28/SEO-Agent/internal/common/serp").Start(ctx, "serp.Search")
	defer span.End()
	span.SetAttributes(attribute.Int("serp.num", n))

	body, err := c.http.Get(ctx, c.searchURL(query, n), maxResponseBytes)
	if err != nil {
		metrics.WebSearchRequests.WithLabelValues(metrics.OutcomeTransportError).Inc()
		span.RecordError(err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
			return nil, apperrors.NewWebSearchTimeoutError(err)
		}
		return nil, apperrors.NewWebSearchFailedError(err)
	}

	var payload struct {
		OrganicResults []Result `json:"organic_results"`
		Error          string   `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.WebSearchRequests.WithLabelValues(metrics.OutcomeTransportError).Inc()
		return nil, apperrors.NewWebSearchFailedError(fmt.Errorf("decode response: %w", err))
	}
	if payload.Error != "" && len(payload.OrganicResults) == 0 {
		// SerpAPI reports "no results" and quota problems in-band.
		c.logger.Warn("search returned an error message", map[string]interface{}{"message": payload.Error})
	}

	results := payload.OrganicResults
	if len(results) > n {
		results = results[:n]
	}
	if results == nil {
		results = []Result{}
	}

	metrics.WebSearchRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.logger.Info("web search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(results),
	})
	return results, nil
}

func (c *Client) searchURL(query string, n int) string {
	params := url.Values{}
	params.Set("engine", c.config.Engine)
	params.Set("q", query)
	params.Set("api_key", c.config.APIKey)
	params.Set("num", strconv.Itoa(n))

	base, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return c.config.BaseURL + "?" + params.Encode()
	}
	base.RawQuery = params.Encode()
	return base.String()
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
