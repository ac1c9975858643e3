// Package pagefetch downloads a web page and pulls out the on-page SEO
// signals: title, meta description and the first H1.
package pagefetch

import (
	"context"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	commonhttp "github.com/janhavi-28/SEO-Agent/internal/common/http"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/metrics"
)

type Config struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// PageInfo holds the extracted on-page fields. Missing fields are empty.
type PageInfo struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	H1              string `json:"h1"`
}

type Fetcher struct {
	http     *commonhttp.Client
	maxBytes int64
	logger   logger.Logger
}

func NewFetcher(config *Config, log logger.Logger) *Fetcher {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ua := config.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0"
	}
	maxBytes := config.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 2 << 20
	}
	return &Fetcher{
		http:     commonhttp.NewClient(timeout, commonhttp.WithUserAgent(ua)),
		maxBytes: maxBytes,
		logger:   log.With(map[string]interface{}{"component": "pagefetch"}),
	}
}

// Fetch returns the page body. Any failure (network, timeout, non-2xx) is
// reported as ok=false, never as an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, bool) {
	body, err := f.http.Get(ctx, url, f.maxBytes)
	if err != nil {
		metrics.PageFetches.WithLabelValues(metrics.OutcomeTransportError).Inc()
		fetchErr := apperrors.NewPageFetchFailedError(url, err)
		f.logger.Warn("page fetch failed", map[string]interface{}{
			"url":       url,
			"errorCode": string(fetchErr.Code),
			"category":  apperrors.GetErrorCategory(fetchErr.Code),
			"error":     fetchErr.Details,
		})
		return "", false
	}
	if len(body) == 0 {
		metrics.PageFetches.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return "", false
	}
	metrics.PageFetches.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return string(body), true
}

// Extract parses markup and returns the first <title>, the content of the
// first <meta name="description"> and the text of the first <h1>. The meta
// name must match exactly; an empty first tag leaves the description empty.
func Extract(markup string) PageInfo {
	var info PageInfo
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return info
	}

	var foundTitle, foundMeta, foundH1 bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if foundTitle && foundMeta && foundH1 {
			return
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if !foundTitle {
					foundTitle = true
					info.Title = strings.TrimSpace(directText(n))
				}
			case atom.Meta:
				if !foundMeta && getAttr(n, "name") == "description" {
					foundMeta = true
					info.MetaDescription = strings.TrimSpace(getAttr(n, "content"))
				}
			case atom.H1:
				if !foundH1 {
					foundH1 = true
					info.H1 = strippedText(n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return info
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// directText returns the text of a node whose only child is a text node.
func directText(n *html.Node) string {
	if n.FirstChild != nil && n.FirstChild == n.LastChild && n.FirstChild.Type == html.TextNode {
		return n.FirstChild.Data
	}
	return ""
}

// strippedText joins every descendant text node, each trimmed.
func strippedText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
