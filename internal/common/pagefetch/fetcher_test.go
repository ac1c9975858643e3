package pagefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>  Acme Running Shoes  </title>
  <meta name="viewport" content="width=device-width">
  <meta name="description" content=" Lightweight eco shoes for runners. ">
</head>
<body>
  <h1>
    Run <em>greener</em>
  </h1>
  <h1>Second heading</h1>
</body>
</html>`

func TestExtract(t *testing.T) {
	info := Extract(samplePage)

	assert.Equal(t, "Acme Running Shoes", info.Title)
	assert.Equal(t, "Lightweight eco shoes for runners.", info.MetaDescription)
	assert.Equal(t, "Rungreener", info.H1)
}

func TestExtract_MetaDescriptionUsesFirstTag(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "empty first tag wins",
			markup: `<meta name="description" content=""><meta name="description" content="later">`,
			want:   "",
		},
		{
			name:   "first tag without content",
			markup: `<meta name="description"><meta name="description" content="later">`,
			want:   "",
		},
		{
			name:   "name is case sensitive",
			markup: `<meta name="Description" content="upper"><meta name="description" content="lower">`,
			want:   "lower",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Extract("<html><head>" + tt.markup + "</head></html>")
			assert.Equal(t, tt.want, info.MetaDescription)
		})
	}
}

func TestExtract_MissingFields(t *testing.T) {
	info := Extract(`<html><body><p>nothing here</p></body></html>`)
	assert.Equal(t, PageInfo{}, info)

	assert.Equal(t, PageInfo{}, Extract(""))
}

func TestFetcher_Fetch(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	fetcher := NewFetcher(&Config{}, logger.NewTestLogger(t))

	body, ok := fetcher.Fetch(context.Background(), server.URL)
	require.True(t, ok)
	assert.Contains(t, body, "Acme Running Shoes")
	assert.Equal(t, "Mozilla/5.0", gotUA)
}

func TestFetcher_FailuresDegrade(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()

	fetcher := NewFetcher(&Config{Timeout: 20 * time.Millisecond}, logger.NewTestLogger(t))

	for _, url := range []string{notFound.URL, slow.URL, "http://127.0.0.1:0/unreachable", "::not a url"} {
		body, ok := fetcher.Fetch(context.Background(), url)
		assert.False(t, ok, url)
		assert.Empty(t, body)
	}
}

func TestFetcher_FailureIsLoggedWithErrorCode(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	fetcher := NewFetcher(&Config{}, logger.NewZapAdapter(zap.New(core)))

	_, ok := fetcher.Fetch(context.Background(), notFound.URL)
	require.False(t, ok)

	entries := logs.FilterMessage("page fetch failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, string(apperrors.ErrCodePageFetchFailed), fields["errorCode"])
	assert.Equal(t, "FETCH", fields["category"])
	assert.Equal(t, notFound.URL, fields["url"])
	assert.Contains(t, fields["error"], notFound.URL)
}
