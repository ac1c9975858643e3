package serp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
)

func TestSearch_WithoutKeyReturnsEmpty(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL}, logger.NewTestLogger(t))

	results, err := client.Search(context.Background(), "running shoes", 5)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.False(t, client.Enabled())
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestSearch_SendsParamsAndTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google", q.Get("engine"))
		assert.Equal(t, "eco shoes gen z", q.Get("q"))
		assert.Equal(t, "serp-key", q.Get("api_key"))
		assert.Equal(t, "2", q.Get("num"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"search_metadata": {"status": "Success"},
			"organic_results": [
				{"position": 1, "title": "A", "link": "https://a.example", "snippet": "first"},
				{"position": 2, "title": "B", "link": "https://b.example", "snippet": "second"},
				{"position": 3, "title": "C", "link": "https://c.example", "snippet": "third"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, APIKey: "serp-key"}, logger.NewTestLogger(t))

	results, err := client.Search(context.Background(), "eco shoes gen z", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Title)
	assert.Equal(t, "second", results[1].Snippet)
	assert.Equal(t, 2, results[1].Position)
}

func TestSearch_KeepsWholeOrganicEntry(t *testing.T) {
	entry := `{"position": 1, "title": "A", "link": "https://a.example", "snippet": "first",` +
		` "sitelinks": {"inline": [{"title": "Shop"}]}, "rich_snippet": {"top": {"extensions": ["4.8 stars"]}}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"organic_results": [` + entry + `]}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, APIKey: "k"}, logger.NewTestLogger(t))

	results, err := client.Search(context.Background(), "eco shoes", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "first", results[0].Snippet)

	out, err := json.Marshal(results)
	require.NoError(t, err)
	assert.JSONEq(t, `[`+entry+`]`, string(out))

	built, err := json.Marshal(Result{Title: "B", Snippet: "second"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "B", "link": "", "snippet": "second"}`, string(built))
}

func TestSearch_NoOrganicResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Google hasn't returned any results for this query."}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, APIKey: "k"}, logger.NewTestLogger(t))

	results, err := client.Search(context.Background(), "zzzz", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_TransportErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClient(&Config{BaseURL: server.URL, APIKey: "secret-key"}, logger.NewTestLogger(t))

		_, err := client.Search(context.Background(), "q", 5)
		stdErr, ok := apperrors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeWebSearchFailed, stdErr.Code)
		assert.NotContains(t, stdErr.Details, "secret-key")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		}))
		defer server.Close()

		client := NewClient(&Config{BaseURL: server.URL, APIKey: "k", Timeout: 20 * time.Millisecond}, logger.NewTestLogger(t))

		_, err := client.Search(context.Background(), "q", 5)
		stdErr, ok := apperrors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeWebSearchTimeout, stdErr.Code)
	})
}
