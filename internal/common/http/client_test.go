package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetSetsUserAgentAndLimitsBody(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer server.Close()

	client := NewClient(time.Second, WithUserAgent("Mozilla/5.0"))
	body, err := client.Get(context.Background(), server.URL, 10)
	require.NoError(t, err)

	assert.Equal(t, "Mozilla/5.0", gotUA)
	assert.Len(t, body, 10)
}

func TestClient_GetStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewClient(time.Second).Get(context.Background(), server.URL+"/?api_key=secret", 0)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.NotContains(t, err.Error(), "secret")
}

func TestClient_GetHonoursTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	_, err := NewClient(20 * time.Millisecond).Get(context.Background(), server.URL, 0)
	assert.Error(t, err)
}
