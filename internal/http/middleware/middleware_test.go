package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
)

func TestCORSAllowsAnyOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, origin := range []string{"http://localhost:8501", "https://dashboard.example.com"} {
		t.Run(origin, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS())
			r.OPTIONS("/api/seo_analyze", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			req := httptest.NewRequest(http.MethodOptions, "/api/seo_analyze", nil)
			req.Header.Set("Origin", origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var ctxLogger logger.Logger
	r := gin.New()
	r.Use(AttachTraceContext(logger.NewTestLogger(t)))
	r.GET("/ping", func(c *gin.Context) {
		ctxLogger = logger.FromContext(c.Request.Context(), nil)
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates ids", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := rec.Header().Get(headerRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(headerTraceID))
		assert.NotNil(t, ctxLogger)
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(headerRequestID, "req-123")

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get(headerRequestID))
	})
}
