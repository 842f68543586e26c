package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"receipt-service/internal/config"
	"receipt-service/internal/utils"
)

func serve(router http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	rec := serve(router, nil)
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	rec = serve(router, http.Header{RequestIDHeader: {"caller-id"}})
	assert.Equal(t, "caller-id", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "caller-id", rec.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.SecurityConfig{
		RateLimitEnabled:  true,
		RateLimitRequests: 2,
		RateLimitWindow:   time.Hour,
	}
	router := gin.New()
	router.Use(RateLimitMiddleware(cfg, utils.NewSecurityLogger(zap.NewNop())))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, nil).Code)
	assert.Equal(t, http.StatusOK, serve(router, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, nil).Code)

	other := http.Header{"X-Forwarded-For": {"10.1.2.3"}}
	assert.Equal(t, http.StatusOK, serve(router, other).Code, "limits are per client")
}

func TestRateLimitDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware(&config.SecurityConfig{RateLimitRequests: 1, RateLimitWindow: time.Hour}, utils.NewSecurityLogger(zap.NewNop())))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, serve(router, nil).Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RecoveryMiddleware(zap.NewNop()))
	router.GET("/ping", func(c *gin.Context) { panic("boom") })

	rec := serve(router, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_SERVER_ERROR")
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware(&config.SecurityConfig{AllowedOrigins: []string{"http://pos.local"}}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, http.Header{"Origin": {"http://pos.local"}})
	assert.Equal(t, "http://pos.local", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(router, http.Header{"Origin": {"http://evil.example"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
