package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bitwise74/files-api/internal/kv"
	"bitwise74/files-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessions(t *testing.T) *service.Sessions {
	t.Helper()

	store := kv.NewMemory()
	t.Cleanup(func() { store.Close() })

	return service.NewSessions(store, time.Hour)
}

func whoami(c *gin.Context) {
	c.String(http.StatusOK, c.GetString("userID"))
}

func TestTokenMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := newSessions(t)
	token, err := sessions.Create(context.Background(), "user-1")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", NewTokenMiddleware(sessions), whoami)

	for _, tok := range []string{"", "bogus"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Token", tok)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-token", token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestOptionalTokenMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := newSessions(t)
	token, err := sessions.Create(context.Background(), "user-1")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", NewOptionalTokenMiddleware(sessions), whoami)

	cases := map[string]string{
		"":      "",
		"bogus": "",
		token:   "user-1",
	}

	for tok, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tok != "" {
			req.Header.Set("X-Token", tok)
		}

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", NewRequestIDMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("requestID"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestBodySizeLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/", BodySizeLimiter(8), func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if IsBodyTooLarge(err) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("way too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// Unknown length still gets cut off while reading
	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("way too large")))
	req.ContentLength = -1

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", RateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 1, Burst: 2}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := []int{}
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", RateLimiterMiddleware(RateLimiterConfig{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for range 50 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}
