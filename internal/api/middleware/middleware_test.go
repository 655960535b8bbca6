package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock RateLimiter ──

type mockLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (m *mockLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	m.keys = append(m.keys, key)
	return m.allowed, m.err
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/api/v1/members", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter RateLimiter
		want    int
	}{
		{"未配置 Redis 放行", nil, http.StatusCreated},
		{"额度内放行", &mockLimiter{allowed: true}, http.StatusCreated},
		{"超出额度拒绝", &mockLimiter{allowed: false}, http.StatusTooManyRequests},
		{"Redis 出错降级放行", &mockLimiter{err: errors.New("dial tcp: refused")}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(RateLimit(tt.limiter, 10, time.Minute, zap.NewNop()))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/members", nil))
			if w.Code != tt.want {
				t.Errorf("期望 %d，实际 %d", tt.want, w.Code)
			}
		})
	}
}

func TestRateLimit_KeyUsesRouteTemplate(t *testing.T) {
	limiter := &mockLimiter{allowed: true}
	r := gin.New()
	r.Use(RateLimit(limiter, 10, time.Minute, zap.NewNop()))
	r.GET("/api/v1/members/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/42", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)

	if len(limiter.keys) != 1 || limiter.keys[0] != "rate_limit:10.0.0.1:/api/v1/members/:id" {
		t.Errorf("限流 key 不符: %v", limiter.keys)
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/members", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("应生成 X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/members", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("应沿用传入的 ID，实际=%s", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/members", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 100))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) > requestIDMaxLen {
		t.Errorf("超长 ID 应被替换，实际长度=%d", len(got))
	}
}

func TestBodyLimit(t *testing.T) {
	r := newEngine(BodyLimit(8))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/members", strings.NewReader(`{"first_name":"Amy"}`)))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/members", strings.NewReader(`{}`)))
	if w.Code != http.StatusCreated {
		t.Errorf("期望 201，实际 %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:5173/"}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/members", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("预检请求期望 204，实际 %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("白名单 Origin 应回写允许头")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/members", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("非白名单 Origin 不应回写允许头")
	}
}
