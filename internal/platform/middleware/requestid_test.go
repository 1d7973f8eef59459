package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(HeaderRequestID)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated uuid, got %q", id)
	}
	if w.Body.String() != id {
		t.Errorf("context id %q differs from header %q", w.Body.String(), id)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("expected propagated id, got %q", got)
	}
}

func TestLogFormatterIncludesRequestID(t *testing.T) {
	line := LogFormatter(gin.LogFormatterParams{
		TimeStamp:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		StatusCode: 201,
		Method:     http.MethodPost,
		Path:       "/api/v1/loans",
		Keys:       map[string]any{ctxRequestID: "rid-1"},
	})
	if !strings.Contains(line, "rid=rid-1") || !strings.Contains(line, "/api/v1/loans") {
		t.Errorf("unexpected log line %q", line)
	}
}
