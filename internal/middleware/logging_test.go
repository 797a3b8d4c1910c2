package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLogging(t *testing.T) {
	t.Run("sets_request_id_header", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest("GET", "/ping", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		requestID := rec.Header().Get("X-Request-ID")
		if requestID == "" {
			t.Fatal("expected X-Request-ID header to be set")
		}
		if !uuid.IsValid(requestID) {
			t.Errorf("expected X-Request-ID to be a UUID, got %q", requestID)
		}
	})

	t.Run("stores_request_id_on_context", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestLogging())

		var fromContext string
		r.GET("/ping", func(c *gin.Context) {
			fromContext = c.GetString(requestIDKey)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/ping", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if fromContext == "" {
			t.Fatal("expected request id on the Gin context")
		}
		if fromContext != rec.Header().Get("X-Request-ID") {
			t.Error("expected context request id to match the response header")
		}
	})
}
