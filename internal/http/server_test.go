package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/sarun2104/training-app/internal/http/handlers"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

func TestServerServesConfiguredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	srv := NewServer(log, RouterConfig{
		HealthHandler: httpH.NewHealthHandler(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "ok" {
		t.Fatalf("body = %q, want %q", w.Body.String(), "ok")
	}
}

// Handlers not wired into the config must leave no reachable route behind.
func TestServerOmitsUnconfiguredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	srv := NewServer(log, RouterConfig{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
