package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	handlers "github.com/slobodan-ilic/ggrc-core/internal/adapter/handler/http"
	"github.com/slobodan-ilic/ggrc-core/internal/config"
	"github.com/slobodan-ilic/ggrc-core/internal/infrastructure/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{Service: config.ServiceConfig{Name: "ggrc"}}
	logger := zap.NewNop()
	handler := handlers.NewCustomAttributeHandler(nil, logger)
	return NewServer(cfg, logger, handler, metrics.New("ggrc"))
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"ggrc"}`, rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t)

	s.echo.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/objects/Program/x/custom_attribute_values", nil))

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
	assert.Contains(t, rec.Body.String(), "ggrc_http_requests_total")
}

func TestServer_InvalidIDNeverReachesUsecase(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/objects/Program/0/custom_attribute_values", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
