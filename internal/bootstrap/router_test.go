package bootstrap

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sarayu-labs/chat-insights/config"
	"github.com/sarayu-labs/chat-insights/internal/observability"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080", MaxUploadBytes: 1 << 20, AllowOrigins: []string{"*"}},
		App:    config.AppConfig{Environment: "test", LogLevel: "info", Version: "test"},
		Flow:   config.FlowConfig{Column: "RecipeFlow", Delimiter: " -> ", TrackDropoffs: true, MaxChains: 200},
		Figure: config.FigureConfig{Width: 800, Height: 600, FontSize: 12},
	}
	require.NoError(t, cfg.Validate())

	logger := zap.NewNop()
	metrics := observability.NewCollector("chat_insights_bootstrap_test")
	return BuildRouter(RouterDeps{
		ServiceName:    "chat-insights",
		Version:        "test",
		AllowOrigins:   cfg.Server.AllowOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Flow:           NewFlowService(cfg, logger, metrics),
		Logger:         logger,
		Metrics:        metrics,
	})
}

func TestBuildRouter_EndToEnd(t *testing.T) {
	r := testRouter(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "report.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("RecipeFlow\nGreeting -> Menu\nGreeting\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flow-insights/sankey", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	assert.Contains(t, rr.Body.String(), `"width":800`)
	assert.Contains(t, rr.Body.String(), `"Dropped Off"`)
}

func TestBuildRouter_HealthAndMetrics(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "chat_insights_bootstrap_test_http_requests_total"))
}

func TestBuildRouter_CORS(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/flow-insights/sankey", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestBuildRouter_WithoutMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Flow:   config.FlowConfig{Column: "RecipeFlow", Delimiter: " -> ", TrackDropoffs: true, MaxChains: 200},
		Figure: config.FigureConfig{Width: 800, Height: 600, FontSize: 12},
	}
	logger := zap.NewNop()

	var r *gin.Engine
	require.NotPanics(t, func() {
		r = BuildRouter(RouterDeps{
			ServiceName: "chat-insights",
			Flow:        NewFlowService(cfg, logger, nil),
			Logger:      logger,
		})
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/flow-insights/placeholder", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
