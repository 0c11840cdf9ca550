package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjf3/heated-rivalry-tracker/internal/config"
	"github.com/jjf3/heated-rivalry-tracker/internal/history"
	"github.com/jjf3/heated-rivalry-tracker/internal/report"
)

func testRouterConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	return &config.Config{
		Search:  config.SearchConfig{Community: "television", Query: "Heated Rivalry"},
		Storage: config.StorageConfig{Backend: "csv", HistoryFile: dir + "/history.csv"},
		Output:  config.OutputConfig{Dir: dir},
	}
}

func TestRouterHealth(t *testing.T) {
	cfg := testRouterConfig(t)
	router := newRouter(cfg, history.NewCSVStore(cfg.Storage.HistoryFile), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRouterSeriesEndpoint(t *testing.T) {
	cfg := testRouterConfig(t)
	router := newRouter(cfg, history.NewCSVStore(cfg.Storage.HistoryFile), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/series/episodes", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"series":[]}`, w.Body.String())
}

func TestRouterSnapshotTriggerWithoutQueue(t *testing.T) {
	cfg := testRouterConfig(t)
	router := newRouter(cfg, history.NewCSVStore(cfg.Storage.HistoryFile), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/snapshots", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouterRootRedirectsToDashboard(t *testing.T) {
	cfg := testRouterConfig(t)
	router := newRouter(cfg, history.NewCSVStore(cfg.Storage.HistoryFile), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/reports/"+report.DashboardFile, w.Header().Get("Location"))
}
