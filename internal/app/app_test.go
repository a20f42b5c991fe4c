package app

import (
	"approval-api/internal/config"
	"approval-api/internal/middleware"
	"approval-api/internal/repositories"
	"approval-api/internal/services"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := repositories.NewRegistry(nil)
	require.NoError(t, repositories.SeedSamples(context.Background(), store))

	a := NewApp(config.ServerConfig{Port: "0"}, services.NewApprovalService(store, nil))
	server := httptest.NewServer(a.Router())
	t.Cleanup(server.Close)
	return server
}

func TestApp_Health(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestApp_RequestIDIsEchoed(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/approvals/99", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.RequestIDHeader, "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(middleware.RequestIDHeader))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "req-123", body["request_id"])
}

func TestApp_MetricsExposeRequests(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/approvals", "application/json", strings.NewReader(`{"title":"t"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/approvals/4/approve", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, "approval_api_http_requests_total")
	assert.Contains(t, text, `route="/api/approvals/{id}/approve"`)
	assert.Contains(t, text, `approval_api_status_transitions_total{status="APPROVED"}`)
}
