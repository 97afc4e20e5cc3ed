package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"royaltydesk/m/internal/dashboard"
	"royaltydesk/m/internal/seed"
	"royaltydesk/m/internal/store/memory"
)

func setupRouter(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	tables, err := seed.Sample()
	require.NoError(t, err)
	s, err := memory.New(tables)
	require.NoError(t, err)

	logger := zap.NewNop()
	return New(dashboard.NewService(s, logger), logger, opts...).Router()
}

func doGet(t *testing.T, router http.Handler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestHealthCheck(t *testing.T) {
	w, body := doGet(t, setupRouter(t), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestGetDashboard(t *testing.T) {
	w, body := doGet(t, setupRouter(t), "/dashboard?author_id=1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, float64(725), body["total_earnings"])
	assert.Equal(t, float64(1000), body["current_balance"])
	assert.Equal(t, float64(3), body["total_books"])

	books := body["books"].([]interface{})
	require.Len(t, books, 3)
	first := books[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "Book A1-1", first["title"])
	assert.Equal(t, float64(50), first["royalty_per_sale"])
	assert.Equal(t, float64(300), first["total_royalty"])
	assert.NotContains(t, first, "author_id")

	recent := body["recent_sales"].([]interface{})
	require.Len(t, recent, 4)
	latest := recent[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{
		"book_title":     "Book A1-1",
		"sale_date":      "2026-02-05",
		"quantity_sold":  float64(1),
		"royalty_earned": float64(50),
	}, latest)

	withdrawals := body["withdrawals"].([]interface{})
	require.Len(t, withdrawals, 1)
	assert.Equal(t, map[string]interface{}{
		"author_id":    float64(1),
		"amount":       float64(500),
		"status":       "Pending",
		"request_date": "2026-02-05",
	}, withdrawals[0])
}

func TestGetDashboardErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		legacy     bool
		wantStatus int
		wantError  string
	}{
		{name: "not a number", target: "/dashboard?author_id=abc", wantStatus: http.StatusBadRequest, wantError: "author_id must be a number"},
		{name: "missing id", target: "/dashboard", wantStatus: http.StatusBadRequest, wantError: "author_id must be a number"},
		{name: "unknown author", target: "/dashboard?author_id=999", wantStatus: http.StatusNotFound, wantError: "Author not found"},
		{name: "legacy not a number", target: "/dashboard?author_id=abc", legacy: true, wantStatus: http.StatusOK, wantError: "author_id must be a number"},
		{name: "legacy unknown author", target: "/dashboard?author_id=999", legacy: true, wantStatus: http.StatusOK, wantError: "Author not found"},
		{name: "path form unknown author", target: "/dashboard/999", wantStatus: http.StatusNotFound, wantError: "Author not found"},
		{name: "path form not a number", target: "/dashboard/abc", wantStatus: http.StatusBadRequest, wantError: "author_id must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(t, WithLegacyErrorStatus(tt.legacy))
			w, body := doGet(t, router, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, map[string]interface{}{"error": tt.wantError}, body)
		})
	}
}

func TestGetDashboardByPathIsDeprecatedAlias(t *testing.T) {
	router := setupRouter(t)

	w, byPath := doGet(t, router, "/dashboard/2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("Deprecation"))
	assert.Equal(t, `</dashboard?author_id=2>; rel="successor-version"`, w.Header().Get("Link"))

	_, byQuery := doGet(t, router, "/dashboard?author_id=2")
	assert.Equal(t, byQuery, byPath)
	assert.Equal(t, float64(520), byPath["total_earnings"])
}

func TestCORS(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/dashboard?author_id=1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "X-Custom-Header")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)

	req = httptest.NewRequest(http.MethodGet, "/dashboard?author_id=1", nil)
	req.Header.Set("Origin", "https://other.example.org")
	req.Header.Set("Cookie", "session=abc")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://other.example.org", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Values("Vary"), "Origin")
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupRouter(t)
	doGet(t, router, "/dashboard?author_id=1")
	doGet(t, router, "/dashboard?author_id=abc")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.True(t, strings.Contains(out, `dashboard_requests_total{outcome="ok"}`), out)
	assert.Contains(t, out, `dashboard_requests_total{outcome="invalid_input"}`)
	assert.Contains(t, out, `http_requests_total{code="200",method="GET",route="/dashboard"}`)
}
