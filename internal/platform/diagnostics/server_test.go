package diagnostics

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abgdnv/stockmanager/internal/inventory/service"
	"github.com/abgdnv/stockmanager/internal/inventory/store"
	"github.com/abgdnv/stockmanager/internal/platform/web"
	"github.com/abgdnv/stockmanager/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, products ...service.ProductDto) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	svc := service.NewService(store.NewInMemoryStore(), logger)
	for _, p := range products {
		_, err := svc.Create(context.Background(), p)
		require.NoError(t, err)
	}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "inventory_products_stored 0\n")
	})
	srv := httptest.NewServer(NewRouter(svc, metrics, logger))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	testCases := []struct {
		name     string
		products []service.ProductDto
		expected HealthResponse
	}{
		{
			name:     "empty store",
			expected: HealthResponse{Status: "ok", Products: 0},
		},
		{
			name: "counts stored products",
			products: []service.ProductDto{
				{ID: 1, Name: "Widget", Quantity: 10, Price: decimal.RequireFromString("2.50")},
				{ID: 2, Name: "TV", Quantity: 3, Price: decimal.NewFromInt(500), Kind: store.KindElectronics, Warranty: "1 year"},
			},
			expected: HealthResponse{Status: "ok", Products: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			srv := newTestServer(t, tc.products...)

			// when
			resp, err := http.Get(srv.URL + "/healthz")
			require.NoError(t, err)
			defer resp.Body.Close()

			// then
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.NotEmpty(t, resp.Header.Get(web.RequestIDHeader))
			var got HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestProfilerIsMounted(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/debug/pprof/cmdline")
	require.NoError(t, err)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "inventory_products_stored 0\n", string(body))
}

func TestMetricsNotMountedWithoutHandler(t *testing.T) {
	svc := service.NewService(store.NewInMemoryStore(), slog.New(slog.DiscardHandler))
	srv := httptest.NewServer(NewRouter(svc, nil, slog.New(slog.DiscardHandler)))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/healthz", "text/plain", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestNewServer(t *testing.T) {
	handler := http.NotFoundHandler()
	cfg := config.DiagnosticsConfig{Enabled: true, Addr: "localhost:6061", ReadHeaderTimeout: 3 * time.Second}

	srv := NewServer(cfg, handler)

	assert.Equal(t, "localhost:6061", srv.Addr)
	assert.Equal(t, 3*time.Second, srv.ReadHeaderTimeout)
	assert.NotNil(t, srv.Handler)
}
