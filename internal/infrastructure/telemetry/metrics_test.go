package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func scrape(t *testing.T, h http.Handler) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func newTestMeterProvider(t *testing.T) *MeterProvider {
	t.Helper()
	mp, err := NewMeterProvider(context.Background(), config.TelemetryConfig{
		MetricsEnabled: true,
		ServiceName:    "ak-test",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), config.TelemetryConfig{}, nil)
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))

	code, _ := scrape(t, mp.Handler())
	assert.Equal(t, http.StatusNotFound, code)
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMeterProvider_Handler(t *testing.T) {
	ctx := context.Background()
	mp := newTestMeterProvider(t)
	require.True(t, mp.IsEnabled())

	meter := mp.Meter("test")
	counter, err := NewCounter(meter, "ak_test_events", "events seen", "{event}")
	require.NoError(t, err)
	hist, err := NewHistogram(meter, HistogramOpts{
		Name:       "ak_test_latency",
		Unit:       "s",
		Boundaries: HTTPDurationBuckets,
	})
	require.NoError(t, err)

	counter.Inc(ctx, AttrHTTPRoute.String("/api/customers"))
	counter.Add(ctx, 2, AttrHTTPRoute.String("/api/customers"))
	hist.RecordDuration(ctx, 30*time.Millisecond, AttrHTTPMethod.String("GET"))

	code, body := scrape(t, mp.Handler())
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "ak_test_events")
	assert.Contains(t, body, `/api/customers`)
	assert.Contains(t, body, "ak_test_latency")
	assert.Contains(t, body, "go_goroutines")
}

func TestNewMeterProvider_WithOTLP(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), config.TelemetryConfig{
		MetricsEnabled:    true,
		MetricsOTLP:       true,
		CollectorEndpoint: "localhost:14317",
		Insecure:          true,
		ServiceName:       "ak-test",
	}, nil)
	require.NoError(t, err)
	assert.True(t, mp.IsEnabled())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	// the collector is absent, so only the absence of a panic matters
	_ = mp.Shutdown(ctx)
}
