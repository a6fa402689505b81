package metric

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_ServedByRegistryHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounterWithRegistry(reg, ViewDispatchTotal, "test counter", "view_type", "outcome")

	c.Increment("requests", "mounted")
	c.Increment("requests", "mounted")
	c.Increment("unknown", "unknown")

	rec := httptest.NewRecorder()
	GetHandlerForRegistry(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `navtree_view_dispatch_total{outcome="mounted",view_type="requests"} 2`)
	assert.Contains(t, string(body), `navtree_view_dispatch_total{outcome="unknown",view_type="unknown"} 1`)
}

func TestNewCounterWithRegistry_DuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCounterWithRegistry(reg, LookupTotal, "test", "kind")

	assert.Panics(t, func() {
		NewCounterWithRegistry(reg, LookupTotal, "test", "kind")
	})
}
