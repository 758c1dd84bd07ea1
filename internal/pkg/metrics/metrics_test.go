package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Observe(t *testing.T) {
	c := NewCollector()
	c.Observe("checkout.check_out", "ok", 10*time.Millisecond)
	c.Observe("checkout.check_out", "conflict", time.Millisecond)
	c.Observe("checkout.check_out", "conflict", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("checkout.check_out", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("checkout.check_out", "conflict")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.Observe("equipment.list", "ok", time.Millisecond)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `equiplend_operations_total{operation="equipment.list",outcome="ok"} 1`)
}
