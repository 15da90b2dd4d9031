package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/posts", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/posts", "GET", 200, 20*time.Millisecond)
	m.RecordError("/auth/login/email", "POST", "INVALID_CREDENTIALS")
	m.RecordEvent("post_created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/posts", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorCount.WithLabelValues("/auth/login/email", "POST", "INVALID_CREDENTIALS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventCount.WithLabelValues("post_created")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordEvent("x")
	})
}
