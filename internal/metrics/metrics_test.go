package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveIntent("start", "ok")
	m.ObserveIntent("start", "ok")
	m.ObserveIntent("amount_text", "validation")
	m.SetActiveSessions(3)
	m.ObserveStoreOperation("load", "ok", 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.intents.WithLabelValues("start", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.intents.WithLabelValues("amount_text", "validation")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.activeSessions))

	count, err := testutil.GatherAndCount(reg, "krispyledger_store_operation_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
