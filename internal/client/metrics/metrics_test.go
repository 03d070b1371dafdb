package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest_CountsByEndpointAndCode(t *testing.T) {
	m := New()

	m.ObserveRequest("auth/me", 200, 10*time.Millisecond)
	m.ObserveRequest("auth/me", 401, 5*time.Millisecond)
	m.ObserveRequest("auth/me", 401, 5*time.Millisecond)
	m.ObserveRequest("auth/login", 0, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("auth/me", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("auth/me", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("auth/login", "error")))
}

func TestObserveRefresh(t *testing.T) {
	m := New()
	m.ObserveRefresh(RefreshSucceeded)
	m.ObserveRefresh(RefreshFailed)
	m.ObserveRefresh(RefreshFailed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionRefreshes.WithLabelValues(RefreshSucceeded)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionRefreshes.WithLabelValues(RefreshFailed)))
}

func TestCounters_SortedSamples(t *testing.T) {
	m := New()
	m.ObserveRefresh(RefreshSucceeded)
	m.ObserveRequest("auth/refresh", 200, time.Millisecond)

	samples, err := m.Counters()
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, "rootshare_client_api_requests_total", samples[0].Name)
	assert.Equal(t, "code=200,endpoint=auth/refresh", samples[0].Labels)
	assert.Equal(t, "rootshare_client_session_refreshes_total", samples[1].Name)
	assert.Equal(t, 1.0, samples[1].Value)
}

func TestNilMetrics_IsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("auth/me", 200, time.Millisecond)
	m.ObserveRefresh(RefreshFailed)
	samples, err := m.Counters()
	require.NoError(t, err)
	assert.Empty(t, samples)
}
