// Package metrics instruments the RootShare client with Prometheus
// collectors: API calls by endpoint and status, and session refresh outcomes.
package metrics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Refresh outcomes recorded by ObserveRefresh.
const (
	RefreshSucceeded = "success"
	RefreshFailed    = "failure"
	RefreshSkipped   = "no_token"
)

// Metrics holds the client collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	APIRequests        *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	SessionRefreshes   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		APIRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rootshare_client_api_requests_total",
			Help: "API calls made by the client, by endpoint and HTTP status (\"error\" for transport failures).",
		}, []string{"endpoint", "code"}),
		APIRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rootshare_client_api_request_duration_seconds",
			Help:    "Latency of API calls made by the client.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		SessionRefreshes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rootshare_client_session_refreshes_total",
			Help: "Access token refresh attempts by outcome.",
		}, []string{"result"}),
		gatherer: reg,
	}
}

// ObserveRequest records one API call. code 0 means the request never got
// an HTTP response.
func (m *Metrics) ObserveRequest(endpoint string, code int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.APIRequests.WithLabelValues(endpoint, label).Inc()
	m.APIRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metrics) ObserveRefresh(result string) {
	if m == nil {
		return
	}
	m.SessionRefreshes.WithLabelValues(result).Inc()
}

// Sample is one counter series flattened for display.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Counters returns every counter series currently recorded, sorted by name
// and labels.
func (m *Metrics) Counters() ([]Sample, error) {
	if m == nil {
		return nil, nil
	}
	families, err := m.gatherer.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			c := metric.GetCounter()
			if c == nil {
				continue
			}
			pairs := make([]string, 0, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
			}
			out = append(out, Sample{
				Name:   mf.GetName(),
				Labels: strings.Join(pairs, ","),
				Value:  c.GetValue(),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}
