// Package telemetry implements in-process request metrics with a Prometheus
// text exposition endpoint. The collector keeps per-route counters in memory;
// nothing is pushed anywhere, scraping /metrics is the only way out.
package telemetry

import (
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const (
	requestsTotalName   = "feedguard_http_requests_total"
	requestsTotalHelp   = "Total number of HTTP requests handled, by method, route, and status code."
	durationSecondsName = "feedguard_http_request_duration_seconds_total"
	durationSecondsHelp = "Cumulative handler time in seconds, by method, route, and status code."
)

// requestKey identifies one counter series.
type requestKey struct {
	method string
	route  string
	status int
}

// requestStats accumulates the per-series totals.
type requestStats struct {
	count           uint64
	durationSeconds float64
}

// Collector accumulates HTTP request metrics. The zero value is not usable;
// create one with NewCollector. Safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	requests map[requestKey]*requestStats
}

// NewCollector creates an empty metrics collector.
func NewCollector() *Collector {
	return &Collector{requests: make(map[requestKey]*requestStats)}
}

// RecordRequest adds one handled request to the per-route totals.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	key := requestKey{method: method, route: route, status: status}

	c.mu.Lock()
	defer c.mu.Unlock()

	stats, ok := c.requests[key]
	if !ok {
		stats = &requestStats{}
		c.requests[key] = stats
	}
	stats.count++
	stats.durationSeconds += duration.Seconds()
}

// Handler returns the /metrics endpoint. The exposition is deterministic:
// series are emitted in sorted label order.
func (c *Collector) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		families := c.gather()

		format := expfmt.NewFormat(expfmt.TypeTextPlain)
		w.Header().Set("Content-Type", string(format))

		enc := expfmt.NewEncoder(w, format)
		for _, mf := range families {
			// The text encoder rejects families with no series.
			if len(mf.GetMetric()) == 0 {
				continue
			}
			if err := enc.Encode(mf); err != nil {
				// The connection is gone; nothing sensible to do mid-stream.
				return
			}
		}
	})
}

// gather snapshots the counters into sorted metric families.
func (c *Collector) gather() []*dto.MetricFamily {
	c.mu.Lock()
	keys := make([]requestKey, 0, len(c.requests))
	snapshot := make(map[requestKey]requestStats, len(c.requests))
	for k, v := range c.requests {
		keys = append(keys, k)
		snapshot[k] = *v
	}
	c.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.route != b.route {
			return a.route < b.route
		}
		if a.method != b.method {
			return a.method < b.method
		}
		return a.status < b.status
	})

	counts := &dto.MetricFamily{
		Name: strPtr(requestsTotalName),
		Help: strPtr(requestsTotalHelp),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	durations := &dto.MetricFamily{
		Name: strPtr(durationSecondsName),
		Help: strPtr(durationSecondsHelp),
		Type: dto.MetricType_COUNTER.Enum(),
	}

	for _, k := range keys {
		stats := snapshot[k]
		labels := []*dto.LabelPair{
			{Name: strPtr("method"), Value: strPtr(k.method)},
			{Name: strPtr("route"), Value: strPtr(k.route)},
			{Name: strPtr("status"), Value: strPtr(strconv.Itoa(k.status))},
		}
		counts.Metric = append(counts.Metric, &dto.Metric{
			Label:   labels,
			Counter: &dto.Counter{Value: f64Ptr(float64(stats.count))},
		})
		durations.Metric = append(durations.Metric, &dto.Metric{
			Label:   labels,
			Counter: &dto.Counter{Value: f64Ptr(stats.durationSeconds)},
		})
	}

	return []*dto.MetricFamily{counts, durations}
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }
