// Package metrics keeps per-invocation counters in a private Prometheus
// registry and dumps them once, at exit, in the textfile-collector format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "orderbot"

// Recorder is nil-safe: every method on a nil *Recorder is a no-op.
type Recorder struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	orders      *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "symbol_validations_total", Help: "Symbol validations by outcome"},
			[]string{"status"},
		),
		orders: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "orders_total", Help: "Order placements by type, side and result"},
			[]string{"type", "side", "result"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Namespace: namespace, Name: "exchange_request_seconds", Help: "Exchange round-trip latency", Buckets: prometheus.DefBuckets},
			[]string{"op"},
		),
	}
	r.registry.MustRegister(r.validations, r.orders, r.latency)
	return r
}

func (r *Recorder) Validation(status string) {
	if r == nil {
		return
	}
	r.validations.WithLabelValues(status).Inc()
}

func (r *Recorder) Order(orderType, side, result string) {
	if r == nil {
		return
	}
	r.orders.WithLabelValues(strings.ToLower(orderType), strings.ToLower(side), result).Inc()
}

func (r *Recorder) ObserveRequest(op string, d time.Duration) {
	if r == nil {
		return
	}
	r.latency.WithLabelValues(op).Observe(d.Seconds())
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// WriteTextfile 写入 node_exporter textfile 格式；path 为空时跳过。
func (r *Recorder) WriteTextfile(path string) error {
	path = strings.TrimSpace(path)
	if r == nil || path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
