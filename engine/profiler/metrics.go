package profiler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors published by the profiler.
type Metrics struct {
	// FrameSeconds tracks the time spent producing each frame
	FrameSeconds prometheus.Histogram
	// FPS tracks the frame rate measured over the last report interval
	FPS prometheus.Gauge
	// Renderables tracks the number of renderables drawn per frame
	Renderables prometheus.Gauge
}

// NewMetrics creates the profiler collectors and registers them with reg.
//
// Parameters:
//   - reg: the registerer to register with (e.g. prometheus.NewRegistry())
//
// Returns:
//   - *Metrics: the registered collectors
//   - error: an error if registration fails
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		FrameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orbit",
			Name:      "frame_duration_seconds",
			Help:      "Time spent producing a frame",
			Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1, 0.25},
		}),
		FPS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orbit",
			Name:      "frames_per_second",
			Help:      "Frame rate over the last profiler interval",
		}),
		Renderables: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orbit",
			Name:      "renderables",
			Help:      "Number of renderables drawn per frame",
		}),
	}

	for _, c := range []prometheus.Collector{m.FrameSeconds, m.FPS, m.Renderables} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// NewServer creates an HTTP server exposing the gatherer's metrics on /metrics.
//
// Parameters:
//   - addr: the listen address, e.g. ":9090"
//   - gatherer: the registry to expose
//
// Returns:
//   - *http.Server: the unstarted server
func NewServer(addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
}
