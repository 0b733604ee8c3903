package profiler

import (
	"time"

	"go.uber.org/zap"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithUpdateInterval sets how often stats are reported. Non-positive values keep the 1 second default.
//
// Parameters:
//   - interval: the report interval
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval option to a profiler
func WithUpdateInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithLogger sets the logger stats are reported to.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the logger option to a profiler
func WithLogger(logger *zap.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger.Named("profiler")
		}
	}
}

// WithMetrics publishes FPS, frame time and renderable count to the given Prometheus metrics.
//
// Parameters:
//   - m: the metrics created by NewMetrics
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the metrics option to a profiler
func WithMetrics(m *Metrics) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.metrics = m
	}
}

// WithStartTime sets the start of the first report interval. Defaults to the construction time.
//
// Parameters:
//   - t: the start time
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the start time option to a profiler
func WithStartTime(t time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.lastTime = t
	}
}

// WithReportCallback sets a function called with every report, e.g. to show the stats in the window title.
//
// Parameters:
//   - callback: the function receiving each report
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the callback option to a profiler
func WithReportCallback(callback func(Stats)) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.onReport = callback
	}
}
