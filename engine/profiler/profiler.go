package profiler

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Stats is one profiler report covering the frames since the previous report.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// String formats the stats as a one-line readout.
func (s Stats) String() string {
	return fmt.Sprintf("FPS: %.1f | Heap: %.1f MB | Alloc: %.1f MB/s | GC: %d (%d µs)",
		s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.MaxPauseUs)
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Reports to the logger, the optional report callback and the optional Prometheus metrics
// at a configurable interval.
type Profiler struct {
	mu *sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	logger   *zap.Logger
	metrics  *Metrics
	onReport func(Stats)
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options such as WithLogger and WithMetrics
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: time.Second,
		logger:         zap.NewNop(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame to track frame timing.
//
// Returns:
//   - bool: true if stats were reported this tick, false otherwise
func (p *Profiler) Tick() bool {
	return p.TickAt(time.Now())
}

// TickAt counts one frame at the given time and reports when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - now: the time of the frame
//
// Returns:
//   - bool: true if stats were reported this tick, false otherwise
func (p *Profiler) TickAt(now time.Time) bool {
	p.mu.Lock()

	p.frameCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		p.mu.Unlock()
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	stats := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			stats.MaxPauseUs = max(stats.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = stats.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = stats
	onReport := p.onReport
	p.mu.Unlock()

	p.logger.Info("frame stats",
		zap.Float64("fps", stats.FPS),
		zap.Float64("heap_mb", stats.HeapMB),
		zap.Float64("alloc_rate_mb", stats.AllocRateMB),
		zap.Uint32("gc", stats.GCCount),
		zap.Uint64("gc_last_us", stats.LastPauseUs),
		zap.Uint64("gc_max_us", stats.MaxPauseUs),
		zap.Float64("sys_mb", stats.SysMB),
	)
	if p.metrics != nil {
		p.metrics.FPS.Set(stats.FPS)
	}
	if onReport != nil {
		onReport(stats)
	}
	return true
}

// ObserveFrame records the duration of one frame body in the frame time histogram.
//
// Parameters:
//   - d: the time spent producing the frame
func (p *Profiler) ObserveFrame(d time.Duration) {
	if p.metrics != nil {
		p.metrics.FrameSeconds.Observe(d.Seconds())
	}
}

// SetRenderables publishes the number of renderables currently drawn.
//
// Parameters:
//   - n: the renderable count
func (p *Profiler) SetRenderables(n int) {
	if p.metrics != nil {
		p.metrics.Renderables.Set(float64(n))
	}
}

// Last returns the most recent report, or the zero Stats before the first one.
//
// Returns:
//   - Stats: the last report
func (p *Profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
