package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"go.uber.org/zap"
)

// FrameLoopOption is a functional option for configuring a FrameLoop via NewFrameLoop.
type FrameLoopOption func(*frameLoop)

// WithLoopLogger sets the logger skipped frames are reported to.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - FrameLoopOption: option function to apply
func WithLoopLogger(logger *zap.Logger) FrameLoopOption {
	return func(l *frameLoop) {
		if logger != nil {
			l.logger = logger.Named("frame")
		}
	}
}

// WithLoopProfiler ticks the profiler and records the frame time after every frame.
//
// Parameters:
//   - p: the profiler, or nil to disable
//
// Returns:
//   - FrameLoopOption: option function to apply
func WithLoopProfiler(p *profiler.Profiler) FrameLoopOption {
	return func(l *frameLoop) {
		l.profiler = p
	}
}

// WithClock replaces the wall clock passed to each frame. Defaults to time.Now.
//
// Parameters:
//   - clock: the time source
//
// Returns:
//   - FrameLoopOption: option function to apply
func WithClock(clock func() time.Time) FrameLoopOption {
	return func(l *frameLoop) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithIdleOn treats frames failing with target as idle rather than broken: they are skipped without
// a warning, and the loop waits before the next tick. Idle frames are not profiled.
//
// Parameters:
//   - target: the error matched with errors.Is
//   - wait: the pause between idle ticks
//
// Returns:
//   - FrameLoopOption: option function to apply
func WithIdleOn(target error, wait time.Duration) FrameLoopOption {
	return func(l *frameLoop) {
		l.idleErr = target
		l.idleWait = max(wait, 0)
	}
}
