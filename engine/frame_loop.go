package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"go.uber.org/zap"
)

// LoopState is the state of a FrameLoop.
type LoopState int32

const (
	// LoopActive schedules a new tick after every tick.
	LoopActive LoopState = iota
	// LoopInactive is terminal: no further tick is scheduled or run.
	LoopInactive
)

// String returns the state name.
func (s LoopState) String() string {
	if s == LoopActive {
		return "active"
	}
	return "inactive"
}

// FrameFunc produces one frame at the given wall-clock time.
// A returned error is logged and the frame is skipped; the loop keeps running.
type FrameFunc func(now time.Time) error

type frameLoop struct {
	scheduler Scheduler
	frame     FrameFunc
	clock     func() time.Time
	logger    *zap.Logger
	profiler  *profiler.Profiler

	// idleErr marks frames that cannot be produced yet, such as a minimized window's surface.
	idleErr  error
	idleWait time.Duration
	idle     bool
	sleep    func(time.Duration)

	state   atomic.Int32
	frames  atomic.Uint64
	skipped atomic.Uint64
	start   sync.Once
}

// FrameLoop drives a FrameFunc once per display refresh until it becomes inactive.
type FrameLoop interface {
	// Start schedules the first tick. Subsequent calls are no-ops.
	Start()

	// Stop makes the loop inactive. An already scheduled tick returns without producing a frame.
	Stop()

	// State returns the current loop state.
	//
	// Returns:
	//   - LoopState: LoopActive or LoopInactive
	State() LoopState

	// Frames returns the number of frames produced without error.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Skipped returns the number of frames whose FrameFunc returned an error.
	//
	// Returns:
	//   - uint64: the skipped frame count
	Skipped() uint64
}

var _ FrameLoop = &frameLoop{}

// NewFrameLoop creates an active FrameLoop scheduling frame on scheduler.
//
// Parameters:
//   - scheduler: schedules each tick for the next display refresh
//   - frame: the function producing each frame
//   - options: functional options such as WithLoopLogger and WithClock
//
// Returns:
//   - FrameLoop: the new loop, not yet started
func NewFrameLoop(scheduler Scheduler, frame FrameFunc, options ...FrameLoopOption) FrameLoop {
	l := &frameLoop{
		scheduler: scheduler,
		frame:     frame,
		clock:     time.Now,
		logger:    zap.NewNop(),
		sleep:     time.Sleep,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *frameLoop) Start() {
	l.start.Do(func() {
		if l.State() == LoopActive {
			l.scheduler.RequestFrame(l.tick)
		}
	})
}

func (l *frameLoop) Stop() {
	l.state.Store(int32(LoopInactive))
}

func (l *frameLoop) State() LoopState {
	return LoopState(l.state.Load())
}

func (l *frameLoop) Frames() uint64 {
	return l.frames.Load()
}

func (l *frameLoop) Skipped() uint64 {
	return l.skipped.Load()
}

func (l *frameLoop) tick() {
	if l.State() != LoopActive {
		return
	}

	now := l.clock()
	err := l.frame(now)
	switch {
	case err == nil:
		if l.idle {
			l.logger.Debug("frames resumed")
		}
		l.idle = false
		l.frames.Add(1)
	case l.idleErr != nil && errors.Is(err, l.idleErr):
		l.skipped.Add(1)
		if !l.idle {
			l.logger.Debug("frames paused", zap.Error(err))
		}
		l.idle = true
		// Nothing is presented while idle, so nothing paces the loop.
		l.sleep(l.idleWait)
		if l.State() == LoopActive {
			l.scheduler.RequestFrame(l.tick)
		}
		return
	default:
		l.skipped.Add(1)
		l.logger.Warn("frame skipped", zap.Error(err))
	}

	if l.profiler != nil {
		end := l.clock()
		l.profiler.ObserveFrame(end.Sub(now))
		l.profiler.TickAt(end)
	}

	if l.State() == LoopActive {
		l.scheduler.RequestFrame(l.tick)
	}
}
