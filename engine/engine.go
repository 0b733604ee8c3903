package engine

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"go.uber.org/zap"
)

// Scheduler runs a callback on the render thread at the next display refresh.
type Scheduler interface {
	// RequestFrame schedules callback for the next message loop iteration. Each request runs once.
	//
	// Parameters:
	//   - callback: the function to run
	RequestFrame(callback func())
}

// engine implements the Engine interface.
// Owns the render thread: every posted task and frame callback runs inside the window's message loop.
type engine struct {
	mu *sync.Mutex

	window   window.Window
	logger   *zap.Logger
	profiler *profiler.Profiler

	posted []func()
	frames []func()

	resizeHandlers  []func(width, height int)
	keyDownHandlers []func(keyCode uint32)
	closeHandlers   []func()

	quitOnce sync.Once
}

// Engine is the main entry point for the engine.
// It runs the window's message loop and schedules frame callbacks and posted tasks onto it.
type Engine interface {
	Scheduler

	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Logger returns the engine's logger.
	//
	// Returns:
	//   - *zap.Logger: the logger
	Logger() *zap.Logger

	// Profiler returns the profiler, or nil if profiling is disabled.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler or nil
	Profiler() *profiler.Profiler

	// Post queues fn to run on the render thread before the next frame callbacks.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the task to run
	Post(fn func())

	// OnResize registers a handler for framebuffer resizes.
	//
	// Parameters:
	//   - handler: function receiving the new width and height in pixels
	OnResize(handler func(width, height int))

	// OnKeyDown registers a handler for key presses.
	//
	// Parameters:
	//   - handler: function receiving the key code
	OnKeyDown(handler func(keyCode uint32))

	// OnClose registers a handler called once when the window starts closing.
	//
	// Parameters:
	//   - handler: function to call
	OnClose(handler func())

	// Run starts the message loop on the calling thread (blocks until the window closes).
	Run()

	// Quit closes the window, which ends Run. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine driving the given window.
//
// Parameters:
//   - w: the window whose message loop paces the engine
//   - options: functional options for engine configuration (logger, profiler)
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if w is nil
func NewEngine(w window.Window, options ...EngineBuilderOption) (Engine, error) {
	if w == nil {
		return nil, fmt.Errorf("engine requires a window")
	}

	e := &engine{
		mu:     &sync.Mutex{},
		window: w,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(e)
	}

	w.SetUpdateCallback(e.step)
	w.SetResizeCallback(func(width, height int) {
		for _, h := range handlersOf(e.mu, func() []func(int, int) { return e.resizeHandlers }) {
			h(width, height)
		}
	})
	w.SetKeyDownCallback(func(keyCode uint32) {
		for _, h := range handlersOf(e.mu, func() []func(uint32) { return e.keyDownHandlers }) {
			h(keyCode)
		}
	})
	w.SetCloseCallback(func() {
		for _, h := range handlersOf(e.mu, func() []func() { return e.closeHandlers }) {
			h()
		}
	})

	return e, nil
}

// handlersOf copies a handler slice under the lock so handlers may register further handlers.
func handlersOf[T any](mu *sync.Mutex, get func() []T) []T {
	mu.Lock()
	defer mu.Unlock()
	src := get()
	out := make([]T, len(src))
	copy(out, src)
	return out
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Logger() *zap.Logger {
	return e.logger
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) RequestFrame(callback func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frames = append(e.frames, callback)
}

func (e *engine) Post(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.posted = append(e.posted, fn)
}

func (e *engine) OnResize(handler func(width, height int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resizeHandlers = append(e.resizeHandlers, handler)
}

func (e *engine) OnKeyDown(handler func(keyCode uint32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keyDownHandlers = append(e.keyDownHandlers, handler)
}

func (e *engine) OnClose(handler func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeHandlers = append(e.closeHandlers, handler)
}

func (e *engine) Run() {
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			e.logger.Warn("window close failed", zap.Error(err))
		}
	})
}

// step runs one message loop iteration: posted tasks first, then the frame callbacks requested
// before this iteration. Callbacks requested while running are deferred to the next iteration.
// A panic is logged and quits the engine.
func (e *engine) step() {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render thread recovered from panic", zap.Any("panic", r))
			e.Quit()
		}
	}()

	e.mu.Lock()
	posted, frames := e.posted, e.frames
	e.posted, e.frames = nil, nil
	e.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
	for _, fn := range frames {
		fn()
	}
}
