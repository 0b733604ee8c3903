package engine

import (
	"testing"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a fixed number of message loop iterations.
// When the iterations run out it behaves like a user close: the close callback fires and the loop
// ends, but the window is only destroyed by Close.
type fakeWindow struct {
	iterations int
	closed     bool
	destroyed  int

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onClose   func()
}

func (w *fakeWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) SetKeyDownCallback(callback func(keyCode uint32)) { w.onKeyDown = callback }
func (w *fakeWindow) SetKeyUpCallback(func(keyCode uint32)) {}
func (w *fakeWindow) SetCloseCallback(callback func()) { w.onClose = callback }
func (w *fakeWindow) SetTitle(string) {}
func (w *fakeWindow) Title() string { return "" }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool { return !w.closed }
func (w *fakeWindow) Width() int { return 800 }
func (w *fakeWindow) Height() int { return 600 }

func (w *fakeWindow) Close() error {
	w.notifyClose()
	w.destroyed++
	return nil
}

func (w *fakeWindow) notifyClose() {
	if !w.closed {
		w.closed = true
		if w.onClose != nil {
			w.onClose()
		}
	}
}

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.iterations && w.IsRunning(); i++ {
		w.onUpdate()
	}
	w.notifyClose()
}

func TestNewEngine_RequiresWindow(t *testing.T) {
	_, err := NewEngine(nil)
	assert.Error(t, err)
}

func TestEngine_PostRunsBeforeFrames(t *testing.T) {
	w := &fakeWindow{iterations: 1}
	e, err := NewEngine(w)
	require.NoError(t, err)

	var order []string
	e.RequestFrame(func() { order = append(order, "frame") })
	e.Post(func() { order = append(order, "post") })
	e.Run()

	assert.Equal(t, []string{"post", "frame"}, order)
}

func TestEngine_FrameRequestedDuringFrameRunsNextIteration(t *testing.T) {
	w := &fakeWindow{iterations: 3}
	e, err := NewEngine(w)
	require.NoError(t, err)

	var ticks []int
	iteration := 0
	var tick func()
	tick = func() {
		ticks = append(ticks, iteration)
		e.RequestFrame(tick)
	}
	e.Post(func() { e.RequestFrame(tick) })
	w.onUpdate = func() {
		iteration++
		e.(*engine).step()
	}
	e.Run()

	// Posted at iteration 1, the frame requested there runs on 2 and 3, once each.
	assert.Equal(t, []int{2, 3}, ticks)
}

func TestEngine_FrameLoopStopsOnClose(t *testing.T) {
	w := &fakeWindow{iterations: 10}
	e, err := NewEngine(w)
	require.NoError(t, err)

	frames := 0
	loop := NewFrameLoop(e, func(time.Time) error {
		frames++
		if frames == 3 {
			e.Quit()
		}
		return nil
	})
	e.OnClose(loop.Stop)

	loop.Start()
	e.Run()

	assert.Equal(t, 3, frames)
	assert.Equal(t, LoopInactive, loop.State())
	assert.True(t, w.closed)
}

func TestEngine_Handlers(t *testing.T) {
	w := &fakeWindow{}
	e, err := NewEngine(w)
	require.NoError(t, err)

	var sizes [][2]int
	var keys []uint32
	closes := 0
	e.OnResize(func(width, height int) { sizes = append(sizes, [2]int{width, height}) })
	e.OnKeyDown(func(keyCode uint32) { keys = append(keys, keyCode) })
	e.OnKeyDown(func(uint32) {})
	e.OnClose(func() { closes++ })

	w.onResize(1920, 1080)
	w.onKeyDown(66)
	e.Quit()
	e.Quit()

	assert.Equal(t, [][2]int{{1920, 1080}}, sizes)
	assert.Equal(t, []uint32{66}, keys)
	assert.Equal(t, 1, closes)
}

func TestEngine_QuitAfterUserCloseDestroysWindowOnce(t *testing.T) {
	w := &fakeWindow{iterations: 2}
	e, err := NewEngine(w)
	require.NoError(t, err)

	closes := 0
	e.OnClose(func() { closes++ })
	e.Run()
	assert.Equal(t, 1, closes)
	assert.Zero(t, w.destroyed, "a user close only ends the loop")

	e.Quit()
	e.Quit()
	assert.Equal(t, 1, w.destroyed)
	assert.Equal(t, 1, closes)
}

func TestEngine_PanicQuits(t *testing.T) {
	w := &fakeWindow{iterations: 5}
	e, err := NewEngine(w)
	require.NoError(t, err)

	ran := 0
	e.Post(func() { panic("boom") })
	e.RequestFrame(func() { ran++ })

	assert.NotPanics(t, e.Run)
	assert.True(t, w.closed)
	assert.Zero(t, ran)
}
