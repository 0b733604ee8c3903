package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEngineWindow_Options(t *testing.T) {
	w := newEngineWindow(
		WithTitle("orbit"),
		WithSize(800, 0),
		WithSizeLimits(100, 100, 1000, 900),
	)

	assert.Equal(t, "orbit", w.Title())
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 900, w.maxHeight)
}

func TestEngineWindow_WithoutPlatformWindow(t *testing.T) {
	w := newEngineWindow()

	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())

	w.SetTitle("renamed")
	assert.Equal(t, "renamed", w.Title())

	closed := 0
	w.SetCloseCallback(func() { closed++ })
	assert.ErrorIs(t, w.Close(), ErrNotInitialized)
	w.ProcessMessages()
	assert.Equal(t, 1, closed)
}
