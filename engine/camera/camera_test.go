package camera

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera()

	assert.InDelta(t, 2*math.Pi/5, c.Fov(), eps)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.Nil(t, c.Controller())
	require.NotNil(t, c.BindGroupProvider())

	var expected [16]float32
	common.Perspective(expected[:], 2*math.Pi/5, 1, 1, 100)
	assert.Equal(t, expected, c.ProjectionMatrix())
	assert.Equal(t, expected, c.ViewProjectionMatrix())
}

func TestCamera_UpdateFixedTiltOffset(t *testing.T) {
	c := NewCamera(WithController(NewCameraController(WithSpinRate(0))))
	c.Update(time.Unix(1_700_000_000, 0))

	view := c.ViewMatrix()
	x, y, z := common.TransformPoint(view[:], 0, 0, 0)
	assert.InDelta(t, 0, x, eps)
	assert.InDelta(t, 0, y, eps)
	assert.InDelta(t, -3, z, eps)
}

func TestCamera_UpdateSpinsWithTime(t *testing.T) {
	c := NewCamera(WithController(NewCameraController(WithTilt(0, 0))))

	c.Update(time.Unix(0, 0))
	view := c.ViewMatrix()
	x, _, z := common.TransformPoint(view[:], 1, 0, 0)
	assert.InDelta(t, 1, x, eps)
	assert.InDelta(t, -3, z, eps)

	// 20s at 0.05 rad/s is one radian.
	c.Update(time.Unix(20, 0))
	view = c.ViewMatrix()
	x, _, z = common.TransformPoint(view[:], 1, 0, 0)
	assert.InDelta(t, math.Cos(1), x, eps)
	assert.InDelta(t, -math.Sin(1)-3, z, eps)
}

func TestCamera_ViewProjectionIsProjectionTimesView(t *testing.T) {
	c := NewCamera(WithAspect(16.0/9.0), WithController(NewCameraController()))
	c.Update(time.Unix(1234, 500))

	proj, view := c.ProjectionMatrix(), c.ViewMatrix()
	var expected [16]float32
	common.Mul4(expected[:], proj[:], view[:])

	actual := c.ViewProjectionMatrix()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], eps, "element %d", i)
	}
}

func TestCamera_SetAspect(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()

	c.SetAspect(2)
	after := c.ProjectionMatrix()
	assert.InDelta(t, before[0]/2, after[0], eps)
	assert.Equal(t, before[5], after[5])

	c.SetAspect(0)
	assert.Equal(t, after, c.ProjectionMatrix(), "zero aspect keeps the previous projection")
}

func TestGPUFrameUniform_Marshal(t *testing.T) {
	u := GPUFrameUniform{}
	for i := range u.ViewProj {
		u.ViewProj[i] = float32(i) + 0.5
	}

	buf := u.Marshal()
	require.Len(t, buf, 64)
	assert.Equal(t, 64, u.Size())
	for i := range u.ViewProj {
		assert.Equal(t, u.ViewProj[i], math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
	}
}

func TestCamera_Uniform(t *testing.T) {
	c := NewCamera(WithController(NewCameraController()))
	c.Update(time.Unix(50, 0))

	assert.Equal(t, c.ViewProjectionMatrix(), c.Uniform().ViewProj)
}

func TestCameraController_Defaults(t *testing.T) {
	cc := NewCameraController()

	x, z := cc.Tilt()
	assert.InDelta(t, 0.1*math.Pi, x, eps)
	assert.InDelta(t, 0.1*math.Pi, z, eps)
	assert.Equal(t, float32(3), cc.Radius())
	assert.Equal(t, float32(0.05), cc.SpinRate())
	assert.Zero(t, cc.Azimuth())
}

func TestCameraController_Orbit(t *testing.T) {
	cc := NewCameraController(WithOrbitSpeed(0.5))

	cc.OrbitRight()
	cc.OrbitRight()
	assert.InDelta(t, 1.0, cc.Azimuth(), eps)

	cc.OrbitLeft()
	assert.InDelta(t, 0.5, cc.Azimuth(), eps)
}

func TestCameraController_SetRadiusClamps(t *testing.T) {
	cc := NewCameraController(WithRadiusLimits(2, 10))

	cc.SetRadius(100)
	assert.Equal(t, float32(10), cc.Radius())
	cc.SetRadius(0)
	assert.Equal(t, float32(2), cc.Radius())
	cc.SetRadius(4)
	assert.Equal(t, float32(4), cc.Radius())
}
