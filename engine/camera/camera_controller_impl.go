package camera

import (
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// spinController is the implementation of CameraController. The view is
// translate(0, 0, -radius) * rotZ(tiltZ) * rotX(tiltX) * rotY(spin(now) + azimuth).
type spinController struct {
	mu *sync.Mutex

	radius    float32
	minRadius float32
	maxRadius float32

	tiltX float32
	tiltZ float32

	spinRate   float32
	azimuth    float32
	orbitSpeed float32
}

// Compile-time interface compliance check
var _ CameraController = &spinController{}

// NewCameraController creates a controller that looks at the origin from a fixed distance
// and spins about the Y axis with wall-clock time.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &spinController{
		mu:         &sync.Mutex{},
		radius:     3.0,
		minRadius:  1.5,
		maxRadius:  50.0,
		tiltX:      0.1 * math.Pi,
		tiltZ:      0.1 * math.Pi,
		spinRate:   0.05,
		orbitSpeed: 0.03,
	}

	for _, option := range options {
		option(cc)
	}

	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	return cc
}

func (cc *spinController) ViewMatrix(out []float32, now time.Time) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	common.Identity(out)
	common.Translate(out, 0, 0, -cc.radius)
	common.RotateZ(out, cc.tiltZ)
	common.RotateX(out, cc.tiltX)
	common.RotateY(out, spinAngle(now, cc.spinRate)+cc.azimuth)
}

// spinAngle reduces seconds*rate modulo 2π in float64, since Unix seconds do not fit a float32 mantissa.
func spinAngle(now time.Time, rate float32) float32 {
	seconds := float64(now.UnixNano()) / float64(time.Second)
	return float32(math.Mod(seconds*float64(rate), 2*math.Pi))
}

func (cc *spinController) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = wrapAngle(cc.azimuth - cc.orbitSpeed)
}

func (cc *spinController) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = wrapAngle(cc.azimuth + cc.orbitSpeed)
}

func wrapAngle(a float32) float32 {
	return float32(math.Remainder(float64(a), 2*math.Pi))
}

func (cc *spinController) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *spinController) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
}

func (cc *spinController) Tilt() (x, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.tiltX, cc.tiltZ
}

func (cc *spinController) SpinRate() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.spinRate
}

func (cc *spinController) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *spinController) OrbitSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitSpeed
}
