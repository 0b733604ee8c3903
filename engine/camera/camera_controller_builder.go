package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*spinController)

// WithRadius sets the initial camera distance from the origin.
//
// Parameters:
//   - radius: distance from the origin
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *spinController) {
		cc.radius = radius
	}
}

// WithRadiusLimits sets the minimum and maximum camera distance.
//
// Parameters:
//   - minRadius: minimum distance
//   - maxRadius: maximum distance
//
// Returns:
//   - CameraControllerOption: functional option to set the radius limits
func WithRadiusLimits(minRadius, maxRadius float32) CameraControllerOption {
	return func(cc *spinController) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}

// WithTilt sets the fixed rotations about the X and Z axes.
//
// Parameters:
//   - x: rotation about X in radians
//   - z: rotation about Z in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the tilt
func WithTilt(x, z float32) CameraControllerOption {
	return func(cc *spinController) {
		cc.tiltX = x
		cc.tiltZ = z
	}
}

// WithSpinRate sets the rotation rate about the Y axis. Zero freezes the time-driven spin.
//
// Parameters:
//   - rate: radians per second
//
// Returns:
//   - CameraControllerOption: functional option to set the spin rate
func WithSpinRate(rate float32) CameraControllerOption {
	return func(cc *spinController) {
		cc.spinRate = rate
	}
}

// WithOrbitSpeed sets the keyboard orbit step.
//
// Parameters:
//   - speed: radians per OrbitLeft/OrbitRight call
//
// Returns:
//   - CameraControllerOption: functional option to set the orbit speed
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *spinController) {
		cc.orbitSpeed = speed
	}
}
