package camera

import "time"

// CameraController defines the interface for camera control systems.
// Controllers own the view transform; the Camera combines it with its projection each frame.
type CameraController interface {
	// ViewMatrix writes the view matrix for the given instant into out.
	//
	// Parameters:
	//   - out: destination slice (at least 16 elements, column-major)
	//   - now: the wall-clock time the view is evaluated at
	ViewMatrix(out []float32, now time.Time)

	// OrbitLeft rotates the view left around the Y axis by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the view right around the Y axis by one orbit speed step.
	OrbitRight()

	// Radius returns the distance of the camera from the origin.
	//
	// Returns:
	//   - float32: camera distance
	Radius() float32

	// SetRadius sets the camera distance, clamped to the controller's min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from the origin
	SetRadius(radius float32)

	// Tilt returns the fixed rotations applied about the X and Z axes.
	//
	// Returns:
	//   - x, z: tilt angles in radians
	Tilt() (x, z float32)

	// SpinRate returns the continuous rotation rate about the Y axis.
	//
	// Returns:
	//   - float32: radians per second of wall-clock time
	SpinRate() float32

	// Azimuth returns the manual orbit offset added to the time-driven spin.
	//
	// Returns:
	//   - float32: azimuth offset in radians
	Azimuth() float32

	// OrbitSpeed returns the keyboard orbit speed in radians per step.
	//
	// Returns:
	//   - float32: radians per orbit call
	OrbitSpeed() float32
}
