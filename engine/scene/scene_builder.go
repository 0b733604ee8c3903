package scene

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/gui"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithSettings sets the initial settings. The asteroid field is grown to the settings count.
//
// Parameters:
//   - settings: the initial settings
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSettings(settings gui.Settings) SceneBuilderOption {
	return func(s *scene) {
		s.settings = settings
	}
}

// WithPrepWorkers sets the number of worker goroutines used for CPU preparation in New.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPrepWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.prepWorkers = n
	}
}

// WithSeed makes mesh jitter and asteroid placement reproducible. Zero leaves them unseeded.
//
// Parameters:
//   - seed: the random seed
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSeed(seed uint64) SceneBuilderOption {
	return func(s *scene) {
		s.seed = seed
	}
}

// WithCameraController replaces the default spin controller from camera.NewCameraController.
//
// Parameters:
//   - ctrl: the controller producing the view matrix
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameraController(ctrl camera.CameraController) SceneBuilderOption {
	return func(s *scene) {
		s.controller = ctrl
	}
}

// WithLogger sets the logger used by the scene and its asteroid field.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger.Named("scene")
		}
	}
}

// WithProfiler reports the renderable count to p whenever the field grows.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) SceneBuilderOption {
	return func(s *scene) {
		s.profiler = p
	}
}
