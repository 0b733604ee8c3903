package mesh

import "math/rand/v2"

// SphereBuilderOption is a functional option for configuring sphere generation via NewSphere.
type SphereBuilderOption func(*Sphere)

// WithRandomSource sets the random source used for radial jitter.
// Without it the process-wide unseeded generator is used.
//
// Parameters:
//   - rng: the random generator to draw from
//
// Returns:
//   - SphereBuilderOption: a function that applies the random source to a sphere
func WithRandomSource(rng *rand.Rand) SphereBuilderOption {
	return func(s *Sphere) {
		if rng != nil {
			s.float = rng.Float32
		}
	}
}

func defaultFloat() float32 { return rand.Float32() }
