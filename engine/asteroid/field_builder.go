package asteroid

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// FieldBuilderOption is a functional option for configuring a Field via NewField.
type FieldBuilderOption func(*field)

// WithRandomSource sets the random source used for placements. Defaults to the global source.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - FieldBuilderOption: a function that applies the random source option to a field
func WithRandomSource(rng *rand.Rand) FieldBuilderOption {
	return func(f *field) {
		f.rng = rng
	}
}

// WithLogger sets the logger used by the field.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - FieldBuilderOption: a function that applies the logger option to a field
func WithLogger(logger *zap.Logger) FieldBuilderOption {
	return func(f *field) {
		if logger != nil {
			f.logger = logger.Named("asteroid")
		}
	}
}
