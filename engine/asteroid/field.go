package asteroid

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/model"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderable"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"go.uber.org/zap"
)

// ErrEmptyPalette is returned when a Field is built without any asteroid models.
var ErrEmptyPalette = errors.New("asteroid palette is empty")

// SphereParams describes one palette entry's generated sphere.
type SphereParams struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
	Randomness     float32
}

// Palette lists the five asteroid meshes cycled through by index modulo five.
var Palette = []SphereParams{
	{Radius: 0.01, WidthSegments: 8, HeightSegments: 6, Randomness: 0.15},
	{Radius: 0.013, WidthSegments: 8, HeightSegments: 6, Randomness: 0.15},
	{Radius: 0.017, WidthSegments: 8, HeightSegments: 6, Randomness: 0.15},
	{Radius: 0.02, WidthSegments: 8, HeightSegments: 6, Randomness: 0.15},
	{Radius: 0.03, WidthSegments: 16, HeightSegments: 8, Randomness: 0.15},
}

// Ring placement bounds.
const (
	MinOrbitRadius  = 1.25
	OrbitRadiusSpan = 1.7
	VerticalJitter  = 0.015
)

// BindGroupFactory creates the per-object bind group for a new asteroid.
type BindGroupFactory interface {
	// NewObjectBindGroup creates a provider whose bind group holds the given transform.
	//
	// Parameters:
	//   - label: debug label for the provider
	//   - transform: the object's model matrix
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the initialized provider
	//   - error: an error if GPU resources could not be created
	NewObjectBindGroup(label string, transform [16]float32) (bind_group_provider.BindGroupProvider, error)
}

type field struct {
	registry renderable.Registry
	palette  []model.Model
	factory  BindGroupFactory
	rng      *rand.Rand
	logger   *zap.Logger
}

// Field populates a Registry with randomly placed asteroids on a ring around the planet.
type Field interface {
	// EnsureCount appends asteroids until the registry holds count asteroids after the planet at index 0.
	// Shrinking never removes entries.
	//
	// Parameters:
	//   - count: the requested asteroid count
	//
	// Returns:
	//   - int: the number of renderables appended
	//   - error: an error if a bind group could not be created; entries appended before it are kept
	EnsureCount(count int) (int, error)

	// Registry returns the registry the field appends to.
	//
	// Returns:
	//   - renderable.Registry: the registry
	Registry() renderable.Registry

	// Palette returns the asteroid models cycled through by index.
	//
	// Returns:
	//   - []model.Model: the palette models
	Palette() []model.Model
}

var _ Field = &field{}

// NewField creates a Field that appends to registry using the given palette models.
//
// Parameters:
//   - registry: the registry to append to; index 0 is expected to hold the planet
//   - palette: the asteroid models, indexed by registry index modulo len(palette)
//   - factory: creates the per-object bind groups
//   - options: functional options such as WithRandomSource and WithLogger
//
// Returns:
//   - Field: the new field
//   - error: ErrEmptyPalette if palette is empty
func NewField(registry renderable.Registry, palette []model.Model, factory BindGroupFactory, options ...FieldBuilderOption) (Field, error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	f := &field{
		registry: registry,
		palette:  palette,
		factory:  factory,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(f)
	}
	return f, nil
}

func (f *field) Registry() renderable.Registry {
	return f.registry
}

func (f *field) Palette() []model.Model {
	return f.palette
}

func (f *field) EnsureCount(count int) (int, error) {
	added := 0
	for i := f.registry.Len(); i <= count; i++ {
		transform := Placement(f.float)
		label := "asteroid " + strconv.Itoa(i)

		provider, err := f.factory.NewObjectBindGroup(label, transform)
		if err != nil {
			return added, fmt.Errorf("failed to create bind group for %s: %w", label, err)
		}

		f.registry.Add(renderable.NewRenderable(
			renderable.WithID(uint64(i)),
			renderable.WithModel(f.palette[i%len(f.palette)]),
			renderable.WithBindGroupProvider(provider),
			renderable.WithTransform(transform),
		))
		added++
	}

	if added > 0 {
		f.logger.Debug("asteroid field grown", zap.Int("added", added), zap.Int("total", f.registry.Len()))
	}
	return added, nil
}

func (f *field) float() float32 {
	if f.rng != nil {
		return f.rng.Float32()
	}
	return rand.Float32()
}

// Placement draws a random ring placement: distance in [1.25, 2.95), polar angle in [0, 2π),
// a small vertical jitter, then rotations about X and Y each in [0, π).
// The five draws happen in that order.
//
// Parameters:
//   - float: a source of uniform values in [0, 1)
//
// Returns:
//   - [16]float32: the column-major model matrix
func Placement(float func() float32) [16]float32 {
	radius := float()*OrbitRadiusSpan + MinOrbitRadius
	angle := float() * math.Pi * 2
	s, c := math.Sincos(float64(angle))
	x := float32(s) * radius
	y := (float() - 0.5) * VerticalJitter
	z := float32(c) * radius

	var m [16]float32
	common.Identity(m[:])
	common.Translate(m[:], x, y, z)
	common.RotateX(m[:], float()*math.Pi)
	common.RotateY(m[:], float()*math.Pi)
	return m
}
