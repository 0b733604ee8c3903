package renderable

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/model"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
)

// RenderableBuilderOption is a functional option for configuring a Renderable during construction.
type RenderableBuilderOption func(*renderable)

// WithID sets the ID of the Renderable.
//
// Parameters:
//   - id: identifier for the Renderable
//
// Returns:
//   - RenderableBuilderOption: functional option to set the ID
func WithID(id uint64) RenderableBuilderOption {
	return func(r *renderable) {
		r.id = id
	}
}

// WithModel sets the Model drawn by this Renderable.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - RenderableBuilderOption: functional option to set the Model
func WithModel(m model.Model) RenderableBuilderOption {
	return func(r *renderable) {
		r.mdl = m
	}
}

// WithBindGroupProvider sets the provider holding the object's bind group.
//
// Parameters:
//   - provider: the object BindGroupProvider
//
// Returns:
//   - RenderableBuilderOption: functional option to set the provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) RenderableBuilderOption {
	return func(r *renderable) {
		r.provider = provider
	}
}

// WithTransform sets the model matrix of the Renderable.
//
// Parameters:
//   - transform: column-major model matrix
//
// Returns:
//   - RenderableBuilderOption: functional option to set the transform
func WithTransform(transform [16]float32) RenderableBuilderOption {
	return func(r *renderable) {
		r.transform = transform
	}
}
