package renderable

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/model"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
)

type renderable struct {
	id        uint64
	mdl       model.Model
	provider  bind_group_provider.BindGroupProvider
	transform [16]float32
}

// Renderable defines the interface for one drawable entry: a shared Model plus the object's own
// bind group (transform uniform, sampler, texture). A Renderable is immutable once created.
type Renderable interface {
	// ID returns the renderable's index-derived identifier.
	//
	// Returns:
	//   - uint64: the ID
	ID() uint64

	// Model returns the Model whose mesh buffers this renderable draws.
	//
	// Returns:
	//   - model.Model: the associated model
	Model() model.Model

	// BindGroupProvider returns the provider holding this object's group 1 bind group.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the object provider, or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Transform returns the object's model matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the model matrix
	Transform() [16]float32

	// Uniform returns the object uniform built from Transform.
	//
	// Returns:
	//   - model.GPUObjectUniform: the uniform ready for Marshal
	Uniform() model.GPUObjectUniform

	// DrawItem returns the renderer draw item for this renderable.
	//
	// Returns:
	//   - renderer.DrawItem: the mesh and object providers
	DrawItem() renderer.DrawItem

	// Release releases the object's bind group resources. The shared Model is left untouched.
	Release()
}

var _ Renderable = &renderable{}

// NewRenderable creates a new Renderable configured with the given options.
// The transform defaults to identity.
//
// Parameters:
//   - options: functional options to configure the renderable
//
// Returns:
//   - Renderable: the newly created renderable
func NewRenderable(options ...RenderableBuilderOption) Renderable {
	r := &renderable{
		transform: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderable) ID() uint64 {
	return r.id
}

func (r *renderable) Model() model.Model {
	return r.mdl
}

func (r *renderable) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return r.provider
}

func (r *renderable) Transform() [16]float32 {
	return r.transform
}

func (r *renderable) Uniform() model.GPUObjectUniform {
	return model.GPUObjectUniform{Model: r.transform}
}

func (r *renderable) DrawItem() renderer.DrawItem {
	item := renderer.DrawItem{Object: r.provider}
	if r.mdl != nil {
		item.Mesh = r.mdl.MeshProvider()
	}
	return item
}

func (r *renderable) Release() {
	if r.provider != nil {
		r.provider.Release()
	}
}
