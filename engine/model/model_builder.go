package model

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider holding GPU mesh resources.
//
// Parameters:
//   - provider: the mesh BindGroupProvider
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

// WithMeshData is an option builder that sets the raw vertex and index bytes of the Model.
//
// Parameters:
//   - vertexData: interleaved vertex bytes
//   - indexData: index bytes, padded to 4 bytes
//   - indexCount: the number of indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh data option to a model
func WithMeshData(vertexData, indexData []byte, indexCount int) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = vertexData
		m.indexData = indexData
		m.indexCount = indexCount
	}
}

// WithIndexFormat is an option builder that sets the index element format. Defaults to Uint16.
//
// Parameters:
//   - format: the index format
//
// Returns:
//   - ModelBuilderOption: a function that applies the index format option to a model
func WithIndexFormat(format wgpu.IndexFormat) ModelBuilderOption {
	return func(m *model) {
		m.indexFormat = format
	}
}

// WithBoundingRadius is an option builder that sets the bounding sphere radius of the Model.
//
// Parameters:
//   - radius: the bounding radius
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}
