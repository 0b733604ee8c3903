package model

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/mesh"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	meshProvider          bind_group_provider.BindGroupProvider
	boundingRadius        float32
	vertexData, indexData []byte
	indexCount            int
	indexFormat           wgpu.IndexFormat
}

// Model defines the interface for a drawable mesh.
// A Model pairs CPU-side vertex/index bytes with the BindGroupProvider that holds
// their GPU buffers once uploaded via the renderer's InitMeshBuffers.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the raw interleaved vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index data for this model's mesh, padded to 4 bytes.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// IndexFormat returns the element format of IndexData.
	//
	// Returns:
	//   - wgpu.IndexFormat: the index format
	IndexFormat() wgpu.IndexFormat

	// BoundingRadius returns the maximum vertex distance from the model origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Release releases the GPU buffers held by the mesh provider.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model from the given options.
// A mesh provider labelled "<name> Mesh" is created when none is supplied.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the newly created Model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		indexFormat: wgpu.IndexFormatUint16,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name + " Mesh")
	}
	return m
}

// FromSphere creates a Model holding the vertex and index bytes of a generated sphere.
//
// Parameters:
//   - name: the model identifier
//   - s: the generated sphere
//
// Returns:
//   - Model: the Model wrapping the sphere's geometry
func FromSphere(name string, s *mesh.Sphere) Model {
	return NewModel(
		WithName(name),
		WithMeshData(s.VertexBytes(), s.IndexBytes(), int(s.IndexCount())),
		WithIndexFormat(wgpu.IndexFormatUint16),
		WithBoundingRadius(sphereBounds(s)),
	)
}

func sphereBounds(s *mesh.Sphere) float32 {
	var r float32
	for i := 0; i+2 < len(s.Vertices); i += mesh.VertexStride / 4 {
		x, y, z := s.Vertices[i], s.Vertices[i+1], s.Vertices[i+2]
		r = max(r, math32.Sqrt(x*x+y*y+z*z))
	}
	return r
}

func (m *model) Name() string {
	return m.name
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) IndexFormat() wgpu.IndexFormat {
	return m.indexFormat
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Release() {
	if m.meshProvider != nil {
		m.meshProvider.Release()
	}
}
