package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-orbit/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

// VertexLayout returns the vertex buffer layout of the interleaved mesh format
// (position float32x3 @0, normal float32x3 @12, uv float32x2 @24, stride 32).
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 0
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: mesh.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: mesh.PositionOffset, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: mesh.NormalOffset, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: mesh.UVOffset, ShaderLocation: 2},
		},
	}
}

// GPUObjectUniform is the GPU-aligned representation of the per-object uniform buffer (group 1, binding 0).
// Size: 64 bytes.
type GPUObjectUniform struct {
	Model [16]float32 // offset 0: model matrix (mat4x4f)
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (64)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	return buf
}
