package bind_group_provider

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	layout := &wgpu.BindGroupLayout{}
	tv := &wgpu.TextureView{}
	s := &wgpu.Sampler{}

	p := NewBindGroupProvider("asteroid 7",
		WithBindGroupLayout(layout),
		WithSharedSampler(1, s),
		WithSharedTextureView(2, tv),
	)

	assert.Equal(t, "asteroid 7", p.Label())
	assert.Same(t, layout, p.BindGroupLayout())
	assert.Same(t, s, p.Sampler(1))
	assert.Same(t, tv, p.TextureView(2))
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.BindGroup())
	assert.Equal(t, wgpu.IndexFormatUint16, p.IndexFormat())
}

func TestBindGroupProvider_SetMeshBuffers(t *testing.T) {
	vb, ib := &wgpu.Buffer{}, &wgpu.Buffer{}
	p := NewBindGroupProvider("planet mesh")

	p.SetMeshBuffers(vb, ib, wgpu.IndexFormatUint32, 3072)

	assert.Same(t, vb, p.VertexBuffer())
	assert.Same(t, ib, p.IndexBuffer())
	assert.Equal(t, wgpu.IndexFormatUint32, p.IndexFormat())
	assert.Equal(t, 3072, p.IndexCount())
}

func TestBindGroupProvider_ReleaseSkipsSharedResources(t *testing.T) {
	// Only shared bindings are staged, so Release has nothing GPU-backed to free.
	p := NewBindGroupProvider("asteroid 0",
		WithSharedSampler(1, &wgpu.Sampler{}),
		WithSharedTextureView(2, &wgpu.TextureView{}),
	)

	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.Sampler(1))
	assert.Nil(t, p.TextureView(2))
}
