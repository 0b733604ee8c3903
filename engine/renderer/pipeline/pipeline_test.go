package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline_Defaults(t *testing.T) {
	s, err := shader.NewShader("mesh", shader.MeshSource)
	require.NoError(t, err)

	p := NewPipeline("mesh", s)

	assert.Equal(t, "mesh", p.PipelineKey())
	assert.Equal(t, s, p.Shader())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Nil(t, p.RenderPipeline())
	assert.Nil(t, p.BindGroupLayout(0))
	assert.Nil(t, p.BindGroupLayout(-1))
}

func TestNewPipeline_Options(t *testing.T) {
	layout := wgpu.VertexBufferLayout{
		ArrayStride: 32,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		},
	}

	p := NewPipeline("mesh", nil,
		WithVertexLayouts(layout),
		WithCullMode(wgpu.CullModeBack),
		WithDepthWriteEnabled(false),
		WithFrontFace(wgpu.FrontFaceCW),
	)

	require.Len(t, p.VertexLayouts(), 1)
	assert.Equal(t, uint64(32), p.VertexLayouts()[0].ArrayStride)
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
}
