package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTypeLayout(t *testing.T) {
	known := map[string]wgslTypeLayout{"Light": {32, 16}}

	tests := []struct {
		typeName string
		want     wgslTypeLayout
		ok       bool
	}{
		{typeName: "mat4x4f", want: wgslTypeLayout{64, 16}, ok: true},
		{typeName: "vec3f", want: wgslTypeLayout{12, 16}, ok: true},
		{typeName: "Light", want: wgslTypeLayout{32, 16}, ok: true},
		{typeName: "array<vec3f, 4>", want: wgslTypeLayout{64, 16}, ok: true},
		{typeName: "array<Light>", want: wgslTypeLayout{32, 16}, ok: true},
		{typeName: "Unknown", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			got, ok := resolveTypeLayout(tt.typeName, known)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestComputeStructSizes_NestedOutOfOrder(t *testing.T) {
	source := `
struct Outer {
  inner : Inner,
  scale : f32,
}
struct Inner {
  position : vec3f,
  @builtin(position) clip : vec4f,
}
`
	sizes := computeStructSizes(parseStructBlocks(stripComments(source)))

	require.Contains(t, sizes, "Inner")
	assert.Equal(t, wgslTypeLayout{16, 16}, sizes["Inner"])
	require.Contains(t, sizes, "Outer")
	assert.Equal(t, wgslTypeLayout{32, 16}, sizes["Outer"])
}

func TestStripComments(t *testing.T) {
	source := "a /* b /* nested */ c */ d // e\nf"
	assert.Equal(t, "a  d \nf", stripComments(source))
}

func TestFunctionBody(t *testing.T) {
	source := "fn helper() { x(); }\nfn main() -> f32 { if (a) { b(); } return c; }"
	assert.Equal(t, " if (a) { b(); } return c; ", functionBody(source, "main"))
	assert.Empty(t, functionBody(source, "missing"))
}

func TestStageVisibility(t *testing.T) {
	assert.Equal(t, wgpu.ShaderStageVertex, stageVisibility("model", "model * p", "color"))
	assert.Equal(t, wgpu.ShaderStageFragment, stageVisibility("tex", "p", "textureSample(tex, s, uv)"))
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, stageVisibility("shared", "shared", "shared.x"))
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, stageVisibility("unused", "", ""))
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, stageVisibility("tex", "texture", "textures"))
}

func TestClassifyResource(t *testing.T) {
	storage := classifyResource(0, wgpu.ShaderStageVertex, "storage, read_write", "array<f32>")
	assert.Equal(t, wgpu.BufferBindingTypeStorage, storage.Buffer.Type)

	readOnly := classifyResource(1, wgpu.ShaderStageVertex, "storage, read", "array<f32>")
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, readOnly.Buffer.Type)

	depth := classifyResource(2, wgpu.ShaderStageFragment, "", "texture_depth_2d")
	assert.Equal(t, wgpu.TextureSampleTypeDepth, depth.Texture.SampleType)

	cmp := classifyResource(3, wgpu.ShaderStageFragment, "", "sampler_comparison")
	assert.Equal(t, wgpu.SamplerBindingTypeComparison, cmp.Sampler.Type)
}
