package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShader_MeshSource(t *testing.T) {
	s, err := NewShader("mesh", MeshSource)
	require.NoError(t, err)

	assert.Equal(t, "vertexMain", s.VertexEntryPoint())
	assert.Equal(t, "fragmentMain", s.FragmentEntryPoint())
	require.Len(t, s.BindGroupLayoutDescriptors(), 2)

	frame := s.BindGroupLayoutDescriptor(0)
	require.Len(t, frame.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, frame.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(64), frame.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, frame.Entries[0].Visibility)
	assert.Equal(t, "mesh Group 0 Layout", frame.Label)

	object := s.BindGroupLayoutDescriptor(1)
	require.Len(t, object.Entries, 3)

	assert.Equal(t, uint32(0), object.Entries[0].Binding)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, object.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(64), object.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, object.Entries[0].Visibility)

	assert.Equal(t, uint32(1), object.Entries[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, object.Entries[1].Sampler.Type)
	assert.Equal(t, wgpu.ShaderStageFragment, object.Entries[1].Visibility)

	assert.Equal(t, uint32(2), object.Entries[2].Binding)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, object.Entries[2].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, object.Entries[2].Texture.ViewDimension)
	assert.Equal(t, wgpu.ShaderStageFragment, object.Entries[2].Visibility)

	assert.Equal(t, "meshTexture", s.BindGroupVarName(1, 2))
	binding, ok := s.BindGroupFromVarName(1, "meshSampler")
	assert.True(t, ok)
	assert.Equal(t, 1, binding)
	_, ok = s.BindGroupFromVarName(3, "meshSampler")
	assert.False(t, ok)
}

func TestNewShader_MissingEntryPoints(t *testing.T) {
	_, err := NewShader("vs-only", "@vertex fn vs() -> @builtin(position) vec4f { return vec4f(0); }")
	assert.ErrorIs(t, err, ErrMissingFragmentEntry)

	_, err = NewShader("fs-only", "@fragment fn fs() -> @location(0) vec4f { return vec4f(1); }")
	assert.ErrorIs(t, err, ErrMissingVertexEntry)

	_, err = NewShader("commented", "// @vertex fn vs() {}\n@fragment fn fs() -> @location(0) vec4f { return vec4f(1); }")
	assert.ErrorIs(t, err, ErrMissingVertexEntry)
}

func TestNewShaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(MeshSource), 0o600))

	s, err := NewShaderFromFile("mesh", path)
	require.NoError(t, err)
	assert.Equal(t, MeshSource, s.Source())
	require.NotNil(t, s.Module())
	assert.Equal(t, "mesh", s.Module().Label)

	_, err = NewShaderFromFile("missing", filepath.Join(t.TempDir(), "nope.wgsl"))
	assert.Error(t, err)
}
