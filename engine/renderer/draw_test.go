package renderer

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEncoder captures every command as a string so sequences can be compared.
type recordingEncoder struct {
	calls []string
}

func (e *recordingEncoder) SetPipeline(p *wgpu.RenderPipeline) {
	e.calls = append(e.calls, fmt.Sprintf("pipeline %p", p))
}

func (e *recordingEncoder) SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, _ []uint32) {
	e.calls = append(e.calls, fmt.Sprintf("group %d %p", groupIndex, group))
}

func (e *recordingEncoder) SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, _ uint64) {
	e.calls = append(e.calls, fmt.Sprintf("vertex %d %p %d", slot, buffer, offset))
}

func (e *recordingEncoder) SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat, offset, _ uint64) {
	e.calls = append(e.calls, fmt.Sprintf("index %p %d %d", buffer, format, offset))
}

func (e *recordingEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	e.calls = append(e.calls, fmt.Sprintf("draw %d %d %d %d %d", indexCount, instanceCount, firstIndex, baseVertex, firstInstance))
}

func meshProvider(label string, indexCount int) bind_group_provider.BindGroupProvider {
	p := bind_group_provider.NewBindGroupProvider(label)
	p.SetMeshBuffers(&wgpu.Buffer{}, &wgpu.Buffer{}, wgpu.IndexFormatUint16, indexCount)
	return p
}

func objectProvider(label string) bind_group_provider.BindGroupProvider {
	p := bind_group_provider.NewBindGroupProvider(label)
	p.SetBindGroup(&wgpu.BindGroup{})
	return p
}

func TestRecordDraws_Sequence(t *testing.T) {
	rp := &wgpu.RenderPipeline{}
	frame := objectProvider("frame")
	planet := meshProvider("planet", 3072)
	rock := meshProvider("rock", 288)

	items := []DrawItem{
		{Mesh: planet, Object: objectProvider("planet")},
		{Mesh: rock, Object: objectProvider("asteroid 1")},
	}

	enc := &recordingEncoder{}
	RecordDraws(enc, rp, frame, items)

	require.Len(t, enc.calls, 2+4*len(items))
	assert.Equal(t, fmt.Sprintf("pipeline %p", rp), enc.calls[0])
	assert.Equal(t, fmt.Sprintf("group 0 %p", frame.BindGroup()), enc.calls[1])

	for i, item := range items {
		base := 2 + i*4
		assert.Equal(t, fmt.Sprintf("group 1 %p", item.Object.BindGroup()), enc.calls[base])
		assert.Equal(t, fmt.Sprintf("vertex 0 %p 0", item.Mesh.VertexBuffer()), enc.calls[base+1])
		assert.Equal(t, fmt.Sprintf("index %p %d 0", item.Mesh.IndexBuffer(), wgpu.IndexFormatUint16), enc.calls[base+2])
		assert.Equal(t, fmt.Sprintf("draw %d 1 0 0 0", item.Mesh.IndexCount()), enc.calls[base+3])
	}
}

func TestRecordDraws_SameSequenceForEveryEncoder(t *testing.T) {
	rp := &wgpu.RenderPipeline{}
	frame := objectProvider("frame")
	items := []DrawItem{
		{Mesh: meshProvider("a", 6), Object: objectProvider("a")},
		{Mesh: meshProvider("b", 12), Object: objectProvider("b")},
		{Mesh: meshProvider("c", 18), Object: objectProvider("c")},
	}

	direct, bundle := &recordingEncoder{}, &recordingEncoder{}
	RecordDraws(direct, rp, frame, items)
	RecordDraws(bundle, rp, frame, items)

	assert.Equal(t, direct.calls, bundle.calls)
}

func TestRecordDraws_NilFrameAndObject(t *testing.T) {
	enc := &recordingEncoder{}
	RecordDraws(enc, &wgpu.RenderPipeline{}, nil, []DrawItem{{Mesh: meshProvider("m", 3)}})

	require.Len(t, enc.calls, 4)
	assert.Contains(t, enc.calls[1], "vertex 0")
	assert.Equal(t, "draw 3 1 0 0 0", enc.calls[3])
}

func TestRecordDraws_NoItems(t *testing.T) {
	enc := &recordingEncoder{}
	RecordDraws(enc, &wgpu.RenderPipeline{}, objectProvider("frame"), nil)

	assert.Len(t, enc.calls, 2)
}

// The bundle encoder's DrawIndexed takes an unsigned base vertex; bundleEncoder bridges it.
var _ func(*wgpu.RenderBundleEncoder, uint32, uint32, uint32, uint32, uint32) = (*wgpu.RenderBundleEncoder).DrawIndexed

func TestBundleEncoder_ImplementsDrawEncoder(t *testing.T) {
	var enc DrawEncoder = bundleEncoder{}
	_, ok := enc.(bundleEncoder)
	assert.True(t, ok)
}

func TestRenderBundle_ReleaseIsNilSafe(t *testing.T) {
	var nilBundle *RenderBundle
	assert.NotPanics(t, nilBundle.Release)
	assert.Equal(t, "", nilBundle.Label())

	empty := NewRenderBundle("empty", nil)
	assert.NotPanics(t, empty.Release)
	assert.NotPanics(t, empty.Release)
	assert.Equal(t, "empty", empty.Label())
}

func TestHandles_SkipsEmptyBundles(t *testing.T) {
	gpu := &wgpu.RenderBundle{}
	got := handles([]*RenderBundle{nil, NewRenderBundle("empty", nil), NewRenderBundle("orbit", gpu)})
	require.Len(t, got, 1)
	assert.Same(t, gpu, got[0])
}
