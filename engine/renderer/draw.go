package renderer

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// DrawEncoder is the subset of commands shared by *wgpu.RenderPassEncoder and
// *wgpu.RenderBundleEncoder, so one recording routine can target either.
type DrawEncoder interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64)
	SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat, offset, size uint64)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

var (
	_ DrawEncoder = (*wgpu.RenderPassEncoder)(nil)
	_ DrawEncoder = bundleEncoder{}
)

// bundleEncoder adapts *wgpu.RenderBundleEncoder to DrawEncoder. The bundle encoder takes an
// unsigned base vertex where the pass encoder takes a signed one.
type bundleEncoder struct {
	*wgpu.RenderBundleEncoder
}

func (e bundleEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	e.RenderBundleEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, uint32(baseVertex), firstInstance)
}

// RenderBundle is a recorded draw sequence replayed with ExecuteBundles. A RenderBundle with no
// GPU handle is valid and executes nothing.
type RenderBundle struct {
	label  string
	bundle *wgpu.RenderBundle
}

// NewRenderBundle wraps a finished GPU bundle.
//
// Parameters:
//   - label: the debug label
//   - bundle: the GPU bundle, may be nil
//
// Returns:
//   - *RenderBundle: the wrapped bundle
func NewRenderBundle(label string, bundle *wgpu.RenderBundle) *RenderBundle {
	return &RenderBundle{label: label, bundle: bundle}
}

// Label returns the debug label.
func (b *RenderBundle) Label() string {
	if b == nil {
		return ""
	}
	return b.label
}

// Release frees the GPU bundle. Safe to call more than once and on nil.
func (b *RenderBundle) Release() {
	if b == nil || b.bundle == nil {
		return
	}
	b.bundle.Release()
	b.bundle = nil
}

// handles collects the GPU handles of bundles, skipping empty ones.
func handles(bundles []*RenderBundle) []*wgpu.RenderBundle {
	out := make([]*wgpu.RenderBundle, 0, len(bundles))
	for _, b := range bundles {
		if b != nil && b.bundle != nil {
			out = append(out, b.bundle)
		}
	}
	return out
}

// DrawItem is one indexed draw: a mesh provider holding vertex and index buffers and an optional
// object provider whose bind group is set at group 1.
type DrawItem struct {
	Mesh   bind_group_provider.BindGroupProvider
	Object bind_group_provider.BindGroupProvider
}

// RecordDraws encodes the pipeline, the frame bind group at group 0, then for each item its object
// bind group at group 1, its vertex buffer at slot 0, its index buffer, and one DrawIndexed call.
//
// Parameters:
//   - enc: the pass or bundle encoder to record into
//   - pipeline: the render pipeline to bind
//   - frame: the provider whose bind group holds per-frame uniforms (may be nil)
//   - items: the draws to record, in order
func RecordDraws(enc DrawEncoder, pipeline *wgpu.RenderPipeline, frame bind_group_provider.BindGroupProvider, items []DrawItem) {
	enc.SetPipeline(pipeline)
	if frame != nil {
		enc.SetBindGroup(0, frame.BindGroup(), nil)
	}
	for _, item := range items {
		if item.Object != nil {
			enc.SetBindGroup(1, item.Object.BindGroup(), nil)
		}
		enc.SetVertexBuffer(0, item.Mesh.VertexBuffer(), 0, wgpu.WholeSize)
		enc.SetIndexBuffer(item.Mesh.IndexBuffer(), item.Mesh.IndexFormat(), 0, wgpu.WholeSize)
		enc.DrawIndexed(uint32(item.Mesh.IndexCount()), 1, 0, 0, 0)
	}
}
