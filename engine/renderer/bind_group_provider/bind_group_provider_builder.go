package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBindGroupLayout sets the layout the provider's bind group will be created against.
// The layout is borrowed, typically from a registered pipeline.
//
// Parameters:
//   - bgl: the bind group layout to use for this provider
//
// Returns:
//   - BindGroupProviderOption: a function that sets the bind group layout for this provider
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
	}
}

// WithSharedTextureView binds a texture view owned by another provider. Release leaves it alone.
//
// Parameters:
//   - binding: the binding index for this texture view
//   - tv: the shared texture view
//
// Returns:
//   - BindGroupProviderOption: a function that binds the shared texture view
func WithSharedTextureView(binding int, tv *wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.textureViews[binding] = tv
		p.shared[binding] = true
	}
}

// WithSharedSampler binds a sampler owned by another provider. Release leaves it alone.
//
// Parameters:
//   - binding: the binding index for this sampler
//   - s: the shared sampler
//
// Returns:
//   - BindGroupProviderOption: a function that binds the shared sampler
func WithSharedSampler(binding int, s *wgpu.Sampler) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.samplers[binding] = s
		p.shared[binding] = true
	}
}
