package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithIndexCount presets the index count of a mesh provider before its buffers are uploaded.
//
// Parameters:
//   - count: the number of indices to draw
//
// Returns:
//   - BindGroupProviderOption: a function that sets the index count
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}

// WithInstanceCount presets the instance count of a mesh provider.
//
// Parameters:
//   - count: the number of instances to draw
//
// Returns:
//   - BindGroupProviderOption: a function that sets the instance count
func WithInstanceCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.instanceCount = count
	}
}
