package material

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key.
//
// Parameters:
//   - key: the pipeline key registered with the renderer
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithUniformSource sets the producer of the material's per-frame uniform bytes.
func WithUniformSource(source UniformSource) MaterialBuilderOption {
	return func(m *material) {
		m.source = source
	}
}

// WithBindGroupProvider supplies an existing provider for the material's GPU resources.
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
