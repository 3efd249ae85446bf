package material

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformSource produces the bytes of a material's uniform block for one frame.
type UniformSource interface {
	// Uniforms packs the material state for upload.
	//
	// Parameters:
	//   - elapsed: seconds since the scene started
	//   - model: the object to world matrix of the object being drawn
	//
	// Returns:
	//   - []byte: the uniform block bytes, laid out as the bound WGSL struct
	Uniforms(elapsed float32, model mgl32.Mat4) []byte
}

// material is the implementation of the Material interface.
type material struct {
	name              string
	pipelineKey       string
	source            UniformSource
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material ties a render pipeline to the uniform block that parameterizes it.
//
// The uniform source is queried every frame and its bytes are written to the
// provider's binding 0 buffer. The pipeline key selects the shader pair.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// UniformSource retrieves the producer of this material's uniform bytes.
	//
	// Returns:
	//   - UniformSource: the uniform source, or nil for materials without uniforms
	UniformSource() UniformSource

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// A provider labelled after the material is created when none is supplied.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{}
	for _, opt := range options {
		opt(m)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider(m.name + " Material")
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) UniformSource() UniformSource {
	return m.source
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}
