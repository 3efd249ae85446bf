package model

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	material       material.Material
	meshProvider   bind_group_provider.BindGroupProvider
	boundingRadius float32

	vertexData, indexData []byte
	indexCount            int
	instanceData          []byte
	instanceCount         int
}

// Model is a GPU-ready mesh: staged vertex, index and optional instance data, the
// provider that will own the uploaded buffers, and the material it is drawn with.
type Model interface {
	// Name retrieves the model identifier.
	Name() string

	// Material retrieves the material used to draw this model.
	//
	// Returns:
	//   - material.Material: the material, or nil if none was set
	Material() material.Material

	// SetMaterial replaces the material used to draw this model.
	//
	// Parameters:
	//   - mat: the new material
	SetMaterial(mat material.Material)

	// MeshProvider retrieves the provider holding the GPU vertex, index and instance buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the staged vertex bytes for slot 0.
	VertexData() []byte

	// IndexData returns the staged uint32 index bytes.
	IndexData() []byte

	// IndexCount returns the number of indices.
	IndexCount() int

	// InstanceData returns the staged per-instance bytes for slot 1, or nil for non-instanced meshes.
	InstanceData() []byte

	// InstanceCount returns the number of instances. Non-instanced meshes report 1.
	InstanceCount() int

	// BoundingRadius returns the distance from the model origin to its farthest vertex.
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model with the given options. A mesh provider labelled after
// the model is created when none is supplied.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new Model instance
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name+" Mesh",
			bind_group_provider.WithIndexCount(m.indexCount),
			bind_group_provider.WithInstanceCount(m.instanceCount),
		)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Material() material.Material {
	return m.material
}

func (m *model) SetMaterial(mat material.Material) {
	m.material = mat
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) InstanceData() []byte {
	return m.instanceData
}

func (m *model) InstanceCount() int {
	if m.instanceCount < 1 {
		return 1
	}
	return m.instanceCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
