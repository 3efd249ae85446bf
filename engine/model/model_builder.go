package model

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMaterial sets the material the Model is drawn with.
func WithMaterial(mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.material = mat
	}
}

// WithMeshProvider supplies an existing provider for the Model's GPU buffers.
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

// WithVertices stages surface vertices and records their bounding radius.
//
// Parameters:
//   - vertices: the mesh vertices
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertex data to a model
func WithVertices(vertices []GPUVertex) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = MarshalSlice(vertices)
		m.boundingRadius = ComputeBoundingRadius(vertices)
	}
}

// WithVertexData stages raw vertex bytes for layouts other than GPUVertex.
func WithVertexData(data []byte) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = data
	}
}

// WithIndices stages the triangle list indices.
//
// Parameters:
//   - indices: the uint32 indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the index data to a model
func WithIndices(indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.indexData = MarshalIndices(indices)
		m.indexCount = len(indices)
	}
}

// WithInstances stages per-instance bytes for vertex buffer slot 1.
//
// Parameters:
//   - data: the packed instance data
//   - count: the number of instances encoded in data
//
// Returns:
//   - ModelBuilderOption: a function that applies the instance data to a model
func WithInstances(data []byte, count int) ModelBuilderOption {
	return func(m *model) {
		m.instanceData = data
		m.instanceCount = count
	}
}

// WithBoundingRadius overrides the computed bounding radius.
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}
