package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUVertex_Marshal(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		TexCoord: [2]float32{0.25, 0.75},
	}
	assert.Equal(t, 32, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, 32)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:])))
}

func TestMarshalSlice(t *testing.T) {
	assert.Nil(t, MarshalSlice([]GPUPointInstance{}))

	buf := MarshalSlice([]GPUPointInstance{
		{Center: [3]float32{1, 2, 3}},
		{Center: [3]float32{4, 5, 6}},
	})
	require.Len(t, buf, 24)
	assert.Equal(t, float32(4), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
}

func TestMarshalIndices(t *testing.T) {
	buf := MarshalIndices([]uint32{0, 1, 70000})
	require.Len(t, buf, 12)
	assert.Equal(t, uint32(70000), binary.LittleEndian.Uint32(buf[8:]))
}

func TestBillboardQuad(t *testing.T) {
	corners, indices := BillboardQuad()
	assert.Len(t, corners, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, indices)
}

func TestNewModel(t *testing.T) {
	m := NewModel(
		WithName("planet"),
		WithVertices([]GPUVertex{{Position: [3]float32{0, 2, 0}}, {Position: [3]float32{1, 0, 0}}}),
		WithIndices([]uint32{0, 1, 0}),
	)

	assert.Equal(t, "planet", m.Name())
	assert.Len(t, m.VertexData(), 64)
	assert.Equal(t, 3, m.IndexCount())
	assert.Equal(t, 1, m.InstanceCount())
	assert.InDelta(t, 2, m.BoundingRadius(), 1e-6)
	require.NotNil(t, m.MeshProvider())
	assert.Equal(t, "planet Mesh", m.MeshProvider().Label())
	assert.Equal(t, 3, m.MeshProvider().IndexCount())
}

func TestNewModel_Instanced(t *testing.T) {
	corners, indices := BillboardQuad()
	m := NewModel(
		WithName("stars"),
		WithVertexData(MarshalSlice(corners)),
		WithIndices(indices),
		WithInstances(make([]byte, 12*5), 5),
	)
	assert.Len(t, m.VertexData(), 32)
	assert.Equal(t, 5, m.InstanceCount())
	assert.Equal(t, 5, m.MeshProvider().InstanceCount())
}
