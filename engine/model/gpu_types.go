package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for surface meshes.
// Matches GPUVertex layout exactly (32 bytes, tightly packed vertex attributes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is a single surface mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 32 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: unit normal (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 32)
	putFloats(buf, 0, g.Position[:]...)
	putFloats(buf, 12, g.Normal[:]...)
	putFloats(buf, 24, g.TexCoord[:]...)
	return buf
}

// GPUQuadVertexSource is the canonical WGSL definition of the QuadVertexInput struct.
//
//go:embed assets/quad_vertex.wgsl
var GPUQuadVertexSource string

// GPUQuadVertex is one corner of a camera-facing billboard, in quad-local units [-1, 1].
// Size: 8 bytes.
type GPUQuadVertex struct {
	Corner [2]float32 // offset 0: billboard corner (8 bytes)
}

// Marshal serializes the GPUQuadVertex struct into a byte buffer suitable for GPU upload.
func (g *GPUQuadVertex) Marshal() []byte {
	buf := make([]byte, 8)
	putFloats(buf, 0, g.Corner[:]...)
	return buf
}

// GPUPointInstanceSource is the canonical WGSL definition of the PointInstance struct.
// The struct name ends in "Instance", so the shader parser steps it per instance.
//
//go:embed assets/point_instance.wgsl
var GPUPointInstanceSource string

// GPUPointInstance is the per-instance center of one billboard.
// Size: 12 bytes.
type GPUPointInstance struct {
	Center [3]float32 // offset 0: world-space center (12 bytes)
}

// Marshal serializes the GPUPointInstance struct into a byte buffer suitable for GPU upload.
func (g *GPUPointInstance) Marshal() []byte {
	buf := make([]byte, 12)
	putFloats(buf, 0, g.Center[:]...)
	return buf
}

// MarshalSlice concatenates the GPU encoding of every element in items.
//
// Parameters:
//   - items: the GPU structs to encode, in buffer order
//
// Returns:
//   - []byte: the packed buffer, or nil for an empty slice
func MarshalSlice[T any, P interface {
	*T
	Marshal() []byte
}](items []T) []byte {
	if len(items) == 0 {
		return nil
	}
	var out []byte
	for i := range items {
		b := P(&items[i]).Marshal()
		if out == nil {
			out = make([]byte, 0, len(b)*len(items))
		}
		out = append(out, b...)
	}
	return out
}

// MarshalIndices encodes uint32 indices little-endian for an index buffer.
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, 4*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// ComputeBoundingRadius returns the largest distance from the origin to any vertex position.
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		maxDistSq = max(maxDistSq, p[0]*p[0]+p[1]*p[1]+p[2]*p[2])
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}

func putFloats(buf []byte, offset int, values ...float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
	}
}
