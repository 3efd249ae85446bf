package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUSurfaceParamsSource is the canonical WGSL definition of the SurfaceParams struct.
// Matches GPUSurfaceParams layout exactly (128 bytes, WGSL uniform aligned).
//
//go:embed assets/surface_params.wgsl
var GPUSurfaceParamsSource string

// GPUSurfaceParams is the per-frame uniform for the water surface shader pair.
// Size: 128 bytes.
type GPUSurfaceParams struct {
	Model      [16]float32 // offset   0: object to world matrix (mat4x4<f32>)
	WaterColor [3]float32  // offset  64: base water color (vec3<f32>)
	Time       float32     // offset  76: elapsed seconds (f32)
	GlowColor  [3]float32  // offset  80: accepted, not read by any stage (vec3<f32>)
	Amplitude  float32     // offset  92: river displacement scale (f32)
	Frequency  float32     // offset  96: river band frequency (f32)
	Speed      float32     // offset 100: river phase speed (f32)
	Turbulence float32     // offset 104: noise displacement scale (f32)
	ColorShift float32     // offset 108: crest/trough tint strength (f32)
	Intensity  float32     // offset 112: fresnel multiplier, detailed preset only (f32)
	Lit        uint32      // offset 116: 1 when the light block modulates the result (u32)
	_pad0      float32     // offset 120
	_pad1      float32     // offset 124: padding to 128 bytes
}

// Size returns the size of the GPUSurfaceParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (128)
func (g *GPUSurfaceParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSurfaceParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUSurfaceParams) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf, 0, g.Model[:]...)
	putFloats(buf, 64, g.WaterColor[:]...)
	putFloats(buf, 76, g.Time)
	putFloats(buf, 80, g.GlowColor[:]...)
	putFloats(buf, 92, g.Amplitude, g.Frequency, g.Speed, g.Turbulence, g.ColorShift, g.Intensity)
	binary.LittleEndian.PutUint32(buf[116:], g.Lit)
	return buf
}

// GPUStarParamsSource is the canonical WGSL definition of the StarParams struct.
// Matches GPUStarParams layout exactly (96 bytes).
//
//go:embed assets/star_params.wgsl
var GPUStarParamsSource string

// GPUStarParams is the per-frame uniform for the star field shader pair.
// Size: 96 bytes.
type GPUStarParams struct {
	Model   [16]float32 // offset  0: object to world matrix (mat4x4<f32>)
	Color   [3]float32  // offset 64: star color (vec3<f32>)
	Size    float32     // offset 76: billboard half-extent in world units (f32)
	Time    float32     // offset 80: elapsed seconds (f32)
	Twinkle float32     // offset 84: brightness flicker amount, 0 disables (f32)
	_pad0   float32     // offset 88
	_pad1   float32     // offset 92: padding to 96 bytes
}

// ByteSize returns the size of the GPUStarParams struct in bytes.
// Named ByteSize because Size is the billboard extent field.
//
// Returns:
//   - int: the size of the struct in bytes (96)
func (g *GPUStarParams) ByteSize() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUStarParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (g *GPUStarParams) Marshal() []byte {
	buf := make([]byte, g.ByteSize())
	putFloats(buf, 0, g.Model[:]...)
	putFloats(buf, 64, g.Color[:]...)
	putFloats(buf, 76, g.Size, g.Time, g.Twinkle)
	return buf
}

func putFloats(buf []byte, offset int, values ...float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
	}
}
