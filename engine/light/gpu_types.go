package light

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// MaxDirectionalLights is the fixed array length of LightBlock.lights.
const MaxDirectionalLights = 4

// GPULightBlockSource is the canonical WGSL definition of the DirectionalLight and
// LightBlock structs. Matches GPULightBlock layout exactly (144 bytes).
//
//go:embed assets/light_block.wgsl
var GPULightBlockSource string

// GPUDirectionalLight is one entry of the LightBlock.lights array.
// Size: 32 bytes.
type GPUDirectionalLight struct {
	Direction [3]float32 // offset  0: normalized travel direction (vec3<f32>)
	Intensity float32    // offset 12: scalar intensity (f32)
	Color     [3]float32 // offset 16: RGB color (vec3<f32>)
	_pad0     float32    // offset 28: padding to 32 bytes
}

// GPULightBlock is the GPU-aligned light uniform.
// Size: 144 bytes.
type GPULightBlock struct {
	Ambient [3]float32                                // offset  0: ambient color premultiplied by intensity
	Count   uint32                                    // offset 12: number of valid entries in Lights
	Lights  [MaxDirectionalLights]GPUDirectionalLight // offset 16: directional lights
}

// Size returns the size of the GPULightBlock struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPULightBlock) Size() int {
	return 16 + MaxDirectionalLights*32
}

// Marshal serializes the GPULightBlock struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPULightBlock) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Ambient[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:], g.Count)
	for n, l := range g.Lights {
		base := 16 + n*32
		for i := range 3 {
			binary.LittleEndian.PutUint32(buf[base+i*4:], math.Float32bits(l.Direction[i]))
			binary.LittleEndian.PutUint32(buf[base+16+i*4:], math.Float32bits(l.Color[i]))
		}
		binary.LittleEndian.PutUint32(buf[base+12:], math.Float32bits(l.Intensity))
	}
	return buf
}

// BuildLightBlock folds a light list into a GPULightBlock. Enabled ambient lights are
// summed into Ambient. Enabled directional lights fill Lights in order; any beyond
// MaxDirectionalLights are dropped.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - GPULightBlock: the packed block
func BuildLightBlock(lights []Light) GPULightBlock {
	var block GPULightBlock
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		switch l.Type() {
		case LightTypeAmbient:
			c := l.Color().Mul(l.Intensity())
			for i := range 3 {
				block.Ambient[i] += c[i]
			}
		case LightTypeDirectional:
			if block.Count >= MaxDirectionalLights {
				continue
			}
			block.Lights[block.Count] = GPUDirectionalLight{
				Direction: l.Direction(),
				Intensity: l.Intensity(),
				Color:     l.Color(),
			}
			block.Count++
		}
	}
	return block
}
