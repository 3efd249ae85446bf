package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constSource []byte

func (c constSource) Uniforms(float32, mgl32.Mat4) []byte { return c }

func readFloat(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestGPUSurfaceParams_Layout(t *testing.T) {
	p := GPUSurfaceParams{
		Model:      mgl32.Ident4(),
		WaterColor: [3]float32{0, 0.5, 1},
		Time:       2.5,
		Amplitude:  1,
		Frequency:  2,
		Speed:      3,
		Turbulence: 4,
		ColorShift: 5,
		Intensity:  6,
		Lit:        1,
	}
	require.Equal(t, 128, p.Size())

	buf := p.Marshal()
	require.Len(t, buf, 128)
	assert.Equal(t, float32(1), readFloat(buf, 0))
	assert.Equal(t, float32(0.5), readFloat(buf, 68))
	assert.Equal(t, float32(2.5), readFloat(buf, 76))
	assert.Equal(t, float32(1), readFloat(buf, 92))
	assert.Equal(t, float32(4), readFloat(buf, 104))
	assert.Equal(t, float32(6), readFloat(buf, 112))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[116:]))
}

func TestGPUStarParams_Layout(t *testing.T) {
	p := GPUStarParams{Color: [3]float32{1, 1, 1}, Size: 0.1, Time: 3, Twinkle: 0.5}
	require.Equal(t, 96, p.ByteSize())

	buf := p.Marshal()
	require.Len(t, buf, 96)
	assert.Equal(t, float32(0.1), readFloat(buf, 76))
	assert.Equal(t, float32(3), readFloat(buf, 80))
	assert.Equal(t, float32(0.5), readFloat(buf, 84))
}

func TestNewMaterial(t *testing.T) {
	src := constSource{1, 2, 3}
	m := NewMaterial(WithName("water"), WithPipelineKey("surface_simple"), WithUniformSource(src))

	assert.Equal(t, "water", m.Name())
	assert.Equal(t, "surface_simple", m.PipelineKey())
	assert.Equal(t, []byte{1, 2, 3}, m.UniformSource().Uniforms(0, mgl32.Ident4()))
	assert.Equal(t, "water Material", m.BindGroupProvider().Label())

	m.SetPipelineKey("surface_detailed")
	assert.Equal(t, "surface_detailed", m.PipelineKey())
}
