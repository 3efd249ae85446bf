package planet

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("simple")
	require.NoError(t, err)
	assert.Equal(t, PresetSimple, p)

	p, err = ParsePreset(" Detailed ")
	require.NoError(t, err)
	assert.Equal(t, PresetDetailed, p)

	_, err = ParsePreset("cartoon")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestPreset_String(t *testing.T) {
	assert.Equal(t, "simple", PresetSimple.String())
	assert.Equal(t, "detailed", PresetDetailed.String())
	assert.Equal(t, "Preset(7)", Preset(7).String())
}

func TestConfigFor_Simple(t *testing.T) {
	cfg := ConfigFor(PresetSimple)

	assert.Equal(t, float32(75), cfg.Camera.Fov)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, float32(1000), cfg.Camera.Far)
	assert.Equal(t, float32(5), cfg.Camera.Distance)
	assert.Equal(t, 1000, cfg.Stars.Count)
	assert.Equal(t, float32(50), cfg.Stars.HalfWidth)
	assert.Equal(t, float32(0.05), cfg.Stars.Size) // 0.1 wide
	assert.False(t, cfg.Stars.Sprite)

	require.Len(t, cfg.Lights, 3)
	assert.False(t, cfg.Lights[0].Directional)
	assert.InDelta(t, 0x33/255.0, cfg.Lights[0].Color.X(), 1e-6)
	assert.Equal(t, float32(2), cfg.Lights[1].Intensity)
	assert.Equal(t, mgl32.Vec3{-10, 10, 10}, cfg.Lights[2].Position)
	assert.Equal(t, float32(10), cfg.Lights[2].Intensity)

	assert.InDelta(t, 0x14/255.0, cfg.ClearColor.Z(), 1e-6)
}

func TestConfigFor_Detailed(t *testing.T) {
	cfg := ConfigFor(PresetDetailed)

	assert.Equal(t, float32(40), cfg.Camera.Fov)
	assert.Equal(t, float32(12), cfg.Camera.Distance)
	assert.Equal(t, 100000, cfg.Stars.Count)
	assert.Equal(t, float32(25), cfg.Stars.HalfWidth)
	assert.True(t, cfg.Stars.Sprite)
	assert.Equal(t, 256, cfg.Sphere.Segments)
}

func TestConfig_Aspect(t *testing.T) {
	cfg := Config{Width: 1280, Height: 720}
	assert.InDelta(t, 16.0/9.0, cfg.Aspect(), 1e-6)

	cfg.Height = 0
	assert.Equal(t, float32(1), cfg.Aspect())
}
