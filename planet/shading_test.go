package planet

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-planet/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRand(t *testing.T) {
	assert.Equal(t, float32(0), Rand(mgl32.Vec2{}))

	for _, uv := range []mgl32.Vec2{{0.25, 0.75}, {1, 1}, {-3.5, 12}} {
		r := Rand(uv)
		assert.GreaterOrEqual(t, r, float32(0))
		assert.Less(t, r, float32(1))
		assert.Equal(t, r, Rand(uv))
	}
}

func TestRand_Float32Rounding(t *testing.T) {
	// x = sin(61.9222) * 43758.5453 rounds to a float32 with 1/256 resolution.
	assert.InDelta(t, 0.8671875, Rand(mgl32.Vec2{0.25, 0.75}), 1e-6)
	assert.InDelta(t, 0.18359375, Rand(mgl32.Vec2{0.5, 0.5}), 1e-6)
}

func TestNoise(t *testing.T) {
	assert.Equal(t, float32(0), Noise(mgl32.Vec3{}))
	want := math.Sin(1.5) * math.Sin(1.8) * math.Sin(1.3)
	assert.InDelta(t, want, Noise(mgl32.Vec3{1, 1, 1}), 1e-6)
}

func TestSphericalAngles(t *testing.T) {
	lat, lon, lang := SphericalAngles(mgl32.Vec3{0, 2, 0})
	assert.InDelta(t, math.Pi/2, lat, 1e-6)
	assert.InDelta(t, 0, lon, 1e-6)
	assert.InDelta(t, 0, lang, 1e-6)

	lat, lon, lang = SphericalAngles(mgl32.Vec3{})
	assert.True(t, math.IsNaN(float64(lat)))
	assert.True(t, math.IsNaN(float64(lon)))
	assert.True(t, math.IsNaN(float64(lang)))
}

func TestDisplace_ZeroAmplitude(t *testing.T) {
	v := model.GPUVertex{
		Position: [3]float32{0, 0, 1},
		Normal:   [3]float32{0, 0, 1},
		TexCoord: [2]float32{0.3, 0.6},
	}
	params := DefaultSurfaceParams()
	params.Amplitude = 0
	params.Turbulence = 0

	disp, pos := Displace(v, params)
	assert.Equal(t, float32(0), disp)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, pos)
}

func TestDisplace_AlongNormal(t *testing.T) {
	v := model.GPUVertex{
		Position: [3]float32{0.6, 0, 0.8},
		Normal:   [3]float32{0.6, 0, 0.8},
		TexCoord: [2]float32{0.1, 0.9},
	}
	params := DefaultSurfaceParams()
	params.Time = 2

	disp, pos := Displace(v, params)
	river := RiverPattern(mgl32.Vec3(v.Position), mgl32.Vec2(v.TexCoord), 2, params.Frequency, params.Speed)
	noise := Noise(mgl32.Vec3{1.2 + 0.2, 0.2, 1.6 + 0.2})
	assert.InDelta(t, river*params.Amplitude+noise*params.Turbulence*0.1, disp, 1e-5)

	offset := pos.Sub(mgl32.Vec3(v.Position))
	assert.InDelta(t, disp*0.1*0.6, offset.X(), 1e-6)
	assert.InDelta(t, 0, offset.Y(), 1e-6)
	assert.InDelta(t, disp*0.1*0.8, offset.Z(), 1e-6)
}

func TestShade_FlatWater(t *testing.T) {
	params := DefaultSurfaceParams()
	params.ColorShift = 0
	in := FragmentInput{
		ViewPosition: mgl32.Vec3{0, 0, -5},
		Normal:       mgl32.Vec3{0, 0, 1},
	}

	simple := Shade(PresetSimple, in, params)
	assert.Equal(t, params.WaterColor.Vec4(1), simple)

	detailed := Shade(PresetDetailed, in, params)
	assert.True(t, detailed.Vec3().ApproxEqualThreshold(params.WaterColor, 1e-6))
	assert.InDelta(t, params.Intensity, detailed.W(), 1e-6)
}

func TestShade_DetailedEdgeIsTransparent(t *testing.T) {
	in := FragmentInput{
		UV:           mgl32.Vec2{0.5, 0.5},
		ViewPosition: mgl32.Vec3{0, 0, -5},
		Normal:       mgl32.Vec3{1, 0, 0},
	}
	out := Shade(PresetDetailed, in, DefaultSurfaceParams())
	assert.InDelta(t, 0, out.W(), 1e-6)
}

func TestFresnel(t *testing.T) {
	assert.InDelta(t, 2, Fresnel(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, 3}, 2), 1e-6)
	assert.Equal(t, float32(0), Fresnel(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, -1}, 2))

	half := Fresnel(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 1}, 1)
	assert.InDelta(t, math.Pow(math.Sqrt2/2, 3), half, 1e-6)
}

func TestApplyCrestTrough(t *testing.T) {
	base := mgl32.Vec3{0.1, 0.2, 0.3}

	assert.Equal(t, base, ApplyCrestTrough(base, 0))
	assert.Equal(t, base, ApplyCrestTrough(base, 0.05))
	assert.Equal(t, base, ApplyCrestTrough(base, -0.05))

	assert.Equal(t, crestColor, ApplyCrestTrough(base, 0.5))
	assert.Equal(t, troughColor, ApplyCrestTrough(base, -0.5))

	partial := ApplyCrestTrough(base, 0.25)
	assert.True(t, partial.ApproxEqualThreshold(mix(base, crestColor, 0.5), 1e-6))
}
