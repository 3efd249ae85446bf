package planet

import (
	"math"

	"github.com/Carmen-Shannon/oxy-planet/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Crest and trough thresholds and tints applied after the base color mix.
const (
	crestThreshold  = 0.05
	troughThreshold = -0.05
)

var (
	crestColor  = mgl32.Vec3{0.5, 0.5, 1.0}
	troughColor = mgl32.Vec3{0.957, 0.5, 0.9}
)

// FragmentInput is what the surface fragment stage receives from the vertex stage.
type FragmentInput struct {
	UV           mgl32.Vec2
	Displacement float32
	ViewPosition mgl32.Vec3 // undisplaced, view space
	Normal       mgl32.Vec3 // view space
}

// Rand is the shader hash: fract(sin(dot(uv, (12.9898, 78.233))) * 43758.5453).
// Every step is rounded to float32 as in the f32 shader; the fract is sensitive to it.
func Rand(uv mgl32.Vec2) float32 {
	d := float32(uv.X()*12.9898) + float32(uv.Y()*78.233)
	x := float32(math.Sin(float64(d))) * 43758.5453
	return x - float32(math.Floor(float64(x)))
}

// Noise is the product of three axis sines, sin(1.5x) * sin(1.8y) * sin(1.3z).
func Noise(p mgl32.Vec3) float32 {
	return float32(math.Sin(float64(p.X())*1.5) * math.Sin(float64(p.Y())*1.8) * math.Sin(float64(p.Z())*1.3))
}

// SphericalAngles returns asin of each normalized coordinate: latitude from y, longitude
// from x and the third angle from z. The input is not clamped, so a zero vector yields NaN.
//
// Parameters:
//   - p: a model-space position
//
// Returns:
//   - lat, lon, lang: the three angles in radians
func SphericalAngles(p mgl32.Vec3) (lat, lon, lang float32) {
	l := p.Len()
	return asin(p.Y() / l), asin(p.X() / l), asin(p.Z() / l)
}

// RiverPattern is the banded river field that drives the main displacement.
//
// Parameters:
//   - p: a model-space position
//   - uv: the vertex texture coordinate, hashed to jitter the band frequency
//   - t: elapsed seconds
//   - frequency: band frequency
//   - speed: phase speed along latitude
//
// Returns:
//   - float32: the pattern value in [-1, 1], or NaN for a zero position
func RiverPattern(p mgl32.Vec3, uv mgl32.Vec2, t, frequency, speed float32) float32 {
	lat, lon, lang := SphericalAngles(p)
	r := Rand(uv)
	return sin(lat*r*0.1*frequency*2+t*speed) *
		sin(lon*r*0.1*frequency*0.8) *
		sin(lang*r*0.2*frequency*0.5)
}

// Displace evaluates the surface vertex stage on the CPU.
//
// Parameters:
//   - v: the mesh vertex
//   - params: the surface uniforms; Time, Amplitude, Frequency, Speed and Turbulence are read
//
// Returns:
//   - float32: the displacement passed to the fragment stage
//   - mgl32.Vec3: the displaced model-space position
func Displace(v model.GPUVertex, params SurfaceParams) (float32, mgl32.Vec3) {
	pos := mgl32.Vec3(v.Position)
	normal := mgl32.Vec3(v.Normal)

	river := RiverPattern(pos, mgl32.Vec2(v.TexCoord), params.Time, params.Frequency, params.Speed)
	q := pos.Mul(2).Add(mgl32.Vec3{params.Time * 0.1, params.Time * 0.1, params.Time * 0.1})
	disp := river*params.Amplitude + Noise(q)*params.Turbulence*0.1

	return disp, pos.Add(normal.Mul(disp * 0.1))
}

// Shade evaluates the surface fragment stage of a preset on the CPU.
//
// Parameters:
//   - preset: selects the simple or detailed formula
//   - in: the interpolated vertex outputs
//   - params: the surface uniforms
//
// Returns:
//   - mgl32.Vec4: RGB color and alpha; alpha is 1 for the simple preset and the fresnel term otherwise
func Shade(preset Preset, in FragmentInput, params SurfaceParams) mgl32.Vec4 {
	shimmer := sin(in.UV.X()*20+in.UV.Y()*15+params.Time*2) * 0.05
	water := params.WaterColor.Mul(1 + shimmer)
	local := in.Displacement * 5
	cs := params.ColorShift
	shift := mgl32.Vec3{cs + Rand(in.UV)*0.1, cs, cs}

	if preset != PresetDetailed {
		color := ApplyCrestTrough(mix(water, shift, abs(local)), local)
		return color.Vec4(1)
	}

	fresnel := Fresnel(in.ViewPosition, in.Normal, params.Intensity)
	color := ApplyCrestTrough(mix(water, shift, abs(local)+cs*fresnel), local)
	return color.Vec4(fresnel)
}

// Fresnel is pow(max(dot(normalize(-viewPos), normalize(normal)), 0), 3) * intensity.
func Fresnel(viewPos, normal mgl32.Vec3, intensity float32) float32 {
	d := max(viewPos.Mul(-1).Normalize().Dot(normal.Normalize()), 0)
	return d * d * d * intensity
}

// ApplyCrestTrough tints color toward the crest color when local is above 0.05 and toward
// the trough color when below -0.05, by 2*|local|. Values at the thresholds are unchanged.
//
// Parameters:
//   - color: the mixed water color
//   - local: displacement scaled by 5
//
// Returns:
//   - mgl32.Vec3: the tinted color
func ApplyCrestTrough(color mgl32.Vec3, local float32) mgl32.Vec3 {
	if local > crestThreshold {
		color = mix(color, crestColor, local*2)
	}
	if local < troughThreshold {
		color = mix(color, troughColor, abs(local)*2)
	}
	return color
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func asin(x float32) float32 {
	return float32(math.Asin(float64(x)))
}

func abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
