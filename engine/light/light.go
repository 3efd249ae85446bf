package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment equally regardless of orientation.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant source with no attenuation. It is placed
	// at a position and shines toward the origin.
	LightTypeDirectional
)

// String returns the lower-case light type name.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	enabled   bool
}

// Light is a scene light source. Lights are collected by a Rig, which marshals them into
// the LightBlock uniform read by lit surface shaders.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: ambient or directional
	Type() LightType

	// Position returns the world-space position of the light. Unused for ambient lights.
	Position() mgl32.Vec3

	// Direction returns the normalized direction the light travels, from its position
	// toward the origin. Zero for ambient lights and for a directional light at the origin.
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Enabled returns whether this light contributes to rendering.
	Enabled() bool

	// SetPosition moves the light.
	//
	// Parameters:
	//   - pos: the new world-space position
	SetPosition(pos mgl32.Vec3)

	// SetIntensity changes the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled toggles whether the light is marshaled.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type. Defaults are a white, enabled
// light with intensity 1 at the origin.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	if l.lightType != LightTypeDirectional || l.position.Len() == 0 {
		return mgl32.Vec3{}
	}
	return l.position.Mul(-1).Normalize()
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(pos mgl32.Vec3) {
	l.position = pos
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
