package planet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownPreset is returned by ParsePreset for names other than "simple" and "detailed".
var ErrUnknownPreset = errors.New("unknown preset")

// Preset selects one of the two shader and scene variants.
type Preset int

const (
	// PresetSimple is the flat-shaded variant: wide camera, 1000 flat stars, opaque water.
	PresetSimple Preset = iota

	// PresetDetailed adds fresnel alpha, a narrow camera and a dense sprite star field.
	PresetDetailed
)

// String returns the preset name accepted by ParsePreset.
func (p Preset) String() string {
	switch p {
	case PresetSimple:
		return "simple"
	case PresetDetailed:
		return "detailed"
	default:
		return fmt.Sprintf("Preset(%d)", int(p))
	}
}

// ParsePreset converts a case-insensitive preset name into a Preset.
//
// Parameters:
//   - name: "simple" or "detailed"
//
// Returns:
//   - Preset: the parsed preset
//   - error: ErrUnknownPreset wrapped with the offending name
func ParsePreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple":
		return PresetSimple, nil
	case "detailed":
		return PresetDetailed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// CameraConfig is the perspective camera placement.
type CameraConfig struct {
	Fov      float32 // vertical, degrees
	Near     float32
	Far      float32
	Distance float32 // eye distance from the origin along +Z
}

// LightConfig describes one scene light.
type LightConfig struct {
	Directional bool
	Color       mgl32.Vec3
	Intensity   float32
	Position    mgl32.Vec3
}

// StarConfig describes the decorative star field.
type StarConfig struct {
	Count     int
	HalfWidth float32 // points are uniform in [-HalfWidth, HalfWidth] on each axis
	Size      float32 // billboard half-extent in world units, half the rendered star diameter
	Color     mgl32.Vec3
	Sprite    bool    // radial falloff sprite with additive blending instead of flat quads
	Twinkle   float32 // sprite brightness flicker, ignored for flat stars
	Seed      uint64
	Workers   int // chunks generated concurrently, values below 1 mean one
}

// SphereConfig is the UV sphere resolution of the planet mesh.
type SphereConfig struct {
	Radius   float32
	Segments int
	Rings    int
}

// Config is everything SetupScene, CreateStars and CreatePlanet need for one preset.
type Config struct {
	Preset     Preset
	Width      int
	Height     int
	ClearColor mgl32.Vec3
	Camera     CameraConfig
	Lights     []LightConfig
	Stars      StarConfig
	Surface    SurfaceParams
	Sphere     SphereConfig
}

// Aspect returns Width/Height, or 1 when Height is not positive.
func (c Config) Aspect() float32 {
	if c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// ConfigFor returns the defaults of a preset.
//
// Parameters:
//   - preset: the preset to describe
//
// Returns:
//   - Config: a fully populated configuration
func ConfigFor(preset Preset) Config {
	cfg := Config{
		Preset:     preset,
		Width:      1280,
		Height:     720,
		ClearColor: common.HexColor(0x000814),
		Camera:     CameraConfig{Fov: 75, Near: 0.1, Far: 1000, Distance: 5},
		Lights: []LightConfig{
			{Color: common.HexColor(0x333333), Intensity: 1},
			{Directional: true, Color: mgl32.Vec3{1, 1, 1}, Intensity: 2, Position: mgl32.Vec3{10, 10, 10}},
			{Directional: true, Color: mgl32.Vec3{1, 1, 1}, Intensity: 10, Position: mgl32.Vec3{-10, 10, 10}},
		},
		Stars: StarConfig{
			Count:     1000,
			HalfWidth: 50,
			Size:      0.05,
			Color:     mgl32.Vec3{1, 1, 1},
			Seed:      1,
			Workers:   4,
		},
		Surface: DefaultSurfaceParams(),
		Sphere:  SphereConfig{Radius: 1, Segments: 64, Rings: 64},
	}

	if preset == PresetDetailed {
		cfg.Camera.Fov = 40
		cfg.Camera.Distance = 12
		cfg.Stars.Count = 100000
		cfg.Stars.HalfWidth = 25
		cfg.Stars.Sprite = true
		cfg.Stars.Twinkle = 0.5
		cfg.Sphere.Segments = 256
		cfg.Sphere.Rings = 256
	}
	return cfg
}
