package planet

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// SurfaceParams are the water surface uniforms. Time is overwritten with the scene's
// elapsed time on every upload.
type SurfaceParams struct {
	Time       float32
	Amplitude  float32
	Frequency  float32
	Speed      float32
	Turbulence float32
	ColorShift float32
	Intensity  float32
	WaterColor mgl32.Vec3
	GlowColor  mgl32.Vec3
	Lit        bool
}

// DefaultSurfaceParams returns the uniform values both presets start from.
func DefaultSurfaceParams() SurfaceParams {
	return SurfaceParams{
		Amplitude:  0.5,
		Frequency:  10,
		Speed:      0.5,
		Turbulence: 1,
		ColorShift: 0.2,
		Intensity:  1.5,
		WaterColor: mgl32.Vec3{0.0, 0.3, 0.8},
		GlowColor:  mgl32.Vec3{0.3, 0.6, 1.0},
	}
}

// GPU packs the parameters with a model matrix into the uniform block layout.
func (p SurfaceParams) GPU(model mgl32.Mat4) material.GPUSurfaceParams {
	g := material.GPUSurfaceParams{
		Model:      model,
		WaterColor: p.WaterColor,
		Time:       p.Time,
		GlowColor:  p.GlowColor,
		Amplitude:  p.Amplitude,
		Frequency:  p.Frequency,
		Speed:      p.Speed,
		Turbulence: p.Turbulence,
		ColorShift: p.ColorShift,
		Intensity:  p.Intensity,
	}
	if p.Lit {
		g.Lit = 1
	}
	return g
}

// Surface is the live uniform block of a planet. It is safe for concurrent use: the tick
// loop uploads it while input handlers adjust it.
type Surface struct {
	mu     *sync.Mutex
	params SurfaceParams
}

var _ material.UniformSource = &Surface{}

// NewSurface creates a Surface holding params.
func NewSurface(params SurfaceParams) *Surface {
	return &Surface{mu: &sync.Mutex{}, params: params}
}

// Params returns a copy of the current parameters.
func (s *Surface) Params() SurfaceParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Update applies fn to the parameters under the lock.
//
// Parameters:
//   - fn: mutates the parameters in place
func (s *Surface) Update(fn func(p *SurfaceParams)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.params)
}

// Uniforms stamps elapsed into Time and returns the marshaled SurfaceParams block.
func (s *Surface) Uniforms(elapsed float32, model mgl32.Mat4) []byte {
	s.mu.Lock()
	s.params.Time = elapsed
	g := s.params.GPU(model)
	s.mu.Unlock()
	return g.Marshal()
}
