package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
)

// rig is the implementation of the Rig interface.
type rig struct {
	mu       *sync.Mutex
	lights   []Light
	provider bind_group_provider.BindGroupProvider
}

// Rig is the scene-wide light set and the provider owning its LightBlock uniform.
type Rig interface {
	// Add appends a light to the rig.
	Add(l Light)

	// Lights returns a copy of the rig's lights in insertion order.
	Lights() []Light

	// Block folds the current lights into the GPU light block.
	Block() GPULightBlock

	// BindGroupProvider returns the provider owning the LightBlock buffer.
	BindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ Rig = &rig{}

// NewRig creates a Rig holding the given lights.
//
// Parameters:
//   - lights: the initial lights
//
// Returns:
//   - Rig: the new light rig
func NewRig(lights ...Light) Rig {
	return &rig{
		mu:       &sync.Mutex{},
		lights:   append([]Light(nil), lights...),
		provider: bind_group_provider.NewBindGroupProvider("Lights"),
	}
}

func (r *rig) Add(l Light) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lights = append(r.lights, l)
}

func (r *rig) Lights() []Light {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Light(nil), r.lights...)
}

func (r *rig) Block() GPULightBlock {
	return BuildLightBlock(r.Lights())
}

func (r *rig) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return r.provider
}
