package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/planet"
	"github.com/stretchr/testify/assert"
)

type fakePauser struct{ paused bool }

func (f *fakePauser) SetPaused(p bool) { f.paused = p }
func (f *fakePauser) Paused() bool     { return f.paused }

func TestKeyBindings(t *testing.T) {
	initial := planet.DefaultSurfaceParams()
	surface := planet.NewSurface(initial)
	p := &fakePauser{}
	onKey := keyBindings(p, surface, initial, nil)

	onKey(common.KeySpace)
	assert.True(t, p.paused)
	onKey(common.KeySpace)
	assert.False(t, p.paused)

	onKey(common.KeyUp)
	assert.InDelta(t, initial.Amplitude+0.1, surface.Params().Amplitude, 1e-6)

	for range 20 {
		onKey(common.KeyDown)
	}
	assert.Zero(t, surface.Params().Amplitude)

	onKey(common.KeyL)
	assert.True(t, surface.Params().Lit)

	onKey(common.KeyR)
	assert.Equal(t, initial, surface.Params())

	onKey(uint32('Q'))
	assert.Equal(t, initial, surface.Params())
}
