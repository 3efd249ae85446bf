package main

import (
	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/logger"
	"github.com/Carmen-Shannon/oxy-planet/planet"
)

// amplitudeStep is the change applied per Up/Down key press.
const amplitudeStep = 0.1

// pauser is the part of engine.Engine the key bindings drive.
type pauser interface {
	SetPaused(paused bool)
	Paused() bool
}

// keyBindings returns the window key-down handler:
//   - Space pauses and resumes scene time
//   - Up/Down raise and lower the river amplitude
//   - L toggles lighting on the water
//   - R restores the surface parameters the program started with
func keyBindings(p pauser, surface *planet.Surface, initial planet.SurfaceParams, log logger.Logger) func(keyCode uint32) {
	log = logger.OrNop(log)
	return func(keyCode uint32) {
		switch keyCode {
		case common.KeySpace:
			p.SetPaused(!p.Paused())
			log.Infof("paused: %t", p.Paused())
		case common.KeyUp, common.KeyDown:
			step := float32(amplitudeStep)
			if keyCode == common.KeyDown {
				step = -step
			}
			surface.Update(func(sp *planet.SurfaceParams) {
				sp.Amplitude = max(sp.Amplitude+step, 0)
			})
			log.Infof("amplitude: %.2f", surface.Params().Amplitude)
		case common.KeyL:
			surface.Update(func(sp *planet.SurfaceParams) {
				sp.Lit = !sp.Lit
			})
			log.Infof("lit: %t", surface.Params().Lit)
		case common.KeyR:
			surface.Update(func(sp *planet.SurfaceParams) {
				*sp = initial
			})
			log.Infof("surface reset")
		}
	}
}
