// Command oxy-planet renders an animated water planet inside a star field.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-planet/engine"
	"github.com/Carmen-Shannon/oxy-planet/engine/logger"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/scene"
	"github.com/Carmen-Shannon/oxy-planet/engine/window"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "oxy-planet:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	log := logger.NewDefaultLogger("oxy-planet", opts.debug)

	win, err := window.NewWindow(
		window.WithTitle("oxy-planet ("+opts.cfg.Preset.String()+")"),
		window.WithSize(opts.cfg.Width, opts.cfg.Height),
	)
	if err != nil {
		return err
	}

	presentMode := renderer.PresentModeVSync
	if !opts.vsync {
		presentMode = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAA4x
	if !opts.msaa {
		msaa = renderer.MSAAOff
	}
	vp, err := scene.SetupScene(win, opts.cfg,
		scene.WithSetupLogger(log),
		scene.WithRendererOptions(renderer.WithPresentMode(presentMode), renderer.WithMSAA(msaa)),
	)
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("setup scene: %w", err)
	}

	eng, err := build(win, vp, opts, log)
	if err != nil {
		vp.Release()
		_ = win.Close()
		return err
	}

	log.Infof("drag to orbit, scroll to zoom, space to pause, up/down for amplitude, L for lights, R to reset, esc to quit")
	return eng.Run()
}

// build adds the planet and the star field to the viewport's scene and wraps both in an
// engine with the key bindings installed.
func build(win window.Window, vp *scene.Viewport, opts options, log logger.Logger) (engine.Engine, error) {
	_, surface, err := scene.CreatePlanet(vp.Scene, opts.cfg)
	if err != nil {
		return nil, fmt.Errorf("create planet: %w", err)
	}
	stars, err := scene.CreateStars(vp.Scene, opts.cfg.Stars)
	if err != nil {
		return nil, fmt.Errorf("create stars: %w", err)
	}
	log.Debugf("%d stars, sprite %t", stars.Model().InstanceCount(), opts.cfg.Stars.Sprite)

	eng, err := engine.NewEngine(win, vp,
		engine.WithLogger(log),
		engine.WithProfiling(opts.profile),
	)
	if err != nil {
		return nil, err
	}
	win.SetKeyDownCallback(keyBindings(eng, surface, surface.Params(), log))
	return eng, nil
}
