package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/planet"
	"github.com/go-gl/mathgl/mgl32"
)

// options is the parsed command line: the preset configuration with overrides applied,
// plus the switches that configure the engine rather than the scene.
type options struct {
	cfg     planet.Config
	vsync   bool
	msaa    bool
	debug   bool
	profile bool
}

// colorValue is a flag.Value accepting #RRGGBB, 0xRRGGBB or a CSS color name.
type colorValue struct {
	color mgl32.Vec3
}

func (c *colorValue) String() string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(c.color.X()*255+0.5), uint8(c.color.Y()*255+0.5), uint8(c.color.Z()*255+0.5))
}

func (c *colorValue) Set(s string) error {
	v, err := common.ParseColor(s)
	if err != nil {
		return err
	}
	c.color = v
	return nil
}

// parseFlags parses args into options. Flags left unset keep the selected preset's
// defaults, so "-preset detailed -stars 500" changes only the star count.
//
// Parameters:
//   - args: the command line without the program name
//   - output: where usage and parse errors are written
//
// Returns:
//   - options: the resolved options
//   - error: a parse or validation error, or flag.ErrHelp for -h
func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("oxy-planet", flag.ContinueOnError)
	fs.SetOutput(output)

	defaults := planet.ConfigFor(planet.PresetSimple)
	var (
		presetName = fs.String("preset", "simple", "scene preset: simple or detailed")
		width      = fs.Int("width", defaults.Width, "window width in pixels")
		height     = fs.Int("height", defaults.Height, "window height in pixels")
		seed       = fs.Uint64("seed", defaults.Stars.Seed, "star field seed")
		stars      = fs.Int("stars", 0, "star count (default from preset)")
		vsync      = fs.Bool("vsync", true, "wait for vertical sync")
		msaa       = fs.Bool("msaa", true, "4x multisample anti-aliasing")
		amplitude  = fs.Float64("amplitude", float64(defaults.Surface.Amplitude), "river displacement scale")
		frequency  = fs.Float64("frequency", float64(defaults.Surface.Frequency), "river band frequency")
		speed      = fs.Float64("speed", float64(defaults.Surface.Speed), "river phase speed")
		turbulence = fs.Float64("turbulence", float64(defaults.Surface.Turbulence), "noise displacement scale")
		colorShift = fs.Float64("color-shift", float64(defaults.Surface.ColorShift), "crest/trough tint strength")
		intensity  = fs.Float64("intensity", float64(defaults.Surface.Intensity), "fresnel multiplier (detailed preset)")
		lit        = fs.Bool("lit", false, "modulate the water by the scene lights")
		debug      = fs.Bool("debug", false, "debug logging")
		profile    = fs.Bool("profile", false, "log FPS and memory once per second")
	)
	water := &colorValue{color: defaults.Surface.WaterColor}
	clearColor := &colorValue{color: defaults.ClearColor}
	fs.Var(water, "water", "water color (#RRGGBB, 0xRRGGBB or a CSS name)")
	fs.Var(clearColor, "clear", "background color (#RRGGBB, 0xRRGGBB or a CSS name)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	preset, err := planet.ParsePreset(*presetName)
	if err != nil {
		return options{}, err
	}
	cfg := planet.ConfigFor(preset)

	var applyErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "seed":
			cfg.Stars.Seed = *seed
		case "stars":
			if *stars <= 0 {
				applyErr = fmt.Errorf("-stars must be positive, got %d", *stars)
			}
			cfg.Stars.Count = *stars
		case "amplitude":
			cfg.Surface.Amplitude = float32(*amplitude)
		case "frequency":
			cfg.Surface.Frequency = float32(*frequency)
		case "speed":
			cfg.Surface.Speed = float32(*speed)
		case "turbulence":
			cfg.Surface.Turbulence = float32(*turbulence)
		case "color-shift":
			cfg.Surface.ColorShift = float32(*colorShift)
		case "intensity":
			cfg.Surface.Intensity = float32(*intensity)
		case "lit":
			cfg.Surface.Lit = *lit
		case "water":
			cfg.Surface.WaterColor = water.color
		case "clear":
			cfg.ClearColor = clearColor.color
		}
	})
	if applyErr != nil {
		return options{}, applyErr
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return options{}, fmt.Errorf("window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}

	return options{
		cfg:     cfg,
		vsync:   *vsync,
		msaa:    *msaa,
		debug:   *debug,
		profile: *profile,
	}, nil
}
