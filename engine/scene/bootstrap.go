package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/game_object"
	"github.com/Carmen-Shannon/oxy-planet/engine/light"
	"github.com/Carmen-Shannon/oxy-planet/engine/logger"
	"github.com/Carmen-Shannon/oxy-planet/engine/model"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-planet/planet"
)

var (
	// ErrNilWindow is returned by SetupScene when no container is given.
	ErrNilWindow = errors.New("scene: nil container")

	// ErrInvalidViewport is returned by SetupScene for a container with no area.
	ErrInvalidViewport = errors.New("scene: container has zero size")

	// ErrNilScene is returned by CreateStars and CreatePlanet for a nil scene.
	ErrNilScene = errors.New("scene: nil scene")
)

// Viewport is what SetupScene hands back to the caller: the scene and the two objects
// the caller drives directly on resize.
type Viewport struct {
	Scene    Scene
	Camera   camera.Camera
	Renderer renderer.Renderer
}

// Resize reconfigures the render surface and the camera aspect. Non-positive sizes
// (a minimized window) are ignored.
//
// Parameters:
//   - width: the new width in pixels
//   - height: the new height in pixels
//
// Returns:
//   - error: an error if the surface cannot be reconfigured
func (v *Viewport) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := v.Renderer.Resize(width, height); err != nil {
		return err
	}
	v.Camera.SetAspect(float32(width) / float32(height))
	return nil
}

// Release frees the scene's GPU resources, then the renderer.
func (v *Viewport) Release() {
	v.Scene.Release()
	v.Renderer.Release()
}

// setupConfig collects the SetupScene options.
type setupConfig struct {
	log         logger.Logger
	rendererOps []renderer.RendererBuilderOption
}

// SetupOption is a functional option for SetupScene.
type SetupOption func(*setupConfig)

// WithRendererOptions forwards options to renderer.NewRenderer, after the clear color
// from the config so they can override it.
func WithRendererOptions(opts ...renderer.RendererBuilderOption) SetupOption {
	return func(c *setupConfig) {
		c.rendererOps = append(c.rendererOps, opts...)
	}
}

// WithSetupLogger sets the logger handed to the renderer and the scene.
func WithSetupLogger(l logger.Logger) SetupOption {
	return func(c *setupConfig) {
		c.log = l
	}
}

// SetupScene creates the camera, renderer and lights for one preset and returns them
// in a Viewport. The camera aspect is taken from the container size at call time.
//
// Parameters:
//   - container: the render target, typically a window.Window
//   - cfg: the preset configuration (camera, clear color, lights)
//   - opts: variadic list of SetupOption functions
//
// Returns:
//   - *Viewport: the scene, camera and renderer
//   - error: ErrNilWindow, ErrInvalidViewport, or a wrapped renderer creation error
func SetupScene(container renderer.Surface, cfg planet.Config, opts ...SetupOption) (*Viewport, error) {
	if container == nil {
		return nil, ErrNilWindow
	}
	w, h := container.Width(), container.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, w, h)
	}

	sc := &setupConfig{}
	for _, opt := range opts {
		opt(sc)
	}
	log := logger.OrNop(sc.log)

	cam := camera.NewCamera(
		camera.WithFov(cfg.Camera.Fov),
		camera.WithAspect(float32(w)/float32(h)),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithController(camera.NewOrbitController(camera.WithRadius(cfg.Camera.Distance))),
	)

	rOpts := append([]renderer.RendererBuilderOption{
		renderer.WithClearColor(cfg.ClearColor),
		renderer.WithLogger(log),
	}, sc.rendererOps...)
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, container, rOpts...)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	rig := light.NewRig()
	for _, lc := range cfg.Lights {
		lt := light.LightTypeAmbient
		if lc.Directional {
			lt = light.LightTypeDirectional
		}
		rig.Add(light.NewLight(lt,
			light.WithColor(lc.Color),
			light.WithIntensity(lc.Intensity),
			light.WithPosition(lc.Position.X(), lc.Position.Y(), lc.Position.Z()),
		))
	}

	s := NewScene(
		WithName(cfg.Preset.String()),
		WithRenderer(r),
		WithCamera(cam),
		WithLights(rig),
		WithLogger(log),
	)
	log.Infof("scene %s ready: %dx%d, fov %.0f, camera at z=%.1f, %d lights",
		cfg.Preset, w, h, cfg.Camera.Fov, cfg.Camera.Distance, len(cfg.Lights))
	return &Viewport{Scene: s, Camera: cam, Renderer: r}, nil
}

// CreateStars generates the star point cloud, registers the star pipeline on the scene's
// renderer and adds the field to the scene as one instanced billboard object.
//
// Parameters:
//   - s: a scene returned by SetupScene
//   - cfg: the star field configuration
//   - opts: extra GameObject options (name, position, ...)
//
// Returns:
//   - game_object.GameObject: the star field object
//   - error: ErrNilScene, a generation error for a non-positive count or invalid
//     half-width, or a wrapped pipeline or scene error
func CreateStars(s Scene, cfg planet.StarConfig, opts ...game_object.GameObjectBuilderOption) (game_object.GameObject, error) {
	if s == nil {
		return nil, ErrNilScene
	}
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("star count must be positive, got %d", cfg.Count)
	}
	r := s.Renderer()
	if r == nil {
		return nil, ErrNoRenderer
	}

	field, err := planet.GenerateStars(cfg.Count, cfg.HalfWidth, cfg.Seed, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("generate stars: %w", err)
	}
	p, err := planet.StarPipeline(cfg.Sprite)
	if err != nil {
		return nil, fmt.Errorf("star pipeline: %w", err)
	}
	if err := r.RegisterPipelines(p); err != nil {
		return nil, err
	}

	style := planet.StarStyle{Color: cfg.Color, Size: cfg.Size}
	if cfg.Sprite {
		style.Twinkle = cfg.Twinkle
	}
	mat := material.NewMaterial(
		material.WithName("Stars"),
		material.WithPipelineKey(p.PipelineKey()),
		material.WithUniformSource(style),
	)
	quad, indices := model.BillboardQuad()
	mdl := model.NewModel(
		model.WithName("Stars"),
		model.WithMaterial(mat),
		model.WithVertexData(model.MarshalSlice(quad)),
		model.WithIndices(indices),
		model.WithInstances(field.InstanceData(), field.Len()),
		model.WithBoundingRadius(cfg.HalfWidth*float32(math.Sqrt(3))),
	)

	obj := game_object.NewGameObject(append([]game_object.GameObjectBuilderOption{game_object.WithModel(mdl)}, opts...)...)
	if err := s.Add(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// CreatePlanet builds the water sphere for cfg.Preset, registers its pipeline and adds
// it to the scene.
//
// Parameters:
//   - s: a scene returned by SetupScene
//   - cfg: the preset configuration (sphere resolution and surface parameters)
//   - opts: extra GameObject options (rotation speed, position, ...)
//
// Returns:
//   - game_object.GameObject: the planet object
//   - *planet.Surface: the live uniform block, for tuning parameters while running
//   - error: ErrNilScene, or a wrapped mesh, pipeline or scene error
func CreatePlanet(s Scene, cfg planet.Config, opts ...game_object.GameObjectBuilderOption) (game_object.GameObject, *planet.Surface, error) {
	if s == nil {
		return nil, nil, ErrNilScene
	}
	r := s.Renderer()
	if r == nil {
		return nil, nil, ErrNoRenderer
	}

	vertices, indices, err := planet.UVSphere(cfg.Sphere)
	if err != nil {
		return nil, nil, fmt.Errorf("planet mesh: %w", err)
	}
	p, err := planet.SurfacePipeline(cfg.Preset)
	if err != nil {
		return nil, nil, fmt.Errorf("surface pipeline: %w", err)
	}
	if err := r.RegisterPipelines(p); err != nil {
		return nil, nil, err
	}

	surface := planet.NewSurface(cfg.Surface)
	mat := material.NewMaterial(
		material.WithName("Water"),
		material.WithPipelineKey(p.PipelineKey()),
		material.WithUniformSource(surface),
	)
	mdl := model.NewModel(
		model.WithName("Planet"),
		model.WithMaterial(mat),
		model.WithVertices(vertices),
		model.WithIndices(indices),
	)

	obj := game_object.NewGameObject(append([]game_object.GameObjectBuilderOption{game_object.WithModel(mdl)}, opts...)...)
	if err := s.Add(obj); err != nil {
		return nil, nil, err
	}
	return obj, surface, nil
}
