package scene_test

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/game_object"
	"github.com/Carmen-Shannon/oxy-planet/engine/model"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-planet/engine/scene"
	"github.com/Carmen-Shannon/oxy-planet/planet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, preset planet.Preset) (*scene.Viewport, *renderertest.Backend, planet.Config) {
	t.Helper()
	cfg := planet.ConfigFor(preset)
	cfg.Sphere.Segments = 8
	cfg.Sphere.Rings = 6
	cfg.Stars.Count = 64
	backend := renderertest.NewBackend()
	vp, err := scene.SetupScene(renderertest.Surface{W: 1280, H: 720}, cfg,
		scene.WithRendererOptions(renderer.WithBackend(backend)))
	require.NoError(t, err)
	return vp, backend, cfg
}

func floatAt(b []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[offset:]))
}

func TestSetupScene(t *testing.T) {
	vp, backend, _ := setup(t, planet.PresetSimple)

	require.NotNil(t, vp.Scene)
	require.NotNil(t, vp.Camera)
	require.NotNil(t, vp.Renderer)
	assert.InDelta(t, 1280.0/720.0, vp.Camera.Aspect(), 1e-6)
	assert.Equal(t, float32(75), vp.Camera.Fov())
	assert.Equal(t, float32(0.1), vp.Camera.Near())
	assert.Equal(t, float32(1000), vp.Camera.Far())
	assert.InDelta(t, 5, vp.Camera.Position().Z(), 1e-5)

	assert.Equal(t, 1280, backend.Width)
	assert.Equal(t, 720, backend.Height)
	assert.Equal(t, common.ToWGPUColor(common.HexColor(0x000814), 1), backend.ClearColor)
	assert.Len(t, vp.Scene.Lights().Lights(), 3)
	assert.Same(t, vp.Camera, vp.Scene.Camera())
}

func TestSetupScene_Detailed(t *testing.T) {
	vp, _, _ := setup(t, planet.PresetDetailed)
	assert.Equal(t, float32(40), vp.Camera.Fov())
	assert.InDelta(t, 12, vp.Camera.Position().Z(), 1e-5)
}

func TestSetupScene_Errors(t *testing.T) {
	cfg := planet.ConfigFor(planet.PresetSimple)

	_, err := scene.SetupScene(nil, cfg)
	assert.ErrorIs(t, err, scene.ErrNilWindow)

	_, err = scene.SetupScene(renderertest.Surface{W: 0, H: 720}, cfg)
	assert.ErrorIs(t, err, scene.ErrInvalidViewport)

	backend := renderertest.NewBackend()
	backend.FailConfigure = errors.New("no adapter")
	_, err = scene.SetupScene(renderertest.Surface{W: 800, H: 600}, cfg,
		scene.WithRendererOptions(renderer.WithBackend(backend)))
	assert.Error(t, err)
	assert.True(t, backend.Released)
}

func TestCreateStars(t *testing.T) {
	vp, backend, cfg := setup(t, planet.PresetSimple)

	obj, err := scene.CreateStars(vp.Scene, cfg.Stars)
	require.NoError(t, err)
	assert.Equal(t, "Stars", obj.Name())
	assert.Equal(t, 1, vp.Scene.Count())
	assert.Same(t, obj, vp.Scene.Get(obj.ID()))

	assert.Contains(t, backend.Pipelines, planet.StarPipelineKey(false))
	assert.Equal(t, 6, backend.Meshes["Stars Mesh"])
	assert.Len(t, backend.Instances["Stars Mesh"], 64*12)
	assert.Equal(t, 64, obj.Model().MeshProvider().InstanceCount())
}

func TestCreateStars_Errors(t *testing.T) {
	_, err := scene.CreateStars(nil, planet.StarConfig{Count: 10, HalfWidth: 1})
	assert.ErrorIs(t, err, scene.ErrNilScene)

	vp, _, cfg := setup(t, planet.PresetSimple)
	cfg.Stars.Count = 0
	_, err = scene.CreateStars(vp.Scene, cfg.Stars)
	assert.Error(t, err)
	assert.Zero(t, vp.Scene.Count())

	_, err = scene.CreateStars(scene.NewScene(), planet.StarConfig{Count: 10, HalfWidth: 1})
	assert.ErrorIs(t, err, scene.ErrNoRenderer)
}

func TestCreatePlanet(t *testing.T) {
	vp, backend, cfg := setup(t, planet.PresetSimple)

	obj, surface, err := scene.CreatePlanet(vp.Scene, cfg)
	require.NoError(t, err)
	require.NotNil(t, surface)
	assert.Equal(t, "Planet", obj.Name())
	assert.Equal(t, cfg.Surface, surface.Params())
	assert.Contains(t, backend.Pipelines, planet.SurfacePipelineKey(planet.PresetSimple))
	assert.Equal(t, 8*6*6, backend.Meshes["Planet Mesh"])

	_, _, err = scene.CreatePlanet(nil, cfg)
	assert.ErrorIs(t, err, scene.ErrNilScene)
}

func TestUpdate_WritesUniforms(t *testing.T) {
	vp, backend, cfg := setup(t, planet.PresetSimple)
	_, _, err := scene.CreatePlanet(vp.Scene, cfg)
	require.NoError(t, err)
	_, err = scene.CreateStars(vp.Scene, cfg.Stars)
	require.NoError(t, err)

	vp.Scene.Update(0.25)
	vp.Scene.Update(0.25)
	assert.InDelta(t, 0.5, vp.Scene.Elapsed(), 1e-6)

	cam := backend.WritesFor("Camera")
	require.Len(t, cam, 2)
	assert.Len(t, cam[1].Data, 144)

	lights := backend.WritesFor("Lights")
	require.Len(t, lights, 2)
	assert.Len(t, lights[1].Data, 144)

	water := backend.WritesFor("Water Material")
	require.Len(t, water, 2)
	assert.Len(t, water[1].Data, 128)
	assert.InDelta(t, 0.5, floatAt(water[1].Data, 76), 1e-6)

	stars := backend.WritesFor("Stars Material")
	require.Len(t, stars, 2)
	assert.Len(t, stars[1].Data, 96)
	assert.InDelta(t, 0.5, floatAt(stars[1].Data, 80), 1e-6)
}

func TestUpdate_LightsSkippedWithoutLitPipeline(t *testing.T) {
	vp, backend, cfg := setup(t, planet.PresetSimple)
	_, err := scene.CreateStars(vp.Scene, cfg.Stars)
	require.NoError(t, err)

	vp.Scene.Update(0.1)
	assert.Len(t, backend.WritesFor("Camera"), 1)
	assert.Empty(t, backend.WritesFor("Lights"))
}

func TestDrawCalls_OpaqueBeforeBlended(t *testing.T) {
	vp, backend, cfg := setup(t, planet.PresetDetailed)
	_, _, err := scene.CreatePlanet(vp.Scene, cfg)
	require.NoError(t, err)
	stars := cfg.Stars
	stars.Sprite = false
	_, err = scene.CreateStars(vp.Scene, stars)
	require.NoError(t, err)

	require.NoError(t, vp.Renderer.BeginFrame())
	require.NoError(t, vp.Scene.DrawCalls())
	require.NoError(t, vp.Renderer.EndFrame())

	draws := backend.DrawList()
	require.Len(t, draws, 2)
	assert.Equal(t, planet.StarPipelineKey(false), draws[0].PipelineKey)
	assert.Equal(t, []string{"Camera", "Stars Material"}, draws[0].BindGroups)
	assert.Equal(t, 64, draws[0].InstanceCount)

	assert.Equal(t, planet.SurfacePipelineKey(planet.PresetDetailed), draws[1].PipelineKey)
	assert.Equal(t, []string{"Camera", "Water Material", "Lights"}, draws[1].BindGroups)
	assert.Equal(t, "Planet Mesh", draws[1].Mesh)
}

func TestAdd_SharedBindGroupsCreatedOnce(t *testing.T) {
	vp, backend, cfg := setup(t, planet.PresetSimple)
	_, _, err := scene.CreatePlanet(vp.Scene, cfg)
	require.NoError(t, err)
	_, err = scene.CreateStars(vp.Scene, cfg.Stars)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, bg := range backend.BindGroups {
		counts[bg.Provider]++
	}
	assert.Equal(t, map[string]int{
		"Camera":         1,
		"Water Material": 1,
		"Lights":         1,
		"Stars Material": 1,
	}, counts)
}

func TestDrawCalls_SkipsDisabled(t *testing.T) {
	vp, backend, cfg := setup(t, planet.PresetSimple)
	obj, err := scene.CreateStars(vp.Scene, cfg.Stars)
	require.NoError(t, err)
	obj.SetEnabled(false)

	vp.Scene.Update(0.1)
	assert.Empty(t, backend.WritesFor("Stars Material"))
	require.NoError(t, vp.Scene.DrawCalls())
	assert.Empty(t, backend.DrawList())
}

func TestRemove(t *testing.T) {
	vp, _, cfg := setup(t, planet.PresetSimple)
	obj, err := scene.CreateStars(vp.Scene, cfg.Stars)
	require.NoError(t, err)

	assert.True(t, vp.Scene.Remove(obj.ID()))
	assert.False(t, vp.Scene.Remove(obj.ID()))
	assert.Nil(t, vp.Scene.Get(obj.ID()))
	assert.Zero(t, vp.Scene.Count())
}

func TestAdd_Errors(t *testing.T) {
	vp, _, _ := setup(t, planet.PresetSimple)

	assert.ErrorIs(t, vp.Scene.Add(nil), scene.ErrNilObject)
	assert.ErrorIs(t, vp.Scene.Add(game_object.NewGameObject()), scene.ErrNoModel)

	bare := game_object.NewGameObject(game_object.WithModel(model.NewModel(model.WithName("Bare"))))
	assert.ErrorIs(t, vp.Scene.Add(bare), scene.ErrNoMaterial)

	unregistered := game_object.NewGameObject(game_object.WithModel(model.NewModel(
		model.WithName("Orphan"),
		model.WithMaterial(material.NewMaterial(material.WithPipelineKey("missing"))),
	)))
	assert.ErrorIs(t, vp.Scene.Add(unregistered), renderer.ErrUnknownPipeline)

	assert.ErrorIs(t, scene.NewScene().Add(unregistered), scene.ErrNoRenderer)
}

func TestAdd_FailureReleasesMesh(t *testing.T) {
	vp, backend, _ := setup(t, planet.PresetSimple)
	p, err := planet.StarPipeline(false)
	require.NoError(t, err)
	require.NoError(t, vp.Renderer.RegisterPipelines(p))

	quad, indices := model.BillboardQuad()
	mdl := model.NewModel(
		model.WithName("Empty Stars"),
		model.WithMaterial(material.NewMaterial(
			material.WithName("Empty Stars"),
			material.WithPipelineKey(p.PipelineKey()),
			material.WithUniformSource(planet.StarStyle{Size: 0.05}),
		)),
		model.WithVertexData(model.MarshalSlice(quad)),
		model.WithIndices(indices),
	)

	err = vp.Scene.Add(game_object.NewGameObject(game_object.WithModel(mdl)))
	require.Error(t, err)
	assert.Contains(t, backend.Meshes, "Empty Stars Mesh")
	assert.Zero(t, mdl.MeshProvider().IndexCount())
	assert.Zero(t, vp.Scene.Count())
}

func TestViewport_Resize(t *testing.T) {
	vp, backend, _ := setup(t, planet.PresetSimple)

	require.NoError(t, vp.Resize(800, 800))
	assert.Equal(t, 800, backend.Width)
	assert.InDelta(t, 1, vp.Camera.Aspect(), 1e-6)

	require.NoError(t, vp.Resize(0, 0))
	assert.Equal(t, 800, backend.Width)

	vp.Release()
	assert.True(t, backend.Released)
}
