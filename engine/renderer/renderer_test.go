package renderer_test

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertex = `
//@oxy:include vertex
//@oxy:include camera
//@oxy:group 0 0 storage_uniform camera camera

@vertex
fn vs_main(v: VertexInput) -> @builtin(position) vec4<f32> {
    return camera.projection * camera.view * vec4<f32>(v.position, 1.0);
}
`

const testFragment = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func testPipeline(t *testing.T, key string) pipeline.Pipeline {
	t.Helper()
	vs, err := shader.NewShader(key+"_vs", shader.ShaderTypeVertex, testVertex)
	require.NoError(t, err)
	fs, err := shader.NewShader(key+"_fs", shader.ShaderTypeFragment, testFragment)
	require.NoError(t, err)
	p, err := pipeline.NewPipeline(key, pipeline.WithVertexShader(vs), pipeline.WithFragmentShader(fs))
	require.NoError(t, err)
	return p
}

func newTestRenderer(t *testing.T, opts ...renderer.RendererBuilderOption) (renderer.Renderer, *renderertest.Backend) {
	t.Helper()
	backend := renderertest.NewBackend()
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, renderertest.Surface{W: 800, H: 600},
		append([]renderer.RendererBuilderOption{renderer.WithBackend(backend)}, opts...)...)
	require.NoError(t, err)
	return r, backend
}

func TestNewRenderer(t *testing.T) {
	_, backend := newTestRenderer(t,
		renderer.WithClearColor(mgl32.Vec3{0, 0.5, 1}),
		renderer.WithPresentMode(renderer.PresentModeUncapped),
	)
	assert.Equal(t, 800, backend.Width)
	assert.Equal(t, 600, backend.Height)
	assert.Equal(t, renderer.PresentModeUncapped, backend.PresentMode)
	assert.InDelta(t, 0.5, backend.ClearColor.G, 1e-6)
	assert.Equal(t, 1.0, backend.ClearColor.A)
}

func TestNewRenderer_Errors(t *testing.T) {
	_, err := renderer.NewRenderer(renderer.BackendTypeWGPU, nil)
	assert.ErrorIs(t, err, renderer.ErrNilSurface)

	backend := renderertest.NewBackend()
	backend.FailConfigure = errors.New("boom")
	_, err = renderer.NewRenderer(renderer.BackendTypeWGPU, renderertest.Surface{W: 1, H: 1}, renderer.WithBackend(backend))
	assert.Error(t, err)
	assert.True(t, backend.Released)
}

func TestRegisterPipelines_SkipsDuplicates(t *testing.T) {
	r, backend := newTestRenderer(t)
	p := testPipeline(t, "basic")

	require.NoError(t, r.RegisterPipelines(p, p))
	require.NoError(t, r.RegisterPipelines(p))
	assert.Equal(t, []string{"basic"}, backend.Pipelines)
	assert.Same(t, p, r.Pipeline("basic"))
	assert.Len(t, r.Pipelines(), 1)
	assert.Nil(t, r.Pipeline("missing"))
}

func TestResize_IgnoresEmpty(t *testing.T) {
	r, backend := newTestRenderer(t)
	require.NoError(t, r.Resize(0, 0))
	assert.Equal(t, 800, backend.Width)

	require.NoError(t, r.Resize(1024, 768))
	assert.Equal(t, 1024, backend.Width)
	assert.Equal(t, 768, backend.Height)
}

func TestDrawCall(t *testing.T) {
	r, backend := newTestRenderer(t)
	require.NoError(t, r.RegisterPipelines(testPipeline(t, "basic")))

	mesh := bind_group_provider.NewBindGroupProvider("Mesh")
	require.NoError(t, r.InitMeshBuffers(mesh, []byte{0}, []byte{0}, 6))
	cam := bind_group_provider.NewBindGroupProvider("Camera")

	require.NoError(t, r.BeginFrame())
	assert.ErrorIs(t, r.DrawCall("missing", mesh, nil), renderer.ErrUnknownPipeline)
	assert.Error(t, r.DrawCall("basic", mesh, nil))
	require.NoError(t, r.DrawCall("basic", mesh, []bind_group_provider.BindGroupProvider{cam}))
	require.NoError(t, r.EndFrame())
	r.Present()

	draws := backend.DrawList()
	require.Len(t, draws, 1)
	assert.Equal(t, renderertest.Draw{
		PipelineKey:   "basic",
		Mesh:          "Mesh",
		IndexCount:    6,
		InstanceCount: 1,
		BindGroups:    []string{"Camera"},
	}, draws[0])
	assert.Equal(t, 1, backend.Presented)
}

func TestDrawCall_SkipsEmptyMesh(t *testing.T) {
	r, backend := newTestRenderer(t)
	require.NoError(t, r.RegisterPipelines(testPipeline(t, "basic")))

	mesh := bind_group_provider.NewBindGroupProvider("Empty")
	cam := bind_group_provider.NewBindGroupProvider("Camera")
	require.NoError(t, r.DrawCall("basic", mesh, []bind_group_provider.BindGroupProvider{cam}))
	assert.Empty(t, backend.DrawList())
}

func TestWriteBuffers_SkipsEmpty(t *testing.T) {
	r, backend := newTestRenderer(t)
	r.WriteBuffers(nil)
	assert.Empty(t, backend.Writes)

	p := bind_group_provider.NewBindGroupProvider("Camera")
	r.WriteBuffers([]bind_group_provider.BufferWrite{{Provider: p, Data: []byte{1, 2, 3, 4}}})
	assert.Len(t, backend.WritesFor("Camera"), 1)
}
