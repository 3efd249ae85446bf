package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexSource = `
//@oxy:include vertex
//@oxy:include camera
//@oxy:include surface_params

//@oxy:group 0 0 storage_uniform camera camera
//@oxy:group 1 0 storage_uniform params surface_params

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = camera.projection * camera.view * params.model * vec4<f32>(in.position, 1.0);
    out.uv = in.uv;
    return out;
}
`

const testInstancedSource = `
//@oxy:include quad_vertex
//@oxy:include point_instance
//@oxy:include camera
//@oxy:group 0 0 storage_uniform camera camera

@vertex
fn vs_star(corner: QuadVertexInput, star: PointInstance) -> @builtin(position) vec4<f32> {
    return camera.projection * camera.view * vec4<f32>(star.center, 1.0);
}
`

const testFragmentSource = `
//@oxy:include surface_params
//@oxy:include light_block
//@oxy:group 1 0 storage_uniform params surface_params
//@oxy:group 2 0 storage_uniform lights light_block

/* block comment with @vertex fn decoy() */
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return vec4<f32>(params.water_color, 1.0);
}
`

func TestParseAnnotation(t *testing.T) {
	a, err := parseAnnotation("  //@oxy:group 2 1 storage_read lights array<light_block>", 3)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, AnnotationTypeBindingGroup, a.Type)
	assert.Equal(t, 2, *a.Group)
	assert.Equal(t, 1, *a.Binding)
	assert.Equal(t, AnnotationArgLightBlock, a.StructType())

	a, err = parseAnnotation("let x = 1.0;", 4)
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestParseAnnotation_Errors(t *testing.T) {
	cases := []string{
		"//@oxy:",
		"//@oxy:include",
		"//@oxy:include texture",
		"//@oxy:group 0 0 storage_uniform camera",
		"//@oxy:group x 0 storage_uniform camera camera",
		"//@oxy:group 0 0 private camera camera",
		"//@oxy:group 0 0 storage_uniform camera unknown",
		"//@oxy:sampler 0 0",
	}
	for _, line := range cases {
		_, err := parseAnnotation(line, 1)
		assert.Error(t, err, line)
	}
}

func TestProviderOf(t *testing.T) {
	for arg, want := range map[AnnotationArg]Provider{
		AnnotationArgCamera:        ProviderCamera,
		AnnotationArgSurfaceParams: ProviderMaterial,
		AnnotationArgStarParams:    ProviderMaterial,
		AnnotationArgLightBlock:    ProviderLights,
	} {
		group, binding := 0, 0
		got, ok := ProviderOf(Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{annotationArgStorageTypeUniform, "v", arg},
			Group:   &group,
			Binding: &binding,
		})
		assert.True(t, ok, arg)
		assert.Equal(t, want, got, arg)
	}

	_, ok := ProviderOf(Annotation{Type: annotationTypeInclude, Args: []AnnotationArg{annotationArgVertex}})
	assert.False(t, ok)
}

func TestPreProcessor_Process(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process(testVertexSource)
	require.NoError(t, err)

	assert.Contains(t, out, "struct CameraUniform")
	assert.Contains(t, out, "struct SurfaceParams")
	assert.Contains(t, out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;")
	assert.Contains(t, out, "@group(1) @binding(0) var<uniform> params: SurfaceParams;")
	assert.NotContains(t, out, "@oxy:")

	decls := pp.Declarations()
	require.Len(t, decls, 2)
	assert.Equal(t, AnnotationArgCamera, decls[0].StructType())
	assert.Equal(t, AnnotationArgSurfaceParams, decls[1].StructType())

	// Declarations reset between calls.
	_, err = pp.Process("fn f() {}")
	require.NoError(t, err)
	assert.Empty(t, pp.Declarations())
}

func TestNewShader_Vertex(t *testing.T) {
	s, err := NewShader("surface_vertex", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, "camera", s.BindGroupVarName(0, 0))
	assert.Equal(t, "params", s.BindGroupVarName(1, 0))

	camera := s.BindGroupLayoutDescriptor(0)
	require.Len(t, camera.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, camera.Entries[0].Buffer.Type)
	assert.Equal(t, wgpu.ShaderStageVertex, camera.Entries[0].Visibility)
	assert.Equal(t, uint64(144), camera.Entries[0].Buffer.MinBindingSize)

	params := s.BindGroupLayoutDescriptor(1)
	require.Len(t, params.Entries, 1)
	assert.Equal(t, uint64(128), params.Entries[0].Buffer.MinBindingSize)

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(32), layouts[0].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layouts[0].StepMode)
	require.Len(t, layouts[0].Attributes, 3)
	assert.Equal(t, uint64(24), layouts[0].Attributes[2].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layouts[0].Attributes[2].Format)
}

func TestNewShader_InstancedLayouts(t *testing.T) {
	s, err := NewShader("star_vertex", ShaderTypeVertex, testInstancedSource)
	require.NoError(t, err)

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 2)
	assert.Equal(t, uint64(8), layouts[0].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layouts[0].StepMode)
	assert.Equal(t, uint64(12), layouts[1].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, layouts[1].StepMode)
	assert.Equal(t, uint32(1), layouts[1].Attributes[0].ShaderLocation)
}

func TestNewShader_Fragment(t *testing.T) {
	s, err := NewShader("surface_fragment", ShaderTypeFragment, testFragmentSource)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Empty(t, s.VertexLayouts())

	lights := s.BindGroupLayoutDescriptor(2)
	require.Len(t, lights.Entries, 1)
	assert.Equal(t, wgpu.ShaderStageFragment, lights.Entries[0].Visibility)
	assert.Equal(t, uint64(144), lights.Entries[0].Buffer.MinBindingSize)
	assert.Len(t, s.Declarations(), 2)
}

func TestNewShader_Errors(t *testing.T) {
	_, err := NewShader("empty", ShaderTypeVertex, "")
	assert.Error(t, err)

	_, err = NewShader("no_entry", ShaderTypeFragment, "fn helper() {}")
	assert.ErrorContains(t, err, "no @fragment entry point")

	_, err = NewShader("bad_annotation", ShaderTypeVertex, "//@oxy:include nope\n@vertex fn main() {}")
	assert.Error(t, err)

	_, err = NewShaderFromFile("missing", ShaderTypeVertex, "does/not/exist.wgsl")
	assert.Error(t, err)
}

func TestResolveTypeLayout(t *testing.T) {
	known := map[string]wgslTypeLayout{"DirectionalLight": {32, 16}}

	l, ok := resolveTypeLayout("array<DirectionalLight, 4>", known)
	require.True(t, ok)
	assert.Equal(t, uint64(128), l.size)

	l, ok = resolveTypeLayout("array<vec3<f32>>", known)
	require.True(t, ok)
	assert.Equal(t, uint64(16), l.size)

	_, ok = resolveTypeLayout("texture_2d<f32>", known)
	assert.False(t, ok)
}
