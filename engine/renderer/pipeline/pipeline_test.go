package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `
//@oxy:include vertex
//@oxy:include camera
//@oxy:include surface_params
//@oxy:group 0 0 storage_uniform camera camera
//@oxy:group 1 0 storage_uniform params surface_params

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return camera.projection * camera.view * params.model * vec4<f32>(in.position, 1.0);
}
`

const fragmentSource = `
//@oxy:include surface_params
//@oxy:include light_block
//@oxy:group 1 0 storage_uniform params surface_params
//@oxy:group 2 0 storage_uniform lights light_block

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(params.water_color, 1.0);
}
`

func newShaders(t *testing.T) (shader.Shader, shader.Shader) {
	t.Helper()
	vs, err := shader.NewShader("vs", shader.ShaderTypeVertex, vertexSource)
	require.NoError(t, err)
	fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, fragmentSource)
	require.NoError(t, err)
	return vs, fs
}

func TestNewPipeline(t *testing.T) {
	vs, fs := newShaders(t)
	p, err := NewPipeline("surface", WithVertexShader(vs), WithFragmentShader(fs), WithBlend(AdditiveBlend))
	require.NoError(t, err)

	assert.Equal(t, "surface", p.PipelineKey())
	assert.Equal(t, 3, p.BindGroupCount())
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.BlendFactorOne, p.BlendState().Color.DstFactor)
	assert.Nil(t, p.RenderPipeline())
	assert.Len(t, p.Declarations(), 4)

	material := p.BindGroupLayoutDescriptor(1)
	require.Len(t, material.Entries, 1)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, material.Entries[0].Visibility)

	assert.Equal(t, wgpu.ShaderStageVertex, p.BindGroupLayoutDescriptor(0).Entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageFragment, p.BindGroupLayoutDescriptor(2).Entries[0].Visibility)
	assert.Empty(t, p.BindGroupLayoutDescriptor(5).Entries)
}

func TestNewPipeline_Errors(t *testing.T) {
	vs, fs := newShaders(t)

	_, err := NewPipeline("missing", WithVertexShader(vs))
	assert.Error(t, err)

	_, err = NewPipeline("swapped", WithVertexShader(fs), WithFragmentShader(vs))
	assert.ErrorContains(t, err, "not a vertex shader")
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 1, Visibility: wgpu.ShaderStageVertex}}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
		3: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
	}

	merged := MergeBindGroupLayouts(vertex, fragment)
	require.Len(t, merged, 2)

	entries := merged[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, uint32(1), entries[1].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entries[1].Visibility)

	// Inputs are not mutated.
	assert.Equal(t, wgpu.ShaderStageVertex, vertex[0].Entries[0].Visibility)
}
