package planet

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	//go:embed assets/surface_vertex.wgsl
	surfaceVertexSource string

	//go:embed assets/surface_fragment_simple.wgsl
	surfaceFragmentSimpleSource string

	//go:embed assets/surface_fragment_detailed.wgsl
	surfaceFragmentDetailedSource string

	//go:embed assets/star_vertex.wgsl
	starVertexSource string

	//go:embed assets/star_fragment_flat.wgsl
	starFragmentFlatSource string

	//go:embed assets/star_fragment_sprite.wgsl
	starFragmentSpriteSource string
)

// SurfacePipelineKey returns the pipeline key of a preset's water surface.
func SurfacePipelineKey(preset Preset) string {
	return "surface_" + preset.String()
}

// StarPipelineKey returns the pipeline key of the flat or sprite star field.
func StarPipelineKey(sprite bool) string {
	if sprite {
		return "stars_sprite"
	}
	return "stars_flat"
}

// SurfacePipeline builds the water surface pipeline of a preset. Both presets share the
// displacement vertex stage. The detailed fragment writes fresnel into alpha, so it blends.
//
// Parameters:
//   - preset: selects the fragment stage
//
// Returns:
//   - pipeline.Pipeline: the pipeline, not yet registered with a renderer
//   - error: an error if either stage fails to parse
func SurfacePipeline(preset Preset) (pipeline.Pipeline, error) {
	key := SurfacePipelineKey(preset)
	fragmentSource := surfaceFragmentSimpleSource
	if preset == PresetDetailed {
		fragmentSource = surfaceFragmentDetailedSource
	}

	vs, err := shader.NewShader(key+"_vs", shader.ShaderTypeVertex, surfaceVertexSource)
	if err != nil {
		return nil, fmt.Errorf("surface pipeline: %w", err)
	}
	fs, err := shader.NewShader(key+"_fs", shader.ShaderTypeFragment, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("surface pipeline: %w", err)
	}

	opts := []pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithDepthTestEnabled(true),
		pipeline.WithDepthWriteEnabled(true),
		pipeline.WithCullMode(wgpu.CullModeBack),
	}
	if preset == PresetDetailed {
		opts = append(opts, pipeline.WithBlend(pipeline.AlphaBlend))
	}
	return pipeline.NewPipeline(key, opts...)
}

// StarPipeline builds the star field pipeline. Flat stars are opaque quads; sprites use a
// radial falloff with additive blending and leave the depth buffer untouched.
//
// Parameters:
//   - sprite: selects the sprite fragment stage
//
// Returns:
//   - pipeline.Pipeline: the pipeline, not yet registered with a renderer
//   - error: an error if either stage fails to parse
func StarPipeline(sprite bool) (pipeline.Pipeline, error) {
	key := StarPipelineKey(sprite)
	fragmentSource := starFragmentFlatSource
	if sprite {
		fragmentSource = starFragmentSpriteSource
	}

	vs, err := shader.NewShader(key+"_vs", shader.ShaderTypeVertex, starVertexSource)
	if err != nil {
		return nil, fmt.Errorf("star pipeline: %w", err)
	}
	fs, err := shader.NewShader(key+"_fs", shader.ShaderTypeFragment, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("star pipeline: %w", err)
	}

	opts := []pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithDepthTestEnabled(true),
		pipeline.WithDepthWriteEnabled(!sprite),
		pipeline.WithCullMode(wgpu.CullModeNone),
	}
	if sprite {
		opts = append(opts, pipeline.WithBlend(pipeline.AdditiveBlend))
	}
	return pipeline.NewPipeline(key, opts...)
}
