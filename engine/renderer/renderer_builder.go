package renderer

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/logger"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBackend supplies a ready Backend instead of creating one for the backend type.
// The surface passed to NewRenderer is then only used for its size.
//
// Parameters:
//   - b: the backend to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackend(b Backend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = b
	}
}

// WithPresentMode sets the surface present mode.
//
// Parameters:
//   - mode: PresentModeVSync or PresentModeUncapped
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the sample count of the main render pass. The default is MSAA4x.
//
// Parameters:
//   - count: MSAAOff or MSAA4x; other counts are adapter-dependent
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithClearColor sets the background color of the main pass.
func WithClearColor(color mgl32.Vec3) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithForceSoftwareRenderer requests the fallback (CPU) adapter. It needs a software
// Vulkan driver such as lavapipe or SwiftShader.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger used for pipeline registration and resize messages.
func WithLogger(l logger.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.log = l
	}
}
