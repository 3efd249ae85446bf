package renderer

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are handed to the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank, capping the frame rate to the refresh rate.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately and may tear.
	PresentModeUncapped
)

// String returns the lower-case mode name.
func (m PresentMode) String() string {
	if m == PresentModeVSync {
		return "vsync"
	}
	return "uncapped"
}

// MSAASampleCount is the number of samples per pixel of the main render pass.
// WebGPU guarantees 1 and 4; other counts depend on the adapter.
type MSAASampleCount uint32

const (
	// MSAAOff renders one sample per pixel.
	MSAAOff MSAASampleCount = 1

	// MSAA4x is the default.
	MSAA4x MSAASampleCount = 4
)

// Surface is the presentation target a backend draws to. window.Window satisfies it.
type Surface interface {
	// SurfaceDescriptor returns the platform descriptor used to create the GPU surface.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the drawable width in pixels.
	Width() int

	// Height returns the drawable height in pixels.
	Height() int
}

// Backend is the GPU API seam under the Renderer. The Renderer owns pipeline lookup and
// argument checks; a Backend only turns calls into GPU work. Tests substitute a recording
// Backend from the renderertest package.
type Backend interface {
	// ConfigureSurface (re)creates the swapchain and the depth and MSAA targets.
	//
	// Parameters:
	//   - width: surface width in pixels, must be positive
	//   - height: surface height in pixels, must be positive
	//
	// Returns:
	//   - error: an error if a render target cannot be created
	ConfigureSurface(width, height int) error

	// SetPresentMode takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the main pass clears to.
	SetClearColor(color wgpu.Color)

	// RegisterRenderPipeline compiles both stages of p and stores the GPU pipeline on it.
	//
	// Parameters:
	//   - p: a pipeline with vertex and fragment shaders
	//
	// Returns:
	//   - error: an error if shader compilation or pipeline creation fails
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data and stores the buffers on provider.
	//
	// Parameters:
	//   - provider: the mesh provider to store buffers on
	//   - vertexData: packed vertex data for slot 0
	//   - indexData: packed uint32 indices
	//   - indexCount: the number of indices drawn
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer uploads per-instance data for vertex slot 1 and stores it on provider.
	//
	// Parameters:
	//   - provider: the mesh provider to store the buffer on
	//   - data: packed instance data
	//   - count: the number of instances drawn
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte, count int) error

	// InitBindGroup creates a uniform buffer per binding of descriptor, sized by its
	// MinBindingSize, and a bind group over them, and stores all of it on provider.
	// Buffers the provider already holds are reused.
	//
	// Parameters:
	//   - provider: the provider that owns the group
	//   - descriptor: the merged layout of the group
	//
	// Returns:
	//   - error: an error if layout, buffer or bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues every write. Writes to bindings without a buffer are skipped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain image and opens the main render pass.
	//
	// Returns:
	//   - error: an error if a frame is already open or the image cannot be acquired
	BeginFrame() error

	// DrawCall encodes one indexed, instanced draw in the open pass. bindGroups[i] is set
	// at group i. The instance buffer, when the mesh has one, is bound at slot 1.
	DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame closes the pass and submits the frame's commands.
	//
	// Returns:
	//   - error: an error if no frame is open or the command buffer cannot be finished
	EndFrame() error

	// Present shows the submitted frame and releases the swapchain image.
	Present()

	// Release frees every GPU object the backend created.
	Release()
}
