package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/logger"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNilSurface is returned by NewRenderer when no surface is given.
	ErrNilSurface = errors.New("renderer: nil surface")

	// ErrUnknownPipeline is returned by DrawCall for a key that was never registered.
	ErrUnknownPipeline = errors.New("renderer: unknown pipeline")
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu  *sync.Mutex
	log logger.Logger

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     Backend

	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           mgl32.Vec3
}

// Renderer is the high-level draw API. It caches pipelines by key and forwards resource
// creation and per-frame work to its Backend.
type Renderer interface {
	// Pipeline returns the registered pipeline for key, or nil.
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a copy of the pipeline cache.
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU pipeline of each argument and caches it by key.
	// Keys already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: the first registration failure
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface. Non-positive sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the surface cannot be reconfigured
	Resize(width, height int) error

	// SetPresentMode changes the present mode; it applies on the next Resize.
	SetPresentMode(mode PresentMode)

	// SetClearColor changes the background color.
	SetClearColor(color mgl32.Vec3)

	// InitMeshBuffers uploads vertex and index data onto provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer uploads per-instance vertex data onto provider.
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte, count int) error

	// InitBindGroup creates the buffers and bind group described by descriptor on provider.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues buffer uploads.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame opens a frame. Pair with EndFrame and Present.
	BeginFrame() error

	// DrawCall draws mesh with the pipeline registered under pipelineKey.
	//
	// Parameters:
	//   - pipelineKey: a registered pipeline key
	//   - mesh: the provider holding vertex, index and optional instance buffers
	//   - bindGroups: providers set at group 0, 1, ... in order
	//
	// Returns:
	//   - error: ErrUnknownPipeline, or an error if the bind group count does not match the pipeline
	DrawCall(pipelineKey string, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame submits the frame.
	EndFrame() error

	// Present shows the frame.
	Present()

	// Release frees the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to surface. Unless WithBackend supplies one, the
// backend for backendType is created from surface.SurfaceDescriptor.
//
// Parameters:
//   - backendType: the GPU API to use
//   - surface: the presentation target, typically a window.Window
//   - options: variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the configured renderer
//   - error: ErrNilSurface, or an error if the backend cannot be created or configured
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}
	r.log = logger.OrNop(r.log)

	if r.backend == nil {
		switch backendType {
		case BackendTypeWGPU:
			b, err := newWGPUBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
			if err != nil {
				return nil, fmt.Errorf("create wgpu backend: %w", err)
			}
			r.backend = b
		default:
			return nil, fmt.Errorf("unsupported backend type %d", backendType)
		}
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(common.ToWGPUColor(r.clearColor, 1))
	if err := r.backend.ConfigureSurface(surface.Width(), surface.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	r.log.Debugf("renderer ready: %dx%d, msaa %d, present %s", surface.Width(), surface.Height(), r.msaa, r.presentMode)
	return r, nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		if p == nil {
			continue
		}
		if _, ok := r.pipelineCache[p.PipelineKey()]; ok {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p
		r.log.Debugf("registered pipeline %q", p.PipelineKey())
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		r.log.Debugf("ignoring resize to %dx%d", width, height)
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color mgl32.Vec3) {
	r.backend.SetClearColor(common.ToWGPUColor(color, 1))
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte, count int) error {
	return r.backend.InitInstanceBuffer(provider, data, count)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	if len(writes) == 0 {
		return
	}
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownPipeline, pipelineKey)
	}
	if len(bindGroups) != p.BindGroupCount() {
		return fmt.Errorf("pipeline %q: expected %d bind groups, got %d", pipelineKey, p.BindGroupCount(), len(bindGroups))
	}
	if mesh.IndexCount() == 0 || mesh.InstanceCount() == 0 {
		return nil
	}
	r.backend.DrawCall(p, mesh, bindGroups)
	return nil
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.backend.Release()
}
