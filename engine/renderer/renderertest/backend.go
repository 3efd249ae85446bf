// Package renderertest provides a recording renderer.Backend for tests that exercise
// scene and engine code without a GPU.
package renderertest

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Draw is one recorded DrawCall.
type Draw struct {
	PipelineKey   string
	Mesh          string
	IndexCount    int
	InstanceCount int
	BindGroups    []string
}

// BindGroup is one recorded InitBindGroup.
type BindGroup struct {
	Provider string
	Sizes    []uint64 // MinBindingSize per entry, in entry order
}

// Surface is a fixed-size renderer.Surface with no platform window behind it.
type Surface struct {
	W, H int
}

func (s Surface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (s Surface) Width() int                                 { return s.W }
func (s Surface) Height() int                                { return s.H }

// Backend records every call. Instance and index data are kept by provider label so tests
// can inspect what would have been uploaded.
type Backend struct {
	mu sync.Mutex

	Width, Height int
	PresentMode   renderer.PresentMode
	ClearColor    wgpu.Color

	Pipelines     []string
	Meshes        map[string]int // index count by provider label
	Instances     map[string][]byte
	BindGroups    []BindGroup
	Writes        []bind_group_provider.BufferWrite
	Draws         []Draw
	Frames        int
	Presented     int
	Released      bool
	FailConfigure error

	inFrame bool
}

var _ renderer.Backend = &Backend{}

// NewBackend returns an empty recording backend.
func NewBackend() *Backend {
	return &Backend{
		Meshes:    make(map[string]int),
		Instances: make(map[string][]byte),
	}
}

func (b *Backend) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailConfigure != nil {
		return b.FailConfigure
	}
	b.Width, b.Height = width, height
	return nil
}

func (b *Backend) SetPresentMode(mode renderer.PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.PresentMode = mode
}

func (b *Backend) SetClearColor(color wgpu.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ClearColor = color
}

func (b *Backend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Pipelines = append(b.Pipelines, p.PipelineKey())
	return nil
}

func (b *Backend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	provider.SetIndexCount(indexCount)
	b.Meshes[provider.Label()] = indexCount
	return nil
}

func (b *Backend) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte, count int) error {
	if len(data) == 0 {
		return errors.New("empty instance data")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	provider.SetInstanceCount(count)
	b.Instances[provider.Label()] = data
	return nil
}

func (b *Backend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	bg := BindGroup{Provider: provider.Label()}
	for _, e := range descriptor.Entries {
		bg.Sizes = append(bg.Sizes, e.Buffer.MinBindingSize)
	}
	b.BindGroups = append(b.BindGroups, bg)
	return nil
}

func (b *Backend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Writes = append(b.Writes, writes...)
}

func (b *Backend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inFrame {
		return errors.New("previous frame not ended")
	}
	b.inFrame = true
	b.Frames++
	return nil
}

func (b *Backend) DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := Draw{
		PipelineKey:   p.PipelineKey(),
		Mesh:          mesh.Label(),
		IndexCount:    mesh.IndexCount(),
		InstanceCount: mesh.InstanceCount(),
	}
	for _, bg := range bindGroups {
		d.BindGroups = append(d.BindGroups, bg.Label())
	}
	b.Draws = append(b.Draws, d)
}

func (b *Backend) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inFrame {
		return errors.New("no frame in progress")
	}
	b.inFrame = false
	return nil
}

func (b *Backend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Presented++
}

func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Released = true
}

// WritesFor returns the recorded writes whose provider has the given label.
func (b *Backend) WritesFor(label string) []bind_group_provider.BufferWrite {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []bind_group_provider.BufferWrite
	for _, w := range b.Writes {
		if w.Provider.Label() == label {
			out = append(out, w)
		}
	}
	return out
}

// DrawList returns a copy of the recorded draws.
func (b *Backend) DrawList() []Draw {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Draw(nil), b.Draws...)
}
