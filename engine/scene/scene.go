package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/game_object"
	"github.com/Carmen-Shannon/oxy-planet/engine/light"
	"github.com/Carmen-Shannon/oxy-planet/engine/logger"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/shader"
	"github.com/google/uuid"
)

var (
	// ErrNoRenderer is returned by Add when the scene has no renderer attached.
	ErrNoRenderer = errors.New("scene: no renderer")

	// ErrNilObject is returned by Add for a nil game object.
	ErrNilObject = errors.New("scene: nil game object")

	// ErrNoModel is returned by Add for an object without a model.
	ErrNoModel = errors.New("scene: object has no model")

	// ErrNoMaterial is returned by Add for a model without a material.
	ErrNoMaterial = errors.New("scene: model has no material")
)

// drawable is an object added to the scene together with the bind groups its pipeline
// expects, resolved once at Add time.
type drawable struct {
	obj             game_object.GameObject
	pipelineKey     string
	bindGroups      []bind_group_provider.BindGroupProvider
	materialBinding int
	blended         bool
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu   *sync.RWMutex
	name string
	log  logger.Logger

	r      renderer.Renderer
	cam    camera.Camera
	lights light.Rig

	elapsed   float32
	drawables []*drawable

	// initialized tracks providers whose bind group has been created, so shared
	// providers (camera, lights) are created once and only they receive writes.
	initialized map[bind_group_provider.BindGroupProvider]bool
}

// Scene owns the camera, the light rig and the drawable objects, and turns them into
// buffer writes and draw calls on its Renderer.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Lights returns the scene's light rig.
	Lights() light.Rig

	// Add wires a GameObject into the scene. The object's material must name a pipeline
	// already registered on the renderer. Mesh and instance buffers are uploaded, and every
	// bind group the pipeline declares is mapped to the camera, the material or the lights.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - error: ErrNoRenderer, ErrNilObject, ErrNoModel, ErrNoMaterial, or a wrapped
	//     renderer error when GPU resources cannot be created
	Add(obj game_object.GameObject) error

	// Get retrieves an object by its ID, or nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uuid.UUID) game_object.GameObject

	// Remove drops an object and releases its mesh and material resources.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - bool: true if the object was found
	Remove(id uuid.UUID) bool

	// Objects returns the objects in insertion order.
	Objects() []game_object.GameObject

	// Count returns the number of objects in the scene.
	Count() int

	// Elapsed returns the seconds accumulated by Update.
	Elapsed() float32

	// Update advances scene time by deltaTime, refreshes the camera, advances every enabled
	// object and queues the camera, light and material uniform writes.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// DrawCalls encodes one draw per enabled object, opaque pipelines first and blended
	// ones after, each group in insertion order.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: the first draw call failure
	DrawCalls() error

	// Release frees the GPU resources held by the scene's providers. The renderer itself
	// is left to its owner.
	Release()
}

var _ Scene = &scene{}

// NewScene creates a Scene. A default camera and an empty light rig are created when
// none are supplied. A renderer must be supplied with WithRenderer before objects can
// be added.
//
// Parameters:
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:          &sync.RWMutex{},
		name:        "scene",
		initialized: make(map[bind_group_provider.BindGroupProvider]bool),
	}
	for _, opt := range options {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	if s.lights == nil {
		s.lights = light.NewRig()
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Lights() light.Rig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lights
}

func (s *scene) Add(obj game_object.GameObject) error {
	if obj == nil {
		return ErrNilObject
	}
	mdl := obj.Model()
	if mdl == nil {
		return fmt.Errorf("object %q: %w", obj.Name(), ErrNoModel)
	}
	mat := mdl.Material()
	if mat == nil {
		return fmt.Errorf("object %q: %w", obj.Name(), ErrNoMaterial)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.r == nil {
		return ErrNoRenderer
	}

	p := s.r.Pipeline(mat.PipelineKey())
	if p == nil {
		return fmt.Errorf("object %q: %w: %q", obj.Name(), renderer.ErrUnknownPipeline, mat.PipelineKey())
	}

	d := &drawable{
		obj:         obj,
		pipelineKey: p.PipelineKey(),
		bindGroups:  make([]bind_group_provider.BindGroupProvider, p.BindGroupCount()),
		blended:     p.BlendEnabled(),
	}
	// Vertex then fragment declarations; the first one seen for a group wins.
	for _, decl := range p.Declarations() {
		g := *decl.Group
		if g < 0 || g >= len(d.bindGroups) || d.bindGroups[g] != nil {
			continue
		}
		owner, ok := shader.ProviderOf(decl)
		if !ok {
			return fmt.Errorf("object %q: group %d: no provider for %q", obj.Name(), g, decl.StructType())
		}
		switch owner {
		case shader.ProviderCamera:
			d.bindGroups[g] = s.cam.BindGroupProvider()
		case shader.ProviderMaterial:
			d.bindGroups[g] = mat.BindGroupProvider()
			d.materialBinding = *decl.Binding
		case shader.ProviderLights:
			d.bindGroups[g] = s.lights.BindGroupProvider()
		}
	}
	for g, bp := range d.bindGroups {
		if bp == nil {
			return fmt.Errorf("object %q: pipeline %q declares nothing at group %d", obj.Name(), p.PipelineKey(), g)
		}
	}

	mesh := mdl.MeshProvider()
	if err := s.r.InitMeshBuffers(mesh, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
		return fmt.Errorf("object %q: mesh buffers: %w", obj.Name(), err)
	}
	if vs := p.Shader(shader.ShaderTypeVertex); vs != nil && len(vs.VertexLayouts()) > 1 {
		if len(mdl.InstanceData()) == 0 {
			mesh.Release()
			return fmt.Errorf("object %q: pipeline %q is instanced but the model has no instances", obj.Name(), p.PipelineKey())
		}
		if err := s.r.InitInstanceBuffer(mesh, mdl.InstanceData(), mdl.InstanceCount()); err != nil {
			mesh.Release()
			return fmt.Errorf("object %q: instance buffer: %w", obj.Name(), err)
		}
	}
	for g, bp := range d.bindGroups {
		if s.initialized[bp] {
			continue
		}
		if err := s.r.InitBindGroup(bp, p.BindGroupLayoutDescriptor(g)); err != nil {
			mesh.Release()
			return fmt.Errorf("object %q: bind group %d: %w", obj.Name(), g, err)
		}
		s.initialized[bp] = true
	}

	s.drawables = append(s.drawables, d)
	s.log.Debugf("scene %s: added %q (%s) with pipeline %q", s.name, obj.Name(), obj.ID(), p.PipelineKey())
	return nil
}

func (s *scene) Get(id uuid.UUID) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.drawables {
		if d.obj.ID() == id {
			return d.obj
		}
	}
	return nil
}

func (s *scene) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.drawables {
		if d.obj.ID() != id {
			continue
		}
		s.drawables = append(s.drawables[:i], s.drawables[i+1:]...)
		mdl := d.obj.Model()
		mdl.MeshProvider().Release()
		matProvider := mdl.Material().BindGroupProvider()
		matProvider.Release()
		delete(s.initialized, matProvider)
		return true
	}
	return false
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.drawables))
	for i, d := range s.drawables {
		out[i] = d.obj
	}
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drawables)
}

func (s *scene) Elapsed() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elapsed
}

func (s *scene) Update(deltaTime float32) {
	s.mu.Lock()
	s.elapsed += deltaTime
	elapsed := s.elapsed

	s.cam.Update()
	var writes []bind_group_provider.BufferWrite
	if bp := s.cam.BindGroupProvider(); s.initialized[bp] {
		u := s.cam.Uniform()
		writes = append(writes, bind_group_provider.BufferWrite{Provider: bp, Data: u.Marshal()})
	}
	if bp := s.lights.BindGroupProvider(); s.initialized[bp] {
		block := s.lights.Block()
		writes = append(writes, bind_group_provider.BufferWrite{Provider: bp, Data: block.Marshal()})
	}

	for _, d := range s.drawables {
		if !d.obj.Enabled() {
			continue
		}
		d.obj.Update(deltaTime)
		mat := d.obj.Model().Material()
		src := mat.UniformSource()
		if src == nil {
			continue
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: mat.BindGroupProvider(),
			Binding:  d.materialBinding,
			Data:     src.Uniforms(elapsed, d.obj.Transform()),
		})
	}
	r := s.r
	s.mu.Unlock()

	if r != nil {
		r.WriteBuffers(writes)
	}
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.r == nil {
		return ErrNoRenderer
	}

	for _, blended := range []bool{false, true} {
		for _, d := range s.drawables {
			if d.blended != blended || !d.obj.Enabled() {
				continue
			}
			if err := s.r.DrawCall(d.pipelineKey, d.obj.Model().MeshProvider(), d.bindGroups); err != nil {
				return fmt.Errorf("draw %q: %w", d.obj.Name(), err)
			}
		}
	}
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.drawables {
		d.obj.Model().MeshProvider().Release()
	}
	for bp := range s.initialized {
		bp.Release()
	}
	s.drawables = nil
	s.initialized = make(map[bind_group_provider.BindGroupProvider]bool)
}
