package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type gameObject struct {
	mu      *sync.Mutex
	id      uuid.UUID
	name    string
	enabled atomic.Bool
	mdl     model.Model

	position      mgl32.Vec3
	scale         mgl32.Vec3
	rotation      mgl32.Vec3 // Euler angles in radians, composed Y * X * Z
	rotationSpeed mgl32.Vec3 // radians per second per axis
}

// GameObject is a placed, optionally spinning instance of a Model in a Scene.
type GameObject interface {
	// ID returns the object's unique identifier, assigned at construction.
	ID() uuid.UUID

	// Name returns the debug name, which defaults to the model's name.
	Name() string

	// Enabled reports whether the object is drawn.
	Enabled() bool

	// SetEnabled toggles drawing.
	SetEnabled(enabled bool)

	// Model returns the drawn model.
	Model() model.Model

	// Position returns the world position.
	Position() mgl32.Vec3

	// SetPosition moves the object.
	SetPosition(p mgl32.Vec3)

	// Scale returns the per-axis scale.
	Scale() mgl32.Vec3

	// SetScale changes the per-axis scale.
	SetScale(s mgl32.Vec3)

	// Rotation returns the Euler rotation in radians.
	Rotation() mgl32.Vec3

	// SetRotation replaces the Euler rotation.
	SetRotation(r mgl32.Vec3)

	// RotationSpeed returns the spin rate in radians per second.
	RotationSpeed() mgl32.Vec3

	// SetRotationSpeed changes the spin rate.
	SetRotationSpeed(r mgl32.Vec3)

	// Update advances the rotation by RotationSpeed*dt.
	//
	// Parameters:
	//   - dt: seconds since the previous update
	Update(dt float32)

	// Transform returns the model matrix: translate * rotateX * rotateY * rotateZ * scale.
	Transform() mgl32.Mat4
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled GameObject at the origin with unit scale.
//
// Parameters:
//   - options: variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the configured object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		id:    uuid.New(),
		scale: mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, opt := range options {
		opt(obj)
	}
	if obj.name == "" && obj.mdl != nil {
		obj.name = obj.mdl.Name()
	}
	return obj
}

func (g *gameObject) ID() uuid.UUID {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.mu.Lock()
	g.position = p
	g.mu.Unlock()
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetScale(s mgl32.Vec3) {
	g.mu.Lock()
	g.scale = s
	g.mu.Unlock()
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) SetRotation(r mgl32.Vec3) {
	g.mu.Lock()
	g.rotation = r
	g.mu.Unlock()
}

func (g *gameObject) RotationSpeed() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotationSpeed
}

func (g *gameObject) SetRotationSpeed(r mgl32.Vec3) {
	g.mu.Lock()
	g.rotationSpeed = r
	g.mu.Unlock()
}

func (g *gameObject) Update(dt float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = g.rotation.Add(g.rotationSpeed.Mul(dt))
}

func (g *gameObject) Transform() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.BuildModelMatrix(g.position, g.rotation, g.scale)
}
