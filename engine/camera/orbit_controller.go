package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitController is the implementation of OrbitController.
type orbitController struct {
	mu *sync.Mutex

	target mgl32.Vec3

	// Spherical coordinates relative to target
	radius    float32
	azimuth   float32 // around Y, 0 = +Z
	elevation float32 // from the XZ plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
}

// OrbitController keeps the camera on a sphere around a target point. Mouse drags change
// the azimuth and elevation; scroll input changes the radius.
type OrbitController interface {
	// Position returns the world-space eye position derived from the spherical coordinates.
	Position() mgl32.Vec3

	// Target returns the orbit pivot.
	Target() mgl32.Vec3

	// SetTarget moves the orbit pivot, keeping the spherical offset.
	SetTarget(target mgl32.Vec3)

	// Radius returns the distance from target to eye.
	Radius() float32

	// SetRadius sets the orbit radius, clamped to the radius bounds.
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle in radians.
	Azimuth() float32

	// Elevation returns the vertical angle in radians.
	Elevation() float32

	// Drag rotates the eye around the target by a mouse movement in pixels.
	//
	// Parameters:
	//   - dx: horizontal cursor movement, positive to the right
	//   - dy: vertical cursor movement, positive downward
	Drag(dx, dy float32)

	// Zoom moves the eye toward the target for positive delta, away for negative.
	//
	// Parameters:
	//   - delta: scroll amount, scaled by the zoom speed
	Zoom(delta float32)
}

var _ OrbitController = &orbitController{}

// NewOrbitController creates an OrbitController looking at the origin from +Z at distance 5.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitController{
		mu:               &sync.Mutex{},
		radius:           5,
		minRadius:        1.5,
		maxRadius:        500,
		minElevation:     -math.Pi/2 + 0.05,
		maxElevation:     math.Pi/2 - 0.05,
		mouseSensitivity: 0.005,
		zoomSpeed:        0.5,
	}
	for _, option := range options {
		option(oc)
	}
	oc.radius = common.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
	oc.elevation = common.Clamp(oc.elevation, oc.minElevation, oc.maxElevation)
	return oc
}

func (oc *orbitController) Position() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position()
}

func (oc *orbitController) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitController) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitController) SetRadius(radius float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = common.Clamp(radius, oc.minRadius, oc.maxRadius)
}

func (oc *orbitController) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitController) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

func (oc *orbitController) Drag(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth -= dx * oc.mouseSensitivity
	oc.elevation = common.Clamp(oc.elevation+dy*oc.mouseSensitivity, oc.minElevation, oc.maxElevation)
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = common.Clamp(oc.radius-delta*oc.zoomSpeed, oc.minRadius, oc.maxRadius)
}

// position converts the spherical offset to world space.
// Caller must hold the mutex.
func (oc *orbitController) position() mgl32.Vec3 {
	sinE, cosE := math.Sincos(float64(oc.elevation))
	sinA, cosA := math.Sincos(float64(oc.azimuth))
	return oc.target.Add(mgl32.Vec3{
		oc.radius * float32(cosE*sinA),
		oc.radius * float32(sinE),
		oc.radius * float32(cosE*cosA),
	})
}
