package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUCameraUniform_Marshal(t *testing.T) {
	u := GPUCameraUniform{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		Position:   [3]float32{0, 0, 5},
	}
	require.Equal(t, 144, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 144)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])))
	assert.Equal(t, float32(5), math.Float32frombits(binary.LittleEndian.Uint32(buf[136:])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[140:]))
}

func TestOrbitController_DefaultPosition(t *testing.T) {
	oc := NewOrbitController(WithRadius(12))
	assert.True(t, oc.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, 12}, 1e-5))
}

func TestOrbitController_ZoomClamps(t *testing.T) {
	oc := NewOrbitController(WithRadius(5), WithRadiusBounds(2, 10), WithZoomSpeed(1))

	oc.Zoom(100)
	assert.Equal(t, float32(2), oc.Radius())

	oc.Zoom(-100)
	assert.Equal(t, float32(10), oc.Radius())
}

func TestOrbitController_DragClampsElevation(t *testing.T) {
	oc := NewOrbitController(WithMouseSensitivity(0.01))
	oc.Drag(0, 1e6)
	assert.Less(t, oc.Elevation(), float32(math.Pi/2))

	oc.Drag(100, 0)
	assert.InDelta(t, -1, oc.Azimuth(), 1e-6)

	// Distance to target is preserved by rotation.
	assert.InDelta(t, 5, oc.Position().Sub(oc.Target()).Len(), 1e-4)
}

func TestCamera_ViewLooksAtTarget(t *testing.T) {
	c := NewCamera(
		WithFov(75),
		WithAspect(16.0/9.0),
		WithClipPlanes(0.1, 1000),
		WithController(NewOrbitController(WithRadius(5))),
	)

	assert.Equal(t, float32(75), c.Fov())
	assert.True(t, c.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, 5}, 1e-5))

	// The origin sits 5 units in front of the eye in view space.
	origin := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, origin.Z(), 1e-5)

	u := c.Uniform()
	assert.InDelta(t, 5, u.Position[2], 1e-5)
}

func TestCamera_ProjectionDepthRange(t *testing.T) {
	c := NewCamera(WithClipPlanes(0.1, 100))
	p := c.ProjectionMatrix()

	near := p.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := p.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), 1e-4)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
}

func TestCamera_SetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithAspect(2))
	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())
}
