package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPerspective_DepthRange(t *testing.T) {
	proj := Perspective(75, 16.0/9.0, 0.1, 1000)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -1000, 1})

	assert.InDelta(t, 0, near.Z()/near.W(), 1e-4)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
}

func TestBuildModelMatrix_Identity(t *testing.T) {
	m := BuildModelMatrix(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
	assert.True(t, m.ApproxEqual(mgl32.Ident4()))
}

func TestBuildModelMatrix_Translation(t *testing.T) {
	m := BuildModelMatrix(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, p.Vec3().ApproxEqual(mgl32.Vec3{3, 2, 3}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(float32(3), 0, 1))
	assert.Equal(t, 0, Clamp(-5, 0, 10))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}
