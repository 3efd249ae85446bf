package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// clipCorrection remaps OpenGL clip-space depth [-1, 1] onto the WebGPU range [0, 1].
// Column-major, applied on the left of an mgl32 projection.
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective creates a perspective projection matrix whose depth output lands in the
// WebGPU clip range [0, 1].
//
// Parameters:
//   - fovYDegrees: vertical field of view in degrees
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovYDegrees, aspect, near, far float32) mgl32.Mat4 {
	return clipCorrection.Mul4(mgl32.Perspective(mgl32.DegToRad(fovYDegrees), aspect, near, far))
}

// LookAt creates a right-handed view matrix.
//
// Parameters:
//   - eye: camera position in world space
//   - center: the point the camera looks at
//   - up: the world up vector
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, center, up)
}

// BuildModelMatrix constructs a model matrix from position, Euler rotation (radians), and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll).
//
// Parameters:
//   - pos: translation in world space
//   - rot: Euler rotation in radians
//   - scale: per-axis scale
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func BuildModelMatrix(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DY(rot.Y()).Mul4(mgl32.HomogRotate3DX(rot.X())).Mul4(mgl32.HomogRotate3DZ(rot.Z()))
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(r).Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// Clamp restricts v to the closed range [lo, hi].
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
