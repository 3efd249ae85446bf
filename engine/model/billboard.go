package model

// BillboardQuad returns the four corners and two triangles of a unit camera-facing quad.
// Vertex shaders expand each corner along the camera's right and up axes.
//
// Returns:
//   - []GPUQuadVertex: corners in counter-clockwise order starting bottom-left
//   - []uint32: six indices forming two triangles
func BillboardQuad() ([]GPUQuadVertex, []uint32) {
	corners := []GPUQuadVertex{
		{Corner: [2]float32{-1, -1}},
		{Corner: [2]float32{1, -1}},
		{Corner: [2]float32{1, 1}},
		{Corner: [2]float32{-1, 1}},
	}
	return corners, []uint32{0, 1, 2, 0, 2, 3}
}
