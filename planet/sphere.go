package planet

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-planet/engine/model"
)

// UVSphere builds a latitude/longitude sphere. Rows run from the north pole (ring 0) to the
// south pole; each row repeats its first column at the end so the seam gets its own UVs.
// Normals equal the unit position and triangles wind counter-clockwise seen from outside.
//
// Parameters:
//   - cfg: radius and resolution; at least 3 segments and 2 rings
//
// Returns:
//   - []model.GPUVertex: (rings+1)*(segments+1) vertices
//   - []uint32: triangle list indices
//   - error: an error for a non-positive radius or too few segments or rings
func UVSphere(cfg SphereConfig) ([]model.GPUVertex, []uint32, error) {
	if cfg.Radius <= 0 || cfg.Segments < 3 || cfg.Rings < 2 {
		return nil, nil, fmt.Errorf("uv sphere: invalid radius %v, segments %d, rings %d", cfg.Radius, cfg.Segments, cfg.Rings)
	}

	cols := cfg.Segments + 1
	vertices := make([]model.GPUVertex, 0, (cfg.Rings+1)*cols)
	for r := 0; r <= cfg.Rings; r++ {
		v := float64(r) / float64(cfg.Rings)
		sinT, cosT := math.Sincos(v * math.Pi)
		for s := 0; s <= cfg.Segments; s++ {
			u := float64(s) / float64(cfg.Segments)
			sinP, cosP := math.Sincos(u * 2 * math.Pi)
			n := [3]float32{float32(-cosP * sinT), float32(cosT), float32(sinP * sinT)}
			vertices = append(vertices, model.GPUVertex{
				Position: [3]float32{n[0] * cfg.Radius, n[1] * cfg.Radius, n[2] * cfg.Radius},
				Normal:   n,
				TexCoord: [2]float32{float32(u), float32(v)},
			})
		}
	}

	indices := make([]uint32, 0, cfg.Rings*cfg.Segments*6)
	for r := 0; r < cfg.Rings; r++ {
		for s := 0; s < cfg.Segments; s++ {
			cur := uint32(r*cols + s)
			next := cur + uint32(cols)
			indices = append(indices, cur, next, cur+1, cur+1, next, next+1)
		}
	}
	return vertices, indices, nil
}
