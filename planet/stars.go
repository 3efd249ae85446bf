package planet

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// starChunkSize is the number of stars generated per worker task.
const starChunkSize = 4096

var (
	starPoolOnce sync.Once
	starPool     worker.DynamicWorkerPool
)

// sharedStarPool returns the process-wide generation pool, one worker per CPU.
// The pool's workers live for the whole process, so it is created once and reused.
func sharedStarPool() worker.DynamicWorkerPool {
	starPoolOnce.Do(func() {
		n := runtime.GOMAXPROCS(0)
		starPool = worker.NewDynamicWorkerPool(n, n*2, 1*time.Second)
	})
	return starPool
}

// StarField is an immutable set of star positions.
type StarField struct {
	Positions []mgl32.Vec3
}

// Len returns the number of stars.
func (f StarField) Len() int {
	return len(f.Positions)
}

// InstanceData packs the positions as PointInstance entries for vertex buffer slot 1.
//
// Returns:
//   - []byte: 12 bytes per star
func (f StarField) InstanceData() []byte {
	buf := make([]byte, 12*len(f.Positions))
	for i, p := range f.Positions {
		for c := range 3 {
			binary.LittleEndian.PutUint32(buf[i*12+c*4:], math.Float32bits(p[c]))
		}
	}
	return buf
}

// GenerateStars places count stars uniformly inside the cube [-halfWidth, halfWidth]^3.
// Work is split into chunks on a shared worker pool. Every chunk draws from its own PCG stream
// keyed by seed and chunk index, so the result depends only on the arguments.
//
// Parameters:
//   - count: number of stars, zero gives an empty field
//   - halfWidth: half the cube edge
//   - seed: master seed
//   - workers: maximum chunks in flight for this call, values below 1 mean one
//
// Returns:
//   - StarField: the generated field
//   - error: an error for a negative count or half-width
func GenerateStars(count int, halfWidth float32, seed uint64, workers int) (StarField, error) {
	if count < 0 {
		return StarField{}, fmt.Errorf("generate stars: negative count %d", count)
	}
	if halfWidth < 0 || math.IsNaN(float64(halfWidth)) {
		return StarField{}, fmt.Errorf("generate stars: invalid half-width %v", halfWidth)
	}

	positions := make([]mgl32.Vec3, count)
	chunks := (count + starChunkSize - 1) / starChunkSize
	if chunks == 0 {
		return StarField{Positions: positions}, nil
	}

	pool := sharedStarPool()
	inFlight := make(chan struct{}, max(workers, 1))
	var wg sync.WaitGroup
	for c := range chunks {
		start := c * starChunkSize
		end := min(start+starChunkSize, count)
		inFlight <- struct{}{}
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: c,
			Do: func() (any, error) {
				defer func() {
					<-inFlight
					wg.Done()
				}()
				fillStars(positions[start:end], halfWidth, rand.New(rand.NewPCG(seed, uint64(c))))
				return nil, nil
			},
		})
	}
	wg.Wait()

	return StarField{Positions: positions}, nil
}

// fillStars writes (rand-0.5)*2*halfWidth on each axis of every position.
func fillStars(out []mgl32.Vec3, halfWidth float32, r *rand.Rand) {
	span := float64(halfWidth) * 2
	for i := range out {
		out[i] = mgl32.Vec3{
			float32((r.Float64() - 0.5) * span),
			float32((r.Float64() - 0.5) * span),
			float32((r.Float64() - 0.5) * span),
		}
	}
}

// StarStyle is the uniform block of a star field material.
type StarStyle struct {
	Color   mgl32.Vec3
	Size    float32
	Twinkle float32
}

var _ material.UniformSource = StarStyle{}

// Uniforms returns the marshaled StarParams block.
func (s StarStyle) Uniforms(elapsed float32, model mgl32.Mat4) []byte {
	p := material.GPUStarParams{
		Model:   model,
		Color:   s.Color,
		Size:    s.Size,
		Time:    elapsed,
		Twinkle: s.Twinkle,
	}
	return p.Marshal()
}
