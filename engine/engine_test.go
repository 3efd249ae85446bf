package engine

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/logger"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-planet/engine/scene"
	"github.com/Carmen-Shannon/oxy-planet/planet"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow is a headless window.Window whose message loop spins until RequestClose.
type fakeWindow struct {
	mu      sync.Mutex
	w, h    int
	running atomic.Bool
	closed  bool

	onUpdate    func()
	onResize    func(int, int)
	onScroll    func(float32)
	onMouseDown func(int, int32, int32)
	onMouseUp   func(int, int32, int32)
	onMouseMove func(int32, int32)
}

func newFakeWindow(w, h int) *fakeWindow {
	fw := &fakeWindow{w: w, h: h}
	fw.running.Store(true)
	return fw
}

func (f *fakeWindow) SetUpdateCallback(cb func()) { f.onUpdate = cb }
func (f *fakeWindow) SetResizeCallback(cb func(int, int)) { f.onResize = cb }
func (f *fakeWindow) SetScrollCallback(cb func(float32)) { f.onScroll = cb }
func (f *fakeWindow) SetKeyDownCallback(func(uint32)) {}
func (f *fakeWindow) SetKeyUpCallback(func(uint32)) {}
func (f *fakeWindow) SetMouseDownCallback(cb func(int, int32, int32)) { f.onMouseDown = cb }
func (f *fakeWindow) SetMouseUpCallback(cb func(int, int32, int32)) { f.onMouseUp = cb }
func (f *fakeWindow) SetMouseMoveCallback(cb func(int32, int32)) { f.onMouseMove = cb }
func (f *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (f *fakeWindow) IsRunning() bool { return f.running.Load() }
func (f *fakeWindow) RequestClose() { f.running.Store(false) }

func (f *fakeWindow) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w
}

func (f *fakeWindow) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.h
}

func (f *fakeWindow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.running.Store(false)
	return nil
}

func (f *fakeWindow) ProcessMessages() {
	for f.IsRunning() {
		if f.onUpdate != nil {
			f.onUpdate()
		}
		time.Sleep(time.Millisecond)
	}
}

func newTestEngine(t *testing.T, options ...EngineBuilderOption) (*engine, *fakeWindow, *renderertest.Backend) {
	t.Helper()
	cfg := planet.ConfigFor(planet.PresetSimple)
	cfg.Sphere.Segments, cfg.Sphere.Rings = 8, 6
	cfg.Stars.Count = 16

	fw := newFakeWindow(1280, 720)
	backend := renderertest.NewBackend()
	vp, err := scene.SetupScene(fw, cfg, scene.WithRendererOptions(renderer.WithBackend(backend)))
	require.NoError(t, err)
	_, _, err = scene.CreatePlanet(vp.Scene, cfg)
	require.NoError(t, err)
	_, err = scene.CreateStars(vp.Scene, cfg.Stars)
	require.NoError(t, err)

	e, err := NewEngine(fw, vp, options...)
	require.NoError(t, err)
	return e.(*engine), fw, backend
}

func TestNewEngine_Errors(t *testing.T) {
	_, err := NewEngine(nil, &scene.Viewport{})
	assert.ErrorIs(t, err, ErrNilWindow)

	_, err = NewEngine(newFakeWindow(1, 1), nil)
	assert.ErrorIs(t, err, ErrNilViewport)

	_, err = NewEngine(newFakeWindow(1, 1), &scene.Viewport{})
	assert.ErrorIs(t, err, ErrNilViewport)
}

func TestRenderFrame(t *testing.T) {
	e, _, backend := newTestEngine(t)

	require.NoError(t, e.renderFrame())
	assert.Equal(t, 1, backend.Frames)
	assert.Equal(t, 1, backend.Presented)
	assert.Len(t, backend.DrawList(), 2)
}

func TestTick_PausedFreezesTime(t *testing.T) {
	e, _, backend := newTestEngine(t)

	var ticked float32
	e.SetTickCallback(func(dt float32) { ticked += dt })

	e.tick(0.5)
	assert.InDelta(t, 0.5, e.viewport.Scene.Elapsed(), 1e-6)

	e.SetPaused(true)
	assert.True(t, e.Paused())
	e.tick(0.5)
	assert.InDelta(t, 0.5, e.viewport.Scene.Elapsed(), 1e-6)
	assert.InDelta(t, 1.0, ticked, 1e-6)
	assert.Len(t, backend.WritesFor("Camera"), 2)
}

func TestInput_OrbitAndZoom(t *testing.T) {
	e, fw, _ := newTestEngine(t)
	ctrl := e.viewport.Camera.Controller()
	require.NotNil(t, ctrl)
	az, radius := ctrl.Azimuth(), ctrl.Radius()

	fw.onMouseMove(50, 50)
	assert.Equal(t, az, ctrl.Azimuth())

	fw.onMouseDown(common.MouseButtonLeft, 10, 10)
	fw.onMouseMove(60, 10)
	assert.NotEqual(t, az, ctrl.Azimuth())

	fw.onMouseUp(common.MouseButtonLeft, 60, 10)
	moved := ctrl.Azimuth()
	fw.onMouseMove(200, 10)
	assert.Equal(t, moved, ctrl.Azimuth())

	fw.onMouseDown(common.MouseButtonRight, 0, 0)
	fw.onMouseMove(100, 100)
	assert.Equal(t, moved, ctrl.Azimuth())

	fw.onScroll(1)
	assert.Less(t, ctrl.Radius(), radius)
}

func TestInput_Resize(t *testing.T) {
	e, fw, backend := newTestEngine(t)

	fw.onResize(600, 600)
	assert.Equal(t, 600, backend.Width)
	assert.InDelta(t, 1, e.viewport.Camera.Aspect(), 1e-6)

	fw.onResize(0, 0)
	assert.Equal(t, 600, backend.Width)
}

func TestRun_QuitStopsAndReleases(t *testing.T) {
	e, fw, backend := newTestEngine(t, WithTickRate(200), WithRenderFrameLimit(500))

	var ticks atomic.Int32
	e.SetTickCallback(func(float32) {
		if ticks.Add(1) == 3 {
			e.Quit()
		}
	})

	require.NoError(t, e.Run())
	assert.GreaterOrEqual(t, ticks.Load(), int32(3))
	assert.True(t, backend.Released)
	assert.True(t, fw.closed)
	assert.Positive(t, backend.Frames)

	e.Quit()
}

func TestRun_RenderPanicIsRecovered(t *testing.T) {
	var out bytes.Buffer
	e, _, backend := newTestEngine(t, WithLogger(logger.NewWriterLogger("engine", false, &out, &out)))
	e.SetRenderCallback(func(float32) { panic("boom") })

	err := e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, out.String(), "render goroutine panic")
	assert.True(t, backend.Released)
}

func TestSetTickRate(t *testing.T) {
	e, _, _ := newTestEngine(t)

	e.SetTickRate(120)
	assert.Equal(t, time.Second/120, e.engineTickRate)
	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
	e.SetRenderFrameLimit(100)
	assert.Equal(t, 10*time.Millisecond, e.renderFrameLimit)
}

func TestProfilerToggle(t *testing.T) {
	e, _, _ := newTestEngine(t, WithProfiling(true))
	assert.True(t, e.profilingEnabled.Load())
	e.DisableProfiler()
	assert.False(t, e.profilingEnabled.Load())
	e.EnableProfiler()
	assert.True(t, e.profilingEnabled.Load())
}
