package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/logger"
	"github.com/Carmen-Shannon/oxy-planet/engine/profiler"
	"github.com/Carmen-Shannon/oxy-planet/engine/scene"
	"github.com/Carmen-Shannon/oxy-planet/engine/window"
)

var (
	// ErrNilWindow is returned by NewEngine when no window is supplied.
	ErrNilWindow = errors.New("engine: nil window")

	// ErrNilViewport is returned by NewEngine when no viewport is supplied.
	ErrNilViewport = errors.New("engine: nil viewport")
)

// dragState tracks an in-progress orbit drag.
type dragState struct {
	active bool
	x, y   int32
}

// engine implements the Engine interface.
// Coordinates the tick, render and quit goroutines with the window's message loop.
type engine struct {
	mu  *sync.Mutex
	log logger.Logger

	tickRateChannel chan time.Duration // dynamic tick rate updates while running

	running atomic.Bool
	paused  atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // ensures quitChannel is only closed once
	err         error     // first fatal render error, returned by Run

	window   window.Window
	viewport *scene.Viewport

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate   time.Duration
	tickCallback     func(deltaTime float32)
	renderCallback   func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	drag dragState
}

// Engine drives one Viewport inside one Window. A fixed-rate tick goroutine advances the
// scene, a render goroutine draws and presents frames, and the window's message loop runs
// on the caller's goroutine.
type Engine interface {
	// Window returns the window the engine draws into.
	Window() window.Window

	// Viewport returns the scene, camera and renderer being driven.
	Viewport() *scene.Viewport

	// EnableProfiler enables periodic FPS and memory reports through the logger.
	EnableProfiler()

	// DisableProfiler disables profiler output.
	DisableProfiler()

	// SetTickRate sets the tick rate in ticks per second.
	// If the engine is running, the change takes effect immediately.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called after each scene update.
	//
	// Parameters:
	//   - callback: function receiving the wall-clock delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers a function called after each presented frame.
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	SetRenderFrameLimit(fps float64)

	// SetPaused freezes scene time. The camera keeps responding to input while paused.
	SetPaused(paused bool)

	// Paused reports whether scene time is frozen.
	Paused() bool

	// Run starts the tick and render goroutines and runs the window message loop on the
	// calling goroutine. It blocks until the window closes or Quit is called, then stops the
	// goroutines and releases the viewport and the window.
	//
	// Returns:
	//   - error: the render failure that stopped the engine, or nil on a normal close
	Run() error

	// Quit signals all engine goroutines to stop and asks the window to close.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine for a window and the viewport built on it. Resize, scroll
// and mouse drag events of the window are wired to the viewport's renderer and camera.
//
// Parameters:
//   - w: the window, typically the container passed to scene.SetupScene
//   - vp: the viewport returned by scene.SetupScene
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrNilWindow or ErrNilViewport
func NewEngine(w window.Window, vp *scene.Viewport, options ...EngineBuilderOption) (Engine, error) {
	if w == nil {
		return nil, ErrNilWindow
	}
	if vp == nil || vp.Scene == nil || vp.Renderer == nil || vp.Camera == nil {
		return nil, ErrNilViewport
	}
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		window:          w,
		viewport:        vp,
		engineTickRate:  time.Second / 60,
	}
	for _, opt := range options {
		opt(e)
	}
	e.log = logger.OrNop(e.log)
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.log))
	}

	w.SetResizeCallback(e.onResize)
	w.SetScrollCallback(e.onScroll)
	w.SetMouseDownCallback(e.onMouseDown)
	w.SetMouseUpCallback(e.onMouseUp)
	w.SetMouseMoveCallback(e.onMouseMove)
	w.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			w.RequestClose()
		default:
		}
	})
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Viewport() *scene.Viewport {
	return e.viewport
}

func (e *engine) Run() error {
	e.running.Store(true)
	e.handle()
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.running.Store(false)

	e.viewport.Release()
	if err := e.window.Close(); err != nil && !errors.Is(err, window.ErrNotInitialized) {
		e.log.Warnf("close window: %v", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *engine) Quit() {
	e.signalQuit()
	e.window.RequestClose()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// fail records the first fatal error and stops the engine.
func (e *engine) fail(err error) {
	e.mu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.mu.Unlock()
	e.log.Errorf("%v", err)
	e.Quit()
}

// handle launches the tick, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleTick()
	go e.handleRender()
	go e.handleQuit()
}

// handleTick runs the fixed-rate tick loop. Each tick advances the scene and fires the
// tick callback, and the loop listens for rate changes on tickRateChannel.
func (e *engine) handleTick() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.fail(fmt.Errorf("tick goroutine panic: %v", r))
		}
	}()

	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

// tick advances the scene by dt, or by zero while paused so the camera still updates.
func (e *engine) tick(dt float32) {
	sceneDt := dt
	if e.paused.Load() {
		sceneDt = 0
	}
	e.viewport.Scene.Update(sceneDt)
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
}

// handleRender runs the uncapped (or frame-limited) render loop.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.fail(fmt.Errorf("render goroutine panic: %v", r))
		}
	}()

	lastRender := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		if err := e.renderFrame(); err != nil {
			e.fail(err)
			return
		}
		if e.renderCallback != nil {
			e.renderCallback(dt)
		}
		if e.profilingEnabled.Load() {
			e.profiler.Tick()
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// renderFrame draws and presents one frame. A frame that cannot begin (a minimized or
// outdated surface) is skipped; draw and submit failures are fatal.
func (e *engine) renderFrame() error {
	r := e.viewport.Renderer
	if err := r.BeginFrame(); err != nil {
		e.log.Debugf("skipping frame: %v", err)
		return nil
	}
	if err := e.viewport.Scene.DrawCalls(); err != nil {
		_ = r.EndFrame()
		return fmt.Errorf("draw: %w", err)
	}
	if err := r.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.Present()
	return nil
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
	e.log.Debugf("engine stopping")
}

func (e *engine) onResize(width, height int) {
	if err := e.viewport.Resize(width, height); err != nil {
		e.log.Errorf("resize to %dx%d: %v", width, height, err)
		return
	}
	e.log.Debugf("resized to %dx%d", width, height)
}

func (e *engine) onScroll(delta float32) {
	if ctrl := e.viewport.Camera.Controller(); ctrl != nil {
		ctrl.Zoom(delta)
	}
}

func (e *engine) onMouseDown(button int, x, y int32) {
	if button != common.MouseButtonLeft && button != common.MouseButtonMiddle {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drag = dragState{active: true, x: x, y: y}
}

func (e *engine) onMouseUp(button int, x, y int32) {
	if button != common.MouseButtonLeft && button != common.MouseButtonMiddle {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drag.active = false
}

func (e *engine) onMouseMove(x, y int32) {
	e.mu.Lock()
	if !e.drag.active {
		e.mu.Unlock()
		return
	}
	dx, dy := float32(x-e.drag.x), float32(y-e.drag.y)
	e.drag.x, e.drag.y = x, y
	e.mu.Unlock()

	if ctrl := e.viewport.Camera.Controller(); ctrl != nil {
		ctrl.Drag(dx, dy)
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	e.engineTickRate = newRate
	e.mu.Unlock()
	if !e.running.Load() {
		return
	}
	// Replace any pending, not yet applied rate.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetPaused(paused bool) {
	e.paused.Store(paused)
}

func (e *engine) Paused() bool {
	return e.paused.Load()
}
