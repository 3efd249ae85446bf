package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-planet/engine/logger"
)

// Report is one interval's worth of frame statistics.
type Report struct {
	FPS         float64
	FrameTime   time.Duration // mean time between frames over the interval
	HeapMB      float64
	AllocRateMB float64 // MB allocated per second over the interval
	NumGC       uint32
	MaxPauseUs  uint64 // longest GC pause since the previous report
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Reports through its logger at a configurable interval.
type Profiler struct {
	log            logger.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Report
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithLogger sets the logger reports are written to. Defaults to a no-op logger.
func WithLogger(l logger.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.log = l
	}
}

// WithInterval sets how often a report is produced. Non-positive values keep the
// one second default.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: variadic list of ProfilerOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.log = logger.OrNop(p.log)
	p.lastTime = p.now()
	return p
}

// Tick should be called once per rendered frame. When the update interval has elapsed it
// computes a Report and logs it at info level.
//
// Returns:
//   - bool: true if a report was produced this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	r := Report{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		FrameTime:   elapsed / time.Duration(p.frameCount),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		NumGC:       p.memStats.NumGC,
	}

	// PauseNs is a circular buffer of the last 256 GC pauses.
	start := p.lastGCCount
	if r.NumGC-start > 256 {
		start = r.NumGC - 256
	}
	for i := start; i < r.NumGC; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > r.MaxPauseUs {
			r.MaxPauseUs = pause
		}
	}

	p.log.Infof("fps %.1f | frame %s | heap %.2f MB | alloc %.2f MB/s | gc %d (max pause %d µs)",
		r.FPS, r.FrameTime.Round(time.Microsecond), r.HeapMB, r.AllocRateMB, r.NumGC, r.MaxPauseUs)

	p.last = r
	p.frameCount = 0
	p.lastTime = current
	p.lastGCCount = r.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent report, or a zero Report before the first one.
func (p *Profiler) Last() Report {
	return p.last
}
