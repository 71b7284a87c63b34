package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/pkg/profile"
)

// Profiler tracks frame rate and memory statistics and logs them at a fixed interval.
type Profiler struct {
	logger         *log.Logger
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Stats
}

// Stats is one logged sample.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	SysMB       float64
}

// ProfilerOption is a functional option for NewProfiler.
type ProfilerOption func(*Profiler)

// WithLogger sets the logger stats are written to. Nil keeps log.Default().
func WithLogger(logger *log.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets how often stats are logged.
//
// Parameters:
//   - interval: the reporting interval, values <= 0 keep the default of one second
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// NewProfiler creates a new Profiler. The first interval starts now.
//
// Parameters:
//   - options: functional options such as WithLogger and WithInterval
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         log.Default(),
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick records one frame presented at now and logs statistics when the interval has elapsed.
//
// Parameters:
//   - now: the frame time
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick(now time.Time) bool {
	p.frameCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	p.last = Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	p.logger.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (+%d) | Sys: %.2f MB",
		p.last.FPS, p.last.HeapMB, p.last.AllocRateMB, p.last.GCCount, p.last.GCCount-p.lastGCCount, p.last.SysMB)

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently logged sample.
func (p *Profiler) Last() Stats {
	return p.last
}

// StartCPUProfile begins a pprof CPU profile written to dir.
//
// Parameters:
//   - dir: the output directory, created if missing
//
// Returns:
//   - func(): stops the profile and flushes it to disk
func StartCPUProfile(dir string) func() {
	return profile.Start(
		profile.CPUProfile,
		profile.ProfilePath(dir),
		profile.NoShutdownHook,
		profile.Quiet,
	).Stop
}
