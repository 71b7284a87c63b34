package engine

import (
	"log"

	"github.com/Carmen-Shannon/polyview/engine/renderer"
	"github.com/Carmen-Shannon/polyview/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling sets whether frame rate and memory statistics are logged.
//
// Parameters:
//   - enabled: true to log statistics once per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithFrameRate sets the target frame rate. The loop sleeps until each frame is due and
// objects advance by a fixed 1/fps step per frame.
//
// Parameters:
//   - fps: frames per second, 0 or less renders unpaced
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameRate = fps
	}
}

// WithWindow sets the window whose message loop drives the engine.
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are drawn with.
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithPaused sets whether the engine starts with animation stopped.
func WithPaused(paused bool) EngineBuilderOption {
	return func(e *engine) {
		e.paused = paused
	}
}

// WithLogger sets the logger for engine diagnostics. Nil keeps log.Default().
func WithLogger(logger *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
