package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/polyview/engine/game_object"
	"github.com/Carmen-Shannon/polyview/engine/profiler"
	"github.com/Carmen-Shannon/polyview/engine/renderer"
	"github.com/Carmen-Shannon/polyview/engine/window"
)

// engine implements the Engine interface.
// Drives the window message loop and renders one paced frame per iteration.
type engine struct {
	mu sync.Mutex

	logger *log.Logger

	window   window.Window
	renderer renderer.Renderer

	objects []game_object.GameObject

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameRate float64
	pacer     *framePacer
	paused    bool

	updateCallback func(deltaTime float32)

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine is the viewer's main loop. It owns a window and a renderer, steps every
// GameObject once per frame and draws the enabled ones.
type Engine interface {
	// Window returns the underlying window.
	Window() window.Window

	// Renderer returns the renderer frames are drawn with.
	Renderer() renderer.Renderer

	// AddObject registers the object's model with the renderer and adds it to the frame.
	//
	// Parameters:
	//   - obj: the object to add; its model must have mesh data
	//
	// Returns:
	//   - error: the renderer's error if the mesh could not be registered
	AddObject(obj game_object.GameObject) error

	// Objects returns the objects in the order they were added.
	Objects() []game_object.GameObject

	// SetUpdateCallback registers a function called once per frame before drawing,
	// receiving the fixed frame step in seconds.
	SetUpdateCallback(callback func(deltaTime float32))

	// SetPaused stops or resumes object animation. Frames are still drawn while paused.
	SetPaused(paused bool)

	// Paused reports whether animation is stopped.
	Paused() bool

	// EnableProfiler enables frame rate and memory logging.
	EnableProfiler()

	// DisableProfiler disables frame rate and memory logging.
	DisableProfiler()

	// Run blocks in the window message loop until the window closes.
	Run()

	// Frame runs a single frame: update, step, draw and present. Run calls it once per
	// loop iteration.
	Frame()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// The window's resize events reconfigure the renderer's surface.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, frame rate, ...)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:    log.Default(),
		frameRate: 60,
		now:       time.Now,
		sleep:     time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	e.pacer = newFramePacer(e.frameRate, e.now())

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) AddObject(obj game_object.GameObject) error {
	if e.renderer != nil {
		if _, ok := obj.MeshHandle(); !ok {
			handle, err := e.renderer.RegisterMesh(obj.Model())
			if err != nil {
				return err
			}
			obj.SetMeshHandle(handle)
		}
	}
	e.mu.Lock()
	e.objects = append(e.objects, obj)
	e.mu.Unlock()
	return nil
}

func (e *engine) Objects() []game_object.GameObject {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]game_object.GameObject, len(e.objects))
	copy(out, e.objects)
	return out
}

func (e *engine) SetUpdateCallback(callback func(deltaTime float32)) {
	e.updateCallback = callback
}

func (e *engine) SetPaused(paused bool) {
	e.mu.Lock()
	e.paused = paused
	e.mu.Unlock()
}

func (e *engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() {
	if e.window == nil {
		e.logger.Printf("[Engine] no window, nothing to run")
		return
	}
	e.window.SetUpdateCallback(e.Frame)
	e.window.ProcessMessages()
}

func (e *engine) Frame() {
	dt := float32(e.pacer.frameTime().Seconds())
	if dt == 0 {
		dt = 1.0 / 60
	}

	if e.updateCallback != nil {
		e.updateCallback(dt)
	}

	objects := e.Objects()
	if !e.Paused() {
		for _, obj := range objects {
			obj.Step(dt)
		}
	}

	if e.renderer != nil {
		e.draw(objects)
	}

	if e.profilingEnabled {
		e.profiler.Tick(e.now())
	}

	if d := e.pacer.wait(e.now()); d > 0 {
		e.sleep(d)
	}
}

// draw renders one frame. A surface that cannot be acquired (e.g. while minimised) skips the frame.
func (e *engine) draw(objects []game_object.GameObject) {
	if err := e.renderer.BeginFrame(); err != nil {
		e.logger.Printf("[Engine] skipping frame: %v", err)
		return
	}
	for _, obj := range objects {
		if !obj.Enabled() {
			continue
		}
		handle, ok := obj.MeshHandle()
		if !ok {
			continue
		}
		if err := e.renderer.Draw(handle, obj.ModelMatrix()); err != nil {
			e.logger.Printf("[Engine] draw %q: %v", obj.Name(), err)
		}
	}
	e.renderer.EndFrame()
	e.renderer.Present()
}

// resize reconfigures the surface. Zero sizes arrive while the window is minimised and are ignored.
func (e *engine) resize(width, height int) {
	if e.renderer == nil || width <= 0 || height <= 0 {
		return
	}
	if err := e.renderer.ConfigureSurface(width, height); err != nil {
		e.logger.Printf("[Engine] resize to %dx%d: %v", width, height, err)
	}
}
