package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/polyview/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// Common errors returned by the Renderer.
var (
	ErrInvalidMeshHandle = errors.New("renderer: invalid mesh handle")
	ErrEmptyMesh         = errors.New("renderer: model has no mesh data")
	ErrNoFrame           = errors.New("renderer: Draw called outside BeginFrame/EndFrame")
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	meshes []*meshBuffers

	camera   Camera
	light    DirectionalLight
	material Material

	width   int
	height  int
	inFrame bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *wgpu.Color
}

// Renderer draws registered meshes with a single lit pipeline onto a window surface.
//
// A frame is BeginFrame, any number of Draw calls (at most one per mesh handle, as each
// mesh owns one uniform buffer), EndFrame, then Present.
type Renderer interface {
	// ConfigureSurface (re)configures the surface for a new size, e.g. after a window resize.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	//
	// Returns:
	//   - error: an error if the surface targets could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	SetPresentMode(mode PresentMode) error

	// RegisterMesh uploads a model's vertex and index data to the GPU.
	//
	// Parameters:
	//   - m: the model to upload
	//
	// Returns:
	//   - MeshHandle: the handle to pass to Draw
	//   - error: ErrEmptyMesh if the model has no data, or a GPU error
	RegisterMesh(m model.Model) (MeshHandle, error)

	// SetCamera replaces the active camera.
	SetCamera(camera Camera)

	// Camera returns the active camera.
	Camera() Camera

	// SetLight replaces the active light.
	SetLight(light DirectionalLight)

	// SetMaterial replaces the material used for every mesh.
	SetMaterial(material Material)

	// BeginFrame acquires the next surface texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame() error

	// Draw encodes a draw of a registered mesh with the given model matrix.
	//
	// Parameters:
	//   - handle: the handle returned by RegisterMesh
	//   - modelMatrix: the column-major model-to-world transform
	//
	// Returns:
	//   - error: ErrInvalidMeshHandle or ErrNoFrame
	Draw(handle MeshHandle, modelMatrix [16]float32) error

	// EndFrame ends the render pass and submits the frame's commands.
	EndFrame()

	// Present displays the frame.
	Present()

	// Release frees every GPU resource held by the renderer and its meshes.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given surface and configures it at the given size.
// The surface descriptor is platform-specific and is typically obtained from Window.SurfaceDescriptor().
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., BackendTypeWGPU)
//   - surfaceDescriptor: the platform-specific surface descriptor for WebGPU surface creation
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if no adapter or device could be obtained or the surface could not be configured
func NewRenderer(backendType RendererBackendType, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		camera:      DefaultCamera(),
		light:       DefaultLight(),
		material:    DefaultMaterial(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, msaa)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	if err := r.ConfigureSurface(width, height); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) ConfigureSurface(width, height int) error {
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return err
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	return nil
}

func (r *renderer) SetPresentMode(mode PresentMode) error {
	r.backend.SetPresentMode(mode)

	r.mu.Lock()
	width, height := r.width, r.height
	r.mu.Unlock()
	if width > 0 && height > 0 {
		if err := r.backend.ConfigureSurface(width, height); err != nil {
			return fmt.Errorf("failed to reconfigure surface for present mode: %w", err)
		}
	}
	return nil
}

func (r *renderer) RegisterMesh(m model.Model) (MeshHandle, error) {
	if m == nil || m.IndexCount() == 0 || len(m.VertexData()) == 0 {
		return -1, ErrEmptyMesh
	}

	buffers, err := r.backend.InitMeshBuffers(m.Name(), m.VertexData(), m.IndexData(), m.IndexCount())
	if err != nil {
		return -1, fmt.Errorf("failed to upload mesh %q: %w", m.Name(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.meshes = append(r.meshes, buffers)
	return MeshHandle(len(r.meshes) - 1), nil
}

func (r *renderer) SetCamera(camera Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.camera = camera
}

func (r *renderer) Camera() Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.camera
}

func (r *renderer) SetLight(light DirectionalLight) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.light = light
}

func (r *renderer) SetMaterial(material Material) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.material = material
}

func (r *renderer) BeginFrame() error {
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.mu.Lock()
	r.inFrame = true
	r.mu.Unlock()
	return nil
}

func (r *renderer) Draw(handle MeshHandle, modelMatrix [16]float32) error {
	r.mu.Lock()
	if !r.inFrame {
		r.mu.Unlock()
		return ErrNoFrame
	}
	if handle < 0 || int(handle) >= len(r.meshes) || r.meshes[handle] == nil {
		r.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrInvalidMeshHandle, handle)
	}
	mesh := r.meshes[handle]
	uniforms := buildFrameUniforms(r.camera, r.light, r.material, modelMatrix, float32(r.width)/float32(max(r.height, 1)))
	r.mu.Unlock()

	r.backend.WriteUniforms(mesh, uniforms.Marshal())
	r.backend.DrawMesh(mesh)
	return nil
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	r.inFrame = false
	r.mu.Unlock()
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for _, m := range r.meshes {
		if m != nil {
			m.release()
		}
	}
	r.meshes = nil
	r.mu.Unlock()

	r.backend.Release()
}
