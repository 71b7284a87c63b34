package loader

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/polyview/engine/model"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeCollada selects the COLLADA 1.4 loader backend.
	BackendTypeCollada LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	logger *log.Logger
	policy PolygonPolicy

	modelCache map[string]model.Model

	backendType LoaderBackendType
	backend     loaderBackend
}

// Loader defines the public-facing interface for loading and caching models.
// It abstracts the file format behind a backend and manages a cache of previously
// loaded models.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension (.dae → COLLADA backend).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadMesh imports a model file and returns only its mesh, bypassing the cache.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - *model.Mesh: the decoded mesh
	//   - error: error if loading fails
	LoadMesh(path string) (*model.Mesh, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeCollada)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:          sync.RWMutex{},
		logger:      log.Default(),
		policy:      PolygonPolicyReject,
		modelCache:  make(map[string]model.Model),
		backendType: backendType,
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeCollada:
		l.backend = newColladaLoaderBackend(l.logger, l.policy)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	m := l.importedToModel(imported)
	l.logger.Printf("[Loader] loaded %s: geometry %q, %d vertices, %d triangles",
		path, imported.GeometryID, imported.Mesh.VertexCount(), imported.Mesh.TriangleCount())

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadMesh(path string) (*model.Mesh, error) {
	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return imported.Mesh, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if l.backend == nil {
		return nil, fmt.Errorf("%w: no backend for reader %q", ErrUnsupportedFormat, name)
	}

	imported, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	m := l.importedToModel(imported)

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only COLLADA is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".dae" && l.backendType == BackendTypeCollada && l.backend != nil:
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// importedToModel packages an ImportedModel (CPU data) into a Model with GPU-ready buffers.
func (l *loader) importedToModel(imported *model.ImportedModel) model.Model {
	return model.NewModel(
		model.WithName(imported.Name),
		model.WithGeometryID(imported.GeometryID),
		model.WithMaterial(imported.Material),
		model.WithMesh(imported.Mesh),
	)
}
