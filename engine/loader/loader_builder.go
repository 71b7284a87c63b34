package loader

import (
	"log"

	"github.com/Carmen-Shannon/polyview/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithLogger is an option builder that sets the logger receiving load diagnostics.
//
// Parameters:
//   - logger: the logger to use, nil keeps log.Default()
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *log.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithPolygonPolicy is an option builder that sets how polygons with more than three
// corners are handled. The default is PolygonPolicyReject.
//
// Parameters:
//   - policy: the polygon policy
//
// Returns:
//   - LoaderBuilderOption: a function that applies the policy option to a loader
func WithPolygonPolicy(policy PolygonPolicy) LoaderBuilderOption {
	return func(l *loader) {
		l.policy = policy
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}
