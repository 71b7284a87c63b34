package loader

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// ValidationResult is the outcome of loading one document during batch validation.
type ValidationResult struct {
	Path          string
	VertexCount   int
	TriangleCount int

	// Err is nil when the document loaded successfully.
	Err error

	// Malformed is true when Err reports a document-shape violation.
	Malformed bool
}

// OK reports whether the document loaded without error.
func (r ValidationResult) OK() bool {
	return r.Err == nil
}

// ValidateFiles loads every path concurrently on a dynamic worker pool and reports the
// outcome of each. Models are not cached. Results are returned in input order.
//
// Parameters:
//   - paths: the documents to validate
//   - workers: the maximum number of concurrent loads, values below 1 mean 1
//   - options: loader options applied to the shared loader (logger, polygon policy)
//
// Returns:
//   - []ValidationResult: one result per path
func ValidateFiles(paths []string, workers int, options ...LoaderBuilderOption) []ValidationResult {
	results := make([]ValidationResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	l := NewLoader(BackendTypeCollada, options...)
	pool := worker.NewDynamicWorkerPool(max(workers, 1), len(paths), 1*time.Second)

	// Results are written by index, so no lock is needed. The WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				results[i] = validateOne(l, path)
				return nil, results[i].Err
			},
		})
	}
	wg.Wait()

	return results
}

func validateOne(l Loader, path string) ValidationResult {
	result := ValidationResult{Path: path}
	mesh, err := l.LoadMesh(path)
	if err != nil {
		result.Err = err
		result.Malformed = IsMalformed(err)
		return result
	}
	result.VertexCount = mesh.VertexCount()
	result.TriangleCount = mesh.TriangleCount()
	return result
}
