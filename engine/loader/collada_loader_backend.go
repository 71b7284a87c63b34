package loader

import (
	"io"
	"log"

	"github.com/Carmen-Shannon/polyview/engine/model"
)

// colladaLoaderBackendImpl is the implementation of colladaLoaderBackend.
type colladaLoaderBackendImpl struct {
	importer colladaImporter
}

// colladaLoaderBackend is a loaderBackend implementation for COLLADA (.dae) files.
// It delegates to the colladaImporter for parsing and extraction.
type colladaLoaderBackend interface {
	loaderBackend
}

var _ colladaLoaderBackend = &colladaLoaderBackendImpl{}

// newColladaLoaderBackend creates a new COLLADA loader backend.
//
// Returns:
//   - colladaLoaderBackend: the loader backend for .dae files
func newColladaLoaderBackend(logger *log.Logger, policy PolygonPolicy) colladaLoaderBackend {
	return &colladaLoaderBackendImpl{
		importer: newColladaImporter(logger, policy),
	}
}

func (b *colladaLoaderBackendImpl) Load(path string) (*model.ImportedModel, error) {
	return b.importer.Import(path)
}

func (b *colladaLoaderBackendImpl) LoadReader(r io.Reader) (*model.ImportedModel, error) {
	return b.importer.ImportReader(r)
}
