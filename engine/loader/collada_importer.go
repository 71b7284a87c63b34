package loader

import (
	"fmt"
	"io"
	"log"

	"github.com/Carmen-Shannon/polyview/common"
	"github.com/Carmen-Shannon/polyview/engine/collada"
	"github.com/Carmen-Shannon/polyview/engine/model"
)

// colladaImporterImpl is the implementation of the colladaImporter interface.
type colladaImporterImpl struct {
	logger *log.Logger
	policy PolygonPolicy
}

// colladaImporter orchestrates a COLLADA import: parse, locate, polygon policy, decode, build.
type colladaImporter interface {
	// Import reads a .dae file and extracts its first polylist mesh.
	//
	// Parameters:
	//   - path: the file path to the COLLADA document
	//
	// Returns:
	//   - *model.ImportedModel: the imported model
	//   - error: error if reading or decoding fails
	Import(path string) (*model.ImportedModel, error)

	// ImportReader reads a COLLADA document from a stream and extracts its first polylist mesh.
	//
	// Parameters:
	//   - r: the reader providing the XML document
	//
	// Returns:
	//   - *model.ImportedModel: the imported model
	//   - error: error if reading or decoding fails
	ImportReader(r io.Reader) (*model.ImportedModel, error)

	// ImportDocument extracts the first polylist mesh of an already parsed document.
	//
	// Parameters:
	//   - doc: the parsed document
	//
	// Returns:
	//   - *model.ImportedModel: the imported model
	//   - error: error if decoding fails
	ImportDocument(doc *collada.Document) (*model.ImportedModel, error)
}

var _ colladaImporter = &colladaImporterImpl{}

// newColladaImporter creates a new COLLADA importer.
//
// Parameters:
//   - logger: receives decode diagnostics
//   - policy: how polygons with more than three corners are handled
//
// Returns:
//   - colladaImporter: the importer
func newColladaImporter(logger *log.Logger, policy PolygonPolicy) colladaImporter {
	return &colladaImporterImpl{
		logger: logger,
		policy: policy,
	}
}

func (imp *colladaImporterImpl) Import(path string) (*model.ImportedModel, error) {
	doc, err := collada.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return imp.ImportDocument(doc)
}

func (imp *colladaImporterImpl) ImportReader(r io.Reader) (*model.ImportedModel, error) {
	doc, err := collada.Read(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}
	return imp.ImportDocument(doc)
}

func (imp *colladaImporterImpl) ImportDocument(doc *collada.Document) (*model.ImportedModel, error) {
	geometry, mesh, polylist, err := LocateGeometry(doc)
	if err != nil {
		return nil, err
	}

	if err := checkPolygons(polylist, imp.policy); err != nil {
		return nil, err
	}

	vertices, indices, err := DecodePolylist(mesh, polylist, WithDecodeLogger(imp.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to decode geometry %q: %w", geometry.ID, err)
	}

	if imp.policy == PolygonPolicyFan {
		indices = FanTriangulate(polylist.VCount, indices)
	}

	built, err := model.NewMeshBuilder().AddVertices(vertices...).SetIndices(indices).Build()
	if err != nil {
		return nil, fmt.Errorf("%w: geometry %q: %w", ErrMeshBuild, geometry.ID, err)
	}

	return &model.ImportedModel{
		Name:       common.Coalesce(geometry.Name, geometry.ID),
		GeometryID: geometry.ID,
		Material:   polylist.Material,
		Mesh:       built,
	}, nil
}
