package loader

import (
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/polyview/engine/collada"
	"github.com/Carmen-Shannon/polyview/engine/model"
)

// Semantic is the decoded meaning of an input's semantic string.
type Semantic int

const (
	// SemanticOther covers every semantic the decoder does not consume (TEXCOORD, COLOR, ...).
	SemanticOther Semantic = iota
	// SemanticVertex is the VERTEX semantic: an index into the mesh's vertices block.
	SemanticVertex
	// SemanticNormal is the NORMAL semantic: an index into a normal source.
	SemanticNormal
)

// ParseSemantic maps a COLLADA semantic string to a Semantic. Matching is case-sensitive,
// as semantic names are in the schema.
//
// Parameters:
//   - s: the semantic attribute value
//
// Returns:
//   - Semantic: the decoded semantic, SemanticOther when unrecognised
func ParseSemantic(s string) Semantic {
	switch s {
	case "VERTEX":
		return SemanticVertex
	case "NORMAL":
		return SemanticNormal
	default:
		return SemanticOther
	}
}

func (s Semantic) String() string {
	switch s {
	case SemanticVertex:
		return "VERTEX"
	case SemanticNormal:
		return "NORMAL"
	default:
		return "OTHER"
	}
}

// DecodeOption is a functional option for DecodePolylist.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	logger *log.Logger
}

// WithDecodeLogger sets the logger that receives decode diagnostics such as ignored semantics.
//
// Parameters:
//   - logger: the logger to use, nil keeps the default
//
// Returns:
//   - DecodeOption: a function that applies the logger option
func WithDecodeLogger(logger *log.Logger) DecodeOption {
	return func(c *decodeConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// LocateGeometry returns the first geometry whose element is a mesh containing a polylist,
// scanning libraries, then geometries, then primitives in document order.
//
// Parameters:
//   - doc: the parsed document
//
// Returns:
//   - *collada.Geometry: the owning geometry
//   - *collada.Mesh: the mesh holding the polylist
//   - *collada.Polylist: the first polylist primitive
//   - error: ErrNoMesh when the document has none
func LocateGeometry(doc *collada.Document) (*collada.Geometry, *collada.Mesh, *collada.Polylist, error) {
	if doc == nil {
		return nil, nil, nil, ErrNoMesh
	}
	for _, lib := range doc.Libraries {
		geometries, ok := lib.(*collada.LibraryGeometries)
		if !ok {
			continue
		}
		for _, geometry := range geometries.Geometries {
			mesh, ok := geometry.Element.(*collada.Mesh)
			if !ok {
				continue
			}
			for _, primitive := range mesh.Primitives {
				if polylist, ok := primitive.(*collada.Polylist); ok {
					return geometry, mesh, polylist, nil
				}
			}
		}
	}
	return nil, nil, nil, ErrNoMesh
}

// LocatePolylist returns the first mesh and polylist in the document. See LocateGeometry.
func LocatePolylist(doc *collada.Document) (*collada.Mesh, *collada.Polylist, error) {
	_, mesh, polylist, err := LocateGeometry(doc)
	return mesh, polylist, err
}

// DecodePolylist resolves every polygon corner of a polylist into a vertex record. It emits
// one vertex per corner and the identity index sequence 0..N-1; polygons are not triangulated.
//
// Parameters:
//   - mesh: the mesh owning the polylist, used to resolve sources and the vertices block
//   - polylist: the polylist to decode
//   - options: decode options such as WithDecodeLogger
//
// Returns:
//   - []model.Vertex: one record per corner in traversal order
//   - []uint32: the identity index sequence
//   - error: a *MalformedDocumentError for document-shape violations, or ErrMissingPosition
func DecodePolylist(mesh *collada.Mesh, polylist *collada.Polylist, options ...DecodeOption) ([]model.Vertex, []uint32, error) {
	cfg := decodeConfig{logger: log.Default()}
	for _, opt := range options {
		opt(&cfg)
	}

	polygons, err := polylist.Polygons()
	if err != nil {
		var truncated *collada.TruncatedIndexError
		if errors.As(err, &truncated) {
			e := malformed(TruncatedIndexStream)
			e.Index = truncated.Actual
			e.Err = err
			return nil, nil, e
		}
		e := malformed(InvalidVertexCount)
		e.Err = err
		return nil, nil, e
	}

	d := &polylistDecoder{
		mesh:    mesh,
		sources: mesh.SourceTable(),
		logger:  cfg.logger,
		ignored: make(map[string]bool),
	}

	total := polylist.CornerCount()
	vertices := make([]model.Vertex, 0, total)
	indices := make([]uint32, 0, total)
	if total == 0 {
		return vertices, indices, nil
	}

	stride := polylist.Stride()
	byOffset := make([][]collada.Input, stride)
	for offset := range stride {
		byOffset[offset] = polylist.InputsForOffset(offset)
	}

	for p, polygon := range polygons {
		for c, corner := range polygon {
			v, hasPosition, err := d.decodeCorner(corner, byOffset)
			if err != nil {
				return nil, nil, err
			}
			if !hasPosition {
				return nil, nil, fmt.Errorf("%w: polygon %d corner %d", ErrMissingPosition, p, c)
			}
			vertices = append(vertices, v)
			indices = append(indices, uint32(len(indices)))
		}
	}
	return vertices, indices, nil
}

// polylistDecoder holds the per-mesh lookup state of a single decode.
type polylistDecoder struct {
	mesh    *collada.Mesh
	sources map[string]*collada.Source
	logger  *log.Logger

	// ignored records unknown semantics already reported, so each is logged once per decode.
	ignored map[string]bool
}

func (d *polylistDecoder) decodeCorner(corner collada.Corner, byOffset [][]collada.Input) (model.Vertex, bool, error) {
	var v model.Vertex
	hasPosition := false

	for _, attr := range corner {
		for _, input := range byOffset[attr.Offset] {
			switch ParseSemantic(input.Semantic) {
			case SemanticVertex:
				pos, err := d.resolveVertex(input, attr.Index)
				if err != nil {
					return v, false, err
				}
				v.Position = pos
				hasPosition = true
			case SemanticNormal:
				normal, err := d.resolveVector(input.Source.ID(), input.Semantic, attr.Index)
				if err != nil {
					return v, false, err
				}
				v.Normal = &normal
			default:
				if !d.ignored[input.Semantic] {
					d.ignored[input.Semantic] = true
					d.logger.Printf("[Loader] ignoring unknown semantic %q at offset %d", input.Semantic, input.Offset)
				}
			}
		}
	}
	return v, hasPosition, nil
}

// resolveVertex follows a VERTEX input through the mesh's vertices block to its POSITION source.
func (d *polylistDecoder) resolveVertex(input collada.Input, index int) ([3]float32, error) {
	if id := input.Source.ID(); id != d.mesh.Vertices.ID {
		e := malformed(ForeignVertices)
		e.ID = id
		e.Semantic = input.Semantic
		return [3]float32{}, e
	}

	position, ok := d.mesh.Vertices.InputBySemantic("POSITION")
	if !ok {
		e := malformed(MissingPositionInput)
		e.ID = d.mesh.Vertices.ID
		e.Semantic = input.Semantic
		return [3]float32{}, e
	}
	return d.resolveVector(position.Source.ID(), position.Semantic, index)
}

// resolveVector reads element index of a float source and zips it against the accessor's
// params to produce an (X, Y, Z) triple.
func (d *polylistDecoder) resolveVector(sourceID, semantic string, index int) ([3]float32, error) {
	var out [3]float32

	source, ok := d.sources[sourceID]
	if !ok {
		e := malformed(UnresolvedSource)
		e.Source = sourceID
		e.Semantic = semantic
		return out, e
	}

	floats, ok := source.Array.(*collada.FloatArray)
	if !ok {
		e := malformed(UnsupportedArray)
		e.Source = sourceID
		e.Semantic = semantic
		if source.Array != nil {
			e.Err = fmt.Errorf("found %s", source.Array.ArrayElement())
		}
		return out, e
	}

	if source.Accessor == nil {
		e := malformed(MissingAccessor)
		e.Source = sourceID
		e.Semantic = semantic
		return out, e
	}

	element, err := source.Accessor.Access(floats.Data, index)
	if err != nil {
		e := malformed(ElementOutOfRange)
		e.Source = sourceID
		e.Semantic = semantic
		e.Index = index
		e.Err = err
		return out, e
	}

	var found [3]bool
	for i, param := range source.Accessor.Params {
		if i >= len(element) {
			break
		}
		switch param.Name {
		case "X":
			out[0], found[0] = element[i], true
		case "Y":
			out[1], found[1] = element[i], true
		case "Z":
			out[2], found[2] = element[i], true
		}
	}
	for i, name := range [3]string{"X", "Y", "Z"} {
		if !found[i] {
			e := malformed(MissingComponent)
			e.Source = sourceID
			e.Semantic = semantic
			e.Component = name
			return out, e
		}
	}
	return out, nil
}
