package loader

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/polyview/engine/collada"
	"github.com/Carmen-Shannon/polyview/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xyzSource(id string, data ...float32) *collada.Source {
	return &collada.Source{
		ID:    id,
		Array: &collada.FloatArray{ID: id + "-array", Data: data},
		Accessor: &collada.Accessor{
			Source: collada.URI("#" + id + "-array"),
			Count:  len(data) / 3,
			Stride: 3,
			Params: []collada.Param{{Name: "X", Type: "float"}, {Name: "Y", Type: "float"}, {Name: "Z", Type: "float"}},
		},
	}
}

// triangleMesh is a single triangle with positions (0,0,0) (1,0,0) (0,1,0) and one shared
// normal (0,0,1).
func triangleMesh() (*collada.Mesh, *collada.Polylist) {
	polylist := &collada.Polylist{
		Count: 1,
		Inputs: []collada.Input{
			{Offset: 0, Semantic: "VERTEX", Source: "#tri-vertices"},
			{Offset: 1, Semantic: "NORMAL", Source: "#tri-normals"},
		},
		VCount: []int{3},
		P:      []int{0, 0, 1, 0, 2, 0},
	}
	mesh := &collada.Mesh{
		Sources: []*collada.Source{
			xyzSource("tri-positions", 0, 0, 0, 1, 0, 0, 0, 1, 0),
			xyzSource("tri-normals", 0, 0, 1),
		},
		Vertices: collada.Vertices{
			ID:     "tri-vertices",
			Inputs: []collada.Input{{Semantic: "POSITION", Source: "#tri-positions"}},
		},
		Primitives: []collada.Primitive{polylist},
	}
	return mesh, polylist
}

func documentWith(meshes ...*collada.Mesh) *collada.Document {
	lib := &collada.LibraryGeometries{}
	for i, m := range meshes {
		lib.Geometries = append(lib.Geometries, &collada.Geometry{ID: "geom-" + string(rune('a'+i)), Element: m})
	}
	return &collada.Document{Version: "1.4.1", Libraries: []collada.Library{lib}}
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func TestParseSemantic(t *testing.T) {
	assert.Equal(t, SemanticVertex, ParseSemantic("VERTEX"))
	assert.Equal(t, SemanticNormal, ParseSemantic("NORMAL"))
	assert.Equal(t, SemanticOther, ParseSemantic("TEXCOORD"))
	assert.Equal(t, SemanticOther, ParseSemantic("vertex"))
	assert.Equal(t, "NORMAL", SemanticNormal.String())
}

func TestLocatePolylist(t *testing.T) {
	mesh, polylist := triangleMesh()
	mesh.Primitives = []collada.Primitive{&collada.OtherPrimitive{Element: "lines", Count: 1}, polylist}
	later, _ := triangleMesh()

	doc := &collada.Document{Libraries: []collada.Library{
		&collada.LibraryOther{Element: "library_cameras"},
		&collada.LibraryGeometries{Geometries: []*collada.Geometry{
			{ID: "hull", Element: &collada.OtherElement{Element: "convex_mesh"}},
			{ID: "lines-only", Element: &collada.Mesh{Primitives: []collada.Primitive{&collada.OtherPrimitive{Element: "lines"}}}},
			{ID: "tri", Element: mesh},
			{ID: "later", Element: later},
		}},
	}}

	gotMesh, gotPolylist, err := LocatePolylist(doc)
	require.NoError(t, err)
	assert.Same(t, mesh, gotMesh)
	assert.Same(t, polylist, gotPolylist)

	geometry, _, _, err := LocateGeometry(doc)
	require.NoError(t, err)
	assert.Equal(t, "tri", geometry.ID)
}

func TestLocatePolylistNoMesh(t *testing.T) {
	tests := []struct {
		name string
		doc  *collada.Document
	}{
		{name: "nil document"},
		{name: "no libraries", doc: &collada.Document{}},
		{name: "no geometry library", doc: &collada.Document{Libraries: []collada.Library{
			&collada.LibraryOther{Element: "library_materials"},
		}}},
		{name: "no polylist", doc: &collada.Document{Libraries: []collada.Library{
			&collada.LibraryGeometries{Geometries: []*collada.Geometry{
				{ID: "g", Element: &collada.Mesh{Primitives: []collada.Primitive{&collada.OtherPrimitive{Element: "triangles"}}}},
			}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, polylist, err := LocatePolylist(tt.doc)
			assert.Nil(t, mesh)
			assert.Nil(t, polylist)
			assert.ErrorIs(t, err, ErrNoMesh)
			assert.False(t, IsMalformed(err))
			assert.NotErrorIs(t, err, ErrMissingPosition)
		})
	}
}

func TestDecodeTriangle(t *testing.T) {
	mesh, polylist := triangleMesh()

	vertices, indices, err := DecodePolylist(mesh, polylist, WithDecodeLogger(quietLogger()))
	require.NoError(t, err)

	require.Len(t, vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, indices)
	assert.Equal(t, [3]float32{0, 0, 0}, vertices[0].Position)
	assert.Equal(t, [3]float32{1, 0, 0}, vertices[1].Position)
	assert.Equal(t, [3]float32{0, 1, 0}, vertices[2].Position)
	for _, v := range vertices {
		require.NotNil(t, v.Normal)
		assert.Equal(t, [3]float32{0, 0, 1}, *v.Normal)
		assert.Empty(t, v.TexCoord)
	}
}

func TestDecodeIdentityIndices(t *testing.T) {
	mesh, polylist := triangleMesh()
	mesh.Sources[0] = xyzSource("tri-positions", 0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0)
	polylist.VCount = []int{4, 3}
	polylist.P = []int{
		0, 0, 1, 0, 2, 0, 3, 0,
		0, 0, 2, 0, 3, 0,
	}

	vertices, indices, err := DecodePolylist(mesh, polylist, WithDecodeLogger(quietLogger()))
	require.NoError(t, err)
	require.Len(t, vertices, 7)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6}, indices)
	// Shared positions are repeated, never welded.
	assert.Equal(t, vertices[0].Position, vertices[4].Position)
	assert.Equal(t, [3]float32{1, 1, 0}, vertices[2].Position)
}

func TestDecodeWithoutNormals(t *testing.T) {
	mesh, polylist := triangleMesh()
	polylist.Inputs = polylist.Inputs[:1]
	polylist.P = []int{0, 1, 2}

	vertices, _, err := DecodePolylist(mesh, polylist)
	require.NoError(t, err)
	for _, v := range vertices {
		assert.Nil(t, v.Normal)
	}
}

func TestDecodeSharedOffset(t *testing.T) {
	mesh, polylist := triangleMesh()
	mesh.Sources[1] = xyzSource("tri-normals", 0, 0, 1, 0, 0, -1, 1, 0, 0)
	polylist.Inputs = []collada.Input{
		{Offset: 0, Semantic: "VERTEX", Source: "#tri-vertices"},
		{Offset: 0, Semantic: "NORMAL", Source: "#tri-normals"},
	}
	polylist.P = []int{0, 1, 2}

	vertices, _, err := DecodePolylist(mesh, polylist)
	require.NoError(t, err)
	require.NotNil(t, vertices[1].Normal)
	assert.Equal(t, [3]float32{0, 0, -1}, *vertices[1].Normal)
}

func TestDecodeIgnoresUnknownSemantic(t *testing.T) {
	mesh, polylist := triangleMesh()
	polylist.Inputs = append(polylist.Inputs, collada.Input{Offset: 2, Semantic: "TEXCOORD", Source: "#nowhere"})
	polylist.P = []int{0, 0, 9, 1, 0, 9, 2, 0, 9}

	var buf bytes.Buffer
	vertices, indices, err := DecodePolylist(mesh, polylist, WithDecodeLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)
	assert.Len(t, vertices, 3)
	assert.Len(t, indices, 3)
	assert.Contains(t, buf.String(), `ignoring unknown semantic "TEXCOORD"`)
	assert.Equal(t, 1, strings.Count(buf.String(), "ignoring unknown semantic"))
}

func TestDecodeDeterministic(t *testing.T) {
	mesh, polylist := triangleMesh()

	v1, i1, err := DecodePolylist(mesh, polylist)
	require.NoError(t, err)
	v2, i2, err := DecodePolylist(mesh, polylist)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, i1, i2)
}

func TestDecodeMissingPosition(t *testing.T) {
	mesh, polylist := triangleMesh()
	polylist.Inputs = []collada.Input{{Offset: 0, Semantic: "NORMAL", Source: "#tri-normals"}}
	polylist.P = []int{0, 0, 0}

	vertices, indices, err := DecodePolylist(mesh, polylist)
	assert.Nil(t, vertices)
	assert.Nil(t, indices)
	assert.ErrorIs(t, err, ErrMissingPosition)
	assert.False(t, IsMalformed(err))
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(mesh *collada.Mesh, polylist *collada.Polylist)
		kind   MalformedKind
		check  func(t *testing.T, e *MalformedDocumentError)
	}{
		{
			name: "foreign vertices",
			mutate: func(_ *collada.Mesh, p *collada.Polylist) {
				p.Inputs[0].Source = "#other-vertices"
			},
			kind: ForeignVertices,
			check: func(t *testing.T, e *MalformedDocumentError) {
				assert.Equal(t, "other-vertices", e.ID)
			},
		},
		{
			name: "missing position input",
			mutate: func(m *collada.Mesh, _ *collada.Polylist) {
				m.Vertices.Inputs = []collada.Input{{Semantic: "NORMAL", Source: "#tri-normals"}}
			},
			kind: MissingPositionInput,
			check: func(t *testing.T, e *MalformedDocumentError) {
				assert.Equal(t, "tri-vertices", e.ID)
			},
		},
		{
			name: "unresolved position source",
			mutate: func(m *collada.Mesh, _ *collada.Polylist) {
				m.Vertices.Inputs[0].Source = "#missing"
			},
			kind: UnresolvedSource,
			check: func(t *testing.T, e *MalformedDocumentError) {
				assert.Equal(t, "missing", e.Source)
				assert.Equal(t, "POSITION", e.Semantic)
			},
		},
		{
			name: "unresolved normal source",
			mutate: func(_ *collada.Mesh, p *collada.Polylist) {
				p.Inputs[1].Source = "#missing-normals"
			},
			kind: UnresolvedSource,
			check: func(t *testing.T, e *MalformedDocumentError) {
				assert.Equal(t, "NORMAL", e.Semantic)
			},
		},
		{
			name: "unsupported array",
			mutate: func(m *collada.Mesh, _ *collada.Polylist) {
				m.Sources[0].Array = &collada.IntArray{Data: []int{0, 0, 0}}
			},
			kind: UnsupportedArray,
		},
		{
			name: "missing accessor",
			mutate: func(m *collada.Mesh, _ *collada.Polylist) {
				m.Sources[1].Accessor = nil
			},
			kind: MissingAccessor,
			check: func(t *testing.T, e *MalformedDocumentError) {
				assert.Equal(t, "tri-normals", e.Source)
			},
		},
		{
			name: "element out of range",
			mutate: func(_ *collada.Mesh, p *collada.Polylist) {
				p.P[4] = 3
			},
			kind: ElementOutOfRange,
			check: func(t *testing.T, e *MalformedDocumentError) {
				assert.Equal(t, 3, e.Index)
				var accessErr *collada.AccessError
				assert.ErrorAs(t, e, &accessErr)
			},
		},
		{
			name: "missing Z component",
			mutate: func(m *collada.Mesh, _ *collada.Polylist) {
				m.Sources[0].Accessor.Params = m.Sources[0].Accessor.Params[:2]
			},
			kind: MissingComponent,
			check: func(t *testing.T, e *MalformedDocumentError) {
				assert.Equal(t, "Z", e.Component)
			},
		},
		{
			name: "truncated index stream",
			mutate: func(_ *collada.Mesh, p *collada.Polylist) {
				p.P = p.P[:5]
			},
			kind: TruncatedIndexStream,
			check: func(t *testing.T, e *MalformedDocumentError) {
				assert.Equal(t, 5, e.Index)
			},
		},
		{
			name: "negative vertex count",
			mutate: func(_ *collada.Mesh, p *collada.Polylist) {
				p.VCount = []int{3, -1}
			},
			kind: InvalidVertexCount,
		},
		{
			name: "negative vertex count after an oversized polygon",
			mutate: func(_ *collada.Mesh, p *collada.Polylist) {
				p.VCount = []int{6, -3}
			},
			kind: InvalidVertexCount,
		},
		{
			name: "negative accessor offset",
			mutate: func(m *collada.Mesh, _ *collada.Polylist) {
				m.Sources[0].Accessor.Offset = -3
			},
			kind: ElementOutOfRange,
			check: func(t *testing.T, e *MalformedDocumentError) {
				assert.Equal(t, "tri-positions", e.Source)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, polylist := triangleMesh()
			tt.mutate(mesh, polylist)

			var vertices []model.Vertex
			var indices []uint32
			var err error
			require.NotPanics(t, func() {
				vertices, indices, err = DecodePolylist(mesh, polylist, WithDecodeLogger(quietLogger()))
			})
			assert.Nil(t, vertices)
			assert.Nil(t, indices)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedDocument)
			assert.NotErrorIs(t, err, ErrNoMesh)

			var malformedErr *MalformedDocumentError
			require.True(t, errors.As(err, &malformedErr))
			assert.Equal(t, tt.kind, malformedErr.Kind)
			assert.Contains(t, err.Error(), tt.kind.String())
			if tt.check != nil {
				tt.check(t, malformedErr)
			}
		})
	}
}

func TestMalformedKindString(t *testing.T) {
	assert.Equal(t, "foreign vertices", ForeignVertices.String())
	assert.Equal(t, "MalformedKind(99)", MalformedKind(99).String())
}
