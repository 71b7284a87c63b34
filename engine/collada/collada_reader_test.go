package collada

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleDAE = `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <asset><unit name="meter" meter="1"/><up_axis>Z_UP</up_axis></asset>
  <library_cameras><camera id="cam"/></library_cameras>
  <library_geometries>
    <geometry id="tri-mesh" name="tri">
      <mesh>
        <source id="tri-mesh-positions">
          <float_array id="tri-mesh-positions-array" count="9">0 0 0  1 0 0
            0 1 0</float_array>
          <technique_common>
            <accessor source="#tri-mesh-positions-array" count="3" stride="3">
              <param name="X" type="float"/>
              <param name="Y" type="float"/>
              <param name="Z" type="float"/>
            </accessor>
          </technique_common>
        </source>
        <source id="tri-mesh-normals">
          <float_array id="tri-mesh-normals-array" count="3">0 0 1</float_array>
          <technique_common>
            <accessor source="#tri-mesh-normals-array" count="1" stride="3">
              <param name="X" type="float"/>
              <param name="Y" type="float"/>
              <param name="Z" type="float"/>
            </accessor>
          </technique_common>
        </source>
        <vertices id="tri-mesh-vertices">
          <input semantic="POSITION" source="#tri-mesh-positions"/>
        </vertices>
        <lines count="1"><input semantic="VERTEX" source="#tri-mesh-vertices" offset="0"/><p>0 1</p></lines>
        <polylist material="mat" count="1">
          <input semantic="VERTEX" source="#tri-mesh-vertices" offset="0"/>
          <input semantic="NORMAL" source="#tri-mesh-normals" offset="1"/>
          <input semantic="TEXCOORD" source="#tri-mesh-map" offset="2" set="0"/>
          <vcount>3 </vcount>
          <p>0 0 0 1 0 1 2 0 2</p>
        </polylist>
        <extra><technique profile="x"/></extra>
      </mesh>
    </geometry>
    <geometry id="hull"><convex_mesh convex_hull_of="#tri-mesh"/></geometry>
  </library_geometries>
  <library_visual_scenes><visual_scene id="scene"/></library_visual_scenes>
  <scene><instance_visual_scene url="#scene"/></scene>
</COLLADA>`

func TestReadTriangleDocument(t *testing.T) {
	doc, err := Read(strings.NewReader(triangleDAE))
	require.NoError(t, err)

	assert.Equal(t, "1.4.1", doc.Version)
	require.Len(t, doc.Libraries, 3)
	assert.Equal(t, "library_cameras", doc.Libraries[0].LibraryElement())
	assert.Equal(t, "library_visual_scenes", doc.Libraries[2].LibraryElement())

	lib, ok := doc.Libraries[1].(*LibraryGeometries)
	require.True(t, ok, "second library should be geometries")
	require.Len(t, lib.Geometries, 2)

	hull := lib.Geometries[1]
	assert.Equal(t, "hull", hull.ID)
	assert.Equal(t, &OtherElement{Element: "convex_mesh"}, hull.Element)

	geometry := lib.Geometries[0]
	assert.Equal(t, "tri-mesh", geometry.ID)
	assert.Equal(t, "tri", geometry.Name)

	mesh, ok := geometry.Element.(*Mesh)
	require.True(t, ok)
	require.Len(t, mesh.Sources, 2)

	positions := mesh.FindSource("tri-mesh-positions")
	require.NotNil(t, positions)
	floats, ok := positions.Array.(*FloatArray)
	require.True(t, ok)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, floats.Data)
	require.NotNil(t, positions.Accessor)
	assert.Equal(t, 3, positions.Accessor.Stride)
	assert.Equal(t, 3, positions.Accessor.Count)
	assert.Equal(t, URI("#tri-mesh-positions-array"), positions.Accessor.Source)
	assert.Equal(t, []Param{{"X", "float"}, {"Y", "float"}, {"Z", "float"}}, positions.Accessor.Params)

	assert.Equal(t, "tri-mesh-vertices", mesh.Vertices.ID)
	posInput, ok := mesh.Vertices.InputBySemantic("POSITION")
	require.True(t, ok)
	assert.Equal(t, "tri-mesh-positions", posInput.Source.ID())

	require.Len(t, mesh.Primitives, 2)
	assert.Equal(t, &OtherPrimitive{Element: "lines", Count: 1}, mesh.Primitives[0])

	polylist, ok := mesh.Primitives[1].(*Polylist)
	require.True(t, ok)
	assert.Equal(t, "mat", polylist.Material)
	assert.Equal(t, 1, polylist.Count)
	assert.Equal(t, []int{3}, polylist.VCount)
	assert.Equal(t, []int{0, 0, 0, 1, 0, 1, 2, 0, 2}, polylist.P)
	require.Len(t, polylist.Inputs, 3)
	assert.Nil(t, polylist.Inputs[0].Set)
	require.NotNil(t, polylist.Inputs[2].Set)
	assert.Equal(t, 0, *polylist.Inputs[2].Set)
	assert.Equal(t, 3, polylist.Stride())
}

func TestReadAccessorStrideDefaultsToOne(t *testing.T) {
	const dae = `<COLLADA version="1.4.1"><library_geometries><geometry id="g"><mesh>
		<source id="s"><float_array id="a">1 2 3</float_array>
		<technique_common><accessor source="#a" count="3"><param name="U" type="float"/></accessor></technique_common></source>
		<vertices id="v"><input semantic="POSITION" source="#s"/></vertices>
	</mesh></geometry></library_geometries></COLLADA>`

	doc, err := Read(strings.NewReader(dae))
	require.NoError(t, err)

	mesh := doc.Libraries[0].(*LibraryGeometries).Geometries[0].Element.(*Mesh)
	assert.Equal(t, 1, mesh.Sources[0].Accessor.Stride)
	assert.Empty(t, mesh.Primitives)
}

func TestReadOtherArrayKinds(t *testing.T) {
	const dae = `<COLLADA version="1.4.1"><library_geometries><geometry id="g"><mesh>
		<source id="i"><int_array id="ia">1 -2 3</int_array></source>
		<source id="n"><Name_array id="na">joint1 joint2</Name_array></source>
		<source id="b"><bool_array id="ba">true false 1</bool_array></source>
		<vertices id="v"/>
	</mesh></geometry></library_geometries></COLLADA>`

	doc, err := Read(strings.NewReader(dae))
	require.NoError(t, err)

	mesh := doc.Libraries[0].(*LibraryGeometries).Geometries[0].Element.(*Mesh)
	require.Len(t, mesh.Sources, 3)
	assert.Equal(t, &IntArray{ID: "ia", Data: []int{1, -2, 3}}, mesh.Sources[0].Array)
	assert.Equal(t, &NameArray{ID: "na", Data: []string{"joint1", "joint2"}}, mesh.Sources[1].Array)
	assert.Equal(t, &BoolArray{ID: "ba", Data: []bool{true, false, true}}, mesh.Sources[2].Array)
	assert.Nil(t, mesh.Sources[0].Accessor)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		element string
	}{
		{name: "empty", input: "", wantErr: ErrEmpty},
		{name: "wrong root", input: `<gltf version="2.0"/>`, wantErr: ErrNotCollada},
		{
			name: "bad float",
			input: `<COLLADA><library_geometries><geometry id="g"><mesh>
				<source id="s"><float_array>1 two 3</float_array></source>
				</mesh></geometry></library_geometries></COLLADA>`,
			element: "float_array",
		},
		{
			name: "bad index",
			input: `<COLLADA><library_geometries><geometry id="g"><mesh>
				<polylist count="1"><vcount>3</vcount><p>0 1 x</p></polylist>
				</mesh></geometry></library_geometries></COLLADA>`,
			element: "p",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, doc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.element != "" {
				var syntaxErr *SyntaxError
				require.ErrorAs(t, err, &syntaxErr)
				assert.Equal(t, tt.element, syntaxErr.Element)
			}
		})
	}
}

func TestReadTruncatedDocument(t *testing.T) {
	_, err := Read(strings.NewReader(`<COLLADA version="1.4.1"><library_geometries>`))
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.dae")
	require.NoError(t, os.WriteFile(path, []byte(triangleDAE), 0644))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Libraries, 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.dae"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
