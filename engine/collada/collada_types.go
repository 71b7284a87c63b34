// collada_types.go contains the in-memory object model for the subset of the COLLADA 1.4
// schema that the loader consumes. Variant elements (libraries, geometric elements,
// primitives, arrays) are modelled as small interfaces with one concrete type per
// supported variant and a catch-all type that records the element name.
// Reference: https://www.khronos.org/files/collada_spec_1_4.pdf
package collada

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the object model.
var (
	errNegativeIndex = errors.New("collada: negative accessor index")
	errZeroStride    = errors.New("collada: accessor stride must be positive")
)

// --- Document Root ---

// Document is the root of a COLLADA document.
type Document struct {
	// Version is the value of the root element's version attribute (e.g. "1.4.1").
	Version string

	// Libraries holds every library_* element in document order.
	Libraries []Library
}

// --- Libraries ---

// Library is a library_* element. Only *LibraryGeometries carries data the loader uses;
// every other library kind is preserved as *LibraryOther so document order is kept.
type Library interface {
	// LibraryElement returns the XML element name of the library (e.g. "library_geometries").
	//
	// Returns:
	//   - string: the element name
	LibraryElement() string
}

// LibraryGeometries is a <library_geometries> element.
type LibraryGeometries struct {
	ID         string
	Name       string
	Geometries []*Geometry
}

// LibraryOther is any library element the object model does not decode.
type LibraryOther struct {
	Element string
}

var (
	_ Library = &LibraryGeometries{}
	_ Library = &LibraryOther{}
)

func (l *LibraryGeometries) LibraryElement() string { return "library_geometries" }
func (l *LibraryOther) LibraryElement() string      { return l.Element }

// --- Geometry ---

// Geometry is a <geometry> element holding exactly one geometric element.
type Geometry struct {
	ID      string
	Name    string
	Element GeometricElement
}

// GeometricElement is the single child of a <geometry>: a mesh, convex mesh, spline or brep.
type GeometricElement interface {
	// GeometricElementName returns the XML element name (e.g. "mesh").
	//
	// Returns:
	//   - string: the element name
	GeometricElementName() string
}

// OtherElement is a geometric element that is not a <mesh>.
type OtherElement struct {
	Element string
}

var (
	_ GeometricElement = &Mesh{}
	_ GeometricElement = &OtherElement{}
)

func (m *Mesh) GeometricElementName() string         { return "mesh" }
func (o *OtherElement) GeometricElementName() string { return o.Element }

// Mesh is a <mesh> element.
type Mesh struct {
	// Sources are the data sources declared directly inside the mesh.
	Sources []*Source

	// Vertices is the mesh-level vertex attribute block. It must contain a POSITION input.
	Vertices Vertices

	// Primitives are the mesh's primitive elements in document order.
	Primitives []Primitive
}

// FindSource returns the source with the given id, or nil. This is a linear scan; callers
// resolving many ids against the same mesh should build a SourceTable instead.
//
// Parameters:
//   - id: the source id, without a leading '#'
//
// Returns:
//   - *Source: the matching source or nil
func (m *Mesh) FindSource(id string) *Source {
	for _, s := range m.Sources {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SourceTable indexes the mesh's sources by id. When two sources share an id the first
// one wins, matching FindSource.
//
// Returns:
//   - map[string]*Source: sources keyed by id
func (m *Mesh) SourceTable() map[string]*Source {
	table := make(map[string]*Source, len(m.Sources))
	for _, s := range m.Sources {
		if _, exists := table[s.ID]; !exists {
			table[s.ID] = s
		}
	}
	return table
}

// Vertices is a <vertices> element.
type Vertices struct {
	ID     string
	Name   string
	Inputs []Input
}

// InputBySemantic returns the first input with the given semantic.
//
// Parameters:
//   - semantic: the semantic to look for (e.g. "POSITION")
//
// Returns:
//   - *Input: the matching input
//   - bool: false if no input carries the semantic
func (v *Vertices) InputBySemantic(semantic string) (*Input, bool) {
	for i := range v.Inputs {
		if v.Inputs[i].Semantic == semantic {
			return &v.Inputs[i], true
		}
	}
	return nil, false
}

// --- Inputs ---

// URI is a COLLADA URI fragment reference such as "#mesh-positions".
type URI string

// ID returns the referenced element id. Only local references are supported, so the
// leading '#' is stripped and the remainder returned as is.
func (u URI) ID() string {
	return strings.TrimPrefix(string(u), "#")
}

// Input is an <input> element. Unshared inputs (inside <vertices>) have Offset 0.
type Input struct {
	Offset   int
	Semantic string
	Source   URI

	// Set is the optional set attribute, nil when absent.
	Set *int
}

// --- Primitives ---

// Primitive is a mesh primitive element (polylist, triangles, lines, ...).
type Primitive interface {
	// PrimitiveElement returns the XML element name of the primitive.
	//
	// Returns:
	//   - string: the element name
	PrimitiveElement() string
}

// OtherPrimitive is a primitive kind the loader does not decode.
type OtherPrimitive struct {
	Element  string
	Count    int
	Material string
}

var (
	_ Primitive = &Polylist{}
	_ Primitive = &OtherPrimitive{}
)

func (p *Polylist) PrimitiveElement() string       { return "polylist" }
func (o *OtherPrimitive) PrimitiveElement() string { return o.Element }

// Polylist is a <polylist> element: VCount holds the corner count of each polygon and P
// holds Stride() indices per corner, interleaved by input offset.
type Polylist struct {
	Name     string
	Material string
	Count    int
	Inputs   []Input
	VCount   []int
	P        []int
}

// Attribute is one index of a polygon corner: the index into the source(s) bound at Offset.
type Attribute struct {
	Offset int
	Index  int
}

// Corner is the set of attributes of a single polygon corner, one per offset.
type Corner []Attribute

// Polygon is the ordered list of corners of a single polygon.
type Polygon []Corner

// Stride returns the number of indices per corner, the highest declared offset plus one.
// A polylist without inputs has stride 0.
func (p *Polylist) Stride() int {
	stride := 0
	for _, in := range p.Inputs {
		if in.Offset+1 > stride {
			stride = in.Offset + 1
		}
	}
	return stride
}

// CornerCount returns the total number of polygon corners declared by VCount.
func (p *Polylist) CornerCount() int {
	total := 0
	for _, n := range p.VCount {
		total += n
	}
	return total
}

// InputsForOffset returns every input bound at the given offset, in declaration order.
// More than one semantic may share an offset.
//
// Parameters:
//   - offset: the offset bucket to look up
//
// Returns:
//   - []Input: the inputs at that offset, possibly empty
func (p *Polylist) InputsForOffset(offset int) []Input {
	var inputs []Input
	for _, in := range p.Inputs {
		if in.Offset == offset {
			inputs = append(inputs, in)
		}
	}
	return inputs
}

// Polygons splits the flat index stream into polygons and corners.
//
// Returns:
//   - []Polygon: one entry per VCount entry
//   - error: a *TruncatedIndexError if P is shorter than VCount and Stride require,
//     or an error if a vertex count is negative
func (p *Polylist) Polygons() ([]Polygon, error) {
	stride := p.Stride()
	corners := 0
	for i, n := range p.VCount {
		if n < 0 {
			return nil, fmt.Errorf("collada: polygon %d has negative vertex count %d", i, n)
		}
		if stride > 0 && n > len(p.P) {
			return nil, &TruncatedIndexError{Required: n * stride, Actual: len(p.P)}
		}
		corners += n
	}
	if stride > 0 && corners > len(p.P)/stride {
		return nil, &TruncatedIndexError{Required: corners * stride, Actual: len(p.P)}
	}

	polygons := make([]Polygon, len(p.VCount))
	cursor := 0
	for i, n := range p.VCount {
		polygon := make(Polygon, n)
		for c := range n {
			corner := make(Corner, stride)
			for offset := range stride {
				corner[offset] = Attribute{Offset: offset, Index: p.P[cursor+offset]}
			}
			polygon[c] = corner
			cursor += stride
		}
		polygons[i] = polygon
	}
	return polygons, nil
}

// TruncatedIndexError reports a <p> stream that holds fewer indices than the polylist declares.
type TruncatedIndexError struct {
	Required int
	Actual   int
}

func (e *TruncatedIndexError) Error() string {
	return fmt.Sprintf("collada: index stream holds %d indices, %d required", e.Actual, e.Required)
}

// --- Sources & Arrays ---

// Source is a <source> element.
type Source struct {
	ID    string
	Name  string
	Array Array

	// Accessor is the technique_common accessor, nil when absent.
	Accessor *Accessor
}

// Array is the data array of a source.
type Array interface {
	// ArrayElement returns the XML element name of the array (e.g. "float_array").
	//
	// Returns:
	//   - string: the element name
	ArrayElement() string
}

// FloatArray is a <float_array>.
type FloatArray struct {
	ID   string
	Data []float32
}

// IntArray is an <int_array>.
type IntArray struct {
	ID   string
	Data []int
}

// NameArray is a <Name_array>.
type NameArray struct {
	ID   string
	Data []string
}

// BoolArray is a <bool_array>.
type BoolArray struct {
	ID   string
	Data []bool
}

var (
	_ Array = &FloatArray{}
	_ Array = &IntArray{}
	_ Array = &NameArray{}
	_ Array = &BoolArray{}
)

func (a *FloatArray) ArrayElement() string { return "float_array" }
func (a *IntArray) ArrayElement() string   { return "int_array" }
func (a *NameArray) ArrayElement() string  { return "Name_array" }
func (a *BoolArray) ArrayElement() string  { return "bool_array" }

// Accessor is a technique_common <accessor>: it slices a flat array into Count elements
// of Stride values each, starting at Offset.
type Accessor struct {
	Source URI
	Count  int
	Offset int
	Stride int
	Params []Param
}

// Param is an accessor <param>. An empty Name marks an unnamed param whose value is skipped.
type Param struct {
	Name string
	Type string
}

// Access returns the logical element at index: the Stride values starting at
// Offset + index*Stride. The returned slice aliases data.
//
// Parameters:
//   - data: the raw array values the accessor describes
//   - index: the logical element index
//
// Returns:
//   - []float32: a slice of length Stride
//   - error: an *AccessError if the element lies outside data or the accessor's Count
func (a *Accessor) Access(data []float32, index int) ([]float32, error) {
	if a.Stride <= 0 {
		return nil, errZeroStride
	}
	if index < 0 {
		return nil, errNegativeIndex
	}
	// index is bounded before the multiply so start cannot overflow.
	if a.Offset < 0 || a.Offset > len(data) || index >= a.Count || index > (len(data)-a.Offset)/a.Stride {
		return nil, &AccessError{Index: index, Count: a.Count, Len: len(data)}
	}
	start := a.Offset + index*a.Stride
	end := start + a.Stride
	if start < 0 || end > len(data) {
		return nil, &AccessError{Index: index, Count: a.Count, Len: len(data)}
	}
	return data[start:end], nil
}

// AccessError reports an accessor read past the end of its array or declared count.
type AccessError struct {
	Index int
	Count int
	Len   int
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("collada: element %d out of range (count %d, array length %d)", e.Index, e.Count, e.Len)
}
