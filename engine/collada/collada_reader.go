package collada

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Common errors returned by the reader.
var (
	ErrNotCollada = errors.New("collada: root element is not <COLLADA>")
	ErrEmpty      = errors.New("collada: document is empty")
)

// SyntaxError reports element content the reader could not interpret, such as a number
// list containing a non-numeric token.
type SyntaxError struct {
	// Element is the name of the element whose content was rejected.
	Element string
	// Err is the underlying parse error.
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("collada: invalid <%s>: %v", e.Element, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ReadFile opens and decodes the COLLADA document at path.
//
// Parameters:
//   - path: the path of the .dae file
//
// Returns:
//   - *Document: the decoded document
//   - error: error if the file cannot be read or decoded
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read decodes a COLLADA document from r. Geometry libraries are decoded in full; every
// other library element is recorded as a *LibraryOther in document order and skipped.
//
// Parameters:
//   - r: the reader providing COLLADA XML
//
// Returns:
//   - *Document: the decoded document
//   - error: ErrEmpty, ErrNotCollada, a *SyntaxError, or an XML decoding error
func Read(r io.Reader) (*Document, error) {
	d := xml.NewDecoder(r)

	root, err := nextStartElement(d)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("collada: failed to read root element: %w", err)
	}
	if root.Name.Local != "COLLADA" {
		return nil, ErrNotCollada
	}

	doc := &Document{Version: attrValue(root, "version")}

	for {
		token, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("collada: unexpected end of document: %w", io.ErrUnexpectedEOF)
			}
			return nil, fmt.Errorf("collada: %w", err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			if !strings.HasPrefix(el.Name.Local, "library_") {
				if err := d.Skip(); err != nil {
					return nil, fmt.Errorf("collada: %w", err)
				}
				continue
			}
			if el.Name.Local != "library_geometries" {
				doc.Libraries = append(doc.Libraries, &LibraryOther{Element: el.Name.Local})
				if err := d.Skip(); err != nil {
					return nil, fmt.Errorf("collada: %w", err)
				}
				continue
			}

			var raw xmlLibraryGeometries
			if err := d.DecodeElement(&raw, &el); err != nil {
				return nil, wrapDecodeError("library_geometries", err)
			}
			lib, err := raw.toLibrary()
			if err != nil {
				return nil, err
			}
			doc.Libraries = append(doc.Libraries, lib)
		case xml.EndElement:
			if el.Name.Local == root.Name.Local {
				return doc, nil
			}
		}
	}
}

// nextStartElement advances the decoder to the first start element.
func nextStartElement(d *xml.Decoder) (xml.StartElement, error) {
	for {
		token, err := d.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if el, ok := token.(xml.StartElement); ok {
			return el, nil
		}
	}
}

func attrValue(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// wrapDecodeError keeps *SyntaxError values intact and wraps everything else with the
// element name.
func wrapDecodeError(element string, err error) error {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr
	}
	return fmt.Errorf("collada: failed to decode <%s>: %w", element, err)
}

// --- raw XML shapes ---

type xmlLibraryGeometries struct {
	ID         string        `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Geometries []xmlGeometry `xml:"geometry"`
}

type xmlGeometry struct {
	ID         string    `xml:"id,attr"`
	Name       string    `xml:"name,attr"`
	Mesh       *xmlMesh  `xml:"mesh"`
	ConvexMesh *struct{} `xml:"convex_mesh"`
	Spline     *struct{} `xml:"spline"`
	Brep       *struct{} `xml:"brep"`
}

type xmlMesh struct {
	Sources    []xmlSource
	Vertices   xmlVertices
	Primitives []Primitive
}

type xmlSource struct {
	ID         string       `xml:"id,attr"`
	Name       string       `xml:"name,attr"`
	FloatArray *xmlArray    `xml:"float_array"`
	IntArray   *xmlArray    `xml:"int_array"`
	NameArray  *xmlArray    `xml:"Name_array"`
	BoolArray  *xmlArray    `xml:"bool_array"`
	Accessor   *xmlAccessor `xml:"technique_common>accessor"`
}

type xmlArray struct {
	ID   string `xml:"id,attr"`
	Text string `xml:",chardata"`
}

type xmlAccessor struct {
	Source string     `xml:"source,attr"`
	Count  int        `xml:"count,attr"`
	Offset int        `xml:"offset,attr"`
	Stride *int       `xml:"stride,attr"`
	Params []xmlParam `xml:"param"`
}

type xmlParam struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type xmlVertices struct {
	ID     string     `xml:"id,attr"`
	Name   string     `xml:"name,attr"`
	Inputs []xmlInput `xml:"input"`
}

type xmlInput struct {
	Offset   int    `xml:"offset,attr"`
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Set      *int   `xml:"set,attr"`
}

type xmlPolylist struct {
	Name     string     `xml:"name,attr"`
	Material string     `xml:"material,attr"`
	Count    int        `xml:"count,attr"`
	Inputs   []xmlInput `xml:"input"`
	VCount   string     `xml:"vcount"`
	P        string     `xml:"p"`
}

type xmlOtherPrimitive struct {
	Count    int    `xml:"count,attr"`
	Material string `xml:"material,attr"`
}

// otherPrimitiveElements are the mesh children recorded as *OtherPrimitive.
var otherPrimitiveElements = map[string]bool{
	"lines":      true,
	"linestrips": true,
	"polygons":   true,
	"triangles":  true,
	"trifans":    true,
	"tristrips":  true,
}

// UnmarshalXML decodes a <mesh>, keeping primitives of every kind in document order.
func (m *xmlMesh) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch name := el.Name.Local; {
			case name == "source":
				var src xmlSource
				if err := d.DecodeElement(&src, &el); err != nil {
					return err
				}
				m.Sources = append(m.Sources, src)
			case name == "vertices":
				if err := d.DecodeElement(&m.Vertices, &el); err != nil {
					return err
				}
			case name == "polylist":
				var raw xmlPolylist
				if err := d.DecodeElement(&raw, &el); err != nil {
					return err
				}
				polylist, err := raw.toPolylist()
				if err != nil {
					return err
				}
				m.Primitives = append(m.Primitives, polylist)
			case otherPrimitiveElements[name]:
				var raw xmlOtherPrimitive
				if err := d.DecodeElement(&raw, &el); err != nil {
					return err
				}
				m.Primitives = append(m.Primitives, &OtherPrimitive{
					Element:  name,
					Count:    raw.Count,
					Material: raw.Material,
				})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if el == start.End() {
				return nil
			}
		}
	}
}

// --- conversion to the object model ---

func (l *xmlLibraryGeometries) toLibrary() (*LibraryGeometries, error) {
	lib := &LibraryGeometries{
		ID:         l.ID,
		Name:       l.Name,
		Geometries: make([]*Geometry, 0, len(l.Geometries)),
	}
	for _, g := range l.Geometries {
		geometry := &Geometry{ID: g.ID, Name: g.Name}
		switch {
		case g.Mesh != nil:
			mesh, err := g.Mesh.toMesh()
			if err != nil {
				return nil, fmt.Errorf("geometry %q: %w", g.ID, err)
			}
			geometry.Element = mesh
		case g.ConvexMesh != nil:
			geometry.Element = &OtherElement{Element: "convex_mesh"}
		case g.Spline != nil:
			geometry.Element = &OtherElement{Element: "spline"}
		case g.Brep != nil:
			geometry.Element = &OtherElement{Element: "brep"}
		}
		lib.Geometries = append(lib.Geometries, geometry)
	}
	return lib, nil
}

func (m *xmlMesh) toMesh() (*Mesh, error) {
	mesh := &Mesh{
		Sources: make([]*Source, 0, len(m.Sources)),
		Vertices: Vertices{
			ID:     m.Vertices.ID,
			Name:   m.Vertices.Name,
			Inputs: toInputs(m.Vertices.Inputs),
		},
		Primitives: m.Primitives,
	}
	for _, s := range m.Sources {
		src, err := s.toSource()
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", s.ID, err)
		}
		mesh.Sources = append(mesh.Sources, src)
	}
	return mesh, nil
}

func (s *xmlSource) toSource() (*Source, error) {
	src := &Source{ID: s.ID, Name: s.Name}

	switch {
	case s.FloatArray != nil:
		data, err := parseFloats("float_array", s.FloatArray.Text)
		if err != nil {
			return nil, err
		}
		src.Array = &FloatArray{ID: s.FloatArray.ID, Data: data}
	case s.IntArray != nil:
		data, err := parseInts("int_array", s.IntArray.Text)
		if err != nil {
			return nil, err
		}
		src.Array = &IntArray{ID: s.IntArray.ID, Data: data}
	case s.NameArray != nil:
		src.Array = &NameArray{ID: s.NameArray.ID, Data: strings.Fields(s.NameArray.Text)}
	case s.BoolArray != nil:
		data, err := parseBools("bool_array", s.BoolArray.Text)
		if err != nil {
			return nil, err
		}
		src.Array = &BoolArray{ID: s.BoolArray.ID, Data: data}
	}

	if s.Accessor != nil {
		// stride is optional and defaults to 1.
		stride := 1
		if s.Accessor.Stride != nil {
			stride = *s.Accessor.Stride
		}
		params := make([]Param, len(s.Accessor.Params))
		for i, p := range s.Accessor.Params {
			params[i] = Param{Name: p.Name, Type: p.Type}
		}
		src.Accessor = &Accessor{
			Source: URI(s.Accessor.Source),
			Count:  s.Accessor.Count,
			Offset: s.Accessor.Offset,
			Stride: stride,
			Params: params,
		}
	}
	return src, nil
}

func (p *xmlPolylist) toPolylist() (*Polylist, error) {
	vcount, err := parseInts("vcount", p.VCount)
	if err != nil {
		return nil, err
	}
	indices, err := parseInts("p", p.P)
	if err != nil {
		return nil, err
	}
	return &Polylist{
		Name:     p.Name,
		Material: p.Material,
		Count:    p.Count,
		Inputs:   toInputs(p.Inputs),
		VCount:   vcount,
		P:        indices,
	}, nil
}

func toInputs(raw []xmlInput) []Input {
	inputs := make([]Input, len(raw))
	for i, in := range raw {
		inputs[i] = Input{
			Offset:   in.Offset,
			Semantic: in.Semantic,
			Source:   URI(in.Source),
			Set:      in.Set,
		}
	}
	return inputs
}

// --- number lists ---

func parseFloats(element, text string) ([]float32, error) {
	fields := strings.Fields(text)
	values := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, &SyntaxError{Element: element, Err: err}
		}
		values[i] = float32(v)
	}
	return values, nil
}

func parseInts(element, text string) ([]int, error) {
	fields := strings.Fields(text)
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &SyntaxError{Element: element, Err: err}
		}
		values[i] = v
	}
	return values, nil
}

func parseBools(element, text string) ([]bool, error) {
	fields := strings.Fields(text)
	values := make([]bool, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseBool(f)
		if err != nil {
			return nil, &SyntaxError{Element: element, Err: err}
		}
		values[i] = v
	}
	return values, nil
}
