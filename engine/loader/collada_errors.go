package loader

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the loader. Each is recoverable: the caller decides whether a
// failed load is fatal.
var (
	// ErrNoMesh is returned when a document contains no geometry library, mesh or polylist.
	ErrNoMesh = errors.New("loader: no polylist mesh found in document")

	// ErrMissingPosition is returned when a polygon corner resolves no VERTEX input.
	ErrMissingPosition = errors.New("loader: polygon corner has no position")

	// ErrMeshBuild wraps a mesh builder rejection of the decoded data.
	ErrMeshBuild = errors.New("loader: failed to build mesh")

	// ErrNonTriangularPolygon is returned when a polygon cannot be rendered under the
	// configured polygon policy.
	ErrNonTriangularPolygon = errors.New("loader: polygon is not a triangle")

	// ErrUnsupportedFormat is returned when no backend handles a file extension.
	ErrUnsupportedFormat = errors.New("loader: unsupported model format")

	// ErrMalformedDocument matches every *MalformedDocumentError through errors.Is.
	ErrMalformedDocument = errors.New("loader: malformed document")
)

// MalformedKind classifies a document-shape violation found while decoding.
type MalformedKind int

const (
	// ForeignVertices: a VERTEX input references something other than the mesh's own vertices block.
	ForeignVertices MalformedKind = iota
	// MissingPositionInput: the vertices block has no POSITION input.
	MissingPositionInput
	// UnresolvedSource: an input references a source id the mesh does not declare.
	UnresolvedSource
	// UnsupportedArray: a source holds something other than a float array.
	UnsupportedArray
	// MissingAccessor: a source has no technique_common accessor.
	MissingAccessor
	// ElementOutOfRange: a corner index lies outside the accessor or its array.
	ElementOutOfRange
	// MissingComponent: an accessor lacks one of the X, Y or Z params.
	MissingComponent
	// TruncatedIndexStream: the <p> stream is shorter than the vertex counts require.
	TruncatedIndexStream
	// InvalidVertexCount: a <vcount> entry is negative.
	InvalidVertexCount
)

var malformedKindNames = map[MalformedKind]string{
	ForeignVertices:      "foreign vertices",
	MissingPositionInput: "missing position input",
	UnresolvedSource:     "unresolved source",
	UnsupportedArray:     "unsupported array",
	MissingAccessor:      "missing accessor",
	ElementOutOfRange:    "element out of range",
	MissingComponent:     "missing component",
	TruncatedIndexStream: "truncated index stream",
	InvalidVertexCount:   "invalid vertex count",
}

func (k MalformedKind) String() string {
	if name, ok := malformedKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("MalformedKind(%d)", int(k))
}

// MalformedDocumentError describes a document that parsed correctly but cannot be decoded
// into a mesh. Only the fields relevant to Kind are set.
type MalformedDocumentError struct {
	Kind MalformedKind

	// ID is the element id the problem was found on (a vertices block or input source).
	ID string

	// Semantic is the input semantic being resolved.
	Semantic string

	// Source is the source id being resolved.
	Source string

	// Component is the missing accessor param name for MissingComponent.
	Component string

	// Index is the offending element or stream index, -1 when not applicable.
	Index int

	// Err is the underlying cause, if any.
	Err error
}

func (e *MalformedDocumentError) Error() string {
	var b strings.Builder
	b.WriteString("loader: malformed document: ")
	b.WriteString(e.Kind.String())
	if e.Semantic != "" {
		fmt.Fprintf(&b, " semantic=%s", e.Semantic)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " id=%q", e.ID)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " source=%q", e.Source)
	}
	if e.Component != "" {
		fmt.Fprintf(&b, " component=%s", e.Component)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " index=%d", e.Index)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is reports whether target is ErrMalformedDocument.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether err is, or wraps, a *MalformedDocumentError.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedDocument)
}

func malformed(kind MalformedKind) *MalformedDocumentError {
	return &MalformedDocumentError{Kind: kind, Index: -1}
}
