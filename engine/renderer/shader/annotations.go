package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix marks a pre-processor directive. Directives sit in WGSL line comments
// so unprocessed sources still parse.
const annotationPrefix = "@polyview:"

// AnnotationType identifies the kind of a directive.
type AnnotationType string

const (
	// AnnotationTypeInclude is replaced with a registered struct's WGSL source:
	//
	//	// @polyview:include <struct>
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup is replaced with a @group/@binding variable declaration
	// and recorded so the pipeline layout can be built from it:
	//
	//	// @polyview:group <group> <binding> <address space> <name> <struct>
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// AnnotationArg is a single directive argument.
type AnnotationArg string

const (
	AddressSpaceUniform   AnnotationArg = "uniform"
	AddressSpaceRead      AnnotationArg = "read"
	AddressSpaceReadWrite AnnotationArg = "read_write"
)

var validAddressSpaces = []AnnotationArg{
	AddressSpaceUniform,
	AddressSpaceRead,
	AddressSpaceReadWrite,
}

// Annotation is a parsed directive.
type Annotation struct {
	Type AnnotationType

	// Args are the directive arguments after the group and binding numbers. For include
	// it is the struct key; for group it is address space, variable name and struct key.
	Args []AnnotationArg

	// Line is the 1-based source line.
	Line int

	// Group and Binding are set for AnnotationTypeBindingGroup.
	Group   *int
	Binding *int
}

// AddressSpace returns the address space of a group directive, or "" for other types.
func (a Annotation) AddressSpace() AnnotationArg {
	if a.Type != AnnotationTypeBindingGroup {
		return ""
	}
	return a.Args[0]
}

// parseAnnotation parses a single source line. Lines without the prefix return nil, nil.
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	_, after, ok := strings.Cut(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: include annotation requires exactly one argument", lineNum)
		}
		return &Annotation{
			Type: AnnotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: group annotation requires five arguments (group, binding, address space, name, struct)", lineNum)
		}
		group, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %w", lineNum, args[1], err)
		}
		binding, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q: %w", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q", lineNum, args[3])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown annotation type %q", lineNum, args[0])
	}
}
