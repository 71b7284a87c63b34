// Package shader expands the WGSL directives used by the renderer's embedded shaders.
//
// A directive is a line comment starting with @polyview:. include injects a registered
// struct's source; group emits a @group/@binding declaration and records it so the
// caller can build the matching bind group layout.
package shader

import (
	"fmt"
	"strings"
)

// registryEntry pairs a WGSL struct source with the type name used in group declarations.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry map[AnnotationArg]registryEntry

	addressSpaceRegistry map[AnnotationArg]string

	// declarations accumulates group annotations during a Process call.
	declarations []Annotation
}

// PreProcessor expands directives in WGSL source.
type PreProcessor interface {
	// Process replaces every directive in source with its WGSL output.
	//
	// Parameters:
	//   - source: WGSL source containing directives
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error if a directive is malformed or references an unregistered struct
	Process(source string) (string, error)

	// Declarations returns the group annotations of the last Process call in source order.
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// PreProcessorOption is a functional option for NewPreProcessor.
type PreProcessorOption func(*preProcessor)

// WithStruct registers a struct that directives can refer to by key.
//
// Parameters:
//   - key: the name used in directives
//   - source: the WGSL struct definition injected by include
//   - typeName: the WGSL type name emitted by group
//
// Returns:
//   - PreProcessorOption: option function to apply
func WithStruct(key, source, typeName string) PreProcessorOption {
	return func(p *preProcessor) {
		p.structRegistry[AnnotationArg(key)] = registryEntry{Source: source, Type: typeName}
	}
}

// NewPreProcessor creates a PreProcessor with the given structs registered.
func NewPreProcessor(options ...PreProcessorOption) PreProcessor {
	p := &preProcessor{
		structRegistry: make(map[AnnotationArg]registryEntry),
		addressSpaceRegistry: map[AnnotationArg]string{
			AddressSpaceUniform:   "var<uniform>",
			AddressSpaceRead:      "var<storage, read>",
			AddressSpaceReadWrite: "var<storage, read_write>",
		},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	included := make(map[AnnotationArg]bool)

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown struct %q", a.Line, a.Args[0])
			}
			// WGSL rejects duplicate struct declarations.
			if !included[a.Args[0]] {
				out = append(out, entry.Source)
				included[a.Args[0]] = true
			}
		case AnnotationTypeBindingGroup:
			entry, ok := p.structRegistry[a.Args[2]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown struct %q", a.Line, a.Args[2])
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
