package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointSource = "struct Point {\n    x: f32,\n};"

func TestProcess(t *testing.T) {
	pp := NewPreProcessor(WithStruct("point", pointSource, "Point"))

	src, err := pp.Process(`// @polyview:include point
// @polyview:include point
// @polyview:group 0 1 read points point
fn main() {}`)
	require.NoError(t, err)

	assert.Equal(t, pointSource+"\n@group(0) @binding(1) var<storage, read> points: Point;\nfn main() {}", src)

	decls := pp.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, AnnotationTypeBindingGroup, decls[0].Type)
	assert.Equal(t, AddressSpaceRead, decls[0].AddressSpace())
	assert.Equal(t, 0, *decls[0].Group)
	assert.Equal(t, 1, *decls[0].Binding)
	assert.Equal(t, 3, decls[0].Line)
}

func TestProcessResetsDeclarations(t *testing.T) {
	pp := NewPreProcessor(WithStruct("point", pointSource, "Point"))
	_, err := pp.Process("// @polyview:group 0 0 uniform p point")
	require.NoError(t, err)
	_, err = pp.Process("fn main() {}")
	require.NoError(t, err)
	assert.Empty(t, pp.Declarations())
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", "// @polyview:"},
		{"unknown type", "// @polyview:define X"},
		{"include arity", "// @polyview:include"},
		{"unknown struct", "// @polyview:include line"},
		{"group arity", "// @polyview:group 0 0 uniform p"},
		{"bad group", "// @polyview:group a 0 uniform p point"},
		{"bad binding", "// @polyview:group 0 b uniform p point"},
		{"bad address space", "// @polyview:group 0 0 private p point"},
		{"group unknown struct", "// @polyview:group 0 0 uniform p line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp := NewPreProcessor(WithStruct("point", pointSource, "Point"))
			_, err := pp.Process(tt.source)
			assert.Error(t, err)
		})
	}
}

func TestAddressSpaceOfInclude(t *testing.T) {
	a, err := parseAnnotation("// @polyview:include point", 1)
	require.NoError(t, err)
	assert.Equal(t, AnnotationArg(""), a.AddressSpace())

	a, err = parseAnnotation("let x = 1;", 2)
	assert.NoError(t, err)
	assert.Nil(t, a)
}
