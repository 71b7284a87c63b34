package loader

import (
	"testing"

	"github.com/Carmen-Shannon/polyview/engine/collada"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolygonPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    PolygonPolicy
		wantErr bool
	}{
		{in: "reject", want: PolygonPolicyReject},
		{in: "", want: PolygonPolicyReject},
		{in: " Fan ", want: PolygonPolicyFan},
		{in: "ear-clip", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolygonPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "fan", PolygonPolicyFan.String())
}

func TestCheckPolygons(t *testing.T) {
	tests := []struct {
		name    string
		vcount  []int
		policy  PolygonPolicy
		wantErr bool
	}{
		{name: "triangles pass reject", vcount: []int{3, 3}, policy: PolygonPolicyReject},
		{name: "quad fails reject", vcount: []int{3, 4}, policy: PolygonPolicyReject, wantErr: true},
		{name: "quad passes fan", vcount: []int{3, 4, 5}, policy: PolygonPolicyFan},
		{name: "degenerate fails fan", vcount: []int{3, 2}, policy: PolygonPolicyFan, wantErr: true},
		{name: "negative fails reject", vcount: []int{-1}, policy: PolygonPolicyReject, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPolygons(&collada.Polylist{VCount: tt.vcount}, tt.policy)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNonTriangularPolygon)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFanTriangulate(t *testing.T) {
	indices := []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	got := FanTriangulate([]int{3, 4, 5}, indices)
	assert.Equal(t, []uint32{
		0, 1, 2,
		3, 4, 5, 3, 5, 6,
		7, 8, 9, 7, 9, 10, 7, 10, 11,
	}, got)

	assert.Empty(t, FanTriangulate(nil, nil))
}
