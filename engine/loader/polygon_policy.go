package loader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/polyview/engine/collada"
)

// PolygonPolicy selects how the loader handles polygons with more than three corners.
type PolygonPolicy int

const (
	// PolygonPolicyReject fails the load on the first polygon that is not a triangle.
	PolygonPolicyReject PolygonPolicy = iota
	// PolygonPolicyFan fan-triangulates convex polygons around their first corner.
	PolygonPolicyFan
)

func (p PolygonPolicy) String() string {
	switch p {
	case PolygonPolicyReject:
		return "reject"
	case PolygonPolicyFan:
		return "fan"
	default:
		return fmt.Sprintf("PolygonPolicy(%d)", int(p))
	}
}

// ParsePolygonPolicy parses a policy name ("reject" or "fan"), case-insensitively.
//
// Parameters:
//   - s: the policy name
//
// Returns:
//   - PolygonPolicy: the parsed policy
//   - error: error if the name is unknown
func ParsePolygonPolicy(s string) (PolygonPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject", "":
		return PolygonPolicyReject, nil
	case "fan":
		return PolygonPolicyFan, nil
	default:
		return PolygonPolicyReject, fmt.Errorf("loader: unknown polygon policy %q", s)
	}
}

// checkPolygons validates the polylist's vertex counts against the policy. Polygons with
// fewer than three corners are rejected under every policy.
func checkPolygons(polylist *collada.Polylist, policy PolygonPolicy) error {
	for i, n := range polylist.VCount {
		if n < 3 || (n > 3 && policy == PolygonPolicyReject) {
			return fmt.Errorf("%w: polygon %d has %d corners (policy %s)", ErrNonTriangularPolygon, i, n, policy)
		}
	}
	return nil
}

// FanTriangulate converts the identity index list of a decoded polylist into a triangle
// list. Polygon i occupies vcount[i] consecutive indices starting at b; its corner k yields
// the triangle (b, b+k, b+k+1). Vertices are not touched.
//
// Parameters:
//   - vcount: corner count per polygon
//   - indices: the per-corner index list produced by DecodePolylist
//
// Returns:
//   - []uint32: the triangle-list indices
func FanTriangulate(vcount []int, indices []uint32) []uint32 {
	triangles := 0
	for _, n := range vcount {
		if n >= 3 {
			triangles += n - 2
		}
	}

	out := make([]uint32, 0, triangles*3)
	base := 0
	for _, n := range vcount {
		for k := 1; k+1 < n; k++ {
			out = append(out, indices[base], indices[base+k], indices[base+k+1])
		}
		base += max(n, 0)
	}
	return out
}
