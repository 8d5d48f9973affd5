// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"fmt"

	"bsp2mesh/bsp"
	"bsp2mesh/math/vec"
)

// TangentEpsilon is the shortest edge a tangent is derived from.
const TangentEpsilon = 1e-6

// DegeneratePolicy decides what happens to control points whose edge is too
// short to define a tangent.
type DegeneratePolicy int

const (
	// DegenerateReject fails the model with bsp.ErrDegenerateGeometry.
	DegenerateReject DegeneratePolicy = iota
	// DegenerateFlag keeps the control point with a null tangent and marks it
	// in Mesh.Degenerate.
	DegenerateFlag
)

func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateReject:
		return "reject"
	case DegenerateFlag:
		return "flag"
	}
	return fmt.Sprintf("DegeneratePolicy(%d)", int(p))
}

// ParseDegeneratePolicy is the inverse of String.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch s {
	case "reject":
		return DegenerateReject, nil
	case "flag":
		return DegenerateFlag, nil
	}
	return 0, fmt.Errorf("unknown degenerate policy %q", s)
}

// controlPoint holds the attributes of one corner in the source system.
type controlPoint struct {
	position   vec.Vec3
	normal     vec.Vec3
	tangent    vec.Vec3
	uv         vec.Vec2
	degenerate bool
}

// toLeftHanded converts every vector attribute, never a subset.
func (c controlPoint) toLeftHanded() controlPoint {
	c.position = SwitchHandedness(c.position)
	c.normal = SwitchHandedness(c.normal)
	c.tangent = SwitchHandedness(c.tangent)
	return c
}

// faceNormal returns the plane normal, flipped for faces on the back side.
func faceNormal(p bsp.Plane, back bool) vec.Vec3 {
	if back {
		return p.Normal.Negate()
	}
	return p.Normal
}

// edgeTangent is the normalized direction from v1 to v0.
func edgeTangent(v0, v1 vec.Vec3) (vec.Vec3, bool) {
	return vec.Sub(v0, v1).Normalize(TangentEpsilon)
}

// textureCoord projects p onto the texture axes. The result is in texels.
func textureCoord(ti bsp.TexInfo, p vec.Vec3) vec.Vec2 {
	return vec.Vec2{
		U: vec.Dot(ti.Vecs[bsp.S].Pos, p) + ti.Vecs[bsp.S].Offset,
		V: vec.Dot(ti.Vecs[bsp.T].Pos, p) + ti.Vecs[bsp.T].Offset,
	}
}
