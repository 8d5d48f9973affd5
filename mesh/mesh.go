// SPDX-License-Identifier: GPL-2.0-or-later

// Package mesh turns the faces of a bsp model into polygon meshes.
package mesh

import (
	"bsp2mesh/math/vec"
)

// Polygon is a run of Count control points starting at Start.
type Polygon struct {
	Start     int
	Count     int
	Texture   string
	TexWidth  int
	TexHeight int
}

// NormalizeUV scales texel space coordinates by the polygon's texture size.
// Coordinates of textures without a size are returned unchanged.
func (p Polygon) NormalizeUV(uv vec.Vec2) vec.Vec2 {
	if p.TexWidth <= 0 || p.TexHeight <= 0 {
		return uv
	}
	return vec.Vec2{
		U: uv.U / float32(p.TexWidth),
		V: uv.V / float32(p.TexHeight),
	}
}

// Mesh is the geometry of one model in the left handed target system. All
// per control point slices are parallel. Control points are never shared
// between polygons.
type Mesh struct {
	Name  string
	Model int

	Positions  []vec.Vec3
	Normals    []vec.Vec3
	Tangents   []vec.Vec3
	UVs        []vec.Vec2
	Degenerate []bool // tangent could not be derived, Tangents holds the null vector

	Polygons []Polygon
}

func (m *Mesh) NumControlPoints() int {
	return len(m.Positions)
}

// PolygonSizes returns the vertex count of every polygon.
func (m *Mesh) PolygonSizes() []int {
	s := make([]int, len(m.Polygons))
	for i, p := range m.Polygons {
		s[i] = p.Count
	}
	return s
}

func (m *Mesh) appendPolygon(p Polygon, vs []controlPoint) {
	p.Start = len(m.Positions)
	p.Count = len(vs)
	for _, v := range vs {
		m.Positions = append(m.Positions, v.position)
		m.Normals = append(m.Normals, v.normal)
		m.Tangents = append(m.Tangents, v.tangent)
		m.UVs = append(m.UVs, v.uv)
		m.Degenerate = append(m.Degenerate, v.degenerate)
	}
	m.Polygons = append(m.Polygons, p)
}
