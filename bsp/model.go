// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bsp2mesh/math/vec"
)

// Version is the GoldSrc bsp version.
const Version = 30

// Would be great to type these but positive values are node numbers or so....
const (
	_ = -iota
	CONTENTS_EMPTY
	CONTENTS_SOLID
	CONTENTS_WATER
	CONTENTS_SLIME
	CONTENTS_LAVA
	CONTENTS_SKY
	CONTENTS_ORIGIN
	CONTENTS_CLIP
	CONTENTS_CURRENT_0
	CONTENTS_CURRENT_90
	CONTENTS_CURRENT_180
	CONTENTS_CURRENT_270
	CONTENTS_CURRENT_UP
	CONTENTS_CURRENT_DOWN
)

type Plane struct {
	Normal vec.Vec3
	Dist   float32
	Type   int // 0, 1, 2 for planes perpendicular to X, Y, Z
}

// Edge stores two vertex indices. The direction is given by the SurfEdge
// referencing it.
type Edge struct {
	V [2]int
}

// SurfEdge is a decoded signed edge reference. Reversed edges are walked from
// V[1] to V[0].
type SurfEdge struct {
	Edge     int
	Reversed bool
}

// Vertices returns the edge vertices in traversal order.
func (s SurfEdge) Vertices(e Edge) (v0, v1 int) {
	if s.Reversed {
		return e.V[1], e.V[0]
	}
	return e.V[0], e.V[1]
}

type TexInfoPos struct {
	Pos    vec.Vec3
	Offset float32
}

type ST byte

const (
	S ST = iota
	T
)

type TexInfo struct {
	Vecs    [2]TexInfoPos
	Texture int // index into the texture lump
	Flags   uint32
}

// Texture is the part of a mip texture header the converter consults.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Missing is set for textures the compiler did not embed into the file.
	Missing bool
}

type Face struct {
	Plane     int
	PlaneSide bool
	FirstEdge int // index into the surfedges
	NumEdges  int
	TexInfo   int
	Styles    [4]byte
	LightOfs  int32
}

type Submodel struct {
	Mins         vec.Vec3
	Maxs         vec.Vec3
	Origin       vec.Vec3
	HeadNode     [4]int
	VisLeafCount int
	FirstFace    int
	FaceCount    int
}

// ChildRef references either a node or a leaf.
type ChildRef struct {
	Leaf  bool
	Index int
}

type Node struct {
	Plane     int
	Children  [2]ChildRef
	Mins      [3]int16
	Maxs      [3]int16
	FirstFace int
	FaceCount int
}

type Leaf struct {
	Contents         int
	VisOfs           int
	Mins             [3]int16
	Maxs             [3]int16
	FirstMarkSurface int
	MarkSurfaceCount int
	Ambients         [4]byte
}
