// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// On-disk records of a GoldSrc (v30) bsp. All values are little endian and
// tightly packed.

// called lump_t in c
type directory struct {
	Offset int32
	Size   int32
}

const (
	lumpEntities = iota
	lumpPlanes
	lumpTextures
	lumpVertexes
	lumpVisibility
	lumpNodes
	lumpTexinfo
	lumpFaces
	lumpLighting
	lumpClipNodes
	lumpLeafs
	lumpMarkSurfaces
	lumpEdges
	lumpSurfaceEdges
	lumpModels
	lumpCount
)

var lumpNames = [lumpCount]string{
	"entities", "planes", "textures", "vertexes", "visibility", "nodes",
	"texinfo", "faces", "lighting", "clipnodes", "leafs", "marksurfaces",
	"edges", "surfedges", "models",
}

type header struct {
	Version int32
	Lumps   [lumpCount]directory
}

const headerSize = 4 + lumpCount*8

type vertex struct {
	X float32
	Y float32
	Z float32
}

type plane struct {
	Normal   [3]float32
	Distance float32
	Type     int32 // 0: axial plane in X, 1: axial plane in Y, 2 axial in Z, 3,4,5 similar but non axial
}

type edge struct {
	Vertex0 uint16 // id of start vertex, must be in [0,numvertices[
	Vertex1 uint16 // id of end vertex, must be in [0,numvertices[
}

type surface struct {
	VectorS   [3]float32 // S vector, horizontal in texture space
	DistS     float32    // horizontal offset in texture space
	VectorT   [3]float32 // T vector, vertical in texture space
	DistT     float32    // vertical offset in texture space
	TextureID uint32     // Index of mip texture, must be in [0,numtex[
	Flags     uint32
}

type face struct {
	PlaneID        uint16 // The plane in which the face lies, must be in [0,numplanes[
	Side           uint16
	ListEdgeID     uint32
	ListEdgeNumber uint16
	TexInfoID      uint16
	LightStyle     [4]uint8
	LightMap       int32 // Pointer inside the general light map, or -1
}

type mipTexture struct {
	Name   [16]byte
	Width  uint32
	Height uint32
	// Offset[0] to Pix[width * height]
	// 1: to Pix[width/2 * height/2]
	// 2: to Pix[width/4 * height/4]
	// 3: to Pix[width/8 * height/8]
	Offset [4]uint32
}

// Model, either the level or parts inside that zone
type model struct {
	BoundingBox  [6]float32
	Origin       [3]float32
	HeadNode     [4]int32
	VisLeafCount int32 // not including the solid leaf 0
	FirstFace    int32
	FaceCount    int32
}

type node struct {
	PlaneID      uint32
	Children     [2]int16 // >= 0 node index, otherwise bitwise inverse of a leaf index
	Box          [6]int16
	FirstSurface uint16
	SurfaceCount uint16
}

type leaf struct {
	Type             int32 // Contents
	VisOfs           int32
	Box              [6]int16 // mins & maxs
	FirstMarkSurface uint16
	MarkSurfaceCount uint16
	Ambients         [4]byte
}

// record sizes as stored in the file
const (
	vertexSize   = 12
	planeSize    = 20
	edgeSize     = 4
	surfEdgeSize = 4
	texInfoSize  = 40
	mipTexSize   = 40
	faceSize     = 20
	modelSize    = 64
	nodeSize     = 24
	leafSize     = 28
)
