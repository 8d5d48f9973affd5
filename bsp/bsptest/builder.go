// SPDX-License-Identifier: GPL-2.0-or-later

// Package bsptest builds bsp images in memory for tests.
package bsptest

import (
	"bytes"
	"encoding/binary"
)

const (
	LumpEntities = iota
	LumpPlanes
	LumpTextures
	LumpVertexes
	LumpVisibility
	LumpNodes
	LumpTexinfo
	LumpFaces
	LumpLighting
	LumpClipNodes
	LumpLeafs
	LumpMarkSurfaces
	LumpEdges
	LumpSurfaceEdges
	LumpModels
	lumpCount
)

type Plane struct {
	Normal [3]float32
	Dist   float32
	Type   int32
}

type Edge struct {
	V0, V1 uint16
}

type TexInfo struct {
	S      [3]float32
	SShift float32
	T      [3]float32
	TShift float32
	MipTex uint32
	Flags  uint32
}

type Face struct {
	Plane     uint16
	Side      uint16
	FirstEdge uint32
	NumEdges  uint16
	TexInfo   uint16
	Styles    [4]uint8
	LightOfs  int32
}

type Model struct {
	Mins      [3]float32
	Maxs      [3]float32
	Origin    [3]float32
	HeadNodes [4]int32
	VisLeafs  int32
	FirstFace int32
	NumFaces  int32
}

type Node struct {
	Plane     uint32
	Children  [2]int16
	Mins      [3]int16
	Maxs      [3]int16
	FirstFace uint16
	NumFaces  uint16
}

type Leaf struct {
	Contents         int32
	VisOfs           int32
	Mins             [3]int16
	Maxs             [3]int16
	FirstMarkSurface uint16
	NumMarkSurfaces  uint16
	Ambients         [4]uint8
}

// MipTex is written as a 40 byte miptex header. Missing textures get the
// offset -1.
type MipTex struct {
	Name    string
	Width   uint32
	Height  uint32
	Missing bool
}

type mipTex struct {
	Name    [16]byte
	Width   uint32
	Height  uint32
	Offsets [4]uint32
}

// Builder holds the contents of every lump the converter reads.
type Builder struct {
	Version   int32
	Entities  string
	Planes    []Plane
	Textures  []MipTex
	Vertices  [][3]float32
	Nodes     []Node
	TexInfos  []TexInfo
	Faces     []Face
	Leafs     []Leaf
	Edges     []Edge
	SurfEdges []int32
	Models    []Model

	// Raw replaces the encoded contents of a lump.
	Raw map[int][]byte
}

func New() *Builder {
	return &Builder{Version: 30}
}

func encode(v any) []byte {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func (b *Builder) textureLump() []byte {
	if len(b.Textures) == 0 {
		return nil
	}
	var buf bytes.Buffer
	n := len(b.Textures)
	offsets := make([]int32, n)
	next := int32(4 + 4*n)
	for i, t := range b.Textures {
		if t.Missing {
			offsets[i] = -1
			continue
		}
		offsets[i] = next
		next += 40
	}
	binary.Write(&buf, binary.LittleEndian, uint32(n))
	binary.Write(&buf, binary.LittleEndian, offsets)
	for _, t := range b.Textures {
		if t.Missing {
			continue
		}
		m := mipTex{Width: t.Width, Height: t.Height}
		copy(m.Name[:], t.Name)
		binary.Write(&buf, binary.LittleEndian, &m)
	}
	return buf.Bytes()
}

func (b *Builder) lump(i int) []byte {
	if r, ok := b.Raw[i]; ok {
		return r
	}
	switch i {
	case LumpEntities:
		if b.Entities == "" {
			return nil
		}
		return append([]byte(b.Entities), 0)
	case LumpPlanes:
		return encode(b.Planes)
	case LumpTextures:
		return b.textureLump()
	case LumpVertexes:
		return encode(b.Vertices)
	case LumpNodes:
		return encode(b.Nodes)
	case LumpTexinfo:
		return encode(b.TexInfos)
	case LumpFaces:
		return encode(b.Faces)
	case LumpLeafs:
		return encode(b.Leafs)
	case LumpEdges:
		return encode(b.Edges)
	case LumpSurfaceEdges:
		return encode(b.SurfEdges)
	case LumpModels:
		return encode(b.Models)
	}
	return nil
}

// Bytes encodes the bsp image. Lumps are stored in directory order, each
// aligned to 4 bytes.
func (b *Builder) Bytes() []byte {
	type dir struct{ Offset, Size int32 }
	var dirs [lumpCount]dir
	body := bytes.Buffer{}
	headerSize := 4 + lumpCount*8
	for i := 0; i < lumpCount; i++ {
		l := b.lump(i)
		dirs[i] = dir{Offset: int32(headerSize + body.Len()), Size: int32(len(l))}
		body.Write(l)
		for body.Len()%4 != 0 {
			body.WriteByte(0)
		}
	}
	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, b.Version)
	binary.Write(&out, binary.LittleEndian, dirs)
	out.Write(body.Bytes())
	return out.Bytes()
}

// SetDirectory overwrites the directory entry of lump i in an encoded image.
func SetDirectory(data []byte, i int, offset, size int32) {
	at := 4 + i*8
	binary.LittleEndian.PutUint32(data[at:], uint32(offset))
	binary.LittleEndian.PutUint32(data[at+4:], uint32(size))
}

// Quad returns a file with one model made of the single unit quad
// (0,0,0) (1,0,0) (1,1,0) (0,1,0) facing +Z, textured "wall".
func Quad() *Builder {
	b := New()
	b.Entities = "{\n\"classname\" \"worldspawn\"\n\"wad\" \"halflife.wad\"\n}\n"
	b.Planes = []Plane{{Normal: [3]float32{0, 0, 1}, Type: 2}}
	b.Textures = []MipTex{{Name: "wall", Width: 64, Height: 64}}
	b.Vertices = [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	b.TexInfos = []TexInfo{{S: [3]float32{1, 0, 0}, T: [3]float32{0, 1, 0}}}
	// edge 0 is never used, its sign can not be encoded
	b.Edges = []Edge{{0, 0}, {0, 1}, {1, 2}, {2, 3}, {3, 0}}
	b.SurfEdges = []int32{1, 2, 3, 4}
	b.Faces = []Face{{Plane: 0, FirstEdge: 0, NumEdges: 4, TexInfo: 0, LightOfs: -1}}
	b.Models = []Model{{Maxs: [3]float32{1, 1, 0}, FirstFace: 0, NumFaces: 1}}
	return b
}
