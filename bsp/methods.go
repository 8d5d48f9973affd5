// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/pkg/errors"

	"bsp2mesh/math/vec"
)

// File is a decoded bsp. It is immutable after Load, all accessors return
// copies.
type File struct {
	name    string
	version int32

	entities  string
	planes    []Plane
	textures  []Texture
	vertexes  []vec.Vec3
	nodes     []Node
	texInfos  []TexInfo
	faces     []Face
	leafs     []Leaf
	edges     []Edge
	surfEdges []SurfEdge
	models    []Submodel
}

func (f *File) Name() string {
	return f.name
}

func (f *File) Version() int32 {
	return f.version
}

// EntityText returns the raw entity lump.
func (f *File) EntityText() string {
	return f.entities
}

func (f *File) NumModels() int    { return len(f.models) }
func (f *File) NumFaces() int     { return len(f.faces) }
func (f *File) NumPlanes() int    { return len(f.planes) }
func (f *File) NumTexInfos() int  { return len(f.texInfos) }
func (f *File) NumTextures() int  { return len(f.textures) }
func (f *File) NumVertexes() int  { return len(f.vertexes) }
func (f *File) NumEdges() int     { return len(f.edges) }
func (f *File) NumSurfEdges() int { return len(f.surfEdges) }
func (f *File) NumNodes() int     { return len(f.nodes) }
func (f *File) NumLeafs() int     { return len(f.leafs) }

func outOfRange(what string, idx, n int) error {
	return errors.Wrapf(ErrInvalidReference, "%s %d out of range [0,%d)", what, idx, n)
}

func (f *File) Model(i int) (Submodel, error) {
	if i < 0 || i >= len(f.models) {
		return Submodel{}, outOfRange("model", i, len(f.models))
	}
	return f.models[i], nil
}

func (f *File) Face(i int) (Face, error) {
	if i < 0 || i >= len(f.faces) {
		return Face{}, outOfRange("face", i, len(f.faces))
	}
	return f.faces[i], nil
}

func (f *File) Plane(i int) (Plane, error) {
	if i < 0 || i >= len(f.planes) {
		return Plane{}, outOfRange("plane", i, len(f.planes))
	}
	return f.planes[i], nil
}

func (f *File) TexInfo(i int) (TexInfo, error) {
	if i < 0 || i >= len(f.texInfos) {
		return TexInfo{}, outOfRange("texinfo", i, len(f.texInfos))
	}
	return f.texInfos[i], nil
}

func (f *File) Texture(i int) (Texture, error) {
	if i < 0 || i >= len(f.textures) {
		return Texture{}, outOfRange("texture", i, len(f.textures))
	}
	return f.textures[i], nil
}

func (f *File) Vertex(i int) (vec.Vec3, error) {
	if i < 0 || i >= len(f.vertexes) {
		return vec.Vec3{}, outOfRange("vertex", i, len(f.vertexes))
	}
	return f.vertexes[i], nil
}

func (f *File) Edge(i int) (Edge, error) {
	if i < 0 || i >= len(f.edges) {
		return Edge{}, outOfRange("edge", i, len(f.edges))
	}
	return f.edges[i], nil
}

func (f *File) SurfEdge(i int) (SurfEdge, error) {
	if i < 0 || i >= len(f.surfEdges) {
		return SurfEdge{}, outOfRange("surfedge", i, len(f.surfEdges))
	}
	return f.surfEdges[i], nil
}

func (f *File) Node(i int) (Node, error) {
	if i < 0 || i >= len(f.nodes) {
		return Node{}, outOfRange("node", i, len(f.nodes))
	}
	return f.nodes[i], nil
}

func (f *File) Leaf(i int) (Leaf, error) {
	if i < 0 || i >= len(f.leafs) {
		return Leaf{}, outOfRange("leaf", i, len(f.leafs))
	}
	return f.leafs[i], nil
}

// FaceTexture resolves the texture a face is painted with.
func (f *File) FaceTexture(fc Face) (Texture, error) {
	ti, err := f.TexInfo(fc.TexInfo)
	if err != nil {
		return Texture{}, err
	}
	return f.Texture(ti.Texture)
}
