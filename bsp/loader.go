// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"slices"

	"github.com/pkg/errors"

	"bsp2mesh/math/vec"
)

type loadOptions struct {
	name     string
	versions []int32
}

type Option func(*loadOptions)

// WithVersions replaces the accepted header versions. Quake (29) files share
// all record layouts the converter consumes.
func WithVersions(v ...int32) Option {
	return func(o *loadOptions) {
		o.versions = v
	}
}

// WithName sets the name used in errors and logs.
func WithName(name string) Option {
	return func(o *loadOptions) {
		o.name = name
	}
}

// ReadFile reads and decodes the bsp at path name.
func ReadFile(name string, opts ...Option) (*File, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "%v", err)
	}
	return Load(b, append([]Option{WithName(name)}, opts...)...)
}

// Load decodes a complete bsp image. Either every lump decodes or an error is
// returned, never a partial File.
func Load(data []byte, opts ...Option) (*File, error) {
	o := loadOptions{
		name:     "bsp",
		versions: []int32{Version},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if len(data) < headerSize {
		return nil, errors.Wrapf(ErrInvalidHeader, "%s: file too short (%d bytes)", o.name, len(data))
	}
	var h header
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrapf(ErrInvalidHeader, "%s: %v", o.name, err)
	}
	if !slices.Contains(o.versions, h.Version) {
		return nil, errors.Wrapf(ErrInvalidHeader, "%s has wrong version number (%d should be %v)", o.name, h.Version, o.versions)
	}
	f, err := decode(data, &h)
	if err != nil {
		return nil, errors.WithMessage(err, o.name)
	}
	f.name = o.name
	f.version = h.Version
	slog.Debug("Loaded bsp",
		slog.String("name", f.name),
		slog.Int("version", int(f.version)),
		slog.Int("models", len(f.models)),
		slog.Int("faces", len(f.faces)),
		slog.Int("edges", len(f.edges)),
		slog.Int("surfedges", len(f.surfEdges)),
		slog.Int("textures", len(f.textures)))
	return f, nil
}

// lumpData returns the bytes of lump idx after checking them against the
// file bounds.
func lumpData(data []byte, h *header, idx int) ([]byte, error) {
	d := h.Lumps[idx]
	start := int64(d.Offset)
	end := start + int64(d.Size)
	if d.Offset < 0 || d.Size < 0 || end > int64(len(data)) {
		return nil, errors.Wrapf(ErrCorruptLump, "%s lump [%d,+%d] exceeds file size %d",
			lumpNames[idx], d.Offset, d.Size, len(data))
	}
	return data[start:end], nil
}

func readLump[T any](data []byte, h *header, idx, size int) ([]T, error) {
	b, err := lumpData(data, h, idx)
	if err != nil {
		return nil, err
	}
	if len(b)%size != 0 {
		return nil, errors.Wrapf(ErrCorruptLump, "%s lump size %d not divisible by %d",
			lumpNames[idx], len(b), size)
	}
	out := make([]T, len(b)/size)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, out); err != nil {
		return nil, errors.Wrapf(ErrCorruptLump, "%s lump: %v", lumpNames[idx], err)
	}
	return out, nil
}

func decode(data []byte, h *header) (*File, error) {
	f := &File{}

	ents, err := lumpData(data, h, lumpEntities)
	if err != nil {
		return nil, err
	}
	if n := bytes.IndexByte(ents, 0); n != -1 {
		ents = ents[:n]
	}
	f.entities = string(ents)

	vs, err := readLump[vertex](data, h, lumpVertexes, vertexSize)
	if err != nil {
		return nil, err
	}
	f.vertexes = make([]vec.Vec3, len(vs))
	for i, v := range vs {
		f.vertexes[i] = vec.Vec3{X: v.X, Y: v.Y, Z: v.Z}
	}

	ps, err := readLump[plane](data, h, lumpPlanes, planeSize)
	if err != nil {
		return nil, err
	}
	f.planes = make([]Plane, len(ps))
	for i, p := range ps {
		f.planes[i] = Plane{
			Normal: vec.VFromA(p.Normal),
			Dist:   p.Distance,
			Type:   int(p.Type),
		}
	}

	es, err := readLump[edge](data, h, lumpEdges, edgeSize)
	if err != nil {
		return nil, err
	}
	f.edges = make([]Edge, len(es))
	for i, e := range es {
		if int(e.Vertex0) >= len(f.vertexes) || int(e.Vertex1) >= len(f.vertexes) {
			return nil, errors.Wrapf(ErrInvalidReference, "edge %d references vertex (%d,%d), have %d",
				i, e.Vertex0, e.Vertex1, len(f.vertexes))
		}
		f.edges[i] = Edge{V: [2]int{int(e.Vertex0), int(e.Vertex1)}}
	}

	ses, err := readLump[int32](data, h, lumpSurfaceEdges, surfEdgeSize)
	if err != nil {
		return nil, err
	}
	f.surfEdges = make([]SurfEdge, len(ses))
	for i, s := range ses {
		se, err := decodeSurfEdge(s, len(f.edges))
		if err != nil {
			return nil, errors.WithMessagef(err, "surfedge %d", i)
		}
		f.surfEdges[i] = se
	}

	if f.textures, err = readTextures(data, h); err != nil {
		return nil, err
	}

	tis, err := readLump[surface](data, h, lumpTexinfo, texInfoSize)
	if err != nil {
		return nil, err
	}
	f.texInfos = make([]TexInfo, len(tis))
	for i, t := range tis {
		f.texInfos[i] = TexInfo{
			Vecs: [2]TexInfoPos{
				{Pos: vec.VFromA(t.VectorS), Offset: t.DistS},
				{Pos: vec.VFromA(t.VectorT), Offset: t.DistT},
			},
			Texture: int(t.TextureID),
			Flags:   t.Flags,
		}
	}

	fs, err := readLump[face](data, h, lumpFaces, faceSize)
	if err != nil {
		return nil, err
	}
	f.faces = make([]Face, len(fs))
	for i, fc := range fs {
		f.faces[i] = Face{
			Plane:     int(fc.PlaneID),
			PlaneSide: fc.Side != 0,
			FirstEdge: int(fc.ListEdgeID),
			NumEdges:  int(fc.ListEdgeNumber),
			TexInfo:   int(fc.TexInfoID),
			Styles:    fc.LightStyle,
			LightOfs:  fc.LightMap,
		}
	}

	ms, err := readLump[model](data, h, lumpModels, modelSize)
	if err != nil {
		return nil, err
	}
	f.models = make([]Submodel, len(ms))
	for i, m := range ms {
		f.models[i] = Submodel{
			Mins:         vec.Vec3{X: m.BoundingBox[0], Y: m.BoundingBox[1], Z: m.BoundingBox[2]},
			Maxs:         vec.Vec3{X: m.BoundingBox[3], Y: m.BoundingBox[4], Z: m.BoundingBox[5]},
			Origin:       vec.VFromA(m.Origin),
			HeadNode:     [4]int{int(m.HeadNode[0]), int(m.HeadNode[1]), int(m.HeadNode[2]), int(m.HeadNode[3])},
			VisLeafCount: int(m.VisLeafCount),
			FirstFace:    int(m.FirstFace),
			FaceCount:    int(m.FaceCount),
		}
	}

	if f.nodes, err = readNodes(data, h); err != nil {
		return nil, err
	}
	if f.leafs, err = readLeafs(data, h); err != nil {
		return nil, err
	}
	return f, nil
}

// decodeSurfEdge turns the signed on-disk value into a SurfEdge. A negative
// value walks the edge backwards.
func decodeSurfEdge(s int32, numEdges int) (SurfEdge, error) {
	idx := int64(s)
	rev := idx < 0
	if rev {
		idx = -idx
	}
	if idx >= int64(numEdges) {
		return SurfEdge{}, errors.Wrapf(ErrInvalidReference, "edge %d out of range [0,%d)", s, numEdges)
	}
	return SurfEdge{Edge: int(idx), Reversed: rev}, nil
}
