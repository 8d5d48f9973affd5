// SPDX-License-Identifier: GPL-2.0-or-later

package export

import (
	"io"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"bsp2mesh/math/vec"
	"bsp2mesh/mesh"
)

// Proto writes the scene in protobuf wire format. The schema is
//
//	message Vec3 { float x = 1; float y = 2; float z = 3; }
//	message Polygon {
//	  uint32 count = 1;
//	  string texture = 2;
//	  uint32 width = 3;
//	  uint32 height = 4;
//	}
//	message Mesh {
//	  string name = 1;
//	  int32 model = 2;
//	  repeated float positions = 3;  // xyz triples
//	  repeated float normals = 4;    // xyz triples
//	  repeated float tangents = 5;   // xyz triples
//	  repeated float uvs = 6;        // uv pairs, texel space
//	  repeated bool degenerate = 7;
//	  repeated Polygon polygons = 8; // start is implicit
//	}
//	message Group { string name = 1; repeated Mesh meshes = 2; }
//	message Scene {
//	  bytes id = 1;
//	  string name = 2;
//	  Vec3 mirror = 3;
//	  repeated Group groups = 4;
//	}
type Proto struct{}

func (Proto) Extension() string {
	return ".pb"
}

func (Proto) Write(w io.Writer, s *Scene) error {
	if _, err := w.Write(appendScene(nil, s)); err != nil {
		return errors.Wrap(err, "pb")
	}
	return nil
}

const (
	fieldVec3X = 1
	fieldVec3Y = 2
	fieldVec3Z = 3

	fieldPolygonCount   = 1
	fieldPolygonTexture = 2
	fieldPolygonWidth   = 3
	fieldPolygonHeight  = 4

	fieldMeshName       = 1
	fieldMeshModel      = 2
	fieldMeshPositions  = 3
	fieldMeshNormals    = 4
	fieldMeshTangents   = 5
	fieldMeshUVs        = 6
	fieldMeshDegenerate = 7
	fieldMeshPolygons   = 8

	fieldGroupName   = 1
	fieldGroupMeshes = 2

	fieldSceneID     = 1
	fieldSceneName   = 2
	fieldSceneMirror = 3
	fieldSceneGroups = 4
)

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendFloat(b []byte, num protowire.Number, f float32) []byte {
	if f == 0 && !math.Signbit(float64(f)) {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(f))
}

func appendMessage(b []byte, num protowire.Number, m []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

func appendPackedVec3(b []byte, num protowire.Number, vs []vec.Vec3) []byte {
	if len(vs) == 0 {
		return b
	}
	p := make([]byte, 0, len(vs)*12)
	for _, v := range vs {
		p = protowire.AppendFixed32(p, math.Float32bits(v.X))
		p = protowire.AppendFixed32(p, math.Float32bits(v.Y))
		p = protowire.AppendFixed32(p, math.Float32bits(v.Z))
	}
	return appendMessage(b, num, p)
}

func appendPackedVec2(b []byte, num protowire.Number, vs []vec.Vec2) []byte {
	if len(vs) == 0 {
		return b
	}
	p := make([]byte, 0, len(vs)*8)
	for _, v := range vs {
		p = protowire.AppendFixed32(p, math.Float32bits(v.U))
		p = protowire.AppendFixed32(p, math.Float32bits(v.V))
	}
	return appendMessage(b, num, p)
}

func appendPackedBool(b []byte, num protowire.Number, vs []bool) []byte {
	if len(vs) == 0 {
		return b
	}
	p := make([]byte, 0, len(vs))
	for _, v := range vs {
		p = protowire.AppendVarint(p, protowire.EncodeBool(v))
	}
	return appendMessage(b, num, p)
}

func appendVec3(b []byte, num protowire.Number, v vec.Vec3) []byte {
	var m []byte
	m = appendFloat(m, fieldVec3X, v.X)
	m = appendFloat(m, fieldVec3Y, v.Y)
	m = appendFloat(m, fieldVec3Z, v.Z)
	return appendMessage(b, num, m)
}

func appendPolygon(b []byte, p mesh.Polygon) []byte {
	var m []byte
	m = appendVarint(m, fieldPolygonCount, uint64(p.Count))
	m = appendString(m, fieldPolygonTexture, p.Texture)
	m = appendVarint(m, fieldPolygonWidth, uint64(p.TexWidth))
	m = appendVarint(m, fieldPolygonHeight, uint64(p.TexHeight))
	return appendMessage(b, fieldMeshPolygons, m)
}

func appendMesh(b []byte, me *mesh.Mesh) []byte {
	var m []byte
	m = appendString(m, fieldMeshName, me.Name)
	m = appendVarint(m, fieldMeshModel, uint64(int64(me.Model)))
	m = appendPackedVec3(m, fieldMeshPositions, me.Positions)
	m = appendPackedVec3(m, fieldMeshNormals, me.Normals)
	m = appendPackedVec3(m, fieldMeshTangents, me.Tangents)
	m = appendPackedVec2(m, fieldMeshUVs, me.UVs)
	m = appendPackedBool(m, fieldMeshDegenerate, me.Degenerate)
	for _, p := range me.Polygons {
		m = appendPolygon(m, p)
	}
	return appendMessage(b, fieldGroupMeshes, m)
}

func appendScene(b []byte, s *Scene) []byte {
	b = protowire.AppendTag(b, fieldSceneID, protowire.BytesType)
	b = protowire.AppendBytes(b, s.ID[:])
	b = appendString(b, fieldSceneName, s.Name)
	b = appendVec3(b, fieldSceneMirror, s.Mirror)
	for _, g := range s.Groups {
		var m []byte
		m = appendString(m, fieldGroupName, g.Name)
		for _, me := range g.Meshes {
			m = appendMesh(m, me)
		}
		b = appendMessage(b, fieldSceneGroups, m)
	}
	return b
}

// field is one decoded key/value pair of a message.
type field struct {
	num protowire.Number
	typ protowire.Type
	raw []byte // value bytes of BytesType fields
	val uint64 // value of varint and fixed32 fields
}

// fields splits a message into its fields.
func fields(b []byte) ([]field, error) {
	var fs []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.BytesType:
			f.raw, n = protowire.ConsumeBytes(b)
		case protowire.VarintType:
			f.val, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			f.val = uint64(v)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		fs = append(fs, f)
	}
	return fs, nil
}

func packedFloats(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, errors.Errorf("packed floats of %d bytes", len(b))
	}
	out := make([]float32, 0, len(b)/4)
	for len(b) > 0 {
		v, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		out = append(out, math.Float32frombits(v))
		b = b[n:]
	}
	return out, nil
}

func readVec3s(b []byte) ([]vec.Vec3, error) {
	fs, err := packedFloats(b)
	if err != nil {
		return nil, err
	}
	if len(fs)%3 != 0 {
		return nil, errors.Errorf("%d floats are no vec3 list", len(fs))
	}
	vs := make([]vec.Vec3, 0, len(fs)/3)
	for i := 0; i < len(fs); i += 3 {
		vs = append(vs, vec.Vec3{X: fs[i], Y: fs[i+1], Z: fs[i+2]})
	}
	return vs, nil
}

func readVec2s(b []byte) ([]vec.Vec2, error) {
	fs, err := packedFloats(b)
	if err != nil {
		return nil, err
	}
	if len(fs)%2 != 0 {
		return nil, errors.Errorf("%d floats are no vec2 list", len(fs))
	}
	vs := make([]vec.Vec2, 0, len(fs)/2)
	for i := 0; i < len(fs); i += 2 {
		vs = append(vs, vec.Vec2{U: fs[i], V: fs[i+1]})
	}
	return vs, nil
}

func readBools(b []byte) ([]bool, error) {
	var out []bool
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		out = append(out, protowire.DecodeBool(v))
		b = b[n:]
	}
	return out, nil
}

func readVec3(b []byte) (vec.Vec3, error) {
	fs, err := fields(b)
	if err != nil {
		return vec.Vec3{}, err
	}
	var v vec.Vec3
	for _, f := range fs {
		x := math.Float32frombits(uint32(f.val))
		switch f.num {
		case fieldVec3X:
			v.X = x
		case fieldVec3Y:
			v.Y = x
		case fieldVec3Z:
			v.Z = x
		}
	}
	return v, nil
}

func readPolygon(b []byte) (mesh.Polygon, error) {
	fs, err := fields(b)
	if err != nil {
		return mesh.Polygon{}, err
	}
	var p mesh.Polygon
	for _, f := range fs {
		switch f.num {
		case fieldPolygonCount:
			p.Count = int(f.val)
		case fieldPolygonTexture:
			p.Texture = string(f.raw)
		case fieldPolygonWidth:
			p.TexWidth = int(f.val)
		case fieldPolygonHeight:
			p.TexHeight = int(f.val)
		}
	}
	return p, nil
}

func readMesh(b []byte) (*mesh.Mesh, error) {
	fs, err := fields(b)
	if err != nil {
		return nil, err
	}
	m := &mesh.Mesh{}
	for _, f := range fs {
		switch f.num {
		case fieldMeshName:
			m.Name = string(f.raw)
		case fieldMeshModel:
			m.Model = int(int32(f.val))
		case fieldMeshPositions:
			m.Positions, err = readVec3s(f.raw)
		case fieldMeshNormals:
			m.Normals, err = readVec3s(f.raw)
		case fieldMeshTangents:
			m.Tangents, err = readVec3s(f.raw)
		case fieldMeshUVs:
			m.UVs, err = readVec2s(f.raw)
		case fieldMeshDegenerate:
			m.Degenerate, err = readBools(f.raw)
		case fieldMeshPolygons:
			var p mesh.Polygon
			p, err = readPolygon(f.raw)
			p.Start = 0
			if n := len(m.Polygons); n > 0 {
				p.Start = m.Polygons[n-1].Start + m.Polygons[n-1].Count
			}
			m.Polygons = append(m.Polygons, p)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ReadProto decodes a scene written by Proto.
func ReadProto(r io.Reader) (*Scene, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "pb")
	}
	fs, err := fields(b)
	if err != nil {
		return nil, errors.Wrap(err, "pb")
	}
	s := &Scene{}
	for _, f := range fs {
		switch f.num {
		case fieldSceneID:
			s.ID, err = uuid.FromBytes(f.raw)
		case fieldSceneName:
			s.Name = string(f.raw)
		case fieldSceneMirror:
			s.Mirror, err = readVec3(f.raw)
		case fieldSceneGroups:
			var g Group
			g, err = readGroup(f.raw)
			s.Groups = append(s.Groups, g)
		}
		if err != nil {
			return nil, errors.Wrap(err, "pb")
		}
	}
	return s, nil
}

func readGroup(b []byte) (Group, error) {
	fs, err := fields(b)
	if err != nil {
		return Group{}, err
	}
	var g Group
	for _, f := range fs {
		switch f.num {
		case fieldGroupName:
			g.Name = string(f.raw)
		case fieldGroupMeshes:
			m, err := readMesh(f.raw)
			if err != nil {
				return Group{}, err
			}
			g.Meshes = append(g.Meshes, m)
		}
	}
	return g, nil
}
