// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"log/slog"

	"github.com/pkg/errors"

	"bsp2mesh/bsp"
)

// Assembler builds meshes from the models of a bsp. The zero value skips sky
// faces and rejects degenerate edges.
type Assembler struct {
	Skip       SkipFunc
	Degenerate DegeneratePolicy
}

func (a *Assembler) skip(t bsp.Texture) bool {
	if a.Skip == nil {
		return SkipSky(t)
	}
	return a.Skip(t)
}

// Build assembles model idx into a fresh mesh. Each kept face becomes one
// polygon with one control point per surfedge. On error no mesh is returned.
func (a *Assembler) Build(f *bsp.File, idx int) (*Mesh, error) {
	m, err := f.Model(idx)
	if err != nil {
		return nil, err
	}
	if m.FirstFace < 0 || m.FaceCount < 0 || m.FirstFace+m.FaceCount > f.NumFaces() {
		return nil, errors.Wrapf(bsp.ErrInvalidReference, "model %d faces [%d,+%d] out of range [0,%d)",
			idx, m.FirstFace, m.FaceCount, f.NumFaces())
	}
	mesh := &Mesh{Model: idx}
	skipped := 0
	for id := m.FirstFace; id < m.FirstFace+m.FaceCount; id++ {
		fc, err := f.Face(id)
		if err != nil {
			return nil, err
		}
		tex, err := f.FaceTexture(fc)
		if err != nil {
			return nil, errors.WithMessagef(err, "model %d face %d", idx, id)
		}
		if a.skip(tex) {
			skipped++
			continue
		}
		if err := a.appendFace(mesh, f, fc, tex); err != nil {
			return nil, errors.WithMessagef(err, "model %d face %d", idx, id)
		}
	}
	slog.Debug("Built mesh",
		slog.Int("model", idx),
		slog.Int("polygons", len(mesh.Polygons)),
		slog.Int("skipped", skipped),
		slog.Int("controlPoints", mesh.NumControlPoints()))
	return mesh, nil
}

func (a *Assembler) appendFace(mesh *Mesh, f *bsp.File, fc bsp.Face, tex bsp.Texture) error {
	corners, err := Resolve(f, fc)
	if err != nil {
		return err
	}
	p, err := f.Plane(fc.Plane)
	if err != nil {
		return err
	}
	ti, err := f.TexInfo(fc.TexInfo)
	if err != nil {
		return err
	}
	normal := faceNormal(p, fc.PlaneSide)

	cps := make([]controlPoint, 0, len(corners))
	for i, c := range corners {
		v0, err := f.Vertex(c.V0)
		if err != nil {
			return err
		}
		v1, err := f.Vertex(c.V1)
		if err != nil {
			return err
		}
		tangent, ok := edgeTangent(v0, v1)
		if !ok && a.Degenerate == DegenerateReject {
			return errors.Wrapf(bsp.ErrDegenerateGeometry, "surfedge %d: edge (%d,%d) has no length",
				fc.FirstEdge+i, c.V0, c.V1)
		}
		cp := controlPoint{
			position:   v0,
			normal:     normal,
			tangent:    tangent,
			uv:         textureCoord(ti, v0),
			degenerate: !ok,
		}
		cps = append(cps, cp.toLeftHanded())
	}
	mesh.appendPolygon(Polygon{
		Texture:   tex.Name,
		TexWidth:  tex.Width,
		TexHeight: tex.Height,
	}, cps)
	return nil
}
