// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"github.com/pkg/errors"

	"bsp2mesh/bsp"
)

// Corner is one step of the walk around a face: the edge from V0 to V1 in
// traversal order.
type Corner struct {
	V0 int
	V1 int
}

// Resolve walks the surfedges of a face and returns one corner per surfedge.
// The V0 sequence is the polygon, the last corner's V1 closes the loop.
func Resolve(f *bsp.File, fc bsp.Face) ([]Corner, error) {
	if fc.FirstEdge < 0 || fc.NumEdges < 0 || fc.FirstEdge+fc.NumEdges > f.NumSurfEdges() {
		return nil, errors.Wrapf(bsp.ErrInvalidReference, "surfedges [%d,+%d] out of range [0,%d)",
			fc.FirstEdge, fc.NumEdges, f.NumSurfEdges())
	}
	corners := make([]Corner, 0, fc.NumEdges)
	for id := fc.FirstEdge; id < fc.FirstEdge+fc.NumEdges; id++ {
		se, err := f.SurfEdge(id)
		if err != nil {
			return nil, err
		}
		e, err := f.Edge(se.Edge)
		if err != nil {
			return nil, err
		}
		v0, v1 := se.Vertices(e)
		corners = append(corners, Corner{V0: v0, V1: v1})
	}
	return corners, nil
}
