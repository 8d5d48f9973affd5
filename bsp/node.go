// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/pkg/errors"
)

// decodeChild resolves the on-disk child value: positive values are node
// indices, negative values the bitwise inverse of a leaf index.
func decodeChild(c int16) ChildRef {
	if c < 0 {
		return ChildRef{Leaf: true, Index: int(^c)}
	}
	return ChildRef{Index: int(c)}
}

func readNodes(data []byte, h *header) ([]Node, error) {
	ns, err := readLump[node](data, h, lumpNodes, nodeSize)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(ns))
	for i, n := range ns {
		nodes[i] = Node{
			Plane:     int(n.PlaneID),
			Children:  [2]ChildRef{decodeChild(n.Children[0]), decodeChild(n.Children[1])},
			Mins:      [3]int16{n.Box[0], n.Box[1], n.Box[2]},
			Maxs:      [3]int16{n.Box[3], n.Box[4], n.Box[5]},
			FirstFace: int(n.FirstSurface),
			FaceCount: int(n.SurfaceCount),
		}
	}
	return nodes, nil
}

func readLeafs(data []byte, h *header) ([]Leaf, error) {
	ls, err := readLump[leaf](data, h, lumpLeafs, leafSize)
	if err != nil {
		return nil, err
	}
	leafs := make([]Leaf, len(ls))
	for i, l := range ls {
		leafs[i] = Leaf{
			Contents:         int(l.Type),
			VisOfs:           int(l.VisOfs),
			Mins:             [3]int16{l.Box[0], l.Box[1], l.Box[2]},
			Maxs:             [3]int16{l.Box[3], l.Box[4], l.Box[5]},
			FirstMarkSurface: int(l.FirstMarkSurface),
			MarkSurfaceCount: int(l.MarkSurfaceCount),
			Ambients:         l.Ambients,
		}
	}
	return leafs, nil
}

// Child returns the referenced child of node n.
func (f *File) Child(n Node, side int) (ChildRef, error) {
	if side != 0 && side != 1 {
		return ChildRef{}, errors.Errorf("bad node side %d", side)
	}
	c := n.Children[side]
	limit := len(f.nodes)
	if c.Leaf {
		limit = len(f.leafs)
	}
	if c.Index >= limit {
		return ChildRef{}, errors.Wrapf(ErrInvalidReference, "child %+v out of range [0,%d)", c, limit)
	}
	return c, nil
}
