// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"errors"
	"testing"

	"bsp2mesh/bsp/bsptest"
)

func TestDecodeChild(t *testing.T) {
	tests := []struct {
		in   int16
		want ChildRef
	}{
		{0, ChildRef{Index: 0}},
		{7, ChildRef{Index: 7}},
		{-1, ChildRef{Leaf: true, Index: 0}},
		{-3, ChildRef{Leaf: true, Index: 2}},
	}
	for _, tt := range tests {
		if got := decodeChild(tt.in); got != tt.want {
			t.Errorf("decodeChild(%d) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestNodesAndLeafs(t *testing.T) {
	b := bsptest.Quad()
	b.Nodes = []bsptest.Node{{Children: [2]int16{-1, -2}, Mins: [3]int16{0, 0, -1}, Maxs: [3]int16{1, 1, 1}, NumFaces: 1}}
	b.Leafs = []bsptest.Leaf{{Contents: CONTENTS_SOLID}, {Contents: CONTENTS_EMPTY, NumMarkSurfaces: 1}}
	f, err := Load(b.Bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	n, err := f.Node(0)
	if err != nil {
		t.Fatalf("Node(0): %v", err)
	}
	c, err := f.Child(n, 1)
	if err != nil || c != (ChildRef{Leaf: true, Index: 1}) {
		t.Errorf("Child(1) = %+v, %v", c, err)
	}
	l, _ := f.Leaf(c.Index)
	if l.Contents != CONTENTS_EMPTY || l.MarkSurfaceCount != 1 {
		t.Errorf("Leaf(1) = %+v", l)
	}
	if n.Maxs != [3]int16{1, 1, 1} || n.FaceCount != 1 {
		t.Errorf("Node(0) = %+v", n)
	}
}

func TestChildOutOfRange(t *testing.T) {
	b := bsptest.Quad()
	b.Nodes = []bsptest.Node{{Children: [2]int16{4, -9}}}
	f, err := Load(b.Bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	n, _ := f.Node(0)
	for side := 0; side < 2; side++ {
		if _, err := f.Child(n, side); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("Child(%d) error = %v", side, err)
		}
	}
}
