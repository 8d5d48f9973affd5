// SPDX-License-Identifier: GPL-2.0-or-later

// Package export serializes converted meshes.
package export

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"bsp2mesh/bsp"
	"bsp2mesh/math/vec"
	"bsp2mesh/mesh"
)

// Group is a named node holding the meshes of one entity class.
type Group struct {
	Name   string
	Meshes []*mesh.Mesh
}

// Scene is the value handed to a Sink. Mirror is the scale of the root node,
// the meshes themselves are already left handed.
type Scene struct {
	ID     uuid.UUID
	Name   string
	Mirror vec.Vec3
	Groups []Group
}

// RootName is the name of the node all visible geometry hangs below.
const RootName = "visible_geometry"

// mirrorX mirrors the whole scene along X.
var mirrorX = vec.Vec3{X: -1, Y: 1, Z: 1}

func groupName(class string) string {
	if class == bsp.ClassWorldSpawn {
		return class
	}
	return class + "s"
}

// fixedGroups are always present below the root, even when empty.
var fixedGroups = []string{bsp.ClassWorldSpawn, bsp.ClassFuncWall, bsp.ClassFuncBreakable}

// NewScene groups meshes by the class of the model reference at the same
// index. The worldspawn, func_walls and func_breakables groups always exist
// in that order, other classes follow in the order their first member does.
func NewScene(name string, refs []bsp.ModelRef, meshes []*mesh.Mesh) (*Scene, error) {
	if len(refs) != len(meshes) {
		return nil, fmt.Errorf("got %d model references for %d meshes", len(refs), len(meshes))
	}
	s := &Scene{
		ID:     uuid.Must(uuid.NewV7()),
		Name:   name,
		Mirror: mirrorX,
	}
	idx := map[string]int{}
	for _, c := range fixedGroups {
		idx[groupName(c)] = len(s.Groups)
		s.Groups = append(s.Groups, Group{Name: groupName(c)})
	}
	for i, r := range refs {
		g := groupName(r.ClassName)
		n, ok := idx[g]
		if !ok {
			n = len(s.Groups)
			idx[g] = n
			s.Groups = append(s.Groups, Group{Name: g})
		}
		s.Groups[n].Meshes = append(s.Groups[n].Meshes, meshes[i])
	}
	return s, nil
}

// Sink writes a scene to w.
type Sink interface {
	Write(w io.Writer, s *Scene) error
	// Extension is the file name extension including the dot.
	Extension() string
}

// ForFormat returns the sink registered for name.
func ForFormat(name string) (Sink, error) {
	switch name {
	case "obj":
		return OBJ{}, nil
	case "pb":
		return Proto{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}
