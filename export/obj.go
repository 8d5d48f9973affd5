// SPDX-License-Identifier: GPL-2.0-or-later

package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"bsp2mesh/math/vec"
)

// OBJ writes Wavefront obj text. The root mirror is baked into positions and
// normals. Texture coordinates are normalized by the texture size with V
// pointing up.
type OBJ struct{}

func (OBJ) Extension() string {
	return ".obj"
}

func (OBJ) Write(w io.Writer, s *Scene) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s %s\n", s.Name, s.ID)
	flip := negatives(s.Mirror)%2 == 1
	base := 1 // obj indices start at 1
	for _, g := range s.Groups {
		fmt.Fprintf(bw, "g %s\n", g.Name)
		for _, m := range g.Meshes {
			fmt.Fprintf(bw, "o %s\n", m.Name)
			for _, p := range m.Positions {
				p = vec.Mul(p, s.Mirror)
				fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
			}
			for _, p := range m.Polygons {
				for _, uv := range m.UVs[p.Start : p.Start+p.Count] {
					uv = p.NormalizeUV(uv)
					fmt.Fprintf(bw, "vt %g %g\n", uv.U, -uv.V)
				}
			}
			for _, n := range m.Normals {
				n = vec.Mul(n, s.Mirror)
				fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
			}
			for _, p := range m.Polygons {
				if p.Count == 0 {
					continue
				}
				bw.WriteString("f")
				for i := 0; i < p.Count; i++ {
					c := i
					if flip {
						c = p.Count - 1 - i
					}
					idx := base + p.Start + c
					fmt.Fprintf(bw, " %d/%d/%d", idx, idx, idx)
				}
				bw.WriteString("\n")
			}
			base += m.NumControlPoints()
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "obj")
	}
	return nil
}

// negatives counts the negative components of a scale.
func negatives(v vec.Vec3) int {
	n := 0
	for _, c := range v.Array() {
		if c < 0 {
			n++
		}
	}
	return n
}
