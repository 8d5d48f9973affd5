// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"bsp2mesh/bsp"
)

// SkyTexture is the texture name of faces which only draw the sky box.
const SkyTexture = "sky"

// SkipFunc reports whether faces with texture t are left out of a mesh.
type SkipFunc func(t bsp.Texture) bool

// SkipSky drops faces painted with SkyTexture. Names must match exactly.
func SkipSky(t bsp.Texture) bool {
	return t.Name == SkyTexture
}

// SkipTextures drops faces painted with any of the given names.
func SkipTextures(names ...string) SkipFunc {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(t bsp.Texture) bool {
		_, ok := set[t.Name]
		return ok
	}
}
