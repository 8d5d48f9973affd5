// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"bsp2mesh/math/vec"
)

// SwitchHandedness converts between the right handed source system
// (X forward, Y left, Z up) and the left handed target system
// (X forward, Y right, Z up). It is its own inverse.
func SwitchHandedness(v vec.Vec3) vec.Vec3 {
	return v.SwapHandedness()
}
