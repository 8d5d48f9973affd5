// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"errors"
)

// Error kinds. Call sites wrap these with context, test with errors.Is.
var (
	ErrIO                 = errors.New("io error")
	ErrInvalidHeader      = errors.New("invalid header")
	ErrCorruptLump        = errors.New("corrupt lump")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
