// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
)

var (
	NULL = Vec3{}
)

func TestBasics(t *testing.T) {
	v := VFromA([3]float32{1, 2, 3})
	if v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Errorf("Vector construction is not obvious")
	}
	if v.Array() != [3]float32{1, 2, 3} {
		t.Errorf("Array() = %v", v.Array())
	}
}

func TestLength(t *testing.T) {
	if NULL.Length() != 0 {
		t.Errorf("Null vector has not 0 length")
	}
	for _, v := range []Vec3{{2, 2, 1}, {2, 1, 2}, {1, 2, 2}} {
		if v.Length() != 3 {
			t.Errorf("%v Length is not 3", v)
		}
	}
}

func TestSub(t *testing.T) {
	v := Vec3{1, 2, 3}
	got := Sub(v, v)
	if got != NULL {
		t.Errorf("Sub(%v,%v) = %v want %v", v, v, got, NULL)
	}
	v2 := Vec3{9, 7, 5}
	got = Sub(v2, v)
	want := Vec3{8, 5, 2}
	if got != want {
		t.Errorf("Sub(%v,%v) = %v want %v", v2, v, got, want)
	}
}

func TestNormalize(t *testing.T) {
	v := Vec3{0, 3, 4}
	got, ok := v.Normalize(1e-6)
	if !ok {
		t.Fatalf("Normalize(%v) reported a degenerate vector", v)
	}
	want := Vec3{0, 0.6, 0.8}
	if !NearlyEqual(got, want, 1e-6) {
		t.Errorf("Normalize(%v) = %v, want %v", v, got, want)
	}
	if l := got.Length(); math32.Abs(l-1) > 1e-5 {
		t.Errorf("Normalize(%v) has length %v", v, l)
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	for _, v := range []Vec3{NULL, {1e-9, 0, 0}, {math32.NaN(), 0, 0}} {
		got, ok := v.Normalize(1e-6)
		if ok {
			t.Errorf("Normalize(%v) = %v, want degenerate", v, got)
		}
		if got != NULL {
			t.Errorf("Normalize(%v) = %v, want null vector", v, got)
		}
		if !got.IsFinite() {
			t.Errorf("Normalize(%v) is not finite", v)
		}
	}
}

func TestSwapHandedness(t *testing.T) {
	v := Vec3{1, 2, 3}
	got := v.SwapHandedness()
	if got != (Vec3{1, 3, 2}) {
		t.Errorf("SwapHandedness(%v) = %v", v, got)
	}
	vs := []Vec3{{-0.5, 7, 1e20}, {math.MaxFloat32, -0, 3}, NULL}
	for _, v := range vs {
		if back := v.SwapHandedness().SwapHandedness(); back != v {
			t.Errorf("SwapHandedness twice of %v = %v", v, back)
		}
	}
}

func TestDot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}
	if got := Dot(a, b); got != 12 {
		t.Errorf("Dot(%v,%v) = %v, want 12", a, b, got)
	}
}
