// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bsp2mesh/bsp"
	"bsp2mesh/bsp/bsptest"
	"bsp2mesh/export"
	"bsp2mesh/mesh"
)

func testJob(dir, format string) job {
	return job{
		output:   filepath.Join(dir, "out."+format),
		format:   format,
		skip:     []string{mesh.SkyTexture},
		workers:  2,
		versions: []int32{bsp.Version},
	}
}

func writeQuad(t *testing.T) (string, []byte) {
	t.Helper()
	data := bsptest.Quad().Bytes()
	name := filepath.Join(t.TempDir(), "quad.bsp")
	if err := os.WriteFile(name, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return name, data
}

// writePak stores one member in a minimal pak archive.
func writePak(t *testing.T, member string, data []byte) string {
	t.Helper()
	var b bytes.Buffer
	b.WriteString("PACK")
	binary.Write(&b, binary.LittleEndian, []int32{int32(12 + len(data)), 64})
	b.Write(data)
	var name [56]byte
	copy(name[:], member)
	b.Write(name[:])
	binary.Write(&b, binary.LittleEndian, []int32{12, int32(len(data))})
	p := filepath.Join(t.TempDir(), "pak0.pak")
	if err := os.WriteFile(p, b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestConvertOBJ(t *testing.T) {
	input, _ := writeQuad(t)
	out, err := convert(context.Background(), input, testJob(t.TempDir(), "obj"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{"g worldspawn\n", "o worldspawn\n", "f 4/4/4 3/3/3 2/2/2 1/1/1\n"} {
		if !strings.Contains(s, want) {
			t.Errorf("output lacks %q:\n%s", want, s)
		}
	}
}

func TestConvertProtoFromPak(t *testing.T) {
	_, data := writeQuad(t)
	pak := writePak(t, "maps/quad.bsp", data)
	j := testJob(t.TempDir(), "pb")
	j.pakFile = "maps/quad.bsp"
	out, err := convert(context.Background(), pak, j)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	s, err := export.ReadProto(f)
	if err != nil {
		t.Fatalf("ReadProto: %v", err)
	}
	if s.Name != "quad" {
		t.Errorf("scene name = %q", s.Name)
	}
	if len(s.Groups) != 3 || len(s.Groups[0].Meshes) != 1 {
		t.Fatalf("groups = %+v", s.Groups)
	}
	if n := s.Groups[0].Meshes[0].NumControlPoints(); n != 4 {
		t.Errorf("got %d control points, want 4", n)
	}
}

func TestConvertErrors(t *testing.T) {
	input, data := writeQuad(t)
	dir := t.TempDir()

	if _, err := convert(context.Background(), filepath.Join(dir, "missing.bsp"), testJob(dir, "obj")); !errors.Is(err, bsp.ErrIO) {
		t.Errorf("missing input: got %v, want ErrIO", err)
	}
	if _, err := convert(context.Background(), input, testJob(dir, "fbx")); err == nil {
		t.Error("unknown format: expected an error")
	}
	pak := writePak(t, "maps/quad.bsp", data)
	if _, err := convert(context.Background(), pak, testJob(dir, "obj")); err == nil {
		t.Error("pak without -pakfile: expected an error")
	}
	j := testJob(dir, "obj")
	j.pakFile = "maps/quad.bsp"
	if _, err := convert(context.Background(), filepath.Join(dir, "missing.pak"), j); !errors.Is(err, bsp.ErrIO) {
		t.Errorf("missing pak: got %v, want ErrIO", err)
	}
	notPak := filepath.Join(dir, "quad.pak")
	if err := os.WriteFile(notPak, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := convert(context.Background(), notPak, j); !errors.Is(err, bsp.ErrIO) {
		t.Errorf("unreadable pak: got %v, want ErrIO", err)
	}
	j.pakFile = "maps/other.bsp"
	if _, err := convert(context.Background(), pak, j); !errors.Is(err, bsp.ErrIO) {
		t.Errorf("missing pak member: got %v, want ErrIO", err)
	}
}

func TestOutputName(t *testing.T) {
	j := job{}
	if got := outputName(j, "maps/e1m1.bsp", export.OBJ{}); got != "e1m1.obj" {
		t.Errorf("outputName = %q", got)
	}
	j.output = "x.pb"
	if got := outputName(j, "maps/e1m1.bsp", export.Proto{}); got != "x.pb" {
		t.Errorf("outputName = %q", got)
	}
}
