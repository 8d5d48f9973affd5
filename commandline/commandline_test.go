// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"io"
	"testing"

	"bsp2mesh/mesh"
)

func testFlags(t *testing.T) *flag.FlagSet {
	t.Helper()
	saved := struct {
		output, pakFile    string
		format             choice
		skip               stringList
		policy             degeneratePolicy
		workers            int
		version29, verbose bool
	}{output, pakFile, format, append(stringList(nil), skip...), policy, workers, version29, verbose}
	t.Cleanup(func() {
		output, pakFile = saved.output, saved.pakFile
		format, skip, policy = saved.format, saved.skip, saved.policy
		workers, version29, verbose = saved.workers, saved.version29, saved.verbose
	})
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	define(&flags)
	return &flags
}

func TestDefaults(t *testing.T) {
	flags := testFlags(t)
	if err := flags.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if Format() != "obj" {
		t.Errorf("Format() = %q", Format())
	}
	if s := Skip(); len(s) != 1 || s[0] != mesh.SkyTexture {
		t.Errorf("Skip() = %v", s)
	}
	if Degenerate() != mesh.DegenerateReject {
		t.Errorf("Degenerate() = %v", Degenerate())
	}
	if Workers() != 0 || Version29() || Verbose() || Output() != "" || PakFile() != "" {
		t.Error("unexpected non zero default")
	}
}

func TestParse(t *testing.T) {
	flags := testFlags(t)
	args := []string{
		"-o", "out.pb", "-format", "pb", "-pakfile", "maps/e1m1.bsp",
		"-skip", "sky, trigger,,clip", "-degenerate", "flag",
		"-workers", "3", "-version29", "-v", "e1m1.pak",
	}
	if err := flags.Parse(args); err != nil {
		t.Fatal(err)
	}
	if Output() != "out.pb" || Format() != "pb" || PakFile() != "maps/e1m1.bsp" {
		t.Errorf("got %q %q %q", Output(), Format(), PakFile())
	}
	want := []string{"sky", "trigger", "clip"}
	got := Skip()
	if len(got) != len(want) {
		t.Fatalf("Skip() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Skip()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if Degenerate() != mesh.DegenerateFlag {
		t.Errorf("Degenerate() = %v", Degenerate())
	}
	if Workers() != 3 || !Version29() || !Verbose() {
		t.Errorf("Workers() = %d, Version29() = %v, Verbose() = %v", Workers(), Version29(), Verbose())
	}
	if flags.Arg(0) != "e1m1.pak" {
		t.Errorf("Arg(0) = %q", flags.Arg(0))
	}
}

func TestInvalidValues(t *testing.T) {
	for _, args := range [][]string{
		{"-format", "fbx"},
		{"-degenerate", "ignore"},
	} {
		flags := testFlags(t)
		if err := flags.Parse(args); err == nil {
			t.Errorf("Parse(%v) succeeded", args)
		}
	}
}

func TestEmptySkip(t *testing.T) {
	flags := testFlags(t)
	if err := flags.Parse([]string{"-skip", ""}); err != nil {
		t.Fatal(err)
	}
	if s := Skip(); len(s) != 0 {
		t.Errorf("Skip() = %v, want none", s)
	}
}
