// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strings"

	"bsp2mesh/mesh"
)

var (
	output    string
	format    = choice{value: "obj", allowed: []string{"obj", "pb"}}
	pakFile   string
	skip      = stringList{mesh.SkyTexture}
	policy    = degeneratePolicy{mesh.DegenerateReject}
	workers   int
	version29 bool
	verbose   bool
)

// stringList is a comma separated list. Setting it replaces the default.
type stringList []string

func (l *stringList) Set(s string) error {
	*l = nil
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*l = append(*l, v)
		}
	}
	return nil
}

func (l *stringList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

type choice struct {
	value   string
	allowed []string
}

func (c *choice) Set(s string) error {
	for _, a := range c.allowed {
		if s == a {
			c.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(c.allowed, "|"))
}

func (c *choice) String() string {
	return c.value
}

type degeneratePolicy struct {
	p mesh.DegeneratePolicy
}

func (d *degeneratePolicy) Set(s string) error {
	p, err := mesh.ParseDegeneratePolicy(s)
	if err != nil {
		return err
	}
	d.p = p
	return nil
}

func (d *degeneratePolicy) String() string {
	return d.p.String()
}

func define(fs *flag.FlagSet) {
	fs.StringVar(&output, "o", "", "output file, defaults to the input name with the format's extension")
	fs.Var(&format, "format", "output format: obj|pb")
	fs.StringVar(&pakFile, "pakfile", "", "bsp member to read when the input is a pak archive")
	fs.Var(&skip, "skip", "comma separated texture names whose faces are dropped")
	fs.Var(&policy, "degenerate", "degenerate edge policy: reject|flag")
	fs.IntVar(&workers, "workers", 0, "models converted in parallel, 0 is one per cpu")
	fs.BoolVar(&version29, "version29", false, "also accept Quake version 29 files")
	fs.BoolVar(&verbose, "v", false, "debug logging")
}

func init() {
	define(flag.CommandLine)
}

func Output() string {
	return output
}

func Format() string {
	return format.value
}

func PakFile() string {
	return pakFile
}

func Skip() []string {
	return append([]string(nil), skip...)
}

func Degenerate() mesh.DegeneratePolicy {
	return policy.p
}

func Workers() int {
	return workers
}

func Version29() bool {
	return version29
}

func Verbose() bool {
	return verbose
}
