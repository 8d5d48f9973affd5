// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"bsp2mesh/bsp"
	"bsp2mesh/commandline"
	"bsp2mesh/export"
	"bsp2mesh/mesh"
	"bsp2mesh/pack"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <file.bsp | archive.pak>\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

// job is everything a conversion needs besides the input path.
type job struct {
	output     string
	format     string
	pakFile    string
	skip       []string
	degenerate mesh.DegeneratePolicy
	workers    int
	versions   []int32
}

func jobFromFlags() job {
	j := job{
		output:     commandline.Output(),
		format:     commandline.Format(),
		pakFile:    commandline.PakFile(),
		skip:       commandline.Skip(),
		degenerate: commandline.Degenerate(),
		workers:    commandline.Workers(),
		versions:   []int32{bsp.Version},
	}
	if commandline.Version29() {
		j.versions = append(j.versions, 29)
	}
	return j
}

// load reads the bsp either directly or as a member of a pak archive.
func load(input, pakFile string, opts ...bsp.Option) (*bsp.File, string, error) {
	if !strings.EqualFold(filepath.Ext(input), ".pak") {
		f, err := bsp.ReadFile(input, opts...)
		return f, input, err
	}
	if pakFile == "" {
		return nil, "", errors.Errorf("%s is a pak archive, select a map with -pakfile", input)
	}
	p, err := pack.NewPackReader(input)
	if err != nil {
		return nil, "", errors.Wrap(bsp.ErrIO, err.Error())
	}
	defer p.Close()
	b, err := p.ReadFile(pakFile)
	if err != nil {
		return nil, "", errors.Wrap(bsp.ErrIO, err.Error())
	}
	f, err := bsp.Load(b, append([]bsp.Option{bsp.WithName(pakFile)}, opts...)...)
	return f, pakFile, err
}

func outputName(j job, source string, sink export.Sink) string {
	if j.output != "" {
		return j.output
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + sink.Extension()
}

func convert(ctx context.Context, input string, j job) (string, error) {
	sink, err := export.ForFormat(j.format)
	if err != nil {
		return "", err
	}
	f, source, err := load(input, j.pakFile, bsp.WithVersions(j.versions...))
	if err != nil {
		return "", err
	}
	refs, err := bsp.ResolveModels(bsp.ParseEntities([]byte(f.EntityText())), f.NumModels())
	if err != nil {
		return "", err
	}
	a := mesh.Assembler{
		Skip:       mesh.SkipTextures(j.skip...),
		Degenerate: j.degenerate,
	}
	meshes, err := a.BuildAll(ctx, f, refs, j.workers)
	if err != nil {
		return "", err
	}
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	scene, err := export.NewScene(name, refs, meshes)
	if err != nil {
		return "", err
	}

	out := outputName(j, source, sink)
	w, err := os.Create(out)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if err := sink.Write(w, scene); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", errors.WithStack(err)
	}
	slog.Info("converted", "input", source, "output", out, "models", len(meshes), "scene", scene.ID)
	return out, nil
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if commandline.Verbose() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := convert(ctx, flag.Arg(0), jobFromFlags()); err != nil {
		slog.Error("conversion failed", "err", err)
		if commandline.Verbose() {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
