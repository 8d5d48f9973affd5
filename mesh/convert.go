// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"bsp2mesh/bsp"
)

// BuildAll builds one mesh per model reference on up to workers goroutines
// (NumCPU if workers < 1). The result keeps the order of refs. The first
// failure stops the remaining work and is returned, as is a cancelled ctx.
func (a *Assembler) BuildAll(ctx context.Context, f *bsp.File, refs []bsp.ModelRef, workers int) ([]*Mesh, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(refs))

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	meshes := make([]*Mesh, len(refs))
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				m, err := a.Build(f, refs[i].Model)
				if err != nil {
					cancel(errors.WithMessage(err, refs[i].Name))
					continue
				}
				m.Name = refs[i].Name
				meshes[i] = m
			}
		}()
	}

dispatch:
	for i := range refs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := context.Cause(ctx); err != nil {
		return nil, err
	}
	return meshes, nil
}
