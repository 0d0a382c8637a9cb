// Package pipeline wires the LineReader and ChunkAssembler together and
// fans the resulting per-file chunk sets out across a worker pool for
// rendering.
//
// Grounded on original_source/src/main.rs's `rayon::par_bridge()` use:
// chunk assembly is a strictly sequential scan over the input (line order
// within a file matters for merging context windows), but once a File is
// complete, rendering it is independent of every other file, so that step
// is safe to parallelize. The producer here runs on its own goroutine and
// feeds completed Files down a channel; a fixed pool of worker goroutines
// drain that channel and call Printer.Print concurrently, started with
// sync.WaitGroup.Go for plain fan-out.
package pipeline

import (
	"io"
	"runtime"
	"sync"

	"github.com/jpl-au/hgrep/internal/chunkset"
	"github.com/jpl-au/hgrep/internal/printer"
	"github.com/jpl-au/hgrep/internal/reader"
)

// Feed drives r through asm, emitting each completed File on the returned
// channel (closed when the input is exhausted) and reporting the first
// fatal I/O error, if any, on the error channel. Malformed lines are
// non-fatal: onParseError is invoked for each and scanning continues.
func Feed(r *reader.Reader, asm *chunkset.Assembler, onParseError func(*reader.ParseError)) (<-chan *chunkset.File, <-chan error) {
	files := make(chan *chunkset.File)
	errc := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errc)

		for {
			line, err := r.Next(onParseError)
			if err == io.EOF {
				break
			}
			if err != nil {
				errc <- err
				return
			}

			rec := chunkset.Record{
				Path:       line.Path,
				LineNumber: line.LineNumber,
				IsMatch:    line.Kind == reader.Match,
				Payload:    line.Payload,
			}
			if f := asm.Push(rec); f != nil {
				files <- f
			}
		}

		if f := asm.Flush(); f != nil {
			files <- f
		}
	}()

	return files, errc
}

// Run drains files across workers goroutines (GOMAXPROCS when <= 0),
// calling p.Print for each. It reports whether at least one file with a
// match was printed and the first error encountered, mirroring the original's
// `try_reduce(|| false, |a, b| Ok(a || b))` fold over per-file results.
func Run(files <-chan *chunkset.File, p printer.Printer, workers int) (bool, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	var found bool
	var firstErr error

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Go(func() {
			for file := range files {
				err := p.Print(file)

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else if len(file.LineMatches) > 0 {
					found = true
				}
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	return found, firstErr
}
