// Package inspect decodes several containers at once.
package inspect

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/danmuck/gbowinfo/internal/gbow"
)

// Result pairs a path with its decode outcome. Report may be set alongside
// Err when the file was truncated.
type Result struct {
	Path   string
	Report *gbow.DecodeReport
	Err    error
}

// Run decodes paths with at most workers decodes in flight. Results keep the
// order of paths. Paths not started before ctx is done carry ctx.Err().
func Run(ctx context.Context, dec *gbow.Decoder, paths []string, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		results[i].Path = path
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Report, results[i].Err = dec.Decode(path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Failed reports whether any result hit a hard failure.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
