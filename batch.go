package adaptive

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job is one independent filter run.
type Job struct {
	// Name identifies the job in results, e.g. a file name.
	Name string

	D, X, Clean []float64
}

// JobResult pairs a Job with its outcome. Exactly one of Result and Err is set.
type JobResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunBatch filters every job with one Filter built from cfg, using up to
// workers goroutines (runtime.NumCPU when workers <= 0). Results are
// returned in job order.
//
// A failing job records its error and does not stop the others. The
// returned error is non-nil only for an invalid configuration or when ctx
// is cancelled; jobs not yet started at cancellation get ctx.Err().
func RunBatch(ctx context.Context, cfg *Config, jobs []Job, workers int) ([]JobResult, error) {
	f, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]JobResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, job := range jobs {
		results[i].Name = job.Name

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			res, err := f.Filter(job.D, job.X, job.Clean)
			if err != nil {
				results[i].Err = fmt.Errorf("job %q: %w", job.Name, err)
				return nil
			}
			results[i].Result = res
			return nil
		})
	}

	_ = g.Wait()

	return results, ctx.Err()
}
