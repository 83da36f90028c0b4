package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ParallelConfig holds configuration for batch processing.
type ParallelConfig struct {
	MaxWorkers       int                          // Number of parallel workers (0 = runtime.NumCPU())
	ProgressCallback func(done, total int)        // Optional progress reporting
	ErrorHandler     func(path string, err error) // Optional per-file error handler
}

// DefaultParallelConfig returns sensible defaults for batch processing.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{MaxWorkers: runtime.NumCPU()}
}

// FileResult pairs a processed path with its outcome. Exactly one of
// Result and Err is set.
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

type fileJob struct {
	index int
	path  string
}

type fileOutcome struct {
	index  int
	result *Result
	err    error
}

// ProcessFilesParallel processes multiple documents using a worker pool.
// Results come back in input order; per-file failures are recorded in the
// corresponding FileResult and the first one is also returned as the
// function error.
func (p *Pipeline) ProcessFilesParallel(ctx context.Context, paths []string) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input files provided")
	}

	config := p.cfg.Parallel
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = runtime.NumCPU()
	}
	if config.MaxWorkers > len(paths) {
		config.MaxWorkers = len(paths)
	}

	jobs := make(chan fileJob, len(paths))
	outcomes := make(chan fileOutcome, len(paths))

	var wg sync.WaitGroup
	for range config.MaxWorkers {
		wg.Add(1)
		go p.fileWorker(ctx, paths, jobs, outcomes, &wg)
	}

	go func() {
		defer close(jobs)
		for i, path := range paths {
			select {
			case jobs <- fileJob{index: i, path: path}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	ordered := make([]FileResult, len(paths))
	for i, path := range paths {
		ordered[i] = FileResult{Path: path, Err: ctx.Err()}
	}

	done := 0
	for o := range outcomes {
		ordered[o.index].Result = o.result
		ordered[o.index].Err = o.err
		done++
		if config.ProgressCallback != nil {
			config.ProgressCallback(done, len(paths))
		}
	}

	if err := ctx.Err(); err != nil {
		return ordered, err
	}

	var firstError error
	for _, r := range ordered {
		if r.Err == nil {
			continue
		}
		if firstError == nil {
			firstError = fmt.Errorf("%s: %w", r.Path, r.Err)
		}
		if config.ErrorHandler != nil {
			config.ErrorHandler(r.Path, r.Err)
		}
	}
	return ordered, firstError
}

func (p *Pipeline) fileWorker(
	ctx context.Context,
	paths []string,
	jobs <-chan fileJob,
	outcomes chan<- fileOutcome,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}
			result, err := p.ProcessFile(ctx, paths[job.index])
			select {
			case outcomes <- fileOutcome{index: job.index, result: result, err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
