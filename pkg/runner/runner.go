package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are reported in discovery order regardless of completion order.
// A failure in one file is recorded on its FileOutcome and never stops
// the others.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			outcome := FileOutcome{Path: path}
			pr, err := r.Pipeline.ProcessFile(groupCtx, path, opts.Config, pipelineOpts)
			if err != nil {
				outcome.Error = err
			} else {
				outcome.Result = pr
			}
			outcomes[i] = outcome
			done[i] = true
			return nil
		})
	}

	// Workers never return errors, so Wait only synchronises.
	_ = group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// RunContent processes a single in-memory buffer, such as stdin, and wraps
// it in a Result so it reports like a file run. Format mode returns the
// formatted text in the outcome instead of writing anywhere.
func (r *Runner) RunContent(ctx context.Context, path string, content []byte, cfg *config.Config) (*Result, error) {
	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = 1

	pipelineOpts := lint.PipelineOptionsFromConfig(cfg)
	outcome := FileOutcome{Path: path}
	pr, err := r.Pipeline.ProcessContent(ctx, path, content, cfg, pipelineOpts)
	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("run cancelled: %w", ctx.Err())
		}
		outcome.Error = err
	} else {
		outcome.Result = pr
	}
	result.accumulate(outcome)

	return result, nil
}
