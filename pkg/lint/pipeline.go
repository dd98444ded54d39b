package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/fix"
	"github.com/yaklabco/kotlint/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates a parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")

	// ErrCancelled indicates processing stopped because the context ended.
	ErrCancelled = errors.New("processing cancelled")
)

// PipelineResult contains the result of processing a single file through the safety pipeline.
type PipelineResult struct {
	// FileResult contains the engine's violations and output.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing (nil for in-memory content).
	OriginalInfo *fsutil.FileInfo

	// Modified is true if format mode changed the content.
	Modified bool

	// ModifiedContent is the formatted content (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode (nil if not in dry-run).
	Diff *fix.Diff

	// Skipped is true if the file was skipped (e.g., due to concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Written is true if the file was written to disk.
	Written bool
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		return "formatted"
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.FileResult != nil && pr.HasIssues() {
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Mode selects lint or format.
	Mode Mode

	// DryRun generates diffs without writing files.
	DryRun bool

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// ReParseAfterFix re-parses the formatted content before writing it.
	ReParseAfterFix bool
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Mode:                ModeLint,
		StrictRaceDetection: true,
		ReParseAfterFix:     true,
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Format {
		opts.Mode = ModeFormat
	}
	opts.DryRun = cfg.DryRun
	return opts
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Engine is the engine used for parsing and rule execution.
	Engine *Engine

	// Rules is the resolved, ordered rule set.
	Rules *RuleSet
}

// NewPipeline creates a new safety pipeline. It resolves and orders the
// rules once, so ordering errors surface before any file is read.
func NewPipeline(engine *Engine, cfg *config.Config) (*Pipeline, error) {
	rules, err := ResolveRules(engine.Registry, cfg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{Engine: engine, Rules: rules}, nil
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Run the engine (one pass in lint mode, fix-point loop in format mode).
//  3. Optionally re-parse the formatted output.
//  4. Generate diff (if dry-run mode).
//  5. Check for concurrent modifications.
//  6. Write the formatted content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	// Step 1: Read and hash the original file.
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	// Steps 2-4.
	result, err := p.ProcessContent(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info
	if !result.Modified || opts.DryRun || result.Skipped {
		return result, nil
	}

	// Step 5: Check for concurrent modifications before writing.
	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, err
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	// Step 6: Write the formatted content atomically.
	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent processes in-memory content without file I/O.
// This is used for stdin and for testing.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	fileResult, err := p.Engine.Process(ctx, p.Rules, File{Path: path, Content: content}, cfg, opts.Mode)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{
		FileResult: fileResult,
		Path:       path,
	}
	if opts.Mode != ModeFormat || !fileResult.Changed {
		return result, nil
	}
	result.Modified = true
	result.ModifiedContent = fileResult.Output

	if opts.ReParseAfterFix {
		if _, err := p.Engine.Parser.Parse(ctx, path, fileResult.Output); err != nil {
			result.Skipped = true
			result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
			result.Modified = false
			result.ModifiedContent = nil
			return result, nil
		}
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, content, fileResult.Output)
	}

	return result, nil
}

// checkModified checks if a file has been modified since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	mode := fsutil.CheckQuick
	if strict {
		mode = fsutil.CheckContent
	}

	modified, err := fsutil.CheckModified(ctx, info, mode)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure) ||
		errors.Is(err, ErrCancelled)
}
