package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/kotlint/pkg/langdetect"
)

// Discover finds Kotlin files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// A path argument may be a file, a directory or a glob such as
// "src/**/*.kt". Arguments starting with "!" are exclusion globs.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()
	paths, negated := splitNegations(opts.effectivePaths())
	opts.ExcludeGlobs = append(append([]string(nil), opts.ExcludeGlobs...), negated...)
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			if isGlob(inputPath) {
				matches, globErr := expandGlob(ctx, workDir, inputPath, opts)
				if globErr != nil {
					return nil, globErr
				}
				for _, m := range matches {
					add(m)
				}
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			discovered, err := walkDirectory(ctx, absPath, workDir, extensions, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				add(f)
			}
		} else if matchesFile(absPath, workDir, extensions, opts) || explicitScript(absPath, opts) {
			add(absPath)
		}
	}

	sort.Strings(files)

	return files, nil
}

// splitNegations separates "!pattern" arguments from the paths to visit.
func splitNegations(paths []string) ([]string, []string) {
	var keep, negated []string
	for _, p := range paths {
		if pattern, ok := strings.CutPrefix(p, "!"); ok {
			negated = append(negated, pattern)
			continue
		}
		keep = append(keep, p)
	}
	return keep, negated
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// expandGlob resolves a glob argument relative to workDir.
func expandGlob(ctx context.Context, workDir, pattern string, opts Options) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, doublestar.ErrBadPattern)
	}

	base, rel := doublestar.SplitPattern(pattern)
	root := base
	if !filepath.IsAbs(root) {
		root = filepath.Join(workDir, root)
	}

	var files []string
	err := doublestar.GlobWalk(os.DirFS(root), rel, func(path string, entry fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		abs := filepath.Join(root, filepath.FromSlash(path))
		relPath, relErr := filepath.Rel(workDir, abs)
		if relErr != nil {
			relPath = abs
		}
		if !matchesExcludePattern(relPath, opts.ExcludeGlobs) {
			files = append(files, abs)
		}
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expand glob %s: %w", pattern, err)
	}
	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks a directory and returns matching Kotlin files.
func walkDirectory(
	ctx context.Context,
	root string,
	workDir string,
	extensions []string,
	opts Options,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			if path != root && (strings.HasPrefix(entry.Name(), ".") || isBuildOutput(entry.Name())) {
				return filepath.SkipDir
			}
			if matchesExcludePattern(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			if opts.SkipThirdParty && path != root && langdetect.IsThirdParty(relPath+"/", nil) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the target, not the link: WalkDir uses Lstat on its root.
				subFiles, err := walkDirectory(ctx, realPath, workDir, extensions, opts)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if matchesFile(path, workDir, extensions, opts) || (opts.DetectScripts && explicitScript(path, opts)) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// isBuildOutput names directories Gradle and Maven write generated code to.
func isBuildOutput(name string) bool {
	return name == "build" || name == "target" || name == "out"
}

// explicitScript reports whether an extensionless file is a Kotlin script
// according to its shebang.
func explicitScript(path string, opts Options) bool {
	if filepath.Ext(path) != "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 256)
	n, _ := f.Read(head)
	if langdetect.Detect(path, head[:n]) != langdetect.KotlinScript {
		return false
	}
	return !matchesExcludePattern(path, opts.ExcludeGlobs)
}

// matchesFile checks if a file path matches the inclusion criteria.
func matchesFile(path, workDir string, extensions []string, opts Options) bool {
	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		relPath = path
	}

	if !hasMatchingExtension(path, extensions) {
		return false
	}

	if matchesExcludePattern(relPath, opts.ExcludeGlobs) {
		return false
	}

	if opts.SkipThirdParty && langdetect.IsThirdParty(relPath, nil) {
		return false
	}

	if len(opts.IncludeGlobs) > 0 && !matchesIncludePattern(relPath, opts.IncludeGlobs) {
		return false
	}

	return true
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchesExcludePattern checks if the path matches any exclude pattern.
func matchesExcludePattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchesIncludePattern checks if the path matches any include pattern.
func matchesIncludePattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated path against a doublestar pattern.
// A pattern without a separator also matches the base name, and a pattern
// naming a directory ("build/**") matches the directory itself.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok && dir == path {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, err := doublestar.Match(pattern, filepath.Base(path))
		return err == nil && ok
	}
	return false
}
