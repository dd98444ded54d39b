package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/yaklabco/kotlint/pkg/runner"
)

// writeFiles creates the named files under dir with a trivial Kotlin body.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("val a = 1\n"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// relative strips dir from each discovered path.
func relative(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func discover(t *testing.T, opts runner.Options) []string {
	t.Helper()
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	return relative(t, opts.WorkingDir, files)
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "Main.kt")

	got := discover(t, runner.Options{Paths: []string{"Main.kt"}, WorkingDir: dir})
	if !reflect.DeepEqual(got, []string{"Main.kt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir,
		"src/main/kotlin/App.kt",
		"src/main/kotlin/util/Strings.kt",
		"build.gradle.kts",
		"src/main/java/Legacy.java",
		"README.md",
		"build/generated/Gen.kt",
		".gradle/cache/Cached.kt",
	)

	got := discover(t, runner.Options{Paths: []string{"."}, WorkingDir: dir})
	want := []string{
		"build.gradle.kts",
		"src/main/kotlin/App.kt",
		"src/main/kotlin/util/Strings.kt",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_DefaultsToCurrentDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "A.kt")

	got := discover(t, runner.Options{WorkingDir: dir})
	if len(got) != 1 {
		t.Fatalf("expected 1 file, got %v", got)
	}
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "A.kt", "B.kts", "C.ktm")

	got := discover(t, runner.Options{WorkingDir: dir, Extensions: []string{".KTM"}})
	if !reflect.DeepEqual(got, []string{"C.ktm"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir,
		"src/App.kt",
		"src/AppTest.kt",
		"src/generated/Gen.kt",
		"docs/Sample.kt",
	)

	got := discover(t, runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"**/generated/**", "*Test.kt", "docs/**"},
	})
	if !reflect.DeepEqual(got, []string{"src/App.kt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_IncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "src/main/A.kt", "src/test/B.kt", "script.kts")

	got := discover(t, runner.Options{
		WorkingDir:   dir,
		IncludeGlobs: []string{"src/main/**"},
	})
	if !reflect.DeepEqual(got, []string{"src/main/A.kt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_GlobArguments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "src/a/A.kt", "src/b/B.kt", "src/b/C.kts", "other/D.kt")

	got := discover(t, runner.Options{
		WorkingDir: dir,
		Paths:      []string{"src/**/*.kt", "!**/B.kt"},
	})
	if !reflect.DeepEqual(got, []string{"src/a/A.kt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"src/[*.kt"},
	})
	if err == nil {
		t.Fatal("expected an error for a malformed glob")
	}
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "A.kt", ".Hidden.kt", ".idea/B.kt")

	got := discover(t, runner.Options{WorkingDir: dir})
	if !reflect.DeepEqual(got, []string{"A.kt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_DeterministicOrdering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "z/Z.kt", "a/A.kt", "m/M.kt", "B.kt")

	first := discover(t, runner.Options{WorkingDir: dir})
	if !sort.StringsAreSorted(first) {
		t.Errorf("not sorted: %v", first)
	}
	for range 5 {
		again := discover(t, runner.Options{WorkingDir: dir})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("order changed: %v vs %v", first, again)
		}
	}
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "src/A.kt")

	got := discover(t, runner.Options{
		WorkingDir: dir,
		Paths:      []string{".", "src", "src/A.kt", "src/*.kt"},
	})
	if !reflect.DeepEqual(got, []string{"src/A.kt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	if err == nil {
		t.Fatal("expected error for non-existent path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "A.kt", "B.kt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDiscover_Scripts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "A.kt")
	if err := os.WriteFile(filepath.Join(dir, "deploy"), []byte("#!/usr/bin/env kotlin\nprintln(1)\n"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "run"), []byte("#!/bin/sh\necho hi\n"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	without := discover(t, runner.Options{WorkingDir: dir})
	if !reflect.DeepEqual(without, []string{"A.kt"}) {
		t.Errorf("without detection got %v", without)
	}

	with := discover(t, runner.Options{WorkingDir: dir, DetectScripts: true})
	if !reflect.DeepEqual(with, []string{"A.kt", "deploy"}) {
		t.Errorf("with detection got %v", with)
	}

	explicit := discover(t, runner.Options{WorkingDir: dir, Paths: []string{"deploy", "run"}})
	if !reflect.DeepEqual(explicit, []string{"deploy"}) {
		t.Errorf("explicit paths got %v", explicit)
	}
}

func TestDiscover_SkipThirdParty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "src/A.kt", "vendor/lib/B.kt")

	all := discover(t, runner.Options{WorkingDir: dir})
	if len(all) != 2 {
		t.Errorf("expected vendored file without SkipThirdParty, got %v", all)
	}

	got := discover(t, runner.Options{WorkingDir: dir, SkipThirdParty: true})
	if !reflect.DeepEqual(got, []string{"src/A.kt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "Real.kt")
	if err := os.Symlink(filepath.Join(dir, "Real.kt"), filepath.Join(dir, "Link.kt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := discover(t, runner.Options{WorkingDir: dir})
	if !reflect.DeepEqual(got, []string{"Link.kt", "Real.kt"}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "real/Doc.kt")

	external := t.TempDir()
	writeFiles(t, external, "External.kt")
	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "Doc.kt" {
		t.Errorf("expected only Doc.kt without FollowSymlinks, got %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files with FollowSymlinks, got %v", files)
	}
}
