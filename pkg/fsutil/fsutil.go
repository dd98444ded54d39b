// Package fsutil reads and writes the Kotlin sources kotlint works on.
// Reads capture a snapshot used to detect edits made while a file was
// being formatted; writes go through a temp file and a rename.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// MaxStdinSize bounds how much source ReadStdin accepts (32 MiB).
const MaxStdinSize = 32 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the input exceeds MaxStdinSize.
	ErrTooLarge = errors.New("input too large")

	// ErrExists indicates WriteNew found a file already in place.
	ErrExists = errors.New("file already exists")
)

// CheckMode selects how thoroughly CheckModified compares a file against
// its snapshot.
type CheckMode int

const (
	// CheckQuick compares modification time and size only.
	CheckQuick CheckMode = iota

	// CheckContent also re-reads the file and compares content hashes.
	CheckContent
)

// FileInfo is a snapshot of a file taken when it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the file content.
	Hash [32]byte
}

// ReadFile reads a file and returns its content with a snapshot for
// CheckModified.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}
	return content, info, nil
}

// ReadStdin reads source text piped to the CLI. It fails with ErrTooLarge
// rather than buffering unbounded input.
func ReadStdin(ctx context.Context, r io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	content, err := io.ReadAll(io.LimitReader(r, MaxStdinSize+1))
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(content) > MaxStdinSize {
		return nil, fmt.Errorf("%w: stdin exceeds %d bytes", ErrTooLarge, MaxStdinSize)
	}
	return content, nil
}

// CheckModified reports whether the file changed since info was taken.
// A deleted file counts as modified.
func CheckModified(ctx context.Context, info *FileInfo, mode CheckMode) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}
	if mode == CheckQuick {
		return false, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
