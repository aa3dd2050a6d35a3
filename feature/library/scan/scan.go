// Package scan walks a media root folder and yields the video files under it.
//
// It also owns path canonicalization: Normalize maps every spelling of the
// same physical file (case, separators, trailing slashes) to one comparison
// key, and is applied identically to scanned paths and stored catalog
// locations so the diff never sees formatting-only mismatches.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrRootNotFound is returned when the scan root does not exist or is not a
// directory. It is the only fatal scan error; everything below the root
// degrades to warnings.
var ErrRootNotFound = errors.New("root folder not found or not a directory")

// videoExtensions is the fixed allow-list of supported video extensions.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".webm": {},
	".ogg":  {},
	".mov":  {},
	".avi":  {},
}

// Normalize canonicalizes a filesystem path into a comparison key:
// cleaned, forward slashes, no trailing slash, lower-cased.
// It fails only on empty input.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("cannot normalize an empty path")
	}

	key := filepath.ToSlash(filepath.Clean(trimmed))
	if len(key) > 1 {
		key = strings.TrimSuffix(key, "/")
	}
	return strings.ToLower(key), nil
}

// IsVideoFile reports whether the path carries a supported video extension.
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := videoExtensions[ext]
	return ok
}

// File describes one discovered video file. Path is the canonical key.
type File struct {
	Path       string    `json:"path"`
	Directory  string    `json:"directory"`
	SizeBytes  uint64    `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Result is the one-shot outcome of a single scan. A second reconciliation
// requires a fresh scan; results are never cached or reused.
type Result struct {
	Files    []File
	Warnings []string
}

// Scanner walks a root folder for video files.
type Scanner struct{}

// NewScanner creates a filesystem scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan recursively walks root and returns every supported video file with
// its size and modification time.
//
// A missing or non-directory root fails with ErrRootNotFound before any
// traversal. Unreadable entries are recorded as warnings and skipped; a
// single permission-denied subdirectory never aborts the scan. The context
// is checked between entries, so a scan is cancellable but never stops
// mid-file.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	result := &Result{}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipped %s: %v", path, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !IsVideoFile(path) {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipped %s: %v", path, err))
			return nil
		}

		key, err := Normalize(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipped %s: %v", path, err))
			return nil
		}
		directory, _ := Normalize(filepath.Dir(path))

		result.Files = append(result.Files, File{
			Path:       key,
			Directory:  directory,
			SizeBytes:  uint64(fileInfo.Size()),
			ModifiedAt: fileInfo.ModTime(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return result, nil
}
