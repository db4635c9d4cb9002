// Package ioutils provides file system utilities for the generator.
//
// All functions that accept a context.Context respect cancellation
// between file system calls.
package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindPlaylists walks root recursively and returns every file whose name
// ends with ext, compared case-insensitively.
//
// Returned paths are absolute, use forward slashes (backslashes are
// replaced, so Windows paths are usable in the generated script) and are
// sorted lexicographically so repeated runs see the same order.
//
// An empty result is not an error; a missing or unreadable root is.
//
// Example:
//
//	paths, err := FindPlaylists(ctx, "D:/Music/playlists", ".m3u")
//	// ["D:/Music/playlists/Jazz.m3u", "D:/Music/playlists/rock/Rock.M3U"]
func FindPlaylists(ctx context.Context, root, ext string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	ext = strings.ToLower(ext)

	var paths []string
	err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ext) {
			return nil
		}

		paths = append(paths, strings.ReplaceAll(path, `\`, "/"))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// WriteFile writes data to a file, creating it and its parent directory
// if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Parameters:
//   - ctx: Context for cancellation, checked before touching the disk
//   - path: File path to write to
//   - data: Bytes to write
//
// Example:
//
//	err := WriteFile(ctx, "radio.liq", []byte(script))
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
