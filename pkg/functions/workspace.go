// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package functions

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileFinder enumerates files beneath a directory root.
type FileFinder interface {
	// FindFiles returns the regular files under root whose path matches pattern,
	// in discovery order. Patterns use doublestar syntax with `/` separators
	// regardless of platform; returned paths use native separators.
	FindFiles(ctx context.Context, root string, pattern string) ([]string, error)
}

// StatProber reports file metadata for a single path.
type StatProber interface {
	Stat(name string) (os.FileInfo, error)
}

// OsWorkspace probes the real file system. It implements both FileFinder and
// StatProber.
type OsWorkspace struct{}

// FindFiles globs for regular files under root. Glob metacharacters in root
// are escaped so the root directory is always matched literally, even when its
// path contains characters like `[` or `*`.
func (OsWorkspace) FindFiles(ctx context.Context, root string, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := GlobEscape(filepath.ToSlash(filepath.Clean(root)))
	return doublestar.FilepathGlob(
		base+"/"+pattern,
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)
}

func (OsWorkspace) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// globSpecials are the characters the glob matcher assigns meaning to.
const globSpecials = `*?[]{}`

// GlobEscape neutralizes glob metacharacters in path by wrapping each in a
// single-character class, so the path matches itself literally when embedded
// in a larger pattern. Character classes are used instead of backslash escapes
// because backslash is a path separator on Windows.
func GlobEscape(path string) string {
	if !strings.ContainsAny(path, globSpecials) {
		return path
	}

	var sb strings.Builder
	sb.Grow(len(path))
	for _, r := range path {
		if strings.ContainsRune(globSpecials, r) {
			sb.WriteByte('[')
			sb.WriteRune(r)
			sb.WriteByte(']')
		} else {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
