// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package functions locates Azure Functions projects on disk.
//
// A functions project is recognized by a project file (i.e. *.csproj) whose
// directory contains [HostFileName] as a regular file. Create a [Locator] with
// [NewOsLocator] to probe the real file system, or [NewLocator] to inject
// probes.
package functions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
)

// HostFileName is the marker file whose presence identifies a functions
// project root.
const HostFileName = "host.json"

// projectFileGlob matches the project files recognized as candidates.
const projectFileGlob = "**/*.csproj"

var (
	// ErrNoProject is returned by Locate when no functions project exists under
	// the workspace root. Callers should treat this as a normal negative result
	// (match with [errors.Is]), not as a failure.
	ErrNoProject = errors.New("no Azure Functions project found in the workspace")

	// ErrNoWorkspace is returned when the workspace root does not resolve to an
	// existing directory that encloses the target file.
	ErrNoWorkspace = errors.New("no enclosing workspace")
)

// LocateOptions control a single Locate call. The zero value matches the
// behavior of the Visual Studio Code SQL tooling this CLI descends from.
type LocateOptions struct {
	// StrictMarkerCheck requires host.json beside the project file even when it
	// is the only candidate in the workspace. By default a lone candidate is
	// trusted without a marker check.
	StrictMarkerCheck bool

	// ExcludePatterns drops candidates whose workspace-relative path matches
	// any of the given .dockerignore style patterns.
	ExcludePatterns []string
}

// Locator finds the functions project enclosing a source file. Each call
// re-scans the file system; results are never cached, since stale project
// locations would be a correctness hazard for the caller.
type Locator struct {
	finder FileFinder
	stat   StatProber
}

func NewLocator(finder FileFinder, stat StatProber) *Locator {
	return &Locator{finder: finder, stat: stat}
}

// NewOsLocator returns a Locator probing the real file system.
func NewOsLocator() *Locator {
	ws := OsWorkspace{}
	return NewLocator(ws, ws)
}

// WorkspaceForFile resolves the workspace root that encloses filePath. When
// root is empty, the current working directory is used. The resolved root must
// be an existing directory containing filePath; otherwise an error matching
// [ErrNoWorkspace] is returned.
func (l *Locator) WorkspaceForFile(filePath string, root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get the current directory: %w", err)
		}
		root = wd
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	absFile, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	if err := l.ensureDir(absRoot); err != nil {
		return "", err
	}

	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not under %s: %w", filePath, absRoot, ErrNoWorkspace)
	}

	return absRoot, nil
}

// Locate returns the project file of the functions project under
// workspaceRoot.
//
// All *.csproj files under the root are enumerated. No candidates means no
// project ([ErrNoProject]). A single candidate is returned as-is, without
// checking for host.json, unless opts.StrictMarkerCheck is set. With multiple
// candidates, the first one in discovery order whose directory holds host.json
// as a regular file wins; if none qualifies, [ErrNoProject] is returned.
func (l *Locator) Locate(ctx context.Context, workspaceRoot string, opts LocateOptions) (string, error) {
	if err := l.ensureDir(workspaceRoot); err != nil {
		return "", err
	}

	candidates, err := l.finder.FindFiles(ctx, workspaceRoot, projectFileGlob)
	if err != nil {
		return "", fmt.Errorf("searching for project files: %w", err)
	}

	if len(opts.ExcludePatterns) > 0 {
		candidates, err = filterExcluded(workspaceRoot, candidates, opts.ExcludePatterns)
		if err != nil {
			return "", err
		}
	}

	if len(candidates) == 0 {
		return "", ErrNoProject
	}

	if len(candidates) == 1 && !opts.StrictMarkerCheck {
		return candidates[0], nil
	}

	for _, candidate := range candidates {
		isProject, err := l.IsFunctionsProject(filepath.Dir(candidate))
		if err != nil {
			return "", err
		}

		if isProject {
			return candidate, nil
		}
	}

	return "", ErrNoProject
}

// IsFunctionsProject reports whether dir contains host.json as a regular file.
// A missing marker is a normal negative result; any other stat failure is
// returned as an error rather than swallowed.
func (l *Locator) IsFunctionsProject(dir string) (bool, error) {
	info, err := l.stat.Stat(filepath.Join(dir, HostFileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("checking for %s in %s: %w", HostFileName, dir, err)
	}

	return info.Mode().IsRegular(), nil
}

func (l *Locator) ensureDir(root string) error {
	info, err := l.stat.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", root, ErrNoWorkspace)
	case err != nil:
		return fmt.Errorf("resolving workspace root: %w", err)
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory: %w", root, ErrNoWorkspace)
	}

	return nil
}

func filterExcluded(root string, candidates []string, patterns []string) ([]string, error) {
	kept := candidates[:0]
	for _, candidate := range candidates {
		rel, err := filepath.Rel(root, candidate)
		if err != nil {
			return nil, fmt.Errorf("resolving %s against %s: %w", candidate, root, err)
		}

		excluded, err := patternmatcher.MatchesOrParentMatches(filepath.ToSlash(rel), patterns)
		if err != nil {
			return nil, fmt.Errorf("matching exclude patterns: %w", err)
		}

		if !excluded {
			kept = append(kept, candidate)
		}
	}

	return kept, nil
}
