// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package functions

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/azure/funcbind/test/ostest"
	"github.com/stretchr/testify/require"
)

func TestLocateSingleCandidate(t *testing.T) {
	// A lone candidate wins without a marker check, even with no host.json
	// anywhere in the workspace.
	root := t.TempDir()
	project := writeFile(t, root, filepath.Join("app", "App.csproj"))

	got, err := NewOsLocator().Locate(context.Background(), root, LocateOptions{})
	require.NoError(t, err)
	require.Equal(t, project, got)
}

func TestLocateSingleCandidateStrict(t *testing.T) {
	root := t.TempDir()
	project := writeFile(t, root, filepath.Join("app", "App.csproj"))

	locator := NewOsLocator()

	_, err := locator.Locate(context.Background(), root, LocateOptions{StrictMarkerCheck: true})
	require.ErrorIs(t, err, ErrNoProject)

	writeFile(t, root, filepath.Join("app", HostFileName))

	got, err := locator.Locate(context.Background(), root, LocateOptions{StrictMarkerCheck: true})
	require.NoError(t, err)
	require.Equal(t, project, got)
}

func TestLocateEmptyWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, filepath.Join("src", "Program.cs"))

	_, err := NewOsLocator().Locate(context.Background(), root, LocateOptions{})
	require.ErrorIs(t, err, ErrNoProject)
}

func TestLocateMultipleCandidates(t *testing.T) {
	// With several candidates, the first in discovery order whose directory
	// holds host.json wins.
	root := t.TempDir()
	writeFile(t, root, filepath.Join("a", "Foo.csproj"))
	project := writeFile(t, root, filepath.Join("b", "Bar.csproj"))
	writeFile(t, root, filepath.Join("b", HostFileName))

	got, err := NewOsLocator().Locate(context.Background(), root, LocateOptions{})
	require.NoError(t, err)
	require.Equal(t, project, got)
}

func TestLocateMultipleCandidatesNoMarker(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, filepath.Join("a", "Foo.csproj"))
	writeFile(t, root, filepath.Join("b", "Bar.csproj"))

	_, err := NewOsLocator().Locate(context.Background(), root, LocateOptions{})
	require.ErrorIs(t, err, ErrNoProject)
}

func TestLocateMarkerMustBeRegularFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, filepath.Join("a", "Foo.csproj"))

	// host.json as a directory does not mark a functions project.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", HostFileName), 0o755))

	project := writeFile(t, root, filepath.Join("b", "Bar.csproj"))
	writeFile(t, root, filepath.Join("b", HostFileName))

	got, err := NewOsLocator().Locate(context.Background(), root, LocateOptions{})
	require.NoError(t, err)
	require.Equal(t, project, got)
}

func TestLocateExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, filepath.Join("app", "App.csproj"))
	writeFile(t, root, filepath.Join("app", HostFileName))
	project := writeFile(t, root, filepath.Join("worker", "Worker.csproj"))
	writeFile(t, root, filepath.Join("worker", HostFileName))

	locator := NewOsLocator()

	got, err := locator.Locate(context.Background(), root, LocateOptions{ExcludePatterns: []string{"app"}})
	require.NoError(t, err)
	require.Equal(t, project, got)

	_, err = locator.Locate(context.Background(), root, LocateOptions{ExcludePatterns: []string{"app", "worker"}})
	require.ErrorIs(t, err, ErrNoProject)
}

func TestLocateMissingRoot(t *testing.T) {
	root := t.TempDir()

	_, err := NewOsLocator().Locate(context.Background(), filepath.Join(root, "gone"), LocateOptions{})
	require.ErrorIs(t, err, ErrNoWorkspace)
}

func TestLocateRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := writeFile(t, root, "App.csproj")

	_, err := NewOsLocator().Locate(context.Background(), file, LocateOptions{})
	require.ErrorIs(t, err, ErrNoWorkspace)
}

func TestIsFunctionsProject(t *testing.T) {
	root := t.TempDir()
	locator := NewOsLocator()

	isProject, err := locator.IsFunctionsProject(root)
	require.NoError(t, err)
	require.False(t, isProject)

	writeFile(t, root, HostFileName)

	isProject, err = locator.IsFunctionsProject(root)
	require.NoError(t, err)
	require.True(t, isProject)
}

func TestIsFunctionsProjectStatError(t *testing.T) {
	// Failures other than not-found must propagate, never read as absence.
	locator := NewLocator(OsWorkspace{}, failStat{err: fs.ErrPermission})

	_, err := locator.IsFunctionsProject(filepath.Join("ws", "app"))
	require.ErrorIs(t, err, fs.ErrPermission)
}

func TestLocateStatErrorDuringMarkerCheck(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, filepath.Join("a", "Foo.csproj"))
	writeFile(t, root, filepath.Join("b", "Bar.csproj"))

	locator := NewLocator(OsWorkspace{}, partialFailStat{allow: root, err: fs.ErrPermission})

	_, err := locator.Locate(context.Background(), root, LocateOptions{})
	require.ErrorIs(t, err, fs.ErrPermission)
}

func TestWorkspaceForFile(t *testing.T) {
	root := t.TempDir()
	file := writeFile(t, root, filepath.Join("src", "Program.cs"))

	locator := NewOsLocator()

	got, err := locator.WorkspaceForFile(file, root)
	require.NoError(t, err)
	require.Equal(t, root, got)

	// A file outside the root has no enclosing workspace.
	outside := writeFile(t, t.TempDir(), "Other.cs")
	_, err = locator.WorkspaceForFile(outside, root)
	require.ErrorIs(t, err, ErrNoWorkspace)

	_, err = locator.WorkspaceForFile(file, filepath.Join(root, "gone"))
	require.ErrorIs(t, err, ErrNoWorkspace)
}

func TestWorkspaceForFileDefaultsToWd(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	file := writeFile(t, root, filepath.Join("src", "Program.cs"))
	ostest.Chdir(t, root)

	got, err := NewOsLocator().WorkspaceForFile(file, "")
	require.NoError(t, err)
	require.Equal(t, root, got)
}

// writeFile creates an empty file at rel under root, creating parent
// directories as needed, and returns its full path.
func writeFile(t *testing.T, root string, rel string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	return path
}

// failStat fails every stat with the given error.
type failStat struct{ err error }

func (f failStat) Stat(name string) (os.FileInfo, error) {
	return nil, &fs.PathError{Op: "stat", Path: name, Err: f.err}
}

// partialFailStat stats allow normally and fails everything else.
type partialFailStat struct {
	allow string
	err   error
}

func (p partialFailStat) Stat(name string) (os.FileInfo, error) {
	if name == p.allow {
		return os.Stat(name)
	}

	return nil, &fs.PathError{Op: "stat", Path: name, Err: p.err}
}
