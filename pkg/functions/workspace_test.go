// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package functions

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/require"
)

func TestFindFilesAtRoot(t *testing.T) {
	// `**` matches zero segments, so a project file directly under the root is
	// a candidate.
	root := t.TempDir()
	project := writeFile(t, root, "App.csproj")

	matches, err := OsWorkspace{}.FindFiles(context.Background(), root, "**/*.csproj")
	require.NoError(t, err)
	require.Equal(t, []string{project}, matches)
}

func TestFindFilesSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Dir.csproj"), 0o755))
	project := writeFile(t, root, filepath.Join("app", "App.csproj"))

	matches, err := OsWorkspace{}.FindFiles(context.Background(), root, "**/*.csproj")
	require.NoError(t, err)
	require.Equal(t, []string{project}, matches)
}

func TestFindFilesEscapesStar(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("glob metacharacters are not legal in Windows file names")
	}

	// Read as a pattern, `a1*` would also match the decoy directory.
	parent := t.TempDir()
	weird := filepath.Join(parent, "a1*")
	project := writeFile(t, weird, "App.csproj")
	writeFile(t, filepath.Join(parent, "a1z"), "Decoy.csproj")

	matches, err := OsWorkspace{}.FindFiles(context.Background(), weird, "**/*.csproj")
	require.NoError(t, err)
	require.Equal(t, []string{project}, matches)
}

func TestFindFilesEscapesBrackets(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("glob metacharacters are not legal in Windows file names")
	}

	parent := t.TempDir()
	weird := filepath.Join(parent, "cfg[1]")
	project := writeFile(t, weird, "App.csproj")

	matches, err := OsWorkspace{}.FindFiles(context.Background(), weird, "**/*.csproj")
	require.NoError(t, err)
	require.Equal(t, []string{project}, matches)
}

func TestFindFilesCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "App.csproj")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := OsWorkspace{}.FindFiles(ctx, root, "**/*.csproj")
	require.ErrorIs(t, err, context.Canceled)
}

func TestGlobEscape(t *testing.T) {
	cases := []struct {
		name string
		path string
		want string
	}{
		{"plain", "/ws/app", "/ws/app"},
		{"spaces", "/ws/my app", "/ws/my app"},
		{"star", "/ws/a*b", "/ws/a[*]b"},
		{"question", "/ws/a?", "/ws/a[?]"},
		{"brackets", "/ws/[app]", "/ws/[[]app[]]"},
		{"braces", "/ws/{a,b}", "/ws/[{]a,b[}]"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GlobEscape(tt.path))
		})
	}
}

func TestGlobEscapeMatchesLiterally(t *testing.T) {
	escaped := GlobEscape("a[1]*")

	ok, err := doublestar.Match(escaped, "a[1]*")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = doublestar.Match(escaped, "a1z")
	require.NoError(t, err)
	require.False(t, ok)
}
