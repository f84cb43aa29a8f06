// Package ostest contains test helpers for os package.
package ostest

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Setenv sets the value of the environment variable named by the key.
// Any set values are automatically restored during test Cleanup.
func Setenv(t *testing.T, key string, value string) {
	orig, present := os.LookupEnv(key)
	os.Setenv(key, value)

	t.Cleanup(func() {
		if present {
			os.Setenv(key, orig)
		} else {
			os.Unsetenv(key)
		}
	})
}

// Chdir changes the working directory to dir, restoring the original working
// directory during test Cleanup.
func Chdir(t *testing.T, dir string) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	err = os.Chdir(dir)
	require.NoError(t, err)

	t.Cleanup(func() {
		err = os.Chdir(wd)
		require.NoError(t, err)
	})
}
