package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRootCommand_Bump executes the command tree end to end against a temporary file.
func TestRootCommand_Bump(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(dir, "absent.yaml"),
		"--file", filepath.Join(dir, "version.txt"),
		"--log-level", "error",
		"bump", "MINOR",
	})

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "0.1.0\n", out.String())

	out.Reset()
	rootCmd.SetArgs([]string{"set-pre-release", "SNAPSHOT"})

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "0.1.0-SNAPSHOT\n", out.String())

	rootCmd.SetArgs([]string{"bump"})
	require.Error(t, rootCmd.Execute())
}
