package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/hgrep/internal/errchain"
)

// isolateConfigHome points HOME at a fresh temp directory so config.Load
// finds neither a local nor a global config file, regardless of the host
// running the test suite.
func isolateConfigHome(t *testing.T) {
	t.Helper()
	oldHome := os.Getenv("HOME")
	oldWd, err := os.Getwd()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.Setenv("HOME", dir))
	require.NoError(t, os.Chdir(dir))

	t.Cleanup(func() {
		require.NoError(t, os.Chdir(oldWd))
		require.NoError(t, os.Setenv("HOME", oldHome))
	})
}

func withStdin(t *testing.T, content string) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	oldStdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = oldStdin })
}

func runRootOnce(t *testing.T) (string, int) {
	t.Helper()
	var buf bytes.Buffer
	oldOut := Out()
	SetOut(&buf)
	t.Cleanup(func() { SetOut(oldOut) })

	exitCode = errchain.ExitNoMatches
	require.NoError(t, rootCmd.RunE(rootCmd, nil))
	return buf.String(), exitCode
}

func TestRootCmd_MatchedInputExitsZero(t *testing.T) {
	isolateConfigHome(t)
	withStdin(t, "main.go:1:package main\n")

	out, code := runRootOnce(t)
	assert.Equal(t, errchain.ExitMatched, code)
	assert.Contains(t, out, "main.go")
}

func TestRootCmd_EmptyInputExitsNoMatches(t *testing.T) {
	isolateConfigHome(t)
	withStdin(t, "")

	_, code := runRootOnce(t)
	assert.Equal(t, errchain.ExitNoMatches, code)
}

func TestRootCmd_MalformedLinesAreSkippedNonFatally(t *testing.T) {
	isolateConfigHome(t)
	withStdin(t, "not a grep line\nmain.go:1:package main\n")

	out, code := runRootOnce(t)
	assert.Equal(t, errchain.ExitMatched, code)
	assert.Contains(t, out, "main.go")
}
