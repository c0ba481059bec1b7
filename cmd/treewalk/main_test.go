package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

// execute runs the root command with a configuration file of its own. The
// commands change the working directory, so none of these tests may run in
// parallel.
func execute(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "treewalk.env")
	require.NoError(t, os.WriteFile(configFile, []byte(config), 0o644))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	cmd, stop := newRootCmd(NewSlogManager(), cancel)
	defer stop()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configFile}, args...))

	err := cmd.ExecuteContext(ctx)

	return out.String(), err
}

func buildTree(t *testing.T) string {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(base, "root", "a"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "root", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "root", "a", "x.txt"), []byte("hello"), 0o644))
	t.Chdir(base)

	return base
}

func TestPrintCmd(t *testing.T) {
	buildTree(t)

	out, err := execute(t, "", "print", "root")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, out, " f 0644          5 root/a/x.txt\n")
	assert.Contains(t, out, "root/b/..\n")
}

func TestPrintCmd_YAML_Summary(t *testing.T) {
	buildTree(t)

	out, err := execute(t, "TREEWALK_HUMAN_SIZES=yes\n", "print", "--format", "yaml", "--summary", "root")
	require.NoError(t, err)

	assert.Contains(t, out, "path: root/a/x.txt")
	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "regular-file")
}

func TestPrintCmd_Fail_Format(t *testing.T) {
	buildTree(t)

	_, err := execute(t, "", "print", "--format", "json", "root")
	require.ErrorIs(t, err, errUsage)
}

func TestPrintCmd_Fail_Missing(t *testing.T) {
	buildTree(t)

	_, err := execute(t, "", "print", "missing")
	require.Error(t, err)
}

func TestPruneCmd(t *testing.T) {
	base := buildTree(t)

	_, err := execute(t, "", "prune", "--dry-run", filepath.Join(base, "root"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(base, "root", "a", "x.txt"))

	_, err = execute(t, "", "prune", filepath.Join(base, "root"))
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(base, "root"))
}

func TestHashCmd(t *testing.T) {
	buildTree(t)

	out, err := execute(t, "TREEWALK_BATCH_SIZE=1\n", "hash", "root")
	require.NoError(t, err)

	sum := blake3.Sum256([]byte("hello"))
	assert.Equal(t, hex.EncodeToString(sum[:])+"  root/a/x.txt\n", out)
}

func TestSelftestCmd(t *testing.T) {
	base := buildTree(t)

	out, err := execute(t, "TREEWALK_SELFTEST_DEPTH=4\n", "selftest", "--base", base, "--top", "scratch")
	require.NoError(t, err)

	assert.Contains(t, out, "self-test passed: 4 levels, 5 directories removed, 12 entries printed")
	assert.NoDirExists(t, filepath.Join(base, "scratch"))
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "treewalk dev ("))
}

func TestRootCmd_Fail_LogLevel(t *testing.T) {
	_, err := execute(t, "", "--log-level", "loud", "version")
	require.ErrorIs(t, err, errUsage)
}
