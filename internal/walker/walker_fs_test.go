package walker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates the given directories (ending in a slash) and files below
// base. The tests in this file change the working directory of the process,
// so none of them may run in parallel.
func buildTree(t *testing.T, base string, paths ...string) {
	t.Helper()

	for _, p := range paths {
		full := filepath.Join(base, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755))

			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(p), 0o644))
	}
}

// pathVisitor reconstructs the full path of every entry and verifies that the
// start and exit transitions are properly nested.
type pathVisitor struct {
	t       *testing.T
	stack   []string
	seen    map[string]int
	starts  []string
	maxSeen int
}

func newPathVisitor(t *testing.T) *pathVisitor {
	t.Helper()

	return &pathVisitor{t: t, seen: make(map[string]int)}
}

func (v *pathVisitor) Visit(kind Transition, f Frame, e *Entry) error {
	switch kind {
	case DirStart:
		v.stack = append(v.stack, f.Name)
		v.starts = append(v.starts, strings.Join(v.stack, "/"))
		assert.Equal(v.t, len(v.stack)-1, f.Depth, "depth must match the nesting")
	case DirEntry:
		require.NotEmpty(v.t, v.stack, "entry outside of any directory")
		assert.Equal(v.t, v.stack[len(v.stack)-1], f.Name, "entry must belong to the active frame")
		v.seen[strings.Join(append(append([]string{}, v.stack...), e.Name), "/")]++
		if f.VisitCount > v.maxSeen {
			v.maxSeen = f.VisitCount
		}
	case DirExit:
		require.NotEmpty(v.t, v.stack, "exit without a matching start")
		assert.Equal(v.t, v.stack[len(v.stack)-1], f.Name, "exit must match the last start")
		v.stack = v.stack[:len(v.stack)-1]
	}

	return nil
}

func newOSWalker() *Walker {
	return NewWalker(&schema.OS{}, &schema.Unix{}, 2)
}

func getwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)

	return resolved
}

// TestWalk_FS_Completeness verifies that every entry of a real tree is
// reported exactly once, with balanced and properly nested transitions.
func TestWalk_FS_Completeness(t *testing.T) {
	base := t.TempDir()
	buildTree(t, base,
		"root/a/x.txt",
		"root/a/c/y.txt",
		"root/a/c/d/",
		"root/b/",
		"root/z.txt",
	)
	t.Chdir(base)
	expectedWd := getwd(t)

	v := newPathVisitor(t)
	require.NoError(t, newOSWalker().Walk(t.Context(), "root", v))

	expected := map[string]int{}
	for _, dir := range []string{"root", "root/a", "root/a/c", "root/a/c/d", "root/b"} {
		expected[dir+"/."] = 1
		expected[dir+"/.."] = 1
	}
	for _, entry := range []string{
		"root/a", "root/b", "root/z.txt",
		"root/a/x.txt", "root/a/c",
		"root/a/c/y.txt", "root/a/c/d",
	} {
		expected[entry] = 1
	}

	assert.Equal(t, expected, v.seen)
	assert.Empty(t, v.stack, "all started directories must have been exited")
	assert.ElementsMatch(t, []string{"root", "root/a", "root/a/c", "root/a/c/d", "root/b"}, v.starts)
	assert.Equal(t, 5, v.maxSeen, "root holds five entries including . and ..")

	assert.Equal(t, expectedWd, getwd(t), "working location must be the parent of the start")
}

// TestWalk_FS_ExampleTree verifies the nesting of root/{a/{x.txt}, b/}.
func TestWalk_FS_ExampleTree(t *testing.T) {
	base := t.TempDir()
	buildTree(t, base, "root/a/x.txt", "root/b/")
	t.Chdir(base)

	rec := &recorder{}
	require.NoError(t, newOSWalker().Walk(t.Context(), "root", rec))

	require.NotEmpty(t, rec.events)
	assert.Equal(t, "start root 0", rec.events[0])
	assert.Equal(t, "exit root 0", rec.events[len(rec.events)-1])

	blockOf := func(name string) []string {
		start, end := -1, -1
		for i, ev := range rec.events {
			if ev == "start "+name+" 1" {
				start = i
			}
			if ev == "exit "+name+" 1" {
				end = i
			}
		}
		require.GreaterOrEqual(t, start, 0, "missing start of %s", name)
		require.Greater(t, end, start, "missing exit of %s", name)

		return rec.events[start : end+1]
	}

	assert.Equal(t, []string{
		"start a 1",
		"entry a 1 . d",
		"entry a 2 .. d",
		"entry a 3 x.txt f",
		"exit a 1",
	}, blockOf("a"))

	assert.Equal(t, []string{
		"start b 1",
		"entry b 1 . d",
		"entry b 2 .. d",
		"exit b 1",
	}, blockOf("b"))

	// The root is fully listed before the first descent.
	assert.Equal(t, "entry root 1 . d", rec.events[1])
	assert.Equal(t, "entry root 2 .. d", rec.events[2])

	var listed []string
	for _, ev := range rec.events[3:5] {
		fields := strings.Fields(ev)
		require.Len(t, fields, 5)
		assert.Equal(t, "root", fields[1])
		listed = append(listed, fields[3])
	}
	assert.ElementsMatch(t, []string{"a", "b"}, listed)
	assert.Len(t, rec.events, 1+4+5+4+1)
}

// TestWalk_FS_Symlink verifies that a symlink to a directory is classified as
// a symlink and never descended into.
func TestWalk_FS_Symlink(t *testing.T) {
	base := t.TempDir()
	buildTree(t, base, "root/a/x.txt")
	require.NoError(t, os.Symlink("a", filepath.Join(base, "root", "link")))
	t.Chdir(base)

	v := newPathVisitor(t)
	rec := &recorder{}

	err := newOSWalker().Walk(t.Context(), "root", VisitorFunc(func(kind Transition, f Frame, e *Entry) error {
		_ = rec.Visit(kind, f, e)

		return v.Visit(kind, f, e)
	}))
	require.NoError(t, err)

	var found bool
	for _, ev := range rec.events {
		if strings.HasPrefix(ev, "entry root ") && strings.HasSuffix(ev, " link l") {
			found = true
		}
	}
	assert.True(t, found, "link must be reported as a symlink")
	assert.ElementsMatch(t, []string{"root", "root/a"}, v.starts)
}

// TestWalk_FS_Abort verifies that an aborted walk leaves the working location
// in the directory that was visited last.
func TestWalk_FS_Abort(t *testing.T) {
	base := t.TempDir()
	buildTree(t, base, "root/a/x.txt")
	t.Chdir(base)
	expectedWd := filepath.Join(getwd(t), "root", "a")

	rec := &recorder{abortAt: "entry a 3 x.txt f"}
	require.NoError(t, newOSWalker().Walk(t.Context(), "root", rec))

	assert.Equal(t, "entry a 3 x.txt f", rec.events[len(rec.events)-1])
	assert.Equal(t, expectedWd, getwd(t))
}

// TestWalk_FS_Fail_Navigation verifies that starting at a missing path or a
// file results in a navigation error without any visitor transitions.
func TestWalk_FS_Fail_Navigation(t *testing.T) {
	base := t.TempDir()
	buildTree(t, base, "file.txt")
	t.Chdir(base)

	for _, start := range []string{"missing", "file.txt"} {
		rec := &recorder{}

		err := newOSWalker().Walk(t.Context(), start, rec)
		require.ErrorIs(t, err, ErrNavigation)
		assert.Empty(t, rec.events)
	}
}
