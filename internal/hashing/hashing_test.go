package hashing

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/desertwitch/treewalk/internal/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func digestOf(data []byte) string {
	sum := blake3.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// TestHasher_Walk_FS verifies the digests of all regular files of a tree.
func TestHasher_Walk_FS(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "root", "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "root", "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "root", "a", "x.txt"), []byte("hello world"), 0o644))
	require.NoError(t, os.Symlink("top.txt", filepath.Join(base, "root", "link")))
	t.Chdir(base)

	var out bytes.Buffer
	h := NewHasher(&schema.OS{}, &out)
	w := walker.NewWalker(&schema.OS{}, &schema.Unix{}, 0)

	require.NoError(t, w.Walk(t.Context(), "root", h))

	sums := h.Sums()
	require.Len(t, sums, 2, "only regular files are hashed")

	byPath := map[string]Sum{}
	for _, s := range sums {
		byPath[s.Path] = s
	}

	assert.Equal(t, digestOf([]byte("top")), byPath["root/top.txt"].Hex)
	assert.Equal(t, digestOf([]byte("hello world")), byPath["root/a/x.txt"].Hex)
	assert.Equal(t, int64(11), byPath["root/a/x.txt"].Size)

	assert.Contains(t, out.String(), digestOf([]byte("hello world"))+"  root/a/x.txt\n")
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 2)
}

// TestHasher_Visit_Fail verifies that unreadable files are fatal.
func TestHasher_Visit_Fail(t *testing.T) {
	t.Chdir(t.TempDir())

	h := NewHasher(&schema.OS{}, nil)

	require.NoError(t, h.Visit(walker.DirStart, walker.Frame{Name: "root"}, nil))

	err := h.Visit(walker.DirEntry, walker.Frame{Name: "root"}, &walker.Entry{
		Name:     "missing.txt",
		Metadata: &schema.Metadata{Type: schema.TypeRegular},
	})
	require.ErrorIs(t, err, ErrHash)
	require.ErrorIs(t, err, os.ErrNotExist)
}
