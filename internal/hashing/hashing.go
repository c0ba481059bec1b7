// Package hashing implements a [walker.Visitor] that computes the BLAKE3
// digest of every visited regular file.
package hashing

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/desertwitch/treewalk/internal/printing"
	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/desertwitch/treewalk/internal/walker"
	"github.com/zeebo/blake3"
)

// ErrHash is an error that occurs when a visited regular file cannot be
// opened or read for hashing.
var ErrHash = errors.New("hashing failed")

type osProvider interface {
	Open(name string) (*os.File, error)
}

// Sum is the digest of a single regular file.
type Sum struct {
	Path string
	Hex  string
	Size int64
}

// Hasher is the principal implementation of the hashing visitor.
type Hasher struct {
	osHandler osProvider
	out       io.Writer
	path      printing.Path
	sums      []Sum
}

// NewHasher returns a pointer to a new [Hasher], writing a line for every
// digest to out. A nil out only collects the digests.
func NewHasher(osHandler osProvider, out io.Writer) *Hasher {
	return &Hasher{
		osHandler: osHandler,
		out:       out,
	}
}

// Visit implements [walker.Visitor].
func (h *Hasher) Visit(kind walker.Transition, frame walker.Frame, entry *walker.Entry) error {
	switch kind {
	case walker.DirStart:
		h.path.Enter(frame.Name)

	case walker.DirEntry:
		if entry.Metadata.Type != schema.TypeRegular {
			return nil
		}

		digest, size, err := h.hashFile(entry.Name)
		if err != nil {
			return fmt.Errorf("(hashing) %w: %s%s: %w", ErrHash, h.path.String(), entry.Name, err)
		}

		sum := Sum{
			Path: h.path.String() + entry.Name,
			Hex:  digest,
			Size: size,
		}
		h.sums = append(h.sums, sum)

		if h.out != nil {
			if _, err := fmt.Fprintf(h.out, "%s  %s\n", sum.Hex, sum.Path); err != nil {
				return fmt.Errorf("(hashing) failed to write: %w", err)
			}
		}

	case walker.DirExit:
		h.path.Exit()
	}

	return nil
}

func (h *Hasher) hashFile(name string) (string, int64, error) {
	f, err := h.osHandler.Open(name)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open: %w", err)
	}
	defer f.Close()

	hasher := blake3.New()

	n, err := io.Copy(hasher, f)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), n, nil
}

// Sums returns all digests computed so far, in the order of the walk.
func (h *Hasher) Sums() []Sum {
	return h.sums
}
