package schema

import "golang.org/x/sys/unix"

const (
	unixBasePerms = 0o777
)

// EntryType is the classification of a directory entry, as derived from the
// file type bits of its mode.
type EntryType int

const (
	TypeUnknown EntryType = iota
	TypeBlockDevice
	TypeCharDevice
	TypeDirectory
	TypeFIFO
	TypeSymlink
	TypeRegular
	TypeSocket
)

// TypeFromMode classifies a raw Unix mode by its file type bits.
func TypeFromMode(mode uint32) EntryType {
	switch mode & unix.S_IFMT {
	case unix.S_IFBLK:
		return TypeBlockDevice
	case unix.S_IFCHR:
		return TypeCharDevice
	case unix.S_IFDIR:
		return TypeDirectory
	case unix.S_IFIFO:
		return TypeFIFO
	case unix.S_IFLNK:
		return TypeSymlink
	case unix.S_IFREG:
		return TypeRegular
	case unix.S_IFSOCK:
		return TypeSocket
	default:
		return TypeUnknown
	}
}

// Label returns the single-letter label of an [EntryType].
func (t EntryType) Label() byte {
	switch t {
	case TypeBlockDevice:
		return 'b'
	case TypeCharDevice:
		return 'c'
	case TypeDirectory:
		return 'd'
	case TypeFIFO:
		return 'F'
	case TypeSymlink:
		return 'l'
	case TypeRegular:
		return 'f'
	case TypeSocket:
		return 's'
	case TypeUnknown:
		return 'X'
	}

	return 'X'
}

func (t EntryType) String() string {
	switch t {
	case TypeBlockDevice:
		return "block-device"
	case TypeCharDevice:
		return "char-device"
	case TypeDirectory:
		return "directory"
	case TypeFIFO:
		return "fifo"
	case TypeSymlink:
		return "symlink"
	case TypeRegular:
		return "regular-file"
	case TypeSocket:
		return "socket"
	case TypeUnknown:
		return "unknown"
	}

	return "unknown"
}

// Metadata is the metadata of a directory entry, as established by a call to
// [unix.Lstat].
type Metadata struct {
	Inode      uint64
	Mode       uint32
	Perms      uint32
	UID        uint32
	GID        uint32
	ModifiedAt unix.Timespec
	Size       int64
	Type       EntryType
}

// NewMetadata returns a pointer to a new [Metadata] built from a
// [unix.Stat_t].
func NewMetadata(stat *unix.Stat_t) *Metadata {
	mode := uint32(stat.Mode) //nolint:unconvert

	return &Metadata{
		Inode:      stat.Ino,
		Mode:       mode,
		Perms:      mode & unixBasePerms,
		UID:        stat.Uid,
		GID:        stat.Gid,
		ModifiedAt: stat.Mtim,
		Size:       stat.Size,
		Type:       TypeFromMode(mode),
	}
}

// IsDir reports whether the [Metadata] describes a directory.
func (m *Metadata) IsDir() bool {
	return m.Type == TypeDirectory
}
