package schema

import (
	"os"

	"golang.org/x/sys/unix"
)

// DirHandle is an open directory listing. It is consumed lazily by calls to
// ReadDir and cannot be restarted once consumed.
type DirHandle interface {
	ReadDir(n int) ([]os.DirEntry, error)
	Close() error
}

// OS is an implementation wrapping operating system functions.
type OS struct{}

// Chdir wraps around [os.Chdir].
func (*OS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// Getwd wraps around [os.Getwd].
func (*OS) Getwd() (string, error) {
	return os.Getwd()
}

// Open wraps around [os.Open].
func (*OS) Open(name string) (*os.File, error) {
	return os.Open(name)
}

// OpenDir wraps around [os.Open], returning the opened directory as a
// [DirHandle].
func (*OS) OpenDir(name string) (DirHandle, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Unix is an implementation wrapping Unix operating system functions.
type Unix struct{}

// Lstat wraps around [unix.Lstat].
func (*Unix) Lstat(path string, stat *unix.Stat_t) error {
	return unix.Lstat(path, stat)
}

// Mkdir wraps around [unix.Mkdir].
func (*Unix) Mkdir(path string, mode uint32) error {
	return unix.Mkdir(path, mode)
}

// Rmdir wraps around [unix.Rmdir].
func (*Unix) Rmdir(path string) error {
	return unix.Rmdir(path)
}

// Unlink wraps around [unix.Unlink].
func (*Unix) Unlink(path string) error {
	return unix.Unlink(path)
}
