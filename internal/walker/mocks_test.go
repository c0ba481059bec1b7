package walker

import (
	"os"

	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/stretchr/testify/mock"
	"golang.org/x/sys/unix"
)

// mockOsProvider is a mock type for the osProvider type.
type mockOsProvider struct {
	mock.Mock
}

func (_m *mockOsProvider) Chdir(dir string) error {
	ret := _m.Called(dir)

	return ret.Error(0)
}

func (_m *mockOsProvider) OpenDir(name string) (schema.DirHandle, error) {
	ret := _m.Called(name)

	var r0 schema.DirHandle
	if rf, ok := ret.Get(0).(schema.DirHandle); ok {
		r0 = rf
	}

	return r0, ret.Error(1)
}

func newMockOsProvider(t interface {
	mock.TestingT
	Cleanup(fn func())
},
) *mockOsProvider {
	m := &mockOsProvider{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// mockUnixProvider is a mock type for the unixProvider type.
type mockUnixProvider struct {
	mock.Mock
}

func (_m *mockUnixProvider) Lstat(path string, stat *unix.Stat_t) error {
	ret := _m.Called(path, stat)

	return ret.Error(0)
}

func newMockUnixProvider(t interface {
	mock.TestingT
	Cleanup(fn func())
},
) *mockUnixProvider {
	m := &mockUnixProvider{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// mockDirHandle is a mock type for the schema.DirHandle type.
type mockDirHandle struct {
	mock.Mock
}

func (_m *mockDirHandle) ReadDir(n int) ([]os.DirEntry, error) {
	ret := _m.Called(n)

	var r0 []os.DirEntry
	if rf, ok := ret.Get(0).([]os.DirEntry); ok {
		r0 = rf
	}

	return r0, ret.Error(1)
}

func (_m *mockDirHandle) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

func newMockDirHandle(t interface {
	mock.TestingT
	Cleanup(fn func())
},
) *mockDirHandle {
	m := &mockDirHandle{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
