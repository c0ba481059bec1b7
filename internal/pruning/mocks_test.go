package pruning

import (
	"github.com/stretchr/testify/mock"
)

// mockUnixProvider is a mock type for the unixProvider type.
type mockUnixProvider struct {
	mock.Mock
}

func (_m *mockUnixProvider) Rmdir(path string) error {
	ret := _m.Called(path)

	return ret.Error(0)
}

func (_m *mockUnixProvider) Unlink(path string) error {
	ret := _m.Called(path)

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
