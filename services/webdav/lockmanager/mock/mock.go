package mock

import (
	"github.com/davbox/davboxd/services/webdav/lockmanager"
	"github.com/stretchr/testify/mock"
)

// LockManager mocks a lockmanager.LockManager.
type LockManager struct {
	mock.Mock
}

// Lock mocks the Lock call.
func (m *LockManager) Lock(path string) (*lockmanager.Lock, error) {
	args := m.Called()
	return args.Get(0).(*lockmanager.Lock), args.Error(1)
}

// Refresh mocks the Refresh call.
func (m *LockManager) Refresh(path, token string) (*lockmanager.Lock, error) {
	args := m.Called()
	return args.Get(0).(*lockmanager.Lock), args.Error(1)
}

// Unlock mocks the Unlock call.
func (m *LockManager) Unlock(path, token string) error {
	args := m.Called()
	return args.Error(0)
}
