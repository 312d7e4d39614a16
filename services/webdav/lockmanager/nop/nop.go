package nop

import (
	"time"

	"github.com/davbox/davboxd/services/webdav/lockmanager"
	uuid "github.com/satori/go.uuid"
)

type manager struct {
	timeout time.Duration
}

// New returns a LockManager that keeps no state at all: every LOCK mints
// a fresh token and every UNLOCK succeeds.
func New(timeout time.Duration) lockmanager.LockManager {
	return &manager{timeout: timeout}
}

func (m *manager) Lock(path string) (*lockmanager.Lock, error) {
	return &lockmanager.Lock{
		Token:   "opaquelocktoken:" + uuid.NewV4().String(),
		Path:    path,
		Timeout: m.timeout,
	}, nil
}

func (m *manager) Refresh(path, token string) (*lockmanager.Lock, error) {
	return &lockmanager.Lock{Token: token, Path: path, Timeout: m.timeout}, nil
}

func (m *manager) Unlock(path, token string) error {
	return nil
}
