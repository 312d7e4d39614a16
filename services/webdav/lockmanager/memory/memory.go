package memory

import (
	"time"

	"github.com/davbox/davboxd/services/webdav/lockmanager"
	gocache "github.com/patrickmn/go-cache"
	uuid "github.com/satori/go.uuid"
)

type manager struct {
	timeout time.Duration
	locks   *gocache.Cache
}

// New returns a LockManager backed by an in-memory TTL table keyed by
// path. A LOCK on an already locked path refreshes the existing grant
// instead of minting a second token, so a client that re-locks its own
// resource keeps seeing the same token. Entries expire on their own
// after the timeout; grants are still advisory and never block UNLOCK.
func New(timeout time.Duration) lockmanager.LockManager {
	return &manager{
		timeout: timeout,
		locks:   gocache.New(timeout, time.Minute),
	}
}

func (m *manager) Lock(path string) (*lockmanager.Lock, error) {
	if held, ok := m.locks.Get(path); ok {
		lock := held.(*lockmanager.Lock)
		m.locks.Set(path, lock, m.timeout)
		return lock, nil
	}

	lock := &lockmanager.Lock{
		Token:   "opaquelocktoken:" + uuid.NewV4().String(),
		Path:    path,
		Timeout: m.timeout,
	}
	m.locks.Set(path, lock, m.timeout)
	return lock, nil
}

func (m *manager) Refresh(path, token string) (*lockmanager.Lock, error) {
	if held, ok := m.locks.Get(path); ok {
		lock := held.(*lockmanager.Lock)
		if lock.Token == token {
			m.locks.Set(path, lock, m.timeout)
			return lock, nil
		}
	}
	return m.Lock(path)
}

func (m *manager) Unlock(path, token string) error {
	// tokens are not validated on purpose: clients that lost their token
	// must still be able to unlock, otherwise the share becomes unusable.
	m.locks.Delete(path)
	return nil
}
