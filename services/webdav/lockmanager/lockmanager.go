package lockmanager

import (
	"time"
)

// Lock is an advisory write lock granted on a path.
type Lock struct {
	Token   string
	Path    string
	Timeout time.Duration
}

// LockManager mints and releases WebDAV lock tokens. Grants are advisory
// only: the storage layer cannot enforce them, and UNLOCK must always
// succeed so that clients like Windows Explorer keep mounting the share.
// The interface exists so a stricter per-path table can be swapped in
// without touching the protocol handlers.
type LockManager interface {
	Lock(path string) (*Lock, error)
	Refresh(path, token string) (*Lock, error)
	Unlock(path, token string) error
}
