package webdav

import (
	"net/http"
	"strings"

	"github.com/davbox/davboxd/keys"
)

// Unlock implements the WebDAV UNLOCK method. It succeeds regardless of
// token validity; failing here would strand clients that lost their
// token, and the lock was only ever advisory.
func (s *svc) Unlock(w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())

	_, key, err := s.keyFromRequest(r)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	token := strings.Trim(r.Header.Get("Lock-Token"), "<>")
	if err := s.lockManager.Unlock(key, token); err != nil {
		log.WithError(err).Warn("cannot release lock")
	}
	w.WriteHeader(http.StatusNoContent)
}
