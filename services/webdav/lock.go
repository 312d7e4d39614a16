package webdav

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/keys"
)

// Lock implements the WebDAV LOCK method. The grant is advisory: the
// minted token is never validated afterwards, but Office and Explorer
// refuse to open files read-write unless LOCK succeeds, so every request
// is granted an exclusive write lock with a fixed timeout.
func (s *svc) Lock(w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())

	_, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handleLockError(err, w, r)
		return
	}

	// clients send a lockinfo body; its content does not change the grant
	if r.Body != nil {
		io.Copy(ioutil.Discard, r.Body)
	}

	lock, err := s.lockManager.Lock(key)
	if err != nil {
		s.handleLockError(err, w, r)
		return
	}

	seconds := int(lock.Timeout.Seconds())
	body := `<?xml version="1.0" encoding="utf-8"?><D:prop xmlns:D="DAV:"><D:lockdiscovery><D:activelock>`
	body += `<D:locktype><D:write/></D:locktype>`
	body += `<D:lockscope><D:exclusive/></D:lockscope>`
	body += `<D:depth>0</D:depth>`
	body += fmt.Sprintf(`<D:timeout>Second-%d</D:timeout>`, seconds)
	body += fmt.Sprintf(`<D:locktoken><D:href>%s</D:href></D:locktoken>`, lock.Token)
	body += `</D:activelock></D:lockdiscovery></D:prop>`

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Lock-Token", "<"+lock.Token+">")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.WithError(err).Error("cannot write response body")
	}
}

func (s *svc) handleLockError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	if codeErr, ok := err.(*codes.Err); ok {
		if codeErr.Code == codes.BadInputData {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	log.WithError(err).Error("cannot grant lock")
	w.WriteHeader(http.StatusInternalServerError)
	return
}
