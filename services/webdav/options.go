package webdav

import (
	"net/http"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/entities"
	"github.com/davbox/davboxd/keys"
)

// Options implements the WebDAV OPTIONS method to advertise the DAV
// compliance classes. Class 2 is announced even though locks are
// advisory; Windows Explorer refuses to mount read-write without it.
// Clients probe capability on keys they are about to create, so the
// answer is 200 whether or not anything exists at the key; the lookup
// only picks between PUT and MKCOL in the Allow list.
func (s *svc) Options(w http.ResponseWriter, r *http.Request) {
	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handleOptionsError(err, w, r)
		return
	}

	isBlob := !isTreeKey(key)
	if info, err := s.examineObject(r.Context(), driver, key); err == nil {
		isBlob = info.Type == entities.ObjectTypeBLOB
	}

	allow := "OPTIONS, LOCK, GET, HEAD, POST, DELETE, PROPPATCH, COPY,"
	allow += " MOVE, UNLOCK, PROPFIND"
	if isBlob {
		allow += ", PUT"
	} else {
		allow += ", MKCOL"
	}

	w.Header().Set("Allow", allow)
	w.Header().Set("DAV", "1, 2")
	w.Header().Set("MS-Author-Via", "DAV")
	w.WriteHeader(http.StatusOK)
	return
}

func (s *svc) handleOptionsError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	if codeErr, ok := err.(*codes.Err); ok {
		if codeErr.Code == codes.BadInputData {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	log.WithError(err).Error("cannot resolve key")
	w.WriteHeader(http.StatusInternalServerError)
	return
}
