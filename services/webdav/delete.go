package webdav

import (
	"net/http"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/keys"
)

// Delete implements the WebDAV DELETE method. Deletes are idempotent:
// removing an absent key is a success, so clients retrying after a
// timeout do not surface spurious errors. Directory deletes fan out over
// every object under the prefix one at a time.
func (s *svc) Delete(w http.ResponseWriter, r *http.Request) {
	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handleDeleteError(err, w, r)
		return
	}

	if !isTreeKey(key) {
		if err := driver.Delete(r.Context(), key); err != nil {
			s.handleDeleteError(err, w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	objects, err := s.listAllObjects(r.Context(), driver, key)
	if err != nil {
		s.handleDeleteError(err, w, r)
		return
	}
	for _, obj := range objects {
		if err := driver.Delete(r.Context(), obj.Key); err != nil {
			s.handleDeleteError(err, w, r)
			return
		}
	}
	// the placeholder itself may not show up in the listing when the
	// directory was only ever synthesized
	if key != "" {
		if err := driver.Delete(r.Context(), key); err != nil {
			s.handleDeleteError(err, w, r)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *svc) handleDeleteError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	if codeErr, ok := err.(*codes.Err); ok {
		if codeErr.Code == codes.BadInputData {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	log.WithError(err).Error("cannot delete object")
	w.WriteHeader(http.StatusInternalServerError)
	return
}
