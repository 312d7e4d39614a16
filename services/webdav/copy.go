package webdav

import (
	"net/http"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/keys"
)

// Copy implements the WebDAV COPY method. It shares the fan-out with
// MOVE but never deletes the source objects.
func (s *svc) Copy(w http.ResponseWriter, r *http.Request) {
	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handleCopyError(err, w, r)
		return
	}

	destination, overwrite, err := s.moveOrCopyTarget(r)
	if err != nil {
		s.handleCopyError(err, w, r)
		return
	}

	if key == destination || treeKey(key) == treeKey(destination) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	info, err := s.examineObject(r.Context(), driver, key)
	if err != nil {
		s.handleCopyError(err, w, r)
		return
	}

	if overwrite == "F" {
		if _, err := s.examineObject(r.Context(), driver, destination); err == nil {
			w.WriteHeader(http.StatusPreconditionFailed)
			return
		} else if !codes.IsNotFound(err) {
			s.handleCopyError(err, w, r)
			return
		}
	}

	if err := s.copyObjects(r, driver, info, destination, false); err != nil {
		s.handleCopyError(err, w, r)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *svc) handleCopyError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	if codeErr, ok := err.(*codes.Err); ok {
		if codeErr.Code == codes.NotFound {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if codeErr.Code == codes.BadInputData {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	log.WithError(err).Error("cannot copy object")
	w.WriteHeader(http.StatusInternalServerError)
	return
}
