package webdav

import (
	"fmt"
	"net/http"
	"time"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/entities"
	"github.com/davbox/davboxd/keys"
)

// Head implements the WebDAV HEAD method. It reports the same headers as
// GET without touching the object payload.
func (s *svc) Head(w http.ResponseWriter, r *http.Request) {
	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handleHeadError(err, w, r)
		return
	}

	info, err := s.examineObject(r.Context(), driver, key)
	if err != nil {
		s.handleHeadError(err, w, r)
		return
	}

	w.Header().Set("Content-Type", info.MimeType)
	if info.Type == entities.ObjectTypeBLOB {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size))
	}
	if info.ETag != "" {
		w.Header().Set("ETag", `"`+info.ETag+`"`)
	}
	if info.ModTime != 0 {
		w.Header().Set("Last-Modified", time.Unix(0, info.ModTime).UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
}

func (s *svc) handleHeadError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	if codeErr, ok := err.(*codes.Err); ok {
		if codeErr.Code == codes.NotFound {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		if codeErr.Code == codes.BadInputData {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	log.WithError(err).Error("cannot examine object")
	w.WriteHeader(http.StatusInternalServerError)
	return
}
