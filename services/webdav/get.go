package webdav

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/helpers"
	"github.com/davbox/davboxd/keys"
)

// Get implements the WebDAV GET method to download a blob. Keys with
// the directory marker never resolve to blobs, so GET on them is a
// client error rather than a lookup miss.
func (s *svc) Get(w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())

	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handleGetError(err, w, r)
		return
	}
	if isTreeKey(key) {
		log.Warn("get is only defined on blobs")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	reader, info, err := driver.Get(r.Context(), key)
	if err != nil {
		s.handleGetError(err, w, r)
		return
	}
	defer reader.Close()

	entity := s.blobInfo(info)
	w.Header().Set("Content-Type", entity.MimeType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", entity.Size))
	w.Header().Set("Content-Disposition", helpers.ContentDisposition("attachment", path.Base(entity.PathSpec)))
	if entity.ETag != "" {
		w.Header().Set("ETag", `"`+entity.ETag+`"`)
	}
	if entity.ModTime != 0 {
		w.Header().Set("Last-Modified", time.Unix(0, entity.ModTime).UTC().Format(http.TimeFormat))
	}

	if _, err := io.Copy(w, reader); err != nil {
		log.WithError(err).Error("cannot write response body")
	}
}

func (s *svc) handleGetError(err error, w http.ResponseWriter, r *http.Request) {
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
	log.WithError(err).Error("cannot get blob")
	w.WriteHeader(http.StatusInternalServerError)
	return
}
