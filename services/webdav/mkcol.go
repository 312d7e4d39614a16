package webdav

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/entities"
	"github.com/davbox/davboxd/keys"
	"github.com/davbox/davboxd/storage"
)

// Mkcol implements the WebDAV MKCOL method. A directory is materialized
// as a zero-byte placeholder object tagged with the tree sentinel
// content type, so empty directories survive listings.
func (s *svc) Mkcol(w http.ResponseWriter, r *http.Request) {
	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handleMkcolError(err, w, r)
		return
	}

	key = treeKey(key)
	if key == "" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// reject when anything already answers to the name, placeholder,
	// synthesized directory or plain file alike
	if _, err := s.examineTree(r.Context(), driver, key); err == nil {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	} else if !codes.IsNotFound(err) {
		s.handleMkcolError(err, w, r)
		return
	}
	if _, err := driver.Head(r.Context(), strings.TrimSuffix(key, "/")); err == nil {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	} else if !codes.IsNotFound(err) {
		s.handleMkcolError(err, w, r)
		return
	}

	opts := storage.PutOptions{ContentType: entities.ObjectTypeTreeMimeType}
	if err := driver.Put(r.Context(), key, bytes.NewReader(nil), 0, opts); err != nil {
		s.handleMkcolError(err, w, r)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *svc) handleMkcolError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	if codeErr, ok := err.(*codes.Err); ok {
		if codeErr.Code == codes.BadInputData {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if codeErr.Code == codes.AlreadyExists {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	}
	log.WithError(err).Error("cannot create tree")
	w.WriteHeader(http.StatusInternalServerError)
	return
}
