package webdav

import (
	"net/http"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/entities"
	"github.com/davbox/davboxd/keys"
	"github.com/gorilla/mux"
)

// Propfind implements the WebDAV PROPFIND method. Depth infinity is
// served as depth 1: walking the whole key space on every Explorer
// refresh would hammer the store, and every client in the wild retries
// with depth 1 anyway.
func (s *svc) Propfind(w http.ResponseWriter, r *http.Request) {
	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handlePropfindError(err, w, r)
		return
	}

	var children bool
	depth := r.Header.Get("Depth")
	if depth == "" || depth == "1" || depth == "infinity" {
		children = true
	}

	requestedProps := readPropfind(r.Body)

	var infos []*entities.ObjectInfo
	info, err := s.examineObject(r.Context(), driver, key)
	if err != nil {
		s.handlePropfindError(err, w, r)
		return
	}
	infos = append(infos, info)

	if children && info.Type == entities.ObjectTypeTree {
		childrenInfos, err := s.listTree(r.Context(), driver, info.PathSpec)
		if err != nil {
			s.handlePropfindError(err, w, r)
			return
		}
		infos = append(infos, childrenInfos...)
	}

	infosInXML, err := s.infosToXML(mux.Vars(r)["bucket"], infos, requestedProps)
	if err != nil {
		s.handlePropfindError(err, w, r)
		return
	}

	w.Header().Set("DAV", "1, 2")
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(207)
	w.Write([]byte(infosInXML))
}

func (s *svc) handlePropfindError(err error, w http.ResponseWriter, r *http.Request) {
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
