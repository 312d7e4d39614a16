package webdav

import (
	"bufio"
	"net/http"
	"strconv"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/keys"
	"github.com/davbox/davboxd/mimeguesser"
	"github.com/davbox/davboxd/storage"
)

// Put implements the WebDAV PUT method to upload a blob. Uploading to a
// key with the directory marker is rejected: the trailing slash is
// reserved for placeholder objects the server writes itself.
func (s *svc) Put(w http.ResponseWriter, r *http.Request) {
	if r.Body == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	log := keys.MustGetLog(r.Context())

	if s.requestHasContentRange(r) {
		log.Warning("Content-Range header is not accepted on PUT")
		http.Error(w, http.StatusText(http.StatusNotImplemented), http.StatusNotImplemented)
		return
	}

	if s.requestSuffersFinderProblem(r) {
		if err := s.handleFinderRequest(w, r); err != nil {
			return
		}
	}

	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handlePutError(err, w, r)
		return
	}
	if isTreeKey(key) {
		log.Warn("put is only defined on blob keys")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// a PUT overwrites unconditionally, even converting a placeholder
	// directory of the same name into a file, so only the single key is
	// probed to choose between 201 and 204.
	info, err := driver.Head(r.Context(), key)
	// if err is not found it is okay to continue
	if err != nil {
		if !codes.IsNotFound(err) {
			s.handlePutError(err, w, r)
			return
		}
		info = nil
	}

	readCloser := http.MaxBytesReader(w, r.Body, int64(s.conf.GetDirectives().WebDAV.UploadMaxFileSize))
	defer readCloser.Close()
	body := bufio.NewReader(readCloser)

	contentType := r.Header.Get("Content-Type")
	if mimeguesser.IsGeneric(contentType) {
		head, _ := body.Peek(512)
		contentType = s.mimeGuesser.FromBytes(key, head)
	}

	opts := storage.PutOptions{ContentType: contentType}
	if err := driver.Put(r.Context(), key, body, r.ContentLength, opts); err != nil {
		s.handlePutError(err, w, r)
		return
	}

	// the upload supersedes a placeholder directory of the same name
	if err := driver.Delete(r.Context(), treeKey(key)); err != nil {
		log.WithError(err).Error("cannot delete placeholder superseded by upload")
	}

	// if object did not exist, http code is 201, else 204.
	if info == nil {
		w.WriteHeader(http.StatusCreated)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	return
}

func (s *svc) handleFinderRequest(w http.ResponseWriter, r *http.Request) error {
	log := keys.MustGetLog(r.Context())

	/*
	   Many webservers will not cooperate well with Finder PUT requests,
	   because it uses 'Chunked' transfer encoding for the request body.
	   The symptom of this problem is that Finder sends files to the
	   server, but they arrive as 0-length files.
	   If we don't do anything, the user might think they are uploading
	   files successfully, but they end up empty on the server. Instead,
	   we throw back an error if we detect this.
	   The reason Finder uses Chunked, is because it thinks the files
	   might change as it's being uploaded, and therefore the
	   Content-Length can vary.
	   Instead it sends the X-Expected-Entity-Length header with the size
	   of the file at the very start of the request. If this header is set,
	   but we don't get a request body we will fail the request to
	   protect the end-user.
	*/
	log.Warnf("intercepting Finder problem (Content-Length:%s X-Expected-Entity-Length:%s)", r.Header.Get("Content-Length"), r.Header.Get("X-Expected-Entity-Length"))

	expected := r.Header.Get("X-Expected-Entity-Length")
	expectedInt, err := strconv.ParseInt(expected, 10, 64)
	if err != nil {
		log.WithError(err).Error("X-Expected-Entity-Length is not a number")
		w.WriteHeader(http.StatusBadRequest)
		return err
	}
	r.ContentLength = expectedInt
	return nil
}

func (s *svc) requestSuffersFinderProblem(r *http.Request) bool {
	return r.Header.Get("X-Expected-Entity-Length") != ""
}

func (s *svc) requestHasContentRange(r *http.Request) bool {
	/*
	   Content-Range is dangerous for PUT requests:  PUT per definition
	   stores a full resource.  draft-ietf-httpbis-p2-semantics-15 says
	   in section 7.6:
	     An origin server SHOULD reject any PUT request that contains a
	     Content-Range header field, since it might be misinterpreted as
	     partial content (or might be partial content that is being mistakenly
	     PUT as a full representation).
	   This clarifies RFC2616 section 9.6:
	     The recipient of the entity MUST NOT ignore any Content-*
	     (e.g. Content-Range) headers that it does not understand or implement
	     and MUST return a 501 (Not Implemented) response in such cases.
	   OTOH is a PUT request with a Content-Range currently the only way to
	   continue an aborted upload request and is supported by curl, mod_dav,
	   Tomcat and others.  Since some clients do use this feature which results
	   in unexpected behaviour, we reject all PUT requests with a
	   Content-Range for now.
	*/
	return r.Header.Get("Content-Range") != ""
}

func (s *svc) handlePutError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())

	if err.Error() == "http: request body too large" {
		log.WithError(err).Error("request body max size exceed")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	if codeErr, ok := err.(*codes.Err); ok {
		if codeErr.Code == codes.NotFound {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if codeErr.Code == codes.BadInputData {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if codeErr.Code == codes.TooBig {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
	}
	log.WithError(err).Error("cannot save blob")
	w.WriteHeader(http.StatusInternalServerError)
	return
}
