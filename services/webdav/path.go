package webdav

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/storage"
	"github.com/gorilla/mux"
)

// keyFromRequest resolves the bucket binding and the storage key of the
// request. Keys are slash delimited with no leading slash; a trailing
// slash in the request path survives normalization because it is the
// directory marker. The bucket root maps to the empty key.
func (s *svc) keyFromRequest(r *http.Request) (storage.Driver, string, error) {
	vars := mux.Vars(r)
	driver, err := s.registry.Get(vars["bucket"])
	if err != nil {
		return nil, "", err
	}
	key, err := normalizeKey(vars["path"])
	if err != nil {
		return nil, "", err
	}
	return driver, key, nil
}

// destinationFromRequest resolves the Destination header against the
// same bucket binding as the request path. Cross-binding destinations
// are rejected: there is no server-side copy between buckets.
func (s *svc) destinationFromRequest(r *http.Request) (string, error) {
	destination := r.Header.Get("Destination")
	if destination == "" {
		return "", codes.NewErr(codes.BadInputData, "destination header is missing")
	}
	destinationURL, err := url.ParseRequestURI(destination)
	if err != nil {
		return "", codes.NewErr(codes.BadInputData, "destination header is not a url")
	}

	// remove api base, service base and bucket binding to get the real key
	dirs := s.conf.GetDirectives()
	toTrim := path.Join("/", dirs.Server.BaseURL, dirs.WebDAV.BaseURL, mux.Vars(r)["bucket"]) + "/"
	if !strings.HasPrefix(destinationURL.Path, toTrim) {
		return "", codes.NewErr(codes.BadInputData, "destination is outside the source bucket binding")
	}
	return normalizeKey(strings.TrimPrefix(destinationURL.Path, toTrim))
}

// normalizeKey collapses repeated slashes, strips leading slashes and
// rejects traversal segments. The trailing slash is preserved.
func normalizeKey(raw string) (string, error) {
	var b strings.Builder
	var lastSlash bool
	for i := 0; i < len(raw); i++ {
		if raw[i] == '/' {
			if lastSlash {
				continue
			}
			lastSlash = true
		} else {
			lastSlash = false
		}
		b.WriteByte(raw[i])
	}
	key := strings.TrimPrefix(b.String(), "/")

	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", codes.NewErr(codes.BadInputData, "path contains a traversal segment")
		}
	}
	return key, nil
}

// isTreeKey reports whether key denotes a tree: the bucket root or any
// key carrying the trailing slash directory marker.
func isTreeKey(key string) bool {
	return key == "" || strings.HasSuffix(key, "/")
}

// treeKey returns key with the directory marker appended.
func treeKey(key string) string {
	if isTreeKey(key) {
		return key
	}
	return key + "/"
}
