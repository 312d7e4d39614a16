package webdav

import (
	"encoding/xml"
	"net/http"

	"github.com/davbox/davboxd/keys"
	"github.com/gorilla/mux"
)

type proppatchXML struct {
	XMLName xml.Name  `xml:"DAV: propertyupdate"`
	Set     propNames `xml:"DAV: set>prop"`
	Remove  propNames `xml:"DAV: remove>prop"`
}

// Proppatch implements the WebDAV PROPPATCH method. Dead properties are
// not stored anywhere, so every set and remove is acknowledged with 200
// and forgotten. Clients like Explorer PROPPATCH Win32 attributes right
// after an upload and abort the transfer when the server refuses.
func (s *svc) Proppatch(w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())

	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handlePropfindError(err, w, r)
		return
	}

	info, err := s.examineObject(r.Context(), driver, key)
	if err != nil {
		s.handlePropfindError(err, w, r)
		return
	}

	update := &proppatchXML{}
	if r.Body != nil {
		if err := xml.NewDecoder(r.Body).Decode(update); err != nil {
			log.WithError(err).Warn("cannot parse propertyupdate body")
		}
	}

	accepted := []propertyXML{}
	for _, name := range append(update.Set, update.Remove...) {
		accepted = append(accepted, propertyXML{XMLName: xml.Name{Local: "d:" + name.Local}})
	}

	response := &responseXML{Href: s.hrefFor(mux.Vars(r)["bucket"], info)}
	if len(accepted) > 0 {
		response.Propstat = []propstatXML{{Prop: accepted, Status: "HTTP/1.1 200 OK"}}
	}

	body, err := multistatusXML([]*responseXML{response})
	if err != nil {
		s.handlePropfindError(err, w, r)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(207)
	w.Write([]byte(body))
}
