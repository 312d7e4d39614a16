package webdav

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/davbox/davboxd/entities"
)

// defaultPropNames is the property set served when the PROPFIND body is
// empty, unparseable or asks for allprop.
var defaultPropNames = []string{
	"displayname",
	"resourcetype",
	"getcontentlength",
	"getlastmodified",
	"getcontenttype",
}

// propNames collects the names of the properties enclosed in a
// <D:prop> element. Nested property values are skipped; only the names
// matter for filtering.
type propNames []xml.Name

// UnmarshalXML appends the property names enclosed within start to pn.
func (pn *propNames) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		t, err := d.Token()
		if err != nil {
			return err
		}
		switch e := t.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			*pn = append(*pn, e.Name)
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

type propfindXML struct {
	XMLName  xml.Name  `xml:"DAV: propfind"`
	Allprop  *struct{} `xml:"DAV: allprop"`
	Propname *struct{} `xml:"DAV: propname"`
	Prop     propNames `xml:"DAV: prop"`
}

// readPropfind parses a PROPFIND request body into the list of requested
// property names. Quirky clients send empty or malformed bodies; those
// fall back to the default property set instead of failing the request.
func readPropfind(r io.Reader) []string {
	pf := &propfindXML{}
	if r == nil {
		return defaultPropNames
	}
	if err := xml.NewDecoder(r).Decode(pf); err != nil {
		return defaultPropNames
	}
	if pf.Allprop != nil || len(pf.Prop) == 0 {
		return defaultPropNames
	}
	names := make([]string, 0, len(pf.Prop))
	for _, name := range pf.Prop {
		names = append(names, name.Local)
	}
	return names
}

type responseXML struct {
	XMLName             xml.Name      `xml:"d:response"`
	Href                string        `xml:"d:href"`
	Propstat            []propstatXML `xml:"d:propstat"`
	Status              string        `xml:"d:status,omitempty"`
	ResponseDescription string        `xml:"d:responsedescription,omitempty"`
}

type propstatXML struct {
	// Prop requires DAV: to be the default namespace in the enclosing
	// XML. This is due to the standard encoding/xml package currently
	// not honoring namespace declarations inside a xmltag with a
	// parent element for anonymous slice elements.
	Prop   []propertyXML `xml:"d:prop>_ignored_"`
	Status string        `xml:"d:status"`
}

// propertyXML represents a single DAV resource property as defined in
// RFC 4918.
type propertyXML struct {
	// XMLName is the fully qualified name that identifies this property.
	XMLName xml.Name

	// Lang is an optional xml:lang attribute.
	Lang string `xml:"xml:lang,attr,omitempty"`

	// InnerXML contains the XML representation of the property value.
	// Property values of complex type or mixed-content must be
	// self-contained with according XML namespace declarations.
	InnerXML []byte `xml:",innerxml"`
}

// multistatusXML assembles the multistatus envelope around the marshaled
// responses. The d: prefix is declared here once for the whole document.
func multistatusXML(responses []*responseXML) (string, error) {
	responsesXML, err := xml.Marshal(&responses)
	if err != nil {
		return "", err
	}

	msg := `<?xml version="1.0" encoding="utf-8"?><d:multistatus xmlns:d="DAV:">`
	msg += string(responsesXML) + `</d:multistatus>`
	return msg, nil
}

// infosToXML renders one d:response per entity, each filtered down to
// the requested properties.
func (s *svc) infosToXML(bucket string, infos []*entities.ObjectInfo, requestedProps []string) (string, error) {
	responses := []*responseXML{}
	for _, info := range infos {
		responses = append(responses, s.infoToPropResponse(bucket, info, requestedProps))
	}
	return multistatusXML(responses)
}

func (s *svc) infoToPropResponse(bucket string, info *entities.ObjectInfo, requestedProps []string) *responseXML {
	found := []propertyXML{}
	missing := []propertyXML{}

	for _, name := range requestedProps {
		prop, ok := s.propertyFor(info, name)
		if !ok {
			missing = append(missing, propertyXML{XMLName: xml.Name{Local: "d:" + name}})
			continue
		}
		found = append(found, prop)
	}

	propStatList := []propstatXML{}
	if len(found) > 0 {
		propStatList = append(propStatList, propstatXML{Prop: found, Status: "HTTP/1.1 200 OK"})
	}
	if len(missing) > 0 {
		propStatList = append(propStatList, propstatXML{Prop: missing, Status: "HTTP/1.1 404 Not Found"})
	}

	return &responseXML{
		Href:     s.hrefFor(bucket, info),
		Propstat: propStatList,
	}
}

// propertyFor renders a single live property of the entity. Collections
// carry empty getcontentlength and getcontenttype elements; synthesized
// trees have no modification time to report.
func (s *svc) propertyFor(info *entities.ObjectInfo, name string) (propertyXML, bool) {
	prop := propertyXML{XMLName: xml.Name{Local: "d:" + name}}
	isTree := info.Type == entities.ObjectTypeTree

	switch name {
	case "displayname":
		prop.InnerXML = []byte(escapeXML(displayName(info.PathSpec)))
	case "resourcetype":
		if isTree {
			prop.InnerXML = []byte("<d:collection/>")
		}
	case "getcontentlength":
		if !isTree {
			prop.InnerXML = []byte(fmt.Sprintf("%d", info.Size))
		}
	case "getcontenttype":
		if !isTree {
			prop.InnerXML = []byte(escapeXML(info.MimeType))
		}
	case "getlastmodified":
		if info.ModTime == 0 {
			return prop, false
		}
		t := time.Unix(0, info.ModTime).UTC()
		prop.InnerXML = []byte(t.Format(http.TimeFormat))
	case "getetag":
		if info.ETag == "" {
			return prop, false
		}
		prop.InnerXML = []byte(escapeXML(`"` + info.ETag + `"`))
	case "supportedlock":
		prop.InnerXML = []byte(`<d:lockentry><d:lockscope><d:exclusive/></d:lockscope><d:locktype><d:write/></d:locktype></d:lockentry>`)
	default:
		return prop, false
	}
	return prop, true
}

// hrefFor builds the full request URI of an entity. Trees always carry
// the trailing slash so clients treat them as collections.
func (s *svc) hrefFor(bucket string, info *entities.ObjectInfo) string {
	dirs := s.conf.GetDirectives()
	href := path.Join("/", dirs.Server.BaseURL, dirs.WebDAV.BaseURL, bucket, info.PathSpec)
	if info.Type == entities.ObjectTypeTree && !strings.HasSuffix(href, "/") {
		href += "/"
	}
	return href
}

func displayName(pathSpec string) string {
	trimmed := strings.TrimSuffix(pathSpec, "/")
	if trimmed == "" {
		return "/"
	}
	return path.Base(trimmed)
}

func escapeXML(v string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(v))
	return b.String()
}
