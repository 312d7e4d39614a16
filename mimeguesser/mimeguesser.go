package mimeguesser

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/davbox/davboxd/entities"
)

// generic content types that clients send when they have no idea what
// the payload is. They trigger the sniffing fallback on upload.
var genericMimeTypes = map[string]bool{
	"":                         true,
	"application/octet-stream": true,
	"binary/octet-stream":      true,
}

// Guesser infers content types for stored objects.
type Guesser struct{}

// New returns a new Guesser.
func New() *Guesser {
	return &Guesser{}
}

// FromString infers the mime type from the file name extension.
func (g *Guesser) FromString(name string) string {
	inferred := mime.TypeByExtension(filepath.Ext(name))
	if inferred == "" {
		return entities.ObjectTypeBLOBMimeType
	}
	return inferred
}

// FromBytes sniffs the mime type from the first bytes of the payload,
// falling back to the file name extension when sniffing is inconclusive.
func (g *Guesser) FromBytes(name string, head []byte) string {
	sniffed := http.DetectContentType(head)
	if !IsGeneric(sniffed) && !strings.HasPrefix(sniffed, "text/plain") {
		return sniffed
	}
	return g.FromString(name)
}

// FromObjectInfo infers the mime type of an object, tree or blob.
func (g *Guesser) FromObjectInfo(info *entities.ObjectInfo) string {
	if info.Type == entities.ObjectTypeTree {
		return entities.ObjectTypeTreeMimeType
	}
	if !IsGeneric(info.MimeType) {
		return info.MimeType
	}
	return g.FromString(info.PathSpec)
}

// IsGeneric reports whether the given content type carries no real
// information about the payload.
func IsGeneric(mimeType string) bool {
	base := mimeType
	if i := strings.Index(base, ";"); i != -1 {
		base = strings.TrimSpace(base[:i])
	}
	return genericMimeTypes[base]
}
