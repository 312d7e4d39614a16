package mimeguesser

import (
	"strings"
	"testing"

	"github.com/davbox/davboxd/entities"
	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	g := New()
	assert.True(t, strings.HasPrefix(g.FromString("report.html"), "text/html"))
	assert.Equal(t, "application/pdf", g.FromString("report.pdf"))
}

func TestFromString_withUnknownExtension(t *testing.T) {
	g := New()
	assert.Equal(t, entities.ObjectTypeBLOBMimeType, g.FromString("noextension"))
}

func TestFromBytes(t *testing.T) {
	g := New()
	got := g.FromBytes("file.bin", []byte("%PDF-1.5 something"))
	assert.Equal(t, "application/pdf", got)
}

func TestFromBytes_fallsBackToExtension(t *testing.T) {
	g := New()
	// plain text sniffs are too generic to trust over the extension
	got := g.FromBytes("style.css", []byte("body { color: red }"))
	assert.True(t, strings.HasPrefix(got, "text/css"))
}

func TestFromObjectInfo_withTree(t *testing.T) {
	g := New()
	info := &entities.ObjectInfo{PathSpec: "a/", Type: entities.ObjectTypeTree}
	assert.Equal(t, entities.ObjectTypeTreeMimeType, g.FromObjectInfo(info))
}

func TestFromObjectInfo_withStoredType(t *testing.T) {
	g := New()
	info := &entities.ObjectInfo{PathSpec: "a.bin", Type: entities.ObjectTypeBLOB, MimeType: "text/csv"}
	assert.Equal(t, "text/csv", g.FromObjectInfo(info))
}

func TestFromObjectInfo_withGenericStoredType(t *testing.T) {
	g := New()
	info := &entities.ObjectInfo{PathSpec: "a.pdf", Type: entities.ObjectTypeBLOB, MimeType: "application/octet-stream"}
	assert.Equal(t, "application/pdf", g.FromObjectInfo(info))
}

func TestIsGeneric(t *testing.T) {
	assert.True(t, IsGeneric(""))
	assert.True(t, IsGeneric("application/octet-stream"))
	assert.True(t, IsGeneric("binary/octet-stream; charset=binary"))
	assert.False(t, IsGeneric("text/plain"))
}
