package webdav

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a.txt", "x", "text/plain")

	r := o.davRequest(t, "COPY", "a.txt", nil)
	r.Header.Set("Destination", "/webdav/default/b.txt")
	w := httptest.NewRecorder()
	o.service.Copy(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	// source survives a copy
	_, err := o.driver.Head(context.Background(), "a.txt")
	require.Nil(t, err)

	reader, _, err := o.driver.Get(context.Background(), "b.txt")
	require.Nil(t, err)
	defer reader.Close()
	data, err := ioutil.ReadAll(reader)
	require.Nil(t, err)
	require.Equal(t, "x", string(data))
}

func TestCopy_preservesMetadata(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a.txt", "x", "text/csv")

	r := o.davRequest(t, "COPY", "a.txt", nil)
	r.Header.Set("Destination", "/webdav/default/b.txt")
	w := httptest.NewRecorder()
	o.service.Copy(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	info, err := o.driver.Head(context.Background(), "b.txt")
	require.Nil(t, err)
	require.Equal(t, "text/csv", info.MimeType)
}

func TestCopy_withTree(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a/f.txt", "x", "text/plain")

	r := o.davRequest(t, "COPY", "a/", nil)
	r.Header.Set("Destination", "/webdav/default/b/")
	w := httptest.NewRecorder()
	o.service.Copy(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	_, err := o.driver.Head(context.Background(), "a/f.txt")
	require.Nil(t, err)
	_, err = o.driver.Head(context.Background(), "b/f.txt")
	require.Nil(t, err)
}

func TestCopy_withMissingSource(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	r := o.davRequest(t, "COPY", "nothere.txt", nil)
	r.Header.Set("Destination", "/webdav/default/b.txt")
	w := httptest.NewRecorder()
	o.service.Copy(w, r)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCopy_withMissingDestinationHeader(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a.txt", "x", "text/plain")

	r := o.davRequest(t, "COPY", "a.txt", nil)
	w := httptest.NewRecorder()
	o.service.Copy(w, r)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
