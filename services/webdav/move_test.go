package webdav

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davbox/davboxd/codes"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a.txt", "x", "text/plain")

	r := o.davRequest(t, "MOVE", "a.txt", nil)
	r.Header.Set("Destination", "/webdav/default/b.txt")
	w := httptest.NewRecorder()
	o.service.Move(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	reader, _, err := o.driver.Get(context.Background(), "b.txt")
	require.Nil(t, err)
	defer reader.Close()
	data, err := ioutil.ReadAll(reader)
	require.Nil(t, err)
	require.Equal(t, "x", string(data))

	_, err = o.driver.Head(context.Background(), "a.txt")
	require.True(t, codes.IsNotFound(err))
}

func TestMove_withMissingDestinationHeader(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a.txt", "x", "text/plain")

	r := o.davRequest(t, "MOVE", "a.txt", nil)
	w := httptest.NewRecorder()
	o.service.Move(w, r)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMove_withMissingSource(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	r := o.davRequest(t, "MOVE", "nothere.txt", nil)
	r.Header.Set("Destination", "/webdav/default/b.txt")
	w := httptest.NewRecorder()
	o.service.Move(w, r)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMove_withBadOverwrite(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a.txt", "x", "text/plain")

	r := o.davRequest(t, "MOVE", "a.txt", nil)
	r.Header.Set("Destination", "/webdav/default/b.txt")
	r.Header.Set("Overwrite", "X")
	w := httptest.NewRecorder()
	o.service.Move(w, r)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMove_withOverwriteFalseAndExistingDestination(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a.txt", "x", "text/plain")
	o.putBlob(t, "b.txt", "y", "text/plain")

	r := o.davRequest(t, "MOVE", "a.txt", nil)
	r.Header.Set("Destination", "/webdav/default/b.txt")
	r.Header.Set("Overwrite", "F")
	w := httptest.NewRecorder()
	o.service.Move(w, r)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestMove_withSameSourceAndDestination(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a.txt", "x", "text/plain")

	r := o.davRequest(t, "MOVE", "a.txt", nil)
	r.Header.Set("Destination", "/webdav/default/a.txt")
	w := httptest.NewRecorder()
	o.service.Move(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := o.driver.Head(context.Background(), "a.txt")
	require.Nil(t, err)
}

func TestMove_withTree(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a/f.txt", "x", "text/plain")
	o.putBlob(t, "a/sub/g.txt", "y", "text/plain")

	r := o.davRequest(t, "MOVE", "a/", nil)
	r.Header.Set("Destination", "/webdav/default/b/")
	w := httptest.NewRecorder()
	o.service.Move(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	reader, _, err := o.driver.Get(context.Background(), "b/f.txt")
	require.Nil(t, err)
	defer reader.Close()
	data, err := ioutil.ReadAll(reader)
	require.Nil(t, err)
	require.Equal(t, "x", string(data))

	_, err = o.driver.Head(context.Background(), "b/sub/g.txt")
	require.Nil(t, err)

	_, err = o.driver.Head(context.Background(), "a/f.txt")
	require.True(t, codes.IsNotFound(err))
	_, err = o.driver.Head(context.Background(), "a/sub/g.txt")
	require.True(t, codes.IsNotFound(err))
}

func TestMove_withEmptyPlaceholderTree(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putTreePlaceholder(t, "empty/")

	r := o.davRequest(t, "MOVE", "empty/", nil)
	r.Header.Set("Destination", "/webdav/default/renamed/")
	w := httptest.NewRecorder()
	o.service.Move(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	_, err := o.driver.Head(context.Background(), "renamed/")
	require.Nil(t, err)
	_, err = o.driver.Head(context.Background(), "empty/")
	require.True(t, codes.IsNotFound(err))
}

func TestMove_withCrossBucketDestination(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "a.txt", "x", "text/plain")

	r := o.davRequest(t, "MOVE", "a.txt", nil)
	r.Header.Set("Destination", "/webdav/otherbucket/a.txt")
	w := httptest.NewRecorder()
	o.service.Move(w, r)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
