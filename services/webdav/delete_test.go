package webdav

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/storage"
	"github.com/stretchr/testify/require"
)

func TestDelete(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "myblob.txt", "content", "text/plain")

	r := o.davRequest(t, "DELETE", "myblob.txt", nil)
	w := httptest.NewRecorder()
	o.service.Delete(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := o.driver.Head(context.Background(), "myblob.txt")
	require.True(t, codes.IsNotFound(err))
}

func TestDelete_isIdempotent(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	// deleting something that never existed is still a success
	r := o.davRequest(t, "DELETE", "nothere", nil)
	w := httptest.NewRecorder()
	o.service.Delete(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)

	r = o.davRequest(t, "DELETE", "nothere", nil)
	w = httptest.NewRecorder()
	o.service.Delete(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestDelete_withTree(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putTreePlaceholder(t, "tree/")
	o.putBlob(t, "tree/one.txt", "1", "text/plain")
	o.putBlob(t, "tree/sub/two.txt", "2", "text/plain")

	r := o.davRequest(t, "DELETE", "tree/", nil)
	w := httptest.NewRecorder()
	o.service.Delete(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)

	for _, key := range []string{"tree/", "tree/one.txt", "tree/sub/two.txt"} {
		_, err := o.driver.Head(context.Background(), key)
		require.True(t, codes.IsNotFound(err), key)
	}
}

func TestDelete_withRoot(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.putBlob(t, "one.txt", "1", "text/plain")
	o.putBlob(t, "sub/two.txt", "2", "text/plain")

	r := o.davRequest(t, "DELETE", "", nil)
	w := httptest.NewRecorder()
	o.service.Delete(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)

	result, err := o.driver.List(context.Background(), storage.ListOptions{})
	require.Nil(t, err)
	require.Empty(t, result.Objects)
}
