package authentication

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/davbox/davboxd/keys"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func tokenRequest(t *testing.T, body *strings.Reader) *http.Request {
	var r *http.Request
	var err error
	if body == nil {
		r, err = http.NewRequest("POST", tokenURL, nil)
	} else {
		r, err = http.NewRequest("POST", tokenURL, body)
	}
	require.Nil(t, err)
	ctx := keys.SetLog(r.Context(), logrus.WithField("test", "test"))
	return r.WithContext(ctx)
}

func TestToken(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	o.mockAuthenticationController.On("Authenticate").Return("testtoken", nil)

	r := tokenRequest(t, strings.NewReader(`{"username":"demo", "password":"demo"}`))
	w := httptest.NewRecorder()
	handler := o.service.Endpoints()["/token"]["POST"]
	o.wrapRequest(w, r, handler)
	require.Equal(t, http.StatusOK, w.Code)

	authNRes := &TokenResponse{}
	err := json.NewDecoder(w.Body).Decode(authNRes)
	require.Nil(t, err)
	require.Equal(t, "testtoken", authNRes.AccessToken)
}

func TestToken_withNilBody(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	r := tokenRequest(t, nil)
	w := httptest.NewRecorder()
	handler := o.service.Endpoints()["/token"]["POST"]
	o.wrapRequest(w, r, handler)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestToken_withInvalidJSON(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	o.mockAuthenticationController.On("Authenticate").Return("testtoken", nil)

	r := tokenRequest(t, strings.NewReader("not json"))
	w := httptest.NewRecorder()
	handler := o.service.Endpoints()["/token"]["POST"]
	o.wrapRequest(w, r, handler)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToken_withAuthenticationControllerError(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	o.mockAuthenticationController.On("Authenticate").Return("", errors.New("user not found"))

	r := tokenRequest(t, strings.NewReader(`{"username":"demo", "password":"wrong"}`))
	w := httptest.NewRecorder()
	handler := o.service.Endpoints()["/token"]["POST"]
	o.wrapRequest(w, r, handler)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
