package memory

import (
	"testing"

	"github.com/davbox/davboxd/config"
	defaul "github.com/davbox/davboxd/config/default"
	mock_configsource "github.com/davbox/davboxd/config/mock"
	"github.com/davbox/davboxd/services/authentication/lib"
	"github.com/stretchr/testify/require"
)

var defaultDirs = defaul.DefaultDirectives

func newController(t *testing.T, dirs *config.Directives) *controller {
	mockSource := &mock_configsource.Source{}
	mockSource.On("LoadDirectives").Return(dirs, nil)
	conf := config.New([]config.Source{mockSource})
	err := conf.LoadDirectives()
	require.Nil(t, err)

	c, err := New(conf)
	require.Nil(t, err)
	return c.(*controller)
}

func TestNew(t *testing.T) {
	dirs := defaultDirs
	c := newController(t, &dirs)
	require.NotEmpty(t, c.users)
}

func TestAuthenticate(t *testing.T) {
	dirs := defaultDirs
	c := newController(t, &dirs)

	token, err := c.Authenticate("demo", "demo")
	require.Nil(t, err)
	require.NotEmpty(t, token)

	authenticator := lib.NewAuthenticator(dirs.Server.JWTSecret, dirs.Server.JWTSigningMethod)
	user, err := authenticator.CreateUserFromToken(token)
	require.Nil(t, err)
	require.Equal(t, "demo", user.Username)
	require.Equal(t, "demo@example.com", user.Email)
}

func TestAuthenticate_withBadPassword(t *testing.T) {
	dirs := defaultDirs
	c := newController(t, &dirs)

	_, err := c.Authenticate("demo", "wrong")
	require.NotNil(t, err)
}

func TestAuthenticate_withUnknownUser(t *testing.T) {
	dirs := defaultDirs
	c := newController(t, &dirs)

	_, err := c.Authenticate("nobody", "nobody")
	require.NotNil(t, err)
}
