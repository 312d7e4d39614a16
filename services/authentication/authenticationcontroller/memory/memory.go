package memory

import (
	"errors"

	"github.com/davbox/davboxd/config"
	"github.com/davbox/davboxd/entities"
	"github.com/davbox/davboxd/services/authentication/authenticationcontroller"
	"github.com/davbox/davboxd/services/authentication/lib"
)

type controller struct {
	conf          *config.Config
	users         []config.AuthenticationMemoryUser
	authenticator *lib.Authenticator
}

// New returns an AuthenticationController that
// keeps users in memory from the directives. This controller is meant
// for small deployments and testing.
func New(conf *config.Config) (authenticationcontroller.AuthenticationController, error) {
	dirs := conf.GetDirectives()
	authenticator := lib.NewAuthenticator(dirs.Server.JWTSecret, dirs.Server.JWTSigningMethod)

	return &controller{
		conf:          conf,
		users:         dirs.Authentication.Memory.Users,
		authenticator: authenticator,
	}, nil
}

func (c *controller) Authenticate(username, password string) (string, error) {
	for _, u := range c.users {
		if u.Username == username && u.Password == password {
			return c.authenticator.CreateToken(&entities.User{
				Username:    u.Username,
				Email:       u.Email,
				DisplayName: u.DisplayName,
			})
		}
	}
	return "", errors.New("user not found")
}
