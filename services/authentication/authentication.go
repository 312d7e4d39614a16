package authentication

import (
	"errors"
	"net/http"

	"github.com/davbox/davboxd/config"
	"github.com/davbox/davboxd/services"
	"github.com/davbox/davboxd/services/authentication/authenticationcontroller"
	"github.com/davbox/davboxd/services/authentication/authenticationcontroller/memory"
	"github.com/davbox/davboxd/services/authentication/authenticationcontroller/sql"
)

const ServiceName string = "authentication"

type svc struct {
	conf                     *config.Config
	authenticationController authenticationcontroller.AuthenticationController
}

// New will instantiate and return
// a new svc that implements services.Service.
func New(conf *config.Config) (services.Service, error) {
	authenticationController, err := GetAuthenticationController(conf)
	if err != nil {
		return nil, err
	}

	return &svc{
		conf:                     conf,
		authenticationController: authenticationController,
	}, nil
}

// GetAuthenticationController returns the authentication controller
// configured in the directives.
func GetAuthenticationController(conf *config.Config) (authenticationcontroller.AuthenticationController, error) {
	dirs := conf.GetDirectives()
	switch dirs.Authentication.Type {
	case "memory":
		return memory.New(conf)
	case "sql":
		return sql.New(conf)
	default:
		return nil, errors.New("authentication type " + dirs.Authentication.Type + " does not exist")
	}
}

func (s *svc) Name() string {
	return ServiceName
}

func (s *svc) BaseURL() string {
	if s.conf.GetDirectives().Authentication.BaseURL == "" {
		return "/"
	}
	return s.conf.GetDirectives().Authentication.BaseURL
}

// Endpoints is a listing of all endpoints available in the svc.
func (s *svc) Endpoints() map[string]map[string]http.HandlerFunc {
	return map[string]map[string]http.HandlerFunc{
		"/metrics": {
			"GET": services.MetricsHandler(),
		},
		"/token": {
			"POST": services.Instrument("/token", s.Token),
		},
	}
}
