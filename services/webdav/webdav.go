package webdav

import (
	"errors"
	"net/http"
	"time"

	"github.com/davbox/davboxd/config"
	"github.com/davbox/davboxd/keys"
	"github.com/davbox/davboxd/mimeguesser"
	"github.com/davbox/davboxd/services"
	"github.com/davbox/davboxd/services/authentication"
	"github.com/davbox/davboxd/services/authentication/authenticationcontroller"
	"github.com/davbox/davboxd/services/authentication/lib"
	"github.com/davbox/davboxd/services/webdav/lockmanager"
	lockmemory "github.com/davbox/davboxd/services/webdav/lockmanager/memory"
	locknop "github.com/davbox/davboxd/services/webdav/lockmanager/nop"
	"github.com/davbox/davboxd/storage"
	storagememory "github.com/davbox/davboxd/storage/memory"
	storages3 "github.com/davbox/davboxd/storage/s3"
)

const ServiceName string = "webdav"

// tokenCookieName is the session cookie set after a successful basic
// auth round trip so that follow-up requests skip the controller.
const tokenCookieName = "DavBox_Token"

type svc struct {
	conf                     *config.Config
	registry                 *storage.Registry
	lockManager              lockmanager.LockManager
	mimeGuesser              *mimeguesser.Guesser
	authenticationController authenticationcontroller.AuthenticationController
	authenticator            *lib.Authenticator
}

// New returns a new Service translating WebDAV verbs into object storage
// operations against the configured bucket bindings.
func New(cfg *config.Config) (services.Service, error) {
	dirs := cfg.GetDirectives()
	authenticator := lib.NewAuthenticator(dirs.Server.JWTSecret, dirs.Server.JWTSigningMethod)

	authenticationController, err := authentication.GetAuthenticationController(cfg)
	if err != nil {
		return nil, err
	}

	registry, err := GetStorageRegistry(cfg)
	if err != nil {
		return nil, err
	}

	lockManager, err := GetLockManager(cfg)
	if err != nil {
		return nil, err
	}

	return &svc{
		conf:                     cfg,
		registry:                 registry,
		lockManager:              lockManager,
		mimeGuesser:              mimeguesser.New(),
		authenticationController: authenticationController,
		authenticator:            authenticator,
	}, nil
}

// GetStorageRegistry builds the statically declared bucket bindings from
// the directives, each wrapped in the storage driver configured by
// storage.type.
func GetStorageRegistry(cfg *config.Config) (*storage.Registry, error) {
	dirs := cfg.GetDirectives()
	drivers := map[string]storage.Driver{}
	for _, bucket := range dirs.Storage.Buckets {
		if bucket.Name == "" {
			return nil, errors.New("bucket binding is missing a name")
		}
		switch dirs.Storage.Type {
		case "memory":
			drivers[bucket.Name] = storagememory.New()
		case "s3":
			driver, err := storages3.New(&storages3.Options{
				Endpoint:  dirs.Storage.S3.Endpoint,
				AccessKey: dirs.Storage.S3.AccessKey,
				SecretKey: dirs.Storage.S3.SecretKey,
				Region:    dirs.Storage.S3.Region,
				UseSSL:    dirs.Storage.S3.UseSSL,
				Bucket:    bucket.Bucket,
				Prefix:    bucket.Prefix,
			})
			if err != nil {
				return nil, err
			}
			drivers[bucket.Name] = driver
		default:
			return nil, errors.New("storage type " + dirs.Storage.Type + " does not exist")
		}
	}
	return storage.NewRegistry(drivers), nil
}

// GetLockManager returns the lock manager configured in the directives.
func GetLockManager(cfg *config.Config) (lockmanager.LockManager, error) {
	dirs := cfg.GetDirectives()
	timeout := time.Duration(dirs.WebDAV.LockTimeout) * time.Second
	if timeout <= 0 {
		timeout = 600 * time.Second
	}
	switch dirs.WebDAV.LockManager {
	case "", "nop":
		return locknop.New(timeout), nil
	case "memory":
		return lockmemory.New(timeout), nil
	default:
		return nil, errors.New("lock manager " + dirs.WebDAV.LockManager + " does not exist")
	}
}

func (s *svc) Name() string {
	return ServiceName
}

func (s *svc) BaseURL() string {
	dirs := s.conf.GetDirectives()
	base := dirs.WebDAV.BaseURL
	if base == "" {
		base = "/"
	}
	return base
}

// Endpoints is a listing of all endpoints available in the svc.
func (s *svc) Endpoints() map[string]map[string]http.HandlerFunc {
	return map[string]map[string]http.HandlerFunc{
		"/metrics": {
			"GET": services.MetricsHandler(),
		},
		"/{bucket}/{path:.*}": {
			"OPTIONS":   services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Options)),
			"PROPFIND":  services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Propfind)),
			"GET":       services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Get)),
			"HEAD":      services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Head)),
			"PUT":       services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Put)),
			"DELETE":    services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Delete)),
			"MKCOL":     services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Mkcol)),
			"MOVE":      services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Move)),
			"COPY":      services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Copy)),
			"LOCK":      services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Lock)),
			"UNLOCK":    services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Unlock)),
			"PROPPATCH": services.Instrument("/webdav", s.basicAuthHandlerFunc(s.Proppatch)),
		},
	}
}

// basicAuthHandlerFunc is a middleware function to authenticate HTTP requests.
// WebDAV clients talk HTTP basic auth; the first successful round trip
// leaves a session token cookie so later requests skip the controller.
func (s *svc) basicAuthHandlerFunc(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := keys.MustGetLog(r.Context())

		// try to get token from cookie
		authCookie, err := r.Cookie(tokenCookieName)
		if err == nil {
			user, err := s.authenticator.CreateUserFromToken(authCookie.Value)
			if err == nil {
				r = r.WithContext(keys.SetUser(r.Context(), user))
				log.WithField("user", user.Username).Info("authenticated request")
				handler(w, r)
				return
			}
			log.WithError(err).Warn("token is not valid anymore")
		}

		// try to get credentials using basic auth
		username, password, ok := r.BasicAuth()
		if !ok {
			log.Warn("basic auth not provided")
			w.Header().Set("WWW-Authenticate", "Basic realm=\"davbox credentials\"")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		// try to authenticate user with username and password
		token, err := s.authenticationController.Authenticate(username, password)
		if err != nil {
			log.WithError(err).Warn("unauthorized")
			w.Header().Set("WWW-Authenticate", "Basic realm=\"davbox credentials\"")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		// save token into cookie for further requests
		cookie := &http.Cookie{}
		cookie.Name = tokenCookieName
		cookie.Value = token
		http.SetCookie(w, cookie)

		user, err := s.authenticator.CreateUserFromToken(token)
		if err == nil {
			r = r.WithContext(keys.SetUser(r.Context(), user))
			log.WithField("user", user.Username).Info("authenticated request")
			handler(w, r)
			return
		}

		log.WithError(err).Error("token is not valid after being generated in the same request")
		w.WriteHeader(http.StatusInternalServerError)
	}
}
