package server

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"runtime"
	"time"

	"github.com/davbox/davboxd/config"
	"github.com/davbox/davboxd/helpers"
	"github.com/davbox/davboxd/keys"
	"github.com/davbox/davboxd/services"
	"github.com/davbox/davboxd/services/authentication"
	"github.com/davbox/davboxd/services/webdav"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/tylerb/graceful"
)

// Server mounts the enabled services on a router and serves them with
// graceful shutdown.
type Server struct {
	srv     *graceful.Server
	conf    *config.Config
	appLog  *logrus.Entry
	httpLog *logrus.Entry
}

// New returns a new Server.
func New(conf *config.Config) *Server {
	directives := conf.GetDirectives()
	srv := &graceful.Server{
		NoSignalHandling: true,
		Timeout:          time.Duration(directives.Server.ShutdownTimeout) * time.Second,
		Server: &http.Server{
			Addr: fmt.Sprintf(":%d", directives.Server.Port),
		},
	}
	return &Server{
		srv:     srv,
		conf:    conf,
		appLog:  helpers.GetAppLogger(conf),
		httpLog: helpers.GetHTTPAccessLogger(conf),
	}
}

// Start configures the handler chain and blocks serving requests.
func (s *Server) Start() error {
	directives := s.conf.GetDirectives()
	handler, err := s.HandleRequest()
	if err != nil {
		return err
	}
	s.srv.Server.Handler = handler
	if directives.Server.TLSEnabled == true {
		return s.srv.ListenAndServeTLS(directives.Server.TLSCertificate, directives.Server.TLSPrivateKey)
	}
	return s.srv.ListenAndServe()
}

// StopChan returns a channel closed once the server has drained.
func (s *Server) StopChan() <-chan struct{} {
	return s.srv.StopChan()
}

// Stop triggers a graceful shutdown.
func (s *Server) Stop() {
	directives := s.conf.GetDirectives()
	s.srv.Stop(time.Duration(directives.Server.ShutdownTimeout) * time.Second)
}

// getServices instantiates the services listed in enabled_services.
func (s *Server) getServices() ([]services.Service, error) {
	enabled := []services.Service{}
	for _, name := range s.conf.GetDirectives().Server.EnabledServices {
		switch name {
		case authentication.ServiceName:
			svc, err := authentication.New(s.conf)
			if err != nil {
				return nil, err
			}
			enabled = append(enabled, svc)
		case webdav.ServiceName:
			svc, err := webdav.New(s.conf)
			if err != nil {
				return nil, err
			}
			enabled = append(enabled, svc)
		default:
			return nil, errors.New("service " + name + " does not exist")
		}
	}
	return enabled, nil
}

// HandleRequest builds the router with all enabled services mounted under
// their base URLs, wrapped in the logging, recovery and CORS chain.
func (s *Server) HandleRequest() (http.Handler, error) {
	directives := s.conf.GetDirectives()

	enabledServices, err := s.getServices()
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	for _, svc := range enabledServices {
		base := path.Join("/", directives.Server.BaseURL, svc.BaseURL())
		for endpoint, methods := range svc.Endpoints() {
			for method, handlerFunc := range methods {
				pattern := path.Join(base, endpoint)
				router.HandleFunc(pattern, handlerFunc).Methods(method)
				s.appLog.WithFields(logrus.Fields{
					"service":  svc.Name(),
					"method":   method,
					"endpoint": pattern,
				}).Info("endpoint mounted")
			}
		}
	}

	var handler http.Handler = router
	if directives.Server.CORSEnabled {
		corsHandler := cors.New(cors.Options{
			AllowedOrigins: directives.Server.CORSAccessControlAllowOrigin,
			AllowedMethods: directives.Server.CORSAccessControlAllowMethods,
			AllowedHeaders: directives.Server.CORSAccessControlAllowHeaders,
		})
		handler = corsHandler.Handler(handler)
	}

	handler = handlers.CombinedLoggingHandler(s.httpLog.Logger.Out, handler)
	return s.contextHandler(handler), nil
}

// contextHandler seeds each request context with a trace id and a request
// scoped logger, and converts panics into 500s.
func (s *Server) contextHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewV4().String()
		log := s.appLog.WithField("trace", traceID)

		ctx := r.Context()
		ctx = keys.SetTraceID(ctx, traceID)
		ctx = keys.SetLog(ctx, log)
		r = r.WithContext(ctx)

		defer func() {
			if rec := recover(); rec != nil {
				trace := make([]byte, 2048)
				count := runtime.Stack(trace, true)
				log.WithField("panic", rec).Errorf("recovered from panic, stack of %d bytes: %s", count, trace)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		log.WithField("method", r.Method).WithField("url", helpers.SanitizeURL(r.URL)).Info("request started")
		defer log.Info("request finished")
		handler.ServeHTTP(w, r)
	})
}
