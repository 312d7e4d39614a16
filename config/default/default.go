package defaul

import (
	"github.com/davbox/davboxd/config"
)

// DefaultDirectives represents the default configuration used by Server. This default configuration
// must work out-of-the-box without using user supplied config files.
var DefaultDirectives = config.Directives{
	Server: config.Server{
		BaseURL:                       "/",
		Port:                          1502,
		JWTSecret:                     "you must change me",
		JWTSigningMethod:              "HS256",
		AppLog:                        "stdout",
		AppLogLevel:                   "info",
		AppLogMaxSize:                 100, // MiB
		HTTPAccessLog:                 "stdout",
		HTTPAccessLogLevel:            "info",
		HTTPAccessLogMaxSize:          100, // MiB
		ShutdownTimeout:               10,
		EnabledServices:               []string{"authentication", "webdav"},
		CORSEnabled:                   false,
		CORSAccessControlAllowOrigin:  []string{},
		CORSAccessControlAllowMethods: []string{"GET", "POST", "HEAD", "PUT", "DELETE"},
		CORSAccessControlAllowHeaders: []string{"*"},
	},

	Authentication: config.Authentication{
		BaseURL: "/authentication/",
		Type:    "memory",

		Memory: config.AuthenticationMemory{
			Users: getDefaultMemoryUsers(),
		},

		SQL: config.AuthenticationSQL{
			Driver: "sqlite3",
			DSN:    "/var/lib/davboxd/users.db",
		},
	},

	WebDAV: config.WebDAV{
		BaseURL:           "/webdav/",
		UploadMaxFileSize: 8589934592, // 8 GiB
		LockManager:       "memory",
		LockTimeout:       600, // seconds
	},

	Storage: config.Storage{
		Type: "memory",

		S3: config.StorageS3{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			UseSSL:    false,
		},

		Buckets: []config.StorageBucket{
			{Name: "default", Bucket: "davbox"},
		},
	},
}

type conf struct{}

// New returns a configuration source serving the default directives.
func New() config.Source {
	return &conf{}
}

// LoadDirectives returns a copy of the default directives.
func (c *conf) LoadDirectives() (*config.Directives, error) {
	directives := DefaultDirectives
	return &directives, nil
}

func getDefaultMemoryUsers() []config.AuthenticationMemoryUser {
	return []config.AuthenticationMemoryUser{
		{
			Username:    "demo",
			Email:       "demo@example.com",
			DisplayName: "Demo User",
			Password:    "demo",
		},
	}
}
