package config

import (
	"errors"
	"sync"

	"github.com/imdario/mergo"
)

// New returns a new Config.
func New(sources []Source) *Config {
	conf := &Config{}
	conf.configSources = sources
	return conf
}

// Config is a configuration manager that loads configuration from different
// sources and merge them based on some priorities.
type Config struct {
	dirs    *Directives
	dirsMux sync.Mutex

	configSources []Source
}

// GetDirectives returns the configuration directives.
func (c *Config) GetDirectives() *Directives {
	c.dirsMux.Lock()
	defer c.dirsMux.Unlock()
	return c.dirs
}

// LoadDirectives retrieves and merges configurations from different sources.
func (c *Config) LoadDirectives() error {
	if len(c.configSources) == 0 {
		return errors.New("there are not configuration sources")
	}

	directives := []*Directives{}
	for _, src := range c.configSources {
		dirs, err := src.LoadDirectives()
		if err != nil {
			return err
		}
		directives = append(directives, dirs)
	}

	for i := range directives {
		if i+1 < len(directives) {
			if err := merge(directives[i+1], directives[i]); err != nil {
				return err
			}
		}
	}

	c.dirsMux.Lock()
	defer c.dirsMux.Unlock()
	c.dirs = directives[len(directives)-1]
	return nil
}

func merge(left, right *Directives) error {
	return mergo.Merge(left, right)
}

// Source represents a configuration source where configuration can be loaded. Configurations can be loaded from different
// sources like file, env, flags, etcd ...
type Source interface {
	LoadDirectives() (*Directives, error)
}

// Directives represents the different configuration options.
type Directives struct {
	Server         Server         `json:"server"`
	Authentication Authentication `json:"authentication"`
	WebDAV         WebDAV         `json:"webdav"`
	Storage        Storage        `json:"storage"`
}

// Server is the configuration section dedicated to the server.
type Server struct {
	BaseURL                       string   `json:"base_url"`
	Port                          int      `json:"port"`
	JWTSecret                     string   `json:"jwt_secret"`
	JWTSigningMethod              string   `json:"jwt_signing_method"`
	AppLog                        string   `json:"app_log"`
	AppLogLevel                   string   `json:"app_log_level"`
	AppLogMaxSize                 int      `json:"app_log_max_size"`
	AppLogMaxAge                  int      `json:"app_log_max_age"`
	AppLogMaxBackups              int      `json:"app_log_max_backups"`
	HTTPAccessLog                 string   `json:"http_access_log"`
	HTTPAccessLogLevel            string   `json:"http_access_log_level"`
	HTTPAccessLogMaxSize          int      `json:"http_access_log_max_size"`
	HTTPAccessLogMaxAge           int      `json:"http_access_log_max_age"`
	HTTPAccessLogMaxBackups       int      `json:"http_access_log_max_backups"`
	ShutdownTimeout               int      `json:"shutdown_timeout"`
	TLSEnabled                    bool     `json:"tls_enabled"`
	TLSCertificate                string   `json:"tls_certificate"`
	TLSPrivateKey                 string   `json:"tls_private_key"`
	EnabledServices               []string `json:"enabled_services"`
	CORSEnabled                   bool     `json:"cors_enabled"`
	CORSAccessControlAllowOrigin  []string `json:"cors_access_control_allow_origin"`
	CORSAccessControlAllowMethods []string `json:"cors_access_control_allow_methods"`
	CORSAccessControlAllowHeaders []string `json:"cors_access_control_allow_headers"`
}

// Authentication is the configuration section dedicated to the authentication service.
type Authentication struct {
	BaseURL string               `json:"base_url"`
	Type    string               `json:"type"`
	Memory  AuthenticationMemory `json:"memory"`
	SQL     AuthenticationSQL    `json:"sql"`
}

// AuthenticationMemoryUser is an user defined inline in the directives.
type AuthenticationMemoryUser struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// AuthenticationMemory is the configuration subsection dedicated to the authentication memory controller.
type AuthenticationMemory struct {
	Users []AuthenticationMemoryUser `json:"users"`
}

// AuthenticationSQL is the configuration subsection dedicated to the authentication sql controller.
type AuthenticationSQL struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

// WebDAV is the configuration section dedicated to the webdav service.
type WebDAV struct {
	BaseURL           string `json:"base_url"`
	UploadMaxFileSize int64  `json:"upload_max_file_size"`
	LockManager       string `json:"lock_manager"`
	LockTimeout       int    `json:"lock_timeout"`
}

// Storage is the configuration section dedicated to the storage bindings.
type Storage struct {
	Type    string          `json:"type"`
	S3      StorageS3       `json:"s3"`
	Buckets []StorageBucket `json:"buckets"`
}

// StorageS3 is the configuration subsection dedicated to the s3 storage driver.
type StorageS3 struct {
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Region    string `json:"region"`
	UseSSL    bool   `json:"use_ssl"`
}

// StorageBucket declares a named bucket binding exposed over WebDAV.
// Bindings are declared statically here instead of being discovered at
// runtime so that the set of exposed buckets is always explicit.
type StorageBucket struct {
	Name   string `json:"name"`
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix"`
}
