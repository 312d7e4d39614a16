package helpers

import (
	"fmt"
	"io/ioutil"
	"net/url"
	"os"
	"strings"
	"unicode"

	"github.com/davbox/davboxd/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SanitizeURL checks if the parameter "access_token" is in the request
// and overwrites it with "REDACTED" to avoid leaks in the logs.
func SanitizeURL(uri *url.URL) string {
	if uri == nil {
		return ""
	}
	copy := *uri
	params := copy.Query()
	if len(params.Get("access_token")) > 0 {
		params.Set("access_token", "REDACTED")
		copy.RawQuery = params.Encode()
	}
	return copy.String()
}

// RedactString returns a string that has it first half
// redacted with "X" symbols to avoid leaks in log files.
func RedactString(v string) string {
	length := len(v)
	if length == 0 {
		return ""
	}
	if length == 1 {
		return "X"
	}
	half := length / 2
	right := v[half:]
	hidden := strings.Repeat("X", 10)
	return strings.Join([]string{hidden, right}, "")
}

// GetAppLogger returns an already configured log for logging application events.
func GetAppLogger(conf *config.Config) *logrus.Entry {
	dirs := conf.GetDirectives()
	return NewLogger(dirs.Server.AppLogLevel, dirs.Server.AppLog,
		dirs.Server.AppLogMaxSize, dirs.Server.AppLogMaxAge, dirs.Server.AppLogMaxBackups)
}

// GetHTTPAccessLogger returns an already configured log for logging out HTTP requests.
func GetHTTPAccessLogger(conf *config.Config) *logrus.Entry {
	dirs := conf.GetDirectives()
	return NewLogger(dirs.Server.HTTPAccessLogLevel, dirs.Server.HTTPAccessLog,
		dirs.Server.HTTPAccessLogMaxSize, dirs.Server.HTTPAccessLogMaxAge, dirs.Server.HTTPAccessLogMaxBackups)
}

// NewLogger returns a log configured with the input parameters.
func NewLogger(level, writer string, maxSize, maxAge, maxBackups int) *logrus.Entry {
	base := logrus.New()

	switch writer {
	case "stdout":
		base.Out = os.Stdout
	case "stderr":
		base.Out = os.Stderr
	case "":
		base.Out = ioutil.Discard
	default:
		base.Out = &lumberjack.Logger{
			Filename:   writer,
			MaxSize:    maxSize,
			MaxAge:     maxAge,
			MaxBackups: maxBackups,
		}
	}

	logrusLevel, err := logrus.ParseLevel(level)
	// if provided level is not supported, default to Info level
	if err != nil {
		base.Error(err)
		logrusLevel = logrus.InfoLevel
	}
	base.Level = logrusLevel

	log := logrus.NewEntry(base)
	return log
}

// ContentDisposition builds a Content-Disposition header value for the
// given file name. Non-ASCII names get the RFC 5987 filename* form next
// to an ASCII fallback so that both old and new clients render them.
func ContentDisposition(kind, filename string) string {
	if isASCII(filename) {
		return fmt.Sprintf("%s; filename=%q", kind, filename)
	}
	fallback := asciiFallback(filename)
	return fmt.Sprintf("%s; filename=%q; filename*=UTF-8''%s", kind, fallback, url.PathEscape(filename))
}

func isASCII(v string) bool {
	for _, r := range v {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func asciiFallback(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r > unicode.MaxASCII {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
