package daemon

import (
	"errors"
	"os"
	"strings"

	"github.com/davbox/davboxd/config"
	defaul "github.com/davbox/davboxd/config/default"
	"github.com/davbox/davboxd/config/etcd"
	"github.com/davbox/davboxd/config/file"
)

// DefaultConfigFileName is the configuration file loaded when no source
// is given on the command line.
const DefaultConfigFileName = "davboxd.conf"

// GetConfigSources parses a configuration source locator of the form
// "file:/etc/davboxd.conf" or "etcd:http://localhost:2379" and returns
// the default source followed by the user supplied one, in merge order.
func GetConfigSources(locator string) ([]config.Source, error) {
	sources := []config.Source{defaul.New()}
	if locator == "" {
		// out of the box the daemon runs on defaults alone; the file in
		// the working directory is only merged when present
		if _, err := os.Stat(DefaultConfigFileName); err == nil {
			sources = append(sources, file.New(DefaultConfigFileName))
		}
		return sources, nil
	}

	protocol := "file"
	specific := locator
	if parts := strings.SplitN(locator, ":", 2); len(parts) == 2 {
		protocol = parts[0]
		specific = parts[1]
	}

	switch protocol {
	case "file":
		sources = append(sources, file.New(specific))
	case "etcd":
		source, err := etcd.New(specific, "", "", "")
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	default:
		return nil, errors.New("configuration protocol " + protocol + " does not exist")
	}
	return sources, nil
}
