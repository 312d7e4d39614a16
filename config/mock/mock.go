package mock

import (
	"github.com/davbox/davboxd/config"
	"github.com/stretchr/testify/mock"
)

// Source mocks a config.Source for testing purposes.
type Source struct {
	mock.Mock
}

// LoadDirectives mocks the LoadDirectives call.
func (c *Source) LoadDirectives() (*config.Directives, error) {
	args := c.Called()
	return args.Get(0).(*config.Directives), args.Error(1)
}
