package server_test

import (
	"testing"
	"time"

	"tinyhttpd/core/server"

	"github.com/stretchr/testify/assert"
)

func validConfig() server.Config {
	return server.Config{
		Port:                   8080,
		DocRoot:                ".",
		MaxConnections:         10,
		MaxRequestLine:         2048,
		ReadTimeoutSeconds:     30,
		WriteTimeoutSeconds:    30,
		ShutdownTimeoutSeconds: 10,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *server.Config)
		wantErr bool
	}{
		{"Valid", func(c *server.Config) {}, false},
		{"RequestLineAtBufferSize", func(c *server.Config) { c.MaxRequestLine = server.RequestBufferSize }, false},
		{"ZeroConnections", func(c *server.Config) { c.MaxConnections = 0 }, true},
		{"ZeroRequestLine", func(c *server.Config) { c.MaxRequestLine = 0 }, true},
		{"RequestLineOverBuffer", func(c *server.Config) { c.MaxRequestLine = server.RequestBufferSize + 1 }, true},
		{"NegativeReadTimeout", func(c *server.Config) { c.ReadTimeoutSeconds = -1 }, true},
		{"NegativeShutdownTimeout", func(c *server.Config) { c.ShutdownTimeoutSeconds = -1 }, true},
		{"EmptyDocRoot", func(c *server.Config) { c.DocRoot = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	c := validConfig()
	c.ReadTimeoutSeconds = 5
	c.WriteTimeoutSeconds = 0
	c.ShutdownTimeoutSeconds = 2

	assert.Equal(t, 5*time.Second, c.ReadTimeout())
	assert.Equal(t, time.Duration(0), c.WriteTimeout())
	assert.Equal(t, 2*time.Second, c.ShutdownTimeout())
}
