package server

import (
	"fmt"
	"net/url"
)

// DefaultPort is used when neither an explicit URL nor a port is configured.
const DefaultPort = 9090

// Config holds configuration for the embedded HTTP server.
type Config struct {
	// URL is an explicit bind URL (http://host:port). It overrides DefaultPort.
	URL string `mapstructure:"url" default:""`
	// DefaultPort is the preferred loopback port; a free port is picked if it is taken.
	DefaultPort int `mapstructure:"default_port" default:"9090"`
	// ListenAll adds one listener per active non-loopback IPv4 address.
	ListenAll bool `mapstructure:"listen_all" default:"false"`
	// Debug relaxes CORS to any origin and disables static content caching.
	Debug bool `mapstructure:"debug" default:"false"`
	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool `mapstructure:"metrics" default:"false"`
}

// Validate checks that an explicit URL, if any, is a bindable http URL.
func (c Config) Validate() error {
	if c.DefaultPort < 0 || c.DefaultPort > 65535 {
		return fmt.Errorf("default port %d out of range", c.DefaultPort)
	}
	if c.URL == "" {
		return nil
	}
	_, err := parseBindURL(c.URL)
	return err
}

func parseBindURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" {
		return nil, fmt.Errorf("invalid url %q: only http is supported", raw)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("invalid url %q: missing host", raw)
	}
	if u.Port() == "" {
		u.Host = u.Hostname() + ":80"
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, nil
}
