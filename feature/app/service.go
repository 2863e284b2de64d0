package app

import (
	"net/url"
	"time"

	"app-webserver/core/server"
)

// Server states reported by Status.
const (
	StateRunning = "running"
	StateStopped = "stopped"
)

// Instance is the part of the web server the status endpoint reads.
type Instance interface {
	URL() *url.URL
	SpaHash() (string, error)
	Running() bool
	StartedAt() time.Time
}

// Status is the payload of GET /api/app/status.
type Status struct {
	State     string     `json:"state"`
	URL       string     `json:"url,omitempty"`
	SpaHash   string     `json:"spaHash,omitempty"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	Version   string     `json:"version"`
}

// Service answers the app namespace.
type Service struct {
	version   string
	providers []AdProvider
	instance  func() (Instance, bool)
}

// NewService creates the app service. The status reflects the live server
// instance, looked up on each call.
func NewService(version string, providers []AdProvider) *Service {
	return &Service{
		version:   version,
		providers: providers,
		instance: func() (Instance, bool) {
			s, ok := server.Current()
			if !ok {
				return nil, false
			}
			return s, true
		},
	}
}

// Status reports the state of the running server, if any.
func (s *Service) Status() Status {
	st := Status{State: StateStopped, Version: s.version}

	inst, ok := s.instance()
	if !ok || !inst.Running() {
		return st
	}

	st.State = StateRunning
	st.URL = inst.URL().String()
	if hash, err := inst.SpaHash(); err == nil {
		st.SpaHash = hash
	}
	if started := inst.StartedAt(); !started.IsZero() {
		st.StartedAt = &started
	}
	return st
}

// AdProviders lists providers allowed in country. An empty country skips
// the country filter; overVpn keeps only providers that can show over VPN.
func (s *Service) AdProviders(country string, overVpn bool) []AdProviderView {
	views := make([]AdProviderView, 0, len(s.providers))
	for _, p := range s.providers {
		if country != "" && !p.Allows(country) {
			continue
		}
		if overVpn && !p.CanShowOverVpn {
			continue
		}
		views = append(views, p.view())
	}
	return views
}
