package server

import (
	"sync"

	"app-webserver/core/apperr"
)

var (
	instanceMu sync.Mutex
	instance   *Server
)

// Init creates and starts the process-wide server. It fails with
// apperr.ErrAlreadyRunning while another server is live; after that server
// is stopped, Init succeeds again. On failure nothing stays bound and the
// archive stream is closed.
func Init(opts Options) (*Server, error) {
	if _, ok := Current(); ok {
		if opts.Archive != nil {
			_ = opts.Archive.Close()
		}
		return nil, apperr.ErrAlreadyRunning
	}

	s, err := New(opts)
	if err != nil {
		if opts.Archive != nil {
			_ = opts.Archive.Close()
		}
		return nil, err
	}
	if err := s.Start(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Current returns the live server, if any.
func Current() (*Server, bool) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	return instance, instance != nil
}

// claim makes s the live instance or fails if another server holds the slot.
func claim(s *Server) error {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil && instance != s {
		return apperr.ErrAlreadyRunning
	}
	instance = s
	return nil
}

func release(s *Server) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == s {
		instance = nil
	}
}
