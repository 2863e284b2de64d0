package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"app-webserver/core/apperr"
	"app-webserver/core/bundle"
	"app-webserver/core/codec"
	"app-webserver/core/loader"
	"app-webserver/core/metrics"
	"app-webserver/core/middleware/cors"
	"app-webserver/core/netif"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Options is the construction input of a Server.
type Options struct {
	// Archive is the UI bundle stream. Required; closed once materialized.
	Archive io.ReadCloser
	// Server carries the bind URL, default port and mode flags.
	Server Config
	// StorageRoot is the application storage folder; bundles go to <StorageRoot>/Temp/SPA.
	StorageRoot string
	// Features are the handler sets of the four API namespaces.
	Features loader.Features
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Metrics defaults to a fresh registry.
	Metrics *metrics.Registry
	// Interfaces lists local addresses for ListenAll; defaults to netif.PublicIPv4.
	Interfaces func() ([]net.IP, error)
}

// Server is the embedded web server: static UI bundle plus API namespaces.
type Server struct {
	url        *url.URL
	cfg        Config
	logger     *zap.Logger
	metrics    *metrics.Registry
	store      *bundle.Store
	codec      *codec.Codec
	routes     *loader.Manager
	cors       cors.Policy
	interfaces func() ([]net.IP, error)

	// mu serializes Start/Stop; holding it across materialization is the
	// start-in-progress guard.
	mu        sync.Mutex
	archive   io.ReadCloser
	app       *fiber.App
	listeners []net.Listener
	prefixes  []string
	startedAt time.Time
}

// New resolves the bind URL and prepares a Server without starting it.
func New(opts Options) (*Server, error) {
	if opts.Archive == nil {
		return nil, apperr.New(apperr.KindInvalidState, "archive stream is required")
	}

	u, err := resolveURL(opts.Server)
	if err != nil {
		return nil, err
	}

	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	interfaces := opts.Interfaces
	if interfaces == nil {
		interfaces = netif.PublicIPv4
	}

	cd := codec.New(l, m)
	return &Server{
		url:        u,
		cfg:        opts.Server,
		logger:     l,
		metrics:    m,
		store:      bundle.NewStore(opts.StorageRoot, l, m),
		codec:      cd,
		routes:     loader.NewManager(cd, opts.Features),
		cors:       cors.ForMode(opts.Server.Debug),
		interfaces: interfaces,
		archive:    opts.Archive,
	}, nil
}

// URL returns the resolved listen URL.
func (s *Server) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := *s.url
	return &u
}

// SpaHash returns the content hash of the served bundle. It fails with
// InvalidState until the server has started once.
func (s *Server) SpaHash() (string, error) {
	b, err := s.store.Current()
	if err != nil {
		return "", err
	}
	return b.Hash, nil
}

// Prefixes returns the listen URLs of the running server.
func (s *Server) Prefixes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.prefixes...)
}

// Running reports whether the listener is accepting connections.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.app != nil
}

// StartedAt returns when the server last started, zero if it is not running.
func (s *Server) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.startedAt
}

// CORS returns the cross-origin policy in effect.
func (s *Server) CORS() cors.Policy {
	return s.cors
}

// Start materializes the bundle, binds every listen prefix and begins serving
// in the background. Calling Start on a running server is a no-op. A failure
// leaves no listener behind.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.app != nil {
		return nil
	}
	if err := claim(s); err != nil {
		return err
	}

	app, listeners, err := s.start()
	if err != nil {
		release(s)
		return err
	}

	s.app = app
	s.listeners = listeners
	s.startedAt = time.Now()
	s.metrics.Running.Set(1)

	for _, ln := range listeners {
		go func(ln net.Listener) {
			if err := app.Listener(ln); err != nil && !errors.Is(err, net.ErrClosed) {
				s.logger.Error("Listener stopped", zap.String("addr", ln.Addr().String()), zap.Error(err))
			}
		}(ln)
	}

	s.logger.Info("Web server started",
		zap.String("url", s.url.String()),
		zap.Strings("prefixes", s.prefixes),
		zap.String("cors", s.cors.Mode().String()),
		zap.Bool("debug", s.cfg.Debug))
	return nil
}

func (s *Server) start() (*fiber.App, []net.Listener, error) {
	b, err := s.store.Materialize(s.archive)
	if err != nil {
		return nil, nil, err
	}
	s.archive = nil

	primary, err := listen(s.url.Host)
	if err != nil {
		return nil, nil, err
	}
	if s.url.Port() == "0" {
		s.url.Host = primary.Addr().String()
	}

	listeners := []net.Listener{primary}
	s.prefixes = s.listenPrefixes()
	for _, p := range s.prefixes[1:] {
		u, _ := url.Parse(p)
		ln, err := listen(u.Host)
		if err != nil {
			closeAll(listeners)
			s.prefixes = nil
			return nil, nil, err
		}
		listeners = append(listeners, ln)
	}

	app, err := s.newApp(b)
	if err != nil {
		closeAll(listeners)
		s.prefixes = nil
		return nil, nil, err
	}
	return app, listeners, nil
}

// Stop closes every listener and releases the instance slot without waiting
// for in-flight requests. Stopping a stopped server is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.app == nil {
		return nil
	}

	// An already cancelled context makes fiber close listeners and idle
	// connections and return immediately.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.app.ShutdownWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Shutdown reported an error", zap.Error(err))
	}
	closeAll(s.listeners)

	s.app = nil
	s.listeners = nil
	s.prefixes = nil
	s.startedAt = time.Time{}
	s.metrics.Running.Set(0)
	release(s)

	s.logger.Info("Web server stopped", zap.String("url", s.url.String()))
	return nil
}

// Close stops the server and releases the archive stream if it was never
// consumed. It is safe on every exit path, including a failed Start.
func (s *Server) Close() error {
	err := s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.archive != nil {
		_ = s.archive.Close()
		s.archive = nil
	}
	return err
}

// listenPrefixes returns the resolved URL followed by one URL per local IPv4
// address when ListenAll is set, without duplicates.
func (s *Server) listenPrefixes() []string {
	prefixes := []string{s.url.String()}
	if !s.cfg.ListenAll {
		return prefixes
	}

	ips, err := s.interfaces()
	if err != nil {
		s.logger.Warn("Interface discovery failed, listening on the primary URL only", zap.Error(err))
		return prefixes
	}

	seen := map[string]struct{}{prefixes[0]: {}}
	port := s.url.Port()
	for _, ip := range ips {
		p := (&url.URL{Scheme: "http", Host: net.JoinHostPort(ip.String(), port)}).String()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		prefixes = append(prefixes, p)
	}
	return prefixes
}

// resolveURL picks the explicit URL, or loopback on the preferred port, or a
// free loopback port when the preferred one is taken.
func resolveURL(cfg Config) (*url.URL, error) {
	if cfg.URL != "" {
		u, err := parseBindURL(cfg.URL)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidState, err, "resolve bind url")
		}
		return u, nil
	}

	preferred := cfg.DefaultPort
	if preferred == 0 {
		preferred = DefaultPort
	}
	port, err := freeLoopbackPort(preferred)
	if err != nil {
		return nil, err
	}
	return &url.URL{Scheme: "http", Host: net.JoinHostPort("127.0.0.1", strconv.Itoa(port))}, nil
}

func freeLoopbackPort(preferred int) (int, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(preferred)))
	if err != nil {
		ln, err = net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return 0, apperr.Wrap(apperr.KindBindConflict, err, "find a free loopback port")
		}
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()
	return port, nil
}

func listen(hostport string) (net.Listener, error) {
	ln, err := net.Listen("tcp", hostport)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBindConflict, err, "listen on %s", hostport)
	}
	return ln, nil
}

func closeAll(listeners []net.Listener) {
	for _, ln := range listeners {
		_ = ln.Close()
	}
}
