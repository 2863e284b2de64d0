// Package server is the embedded web server of the host application.
//
// A Server serves the management UI bundle (materialized by core/bundle) at
// the root path and the four API namespaces (mounted by core/loader) under
// /api. It is created from Options and owns its listeners.
//
// # Startup
//
// Start materializes the bundle, binds the resolved URL (explicit URL, or
// 127.0.0.1 on the default port, or a free port when that one is taken) plus
// one listener per local IPv4 address when ListenAll is set, and serves in the
// background. A second Start on a running server does nothing; any failure
// closes whatever was bound.
//
// # Routing
//
// The middleware order is CORS, ray ID, request logging, panic recovery. Then
// the API namespaces, the static bundle directory and, last, the SPA fallback:
// an extension-less path with no file gets the cached index.html, any other
// miss is a bare 404.
//
// # Single instance
//
// At most one server is live per process. Init creates and starts it and fails
// with apperr.ErrAlreadyRunning while another one is live; Stop frees the slot.
// Close additionally releases an archive stream that was never consumed and is
// safe on every exit path.
//
// # Usage
//
//	srv, err := server.Init(server.Options{
//	    Archive:     archive,
//	    Server:      cfg.Server,
//	    StorageRoot: cfg.Bundle.StorageRoot,
//	    Features:    features,
//	    Logger:      logg,
//	})
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
package server
