// Package apperr defines the failure taxonomy shared by the web server.
//
// Every failure the server can report is an *Error carrying a Kind. Startup
// failures (StorageUnavailable, ArchiveCorrupt, BindConflict) abort Start;
// per-request failures (RouteNotFound, HandlerFailure and the domain kinds
// used by handler namespaces) are turned into HTTP responses by core/codec.
//
// # Matching
//
// The package exports one sentinel per kind. An *Error matches a sentinel of
// the same kind under errors.Is, regardless of message or wrapped cause:
//
//	if errors.Is(err, apperr.ErrArchiveCorrupt) {
//	    // bundle is unusable
//	}
//
// Handlers that need a specific status use WithStatus; otherwise the status
// comes from Kind.Status.
package apperr
