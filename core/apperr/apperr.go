package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure. Every Kind has a default HTTP status.
type Kind string

const (
	// KindStorageUnavailable means the extraction root cannot be read or written.
	KindStorageUnavailable Kind = "StorageUnavailable"
	// KindArchiveCorrupt means the UI bundle cannot be decompressed.
	KindArchiveCorrupt Kind = "ArchiveCorrupt"
	// KindInvalidState is API misuse, such as querying the hash before start.
	KindInvalidState Kind = "InvalidState"
	// KindRouteNotFound means no handler, file or fallback matched.
	KindRouteNotFound Kind = "RouteNotFound"
	// KindHandlerFailure is any unclassified failure raised by a namespace handler.
	KindHandlerFailure Kind = "HandlerFailure"
	// KindBindConflict means the requested address could not be bound.
	KindBindConflict Kind = "BindConflict"

	KindBadRequest   Kind = "BadRequest"
	KindNotFound     Kind = "NotFound"
	KindConflict     Kind = "Conflict"
	KindUnauthorized Kind = "Unauthorized"
	KindNotSupported Kind = "NotSupported"
)

// Status returns the default HTTP status for the kind.
func (k Kind) Status() int {
	switch k {
	case KindRouteNotFound, KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindConflict, KindBindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotSupported:
		return http.StatusNotImplemented
	case KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Status overrides the kind's default when non-zero.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// HTTPStatus returns the explicit status or the kind's default.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Kind.Status()
}

// Sentinels for errors.Is checks.
var (
	ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable}
	ErrArchiveCorrupt     = &Error{Kind: KindArchiveCorrupt}
	ErrInvalidState       = &Error{Kind: KindInvalidState}
	ErrRouteNotFound      = &Error{Kind: KindRouteNotFound}
	ErrHandlerFailure     = &Error{Kind: KindHandlerFailure}
	ErrBindConflict       = &Error{Kind: KindBindConflict}
	ErrNotFound           = &Error{Kind: KindNotFound}

	// ErrAlreadyRunning is returned by a second Init while a server is live.
	ErrAlreadyRunning = &Error{Kind: KindInvalidState, Message: "a web server instance is already running"}
)

// New returns a classified error.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// WithStatus returns a classified error carrying an explicit HTTP status.
func WithStatus(status int, kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Status: status, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or KindHandlerFailure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindHandlerFailure
}

// StatusOf returns the HTTP status for err; unclassified errors map to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
