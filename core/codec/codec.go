package codec

import (
	"errors"
	"reflect"

	"app-webserver/core/apperr"
	"app-webserver/core/logger"
	"app-webserver/core/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HandlerFunc is an API handler. It returns the value to serialize, or an error
// for the codec to map; it never writes the response itself.
type HandlerFunc func(c *fiber.Ctx) (any, error)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	TypeName   string `json:"typeName"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// Codec turns handler results and failures into HTTP responses.
type Codec struct {
	logger  *zap.Logger
	metrics *metrics.Registry
}

// New creates a Codec. Both arguments may be nil.
func New(l *zap.Logger, m *metrics.Registry) *Codec {
	if l == nil {
		l = zap.NewNop()
	}
	return &Codec{logger: l, metrics: m}
}

// Handle adapts h to a fiber handler applying the success and failure mapping.
func (cd *Codec) Handle(h HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := h(c)
		if err != nil {
			return cd.WriteError(c, err)
		}
		return cd.Write(c, result)
	}
}

// Write sends 204 for a nil result (nil interface, pointer, slice, map, ...)
// and 200 with a camelCase JSON body otherwise.
func (cd *Codec) Write(c *fiber.Ctx, result any) error {
	if isNil(result) {
		c.Status(fiber.StatusNoContent)
		c.Response().ResetBody()
		return nil
	}
	body, err := Marshal(result)
	if err != nil {
		return cd.WriteError(c, apperr.Wrap(apperr.KindHandlerFailure, err, "encode response"))
	}
	return send(c, fiber.StatusOK, body)
}

// WriteError sends the structured error body for err.
func (cd *Codec) WriteError(c *fiber.Ctx, err error) error {
	status, kind := classify(err)
	message := apperr.MessageOf(err)

	l := logger.WithRayID(cd.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error("Request failed",
			zap.String("path", c.Path()),
			zap.String("kind", string(kind)),
			zap.Error(err))
	} else {
		l.Debug("Request rejected",
			zap.String("path", c.Path()),
			zap.String("kind", string(kind)),
			zap.Int("status", status),
			zap.String("message", message))
	}
	if cd.metrics != nil {
		cd.metrics.HandlerFailures.WithLabelValues(string(kind)).Inc()
	}

	body, err := Marshal(ErrorBody{
		TypeName:   string(kind),
		Message:    message,
		StatusCode: status,
	})
	if err != nil {
		return err
	}
	return send(c, status, body)
}

func send(c *fiber.Ctx, status int, body []byte) error {
	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// ErrorHandler is the fiber.Config ErrorHandler. Not-found outside the API
// namespaces (static mount, SPA fallback) is a bare 404; everything else gets
// the structured error body.
func (cd *Codec) ErrorHandler(c *fiber.Ctx, err error) error {
	if _, kind := classify(err); kind == apperr.KindRouteNotFound {
		c.Status(fiber.StatusNotFound)
		c.Response().ResetBody()
		return nil
	}
	return cd.WriteError(c, err)
}

func classify(err error) (int, apperr.Kind) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind := apperr.KindHandlerFailure
		switch fe.Code {
		case fiber.StatusNotFound:
			kind = apperr.KindRouteNotFound
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
			kind = apperr.KindBadRequest
		case fiber.StatusMethodNotAllowed, fiber.StatusNotImplemented:
			kind = apperr.KindNotSupported
		}
		return fe.Code, kind
	}
	return apperr.StatusOf(err), apperr.KindOf(err)
}

// isNil reports a nil interface or a nil value of a nillable kind; all of
// them encode as JSON null.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
