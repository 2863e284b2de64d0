package server

import (
	"path"
	"time"

	"app-webserver/core/apperr"
	"app-webserver/core/bundle"
	"app-webserver/core/codec"
	"app-webserver/core/logger"
	"app-webserver/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	mountStatic   = "static"
	mountFallback = "fallback"
	mountMetrics  = "metrics"
	mountLocal    = "mount"

	staticMaxAge = 3600
)

// newApp builds the fiber application. Order matters: CORS first, then the
// API namespaces, then static files, then the SPA fallback.
func (s *Server) newApp(b *bundle.Bundle) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               "app-webserver",
		DisableStartupMessage: true,
		ErrorHandler:          s.codec.ErrorHandler,
		JSONEncoder:           codec.Marshal,
	})

	app.Use(s.cors.Handler())
	app.Use(rayid.New())
	app.Use(s.logRequests)
	app.Use(recover.New())

	if s.cfg.Metrics {
		app.Get("/metrics", func(c *fiber.Ctx) error {
			c.Locals(mountLocal, mountMetrics)
			return c.Next()
		}, adaptor.HTTPHandler(promhttp.HandlerFor(s.metrics.Gatherer(), promhttp.HandlerOpts{})))
	}

	if err := s.routes.LoadAll(app); err != nil {
		return nil, err
	}

	app.Static("/", b.Path, s.staticConfig())
	app.Use(s.spaFallback(b.Index))

	return app, nil
}

// staticConfig caches file handlers and sets max-age in production; debug
// disables both so a rebuilt bundle shows up immediately.
func (s *Server) staticConfig() fiber.Static {
	if s.cfg.Debug {
		return fiber.Static{
			CacheDuration: -1,
			ModifyResponse: func(c *fiber.Ctx) error {
				c.Set(fiber.HeaderCacheControl, "no-store")
				return nil
			},
		}
	}
	return fiber.Static{
		CacheDuration: 10 * time.Second,
		MaxAge:        staticMaxAge,
	}
}

// spaFallback answers paths the static mount could not map. Extension-less
// paths are client-side routes and get the index document; anything else is
// a missing asset.
func (s *Server) spaFallback(index []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if path.Ext(c.Path()) != "" {
			return apperr.New(apperr.KindRouteNotFound, "no asset at %s", c.Path())
		}
		c.Locals(mountLocal, mountFallback)
		s.metrics.SpaFallbacks.Inc()
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusOK).Send(index)
	}
}

// logRequests resolves chain errors through the codec so the final status is
// known, then logs and counts the request.
func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := s.codec.ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	mount := s.mountOf(c)
	s.metrics.Requests.WithLabelValues(mount, statusLabel(status)).Inc()

	logger.WithRayID(s.logger, c).Debug("Request served",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("mount", mount),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *Server) mountOf(c *fiber.Ctx) string {
	if prefix, ok := s.routes.Match(c.Path()); ok {
		return prefix
	}
	if m, ok := c.Locals(mountLocal).(string); ok {
		return m
	}
	return mountStatic
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
