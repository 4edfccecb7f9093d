package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ido50/mccs/internal/logging"
	"github.com/ido50/mccs/internal/server/routes"
)

// AppOptions controls how the Fiber application serving the core
// pipeline behaves.
type AppOptions struct {
	Logger     *logrus.Logger
	Registry   *Registry
	ListenPort int
}

const contextKeyRequestID = "_mccs_request_id"

// NewApp builds a Fiber application that resolves each request's Host
// (in --vhost-mode) to a fileserver.Core and hands it off via
// Core.Handle: a recover middleware, a request-ID middleware, and a
// single catch-all route.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if opts.ListenPort <= 0 {
		return nil, fmt.Errorf("invalid listen port: %d", opts.ListenPort)
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
	})

	app.Use(recover.New())
	app.Use(requestIDMiddleware())

	routes.RegisterDiagnosticRoutes(app)

	app.All("/*", func(c fiber.Ctx) error {
		if isDiagnosticsPath(string(c.Request().URI().Path())) {
			return c.Next()
		}

		core, err := opts.Registry.CoreFor(getHostHeader(c))
		if err != nil {
			return renderHostUnmapped(c, opts.Logger, getHostHeader(c))
		}

		if err := handle(c.Context(), core, c); err != nil {
			opts.Logger.WithFields(logrus.Fields{
				"action": "handle_failed",
				"path":   string(c.Request().URI().Path()),
			}).Warn(err.Error())
			return c.SendStatus(fiber.StatusInternalServerError)
		}

		opts.Logger.WithFields(logging.RequestFields(
			getHostHeader(c),
			string(c.Request().URI().Path()),
			c.Response().StatusCode(),
			string(c.Response().Header.Peek(fiber.HeaderContentEncoding)),
		)).Debug("request served")

		return nil
	})

	return app, nil
}

func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

func renderHostUnmapped(c fiber.Ctx, logger *logrus.Logger, host string) error {
	logger.WithFields(logrus.Fields{
		"action": "host_lookup",
		"host":   host,
	}).Warn("host unmapped")

	body := "Not Found"
	c.Set(fiber.HeaderContentType, "text/plain")
	return c.Status(fiber.StatusNotFound).SendString(body)
}

func isDiagnosticsPath(path string) bool {
	return strings.HasPrefix(path, "/-/")
}

func getHostHeader(c fiber.Ctx) string {
	if raw := c.Request().Header.Peek(fiber.HeaderHost); len(raw) > 0 {
		return string(raw)
	}
	return c.Hostname()
}

// RequestID returns the request identifier stored by the router
// middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}
