package server

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v3"

	"github.com/ido50/mccs/internal/fileserver"
)

// requestFromCtx converts a fiber.Ctx into the Request envelope
// fileserver.Core.Handle consumes: PATH_INFO plus the handful of
// headers the pipeline inspects.
func requestFromCtx(c fiber.Ctx) fileserver.Request {
	return fileserver.Request{
		Method:          string(c.Request().Header.Method()),
		Path:            string(c.Request().URI().Path()),
		AcceptEncoding:  c.Get(fiber.HeaderAcceptEncoding),
		IfModifiedSince: c.Get(fiber.HeaderIfModifiedSince),
		IfNoneMatch:     c.Get(fiber.HeaderIfNoneMatch),
	}
}

// writeResponse writes a fileserver.Response back through c in the
// exact header order Core produced them. The body is streamed whenever
// the Response carries one (200, and the short reason-phrase body of a
// 4xx) and omitted for 304; HEAD requests get headers only, same as any
// compliant HTTP server strips the body for HEAD regardless of what
// the handler produced.
func writeResponse(c fiber.Ctx, resp *fileserver.Response) error {
	if resp.Body != nil {
		defer resp.Body.Close()
	}

	for _, h := range resp.Headers {
		c.Set(h.Name, h.Value)
	}
	c.Status(resp.Status)

	if resp.Body == nil || string(c.Request().Header.Method()) == fiber.MethodHead {
		return nil
	}

	_, err := io.Copy(c.Response().BodyWriter(), resp.Body)
	return err
}

// handle runs the Core pipeline for a single fiber request and writes
// its result back, translating a Handle error (context cancellation)
// into a 499-equivalent abort rather than a 500 — the core only
// returns an error for reasons outside the documented status table.
func handle(ctx context.Context, core *fileserver.Core, c fiber.Ctx) error {
	resp, err := core.Handle(ctx, requestFromCtx(c))
	if err != nil {
		return err
	}
	return writeResponse(c, resp)
}
